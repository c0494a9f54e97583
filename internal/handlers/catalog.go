package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kuhaiku/cabana-2.0/internal/models"
	"github.com/Kuhaiku/cabana-2.0/internal/services"
	"github.com/Kuhaiku/cabana-2.0/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ListAvailable serves the public price list. Unavailable items never appear
// here.
func (h *CatalogHandler) ListAvailable(c *gin.Context) {
	items, err := h.catalogService.ListAvailable(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to list items", ""))
		return
	}
	if items == nil {
		items = []*models.PriceItem{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) ListAll(c *gin.Context) {
	items, err := h.catalogService.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to list items", ""))
		return
	}
	if items == nil {
		items = []*models.PriceItem{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var req models.PriceItemRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	if _, err := h.catalogService.Create(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyDescription),
			errors.Is(err, services.ErrEmptyCategory),
			errors.Is(err, services.ErrNegativePrice):
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Validation failed", err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to save item", ""))
		}
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse())
}

func (h *CatalogHandler) Toggle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.PriceItemToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	if err := h.catalogService.SetAvailability(c.Request.Context(), id, *req.Available); err != nil {
		if errors.Is(err, services.ErrPriceItemNotFound) {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Item not found", ""))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to update item", ""))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse())
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.catalogService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrPriceItemNotFound) {
			c.JSON(http.StatusNotFound, utils.ErrorResponse("Item not found", ""))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to delete item", ""))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse())
}
