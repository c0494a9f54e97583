package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Kuhaiku/cabana-2.0/internal/models"
	"github.com/Kuhaiku/cabana-2.0/internal/services"
	"github.com/Kuhaiku/cabana-2.0/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// Create handles the public quote submission.
func (h *OrderHandler) Create(c *gin.Context) {
	var req models.OrderRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	if _, err := h.orderService.Create(c.Request.Context(), &req); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to save order", ""))
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse())
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to list orders", ""))
		return
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// Approve moves the order to approved and returns the review link for the
// customer.
func (h *OrderHandler) Approve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	token, err := h.orderService.Approve(c.Request.Context(), id)
	if err != nil {
		h.writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "link": "/avaliar.html?t=" + token})
}

func (h *OrderHandler) Complete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.orderService.Complete(c.Request.Context(), id); err != nil {
		h.writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse())
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.writeOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse())
}

func (h *OrderHandler) Agenda(c *gin.Context) {
	entries, err := h.orderService.Agenda(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to load agenda", ""))
		return
	}
	if entries == nil {
		entries = []*models.AgendaEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

func (h *OrderHandler) writeOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, utils.ErrorResponse("Order not found", ""))
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, utils.ErrorResponse("Invalid order status transition", ""))
	default:
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to update order", ""))
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid id", ""))
		return 0, false
	}
	return id, true
}
