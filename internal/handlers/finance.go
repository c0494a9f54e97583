package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kuhaiku/cabana-2.0/internal/models"
	"github.com/Kuhaiku/cabana-2.0/internal/services"
	"github.com/Kuhaiku/cabana-2.0/internal/utils"
)

type FinanceHandler struct {
	financeService *services.FinanceService
}

func NewFinanceHandler(financeService *services.FinanceService) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
	}
}

// Report serves the merged view of completed orders and manual ledger
// entries.
func (h *FinanceHandler) Report(c *gin.Context) {
	entries, err := h.financeService.Report(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to build report", ""))
		return
	}
	if entries == nil {
		entries = []*models.FinanceEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

func (h *FinanceHandler) AddEntry(c *gin.Context) {
	var req models.LedgerEntryRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	if _, err := h.financeService.AddEntry(c.Request.Context(), &req); err != nil {
		if errors.Is(err, services.ErrInvalidLedgerType) {
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Validation failed", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to save entry", ""))
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse())
}
