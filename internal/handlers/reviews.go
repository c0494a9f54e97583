package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kuhaiku/cabana-2.0/internal/models"
	"github.com/Kuhaiku/cabana-2.0/internal/services"
	"github.com/Kuhaiku/cabana-2.0/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// ListVisible serves the public testimonials page.
func (h *ReviewHandler) ListVisible(c *gin.Context) {
	reviews, err := h.reviewService.ListVisible(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to list reviews", ""))
		return
	}
	if reviews == nil {
		reviews = []*models.Review{}
	}
	c.JSON(http.StatusOK, reviews)
}

// Submit creates a review for the order matching the supplied token.
func (h *ReviewHandler) Submit(c *gin.Context) {
	var req models.ReviewRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request payload", err.Error()))
		return
	}

	if _, err := h.reviewService.Submit(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidToken):
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Token inválido", ""))
		case errors.Is(err, services.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid rating", "rating must be between 1 and 5"))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to save review", ""))
		}
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse())
}
