package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kuhaiku/cabana-2.0/internal/logger"
	"github.com/Kuhaiku/cabana-2.0/internal/models"
	"github.com/Kuhaiku/cabana-2.0/internal/storage"
)

var (
	ErrInvalidToken  = errors.New("invalid review token")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

type ReviewService struct {
	store storage.Store
	log   *logger.Logger
}

func NewReviewService(store storage.Store, log *logger.Logger) *ReviewService {
	return &ReviewService{
		store: store,
		log:   log,
	}
}

// Submit creates a review for the order matching the supplied token. The
// order's stored customer name is authoritative. Tokens stay valid after use,
// so a customer can resubmit; the replay policy is deliberate.
func (s *ReviewService) Submit(ctx context.Context, req *models.ReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	order, err := s.store.GetOrderByReviewToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.log.LogSecurity("REVIEW_TOKEN", "Review submission with unknown token rejected")
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up review token: %w", err)
	}

	review := &models.Review{
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
		Rating:       req.Rating,
		Comment:      req.Comment,
		PhotoURLs:    req.Photos,
		Visible:      true,
		CreatedAt:    time.Now(),
	}

	if err := s.store.SaveReview(ctx, review); err != nil {
		s.log.Error("REVIEW", fmt.Sprintf("Failed to save review for order %d: %v", order.ID, err))
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	s.log.LogOrder("REVIEW", order.ID, fmt.Sprintf("Review %d created with rating %d", review.ID, review.Rating))
	return review, nil
}

// ListVisible returns the reviews shown on the public site.
func (s *ReviewService) ListVisible(ctx context.Context) ([]*models.Review, error) {
	return s.store.ListVisibleReviews(ctx)
}
