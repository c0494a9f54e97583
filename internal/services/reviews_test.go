package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kuhaiku/cabana-2.0/internal/kafka"
	"github.com/Kuhaiku/cabana-2.0/internal/logger"
	"github.com/Kuhaiku/cabana-2.0/internal/models"
	"github.com/Kuhaiku/cabana-2.0/internal/services"
	"github.com/Kuhaiku/cabana-2.0/internal/storage"
)

func newReviewFixture(t *testing.T) (*services.ReviewService, *services.OrderService) {
	t.Helper()
	log := logger.NewLogger()
	producer, err := kafka.NewProducer(nil, true, log)
	require.NoError(t, err)
	store := storage.NewInMemoryStore()
	return services.NewReviewService(store, log), services.NewOrderService(store, producer, log)
}

func approvedToken(t *testing.T, orders *services.OrderService, name string) string {
	t.Helper()
	ctx := context.Background()
	order, err := orders.Create(ctx, sampleOrderRequest(name))
	require.NoError(t, err)
	token, err := orders.Approve(ctx, order.ID)
	require.NoError(t, err)
	return token
}

func TestSubmitWithUnknownToken(t *testing.T) {
	reviews, _ := newReviewFixture(t)
	ctx := context.Background()

	_, err := reviews.Submit(ctx, &models.ReviewRequest{
		Token:  "deadbeefdeadbeef",
		Rating: 5,
	})
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	visible, err := reviews.ListVisible(ctx)
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestSubmitUsesOrderCustomerName(t *testing.T) {
	reviews, orders := newReviewFixture(t)
	ctx := context.Background()

	token := approvedToken(t, orders, "Ana")

	review, err := reviews.Submit(ctx, &models.ReviewRequest{
		Token:   token,
		Rating:  5,
		Comment: "As crianças amaram!",
		Photos:  []string{"https://example.com/festa.jpg"},
	})
	require.NoError(t, err)

	// The order's stored name is authoritative.
	assert.Equal(t, "Ana", review.CustomerName)
	assert.True(t, review.Visible)
	assert.NotZero(t, review.OrderID)

	visible, err := reviews.ListVisible(ctx)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, review.ID, visible[0].ID)
}

func TestSubmitRejectsOutOfRangeRating(t *testing.T) {
	reviews, orders := newReviewFixture(t)
	ctx := context.Background()

	token := approvedToken(t, orders, "Ana")

	for _, rating := range []int{-1, 0, 6, 10} {
		_, err := reviews.Submit(ctx, &models.ReviewRequest{Token: token, Rating: rating})
		assert.ErrorIs(t, err, services.ErrInvalidRating, "rating %d", rating)
	}

	visible, err := reviews.ListVisible(ctx)
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestTokenStaysValidAfterSubmission(t *testing.T) {
	reviews, orders := newReviewFixture(t)
	ctx := context.Background()

	token := approvedToken(t, orders, "Ana")

	_, err := reviews.Submit(ctx, &models.ReviewRequest{Token: token, Rating: 4})
	require.NoError(t, err)

	// Tokens are deliberately not invalidated, so a resubmission succeeds.
	_, err = reviews.Submit(ctx, &models.ReviewRequest{Token: token, Rating: 5})
	require.NoError(t, err)

	visible, err := reviews.ListVisible(ctx)
	require.NoError(t, err)
	assert.Len(t, visible, 2)
}
