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

func newOrderService(t *testing.T) (*services.OrderService, *storage.InMemoryStore) {
	t.Helper()
	log := logger.NewLogger()
	producer, err := kafka.NewProducer(nil, true, log)
	require.NoError(t, err)
	store := storage.NewInMemoryStore()
	return services.NewOrderService(store, producer, log), store
}

func sampleOrderRequest(name string) *models.OrderRequest {
	return &models.OrderRequest{
		CustomerName:  name,
		Phone:         "+551199999999",
		Address:       "Rua das Flores, 10",
		ChildCount:    4,
		AgeRange:      "5-8",
		TentModel:     "teepee",
		TentCount:     4,
		Colors:        "rosa e dourado",
		Theme:         "unicórnio",
		StandardItems: []string{"colchonete", "luzes"},
		EventDate:     "2025-03-01",
		EventTime:     "15:00",
		Dietary:       []string{"sem lactose"},
	}
}

func TestCreateOrderStartsPending(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, sampleOrderRequest("Ana"))
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Empty(t, order.ReviewToken)
	assert.False(t, order.CreatedAt.IsZero())

	orders, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Ana", orders[0].CustomerName)
}

func TestApproveIssuesUniqueTokens(t *testing.T) {
	svc, store := newOrderService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, sampleOrderRequest("Ana"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, sampleOrderRequest("Bia"))
	require.NoError(t, err)

	tokenA, err := svc.Approve(ctx, first.ID)
	require.NoError(t, err)
	tokenB, err := svc.Approve(ctx, second.ID)
	require.NoError(t, err)

	assert.NotEmpty(t, tokenA)
	assert.NotEmpty(t, tokenB)
	assert.NotEqual(t, tokenA, tokenB)

	// Re-approving reissues a fresh token.
	tokenA2, err := svc.Approve(ctx, first.ID)
	require.NoError(t, err)
	assert.NotEqual(t, tokenA, tokenA2)

	stored, err := store.GetOrder(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusApproved, stored.Status)
	assert.Equal(t, tokenA2, stored.ReviewToken)
}

func TestApproveUnknownOrder(t *testing.T) {
	svc, _ := newOrderService(t)

	_, err := svc.Approve(context.Background(), 42)
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
}

func TestCompleteRequiresApproval(t *testing.T) {
	svc, store := newOrderService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, sampleOrderRequest("Ana"))
	require.NoError(t, err)

	// pending -> completed is not allowed
	err = svc.Complete(ctx, order.ID)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	_, err = svc.Approve(ctx, order.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Complete(ctx, order.ID))

	stored, err := store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, stored.Status)

	// completed is terminal: no further transitions
	err = svc.Complete(ctx, order.ID)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
	_, err = svc.Approve(ctx, order.ID)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestDeleteAllowedFromAnyState(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	pending, err := svc.Create(ctx, sampleOrderRequest("Ana"))
	require.NoError(t, err)
	approved, err := svc.Create(ctx, sampleOrderRequest("Bia"))
	require.NoError(t, err)
	completed, err := svc.Create(ctx, sampleOrderRequest("Clara"))
	require.NoError(t, err)

	_, err = svc.Approve(ctx, approved.ID)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, completed.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Complete(ctx, completed.ID))

	require.NoError(t, svc.Delete(ctx, pending.ID))
	require.NoError(t, svc.Delete(ctx, approved.ID))
	require.NoError(t, svc.Delete(ctx, completed.ID))

	orders, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	err = svc.Delete(ctx, pending.ID)
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
}

func TestAgendaListsOnlyApprovedOrders(t *testing.T) {
	svc, _ := newOrderService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, sampleOrderRequest("Ana"))
	require.NoError(t, err)
	approved, err := svc.Create(ctx, sampleOrderRequest("Bia"))
	require.NoError(t, err)
	done, err := svc.Create(ctx, sampleOrderRequest("Clara"))
	require.NoError(t, err)

	_, err = svc.Approve(ctx, approved.ID)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, done.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Complete(ctx, done.ID))

	entries, err := svc.Agenda(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, approved.ID, entries[0].ID)
	assert.Equal(t, "Bia", entries[0].Title)
	assert.Equal(t, "2025-03-01", entries[0].Start)
}
