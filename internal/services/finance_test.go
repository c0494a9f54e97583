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

func newFinanceFixture(t *testing.T) (*services.FinanceService, *services.OrderService, *storage.InMemoryStore) {
	t.Helper()
	log := logger.NewLogger()
	producer, err := kafka.NewProducer(nil, true, log)
	require.NoError(t, err)
	store := storage.NewInMemoryStore()
	return services.NewFinanceService(store, log), services.NewOrderService(store, producer, log), store
}

func completeOrder(t *testing.T, orders *services.OrderService, store *storage.InMemoryStore, name, eventDate string, finalValue float64) int64 {
	t.Helper()
	ctx := context.Background()

	req := sampleOrderRequest(name)
	req.EventDate = eventDate
	order, err := orders.Create(ctx, req)
	require.NoError(t, err)
	_, err = orders.Approve(ctx, order.ID)
	require.NoError(t, err)
	require.NoError(t, orders.Complete(ctx, order.ID))

	stored, err := store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	stored.FinalValue = finalValue
	require.NoError(t, store.UpdateOrder(ctx, stored))

	return order.ID
}

func TestReportMergesCompletedOrdersAndLedger(t *testing.T) {
	finance, orders, store := newFinanceFixture(t)
	ctx := context.Background()

	orderID := completeOrder(t, orders, store, "Ana", "2025-03-01", 480)

	// A pending order must not show up in the report.
	_, err := orders.Create(ctx, sampleOrderRequest("Bia"))
	require.NoError(t, err)

	entry, err := finance.AddEntry(ctx, &models.LedgerEntryRequest{
		Type:  models.LedgerTypeExpense,
		Title: "Compra de luzes",
		Value: 90,
	})
	require.NoError(t, err)

	report, err := finance.Report(ctx)
	require.NoError(t, err)
	require.Len(t, report, 2)

	var sawOrder, sawEntry int
	for _, row := range report {
		switch {
		case row.ID == orderID && row.Type == models.LedgerTypeIncome:
			sawOrder++
			assert.Equal(t, "Festa: Ana", row.Title)
			assert.Equal(t, 480.0, row.Value)
			assert.Equal(t, "2025-03-01", row.Date)
		case row.ID == entry.ID && row.Type == models.LedgerTypeExpense:
			sawEntry++
			assert.Equal(t, "Compra de luzes", row.Title)
		}
	}
	assert.Equal(t, 1, sawOrder, "completed order should appear exactly once")
	assert.Equal(t, 1, sawEntry, "ledger entry should appear exactly once")
}

func TestReportSortedByDateDescending(t *testing.T) {
	finance, orders, store := newFinanceFixture(t)
	ctx := context.Background()

	completeOrder(t, orders, store, "Ana", "2024-11-20", 300)
	completeOrder(t, orders, store, "Bia", "2025-02-10", 350)

	// The manual entry is posted today, after both event dates above.
	_, err := finance.AddEntry(ctx, &models.LedgerEntryRequest{
		Type:  models.LedgerTypeIncome,
		Title: "Sinal recebido",
		Value: 100,
	})
	require.NoError(t, err)

	report, err := finance.Report(ctx)
	require.NoError(t, err)
	require.Len(t, report, 3)

	for i := 1; i < len(report); i++ {
		assert.GreaterOrEqual(t, report[i-1].Date, report[i].Date,
			"report must be sorted by date descending")
	}
	assert.Equal(t, "Sinal recebido", report[0].Title)
}

func TestAddEntryValidatesType(t *testing.T) {
	finance, _, _ := newFinanceFixture(t)
	ctx := context.Background()

	_, err := finance.AddEntry(ctx, &models.LedgerEntryRequest{
		Type:  "other",
		Title: "Ajuste",
		Value: 10,
	})
	assert.ErrorIs(t, err, services.ErrInvalidLedgerType)

	entry, err := finance.AddEntry(ctx, &models.LedgerEntryRequest{
		Type:  models.LedgerTypeIncome,
		Title: "Sinal",
		Value: 50,
	})
	require.NoError(t, err)
	assert.False(t, entry.PostedAt.IsZero())
}
