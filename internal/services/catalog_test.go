package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kuhaiku/cabana-2.0/internal/logger"
	"github.com/Kuhaiku/cabana-2.0/internal/models"
	"github.com/Kuhaiku/cabana-2.0/internal/services"
	"github.com/Kuhaiku/cabana-2.0/internal/storage"
)

func newCatalogService(t *testing.T) *services.CatalogService {
	t.Helper()
	return services.NewCatalogService(storage.NewInMemoryStore(), logger.NewLogger())
}

func TestCreatePriceItemDefaults(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, &models.PriceItemRequest{
		Description: "Barraca teepee",
		Category:    "barracas",
		UnitPrice:   150,
	})
	require.NoError(t, err)

	assert.NotZero(t, item.ID)
	assert.True(t, item.Available)
	assert.True(t, strings.HasPrefix(item.Key, "custom_"), "key %q should be timestamp-derived", item.Key)
}

func TestCreatePriceItemValidation(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.PriceItemRequest{Description: "  ", Category: "barracas", UnitPrice: 10})
	assert.ErrorIs(t, err, services.ErrEmptyDescription)

	_, err = svc.Create(ctx, &models.PriceItemRequest{Description: "Barraca", Category: " ", UnitPrice: 10})
	assert.ErrorIs(t, err, services.ErrEmptyCategory)

	_, err = svc.Create(ctx, &models.PriceItemRequest{Description: "Barraca", Category: "barracas", UnitPrice: -1})
	assert.ErrorIs(t, err, services.ErrNegativePrice)
}

func TestPublicListingExcludesUnavailableItems(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	tent, err := svc.Create(ctx, &models.PriceItemRequest{Description: "Barraca teepee", Category: "barracas", UnitPrice: 150})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &models.PriceItemRequest{Description: "Luzes extras", Category: "extras", UnitPrice: 30})
	require.NoError(t, err)

	require.NoError(t, svc.SetAvailability(ctx, tent.ID, false))

	public, err := svc.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Luzes extras", public[0].Description)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSetAvailabilityIsIdempotent(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, &models.PriceItemRequest{Description: "Barraca", Category: "barracas", UnitPrice: 100})
	require.NoError(t, err)

	require.NoError(t, svc.SetAvailability(ctx, item.ID, false))
	require.NoError(t, svc.SetAvailability(ctx, item.ID, false))

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Available)
}

func TestCatalogSortedByCategoryThenDescription(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	for _, req := range []models.PriceItemRequest{
		{Description: "Luzes", Category: "extras", UnitPrice: 30},
		{Description: "Barraca teepee", Category: "barracas", UnitPrice: 150},
		{Description: "Barraca cabana", Category: "barracas", UnitPrice: 120},
	} {
		_, err := svc.Create(ctx, &req)
		require.NoError(t, err)
	}

	items, err := svc.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Barraca cabana", items[0].Description)
	assert.Equal(t, "Barraca teepee", items[1].Description)
	assert.Equal(t, "Luzes", items[2].Description)
}

func TestDeleteUnknownPriceItem(t *testing.T) {
	svc := newCatalogService(t)

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, services.ErrPriceItemNotFound)
}
