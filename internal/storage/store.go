package storage

import (
	"context"

	"github.com/Kuhaiku/cabana-2.0/internal/models"
)

type Store interface {
	// Order operations
	SaveOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	GetOrderByReviewToken(ctx context.Context, token string) (*models.Order, error)
	ListOrders(ctx context.Context) ([]*models.Order, error)
	ListOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]*models.Order, error)
	UpdateOrder(ctx context.Context, order *models.Order) error
	DeleteOrder(ctx context.Context, id int64) error

	// Review operations
	SaveReview(ctx context.Context, review *models.Review) error
	ListVisibleReviews(ctx context.Context) ([]*models.Review, error)

	// Price catalog operations
	SavePriceItem(ctx context.Context, item *models.PriceItem) error
	ListPriceItems(ctx context.Context, onlyAvailable bool) ([]*models.PriceItem, error)
	SetPriceItemAvailability(ctx context.Context, id int64, available bool) error
	DeletePriceItem(ctx context.Context, id int64) error

	// Ledger operations
	SaveLedgerEntry(ctx context.Context, entry *models.LedgerEntry) error
	ListLedgerEntries(ctx context.Context) ([]*models.LedgerEntry, error)

	HealthCheck() error
}
