package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/Kuhaiku/cabana-2.0/internal/models"
)

// InMemoryStore mirrors the MySQL store's behavior, including result ordering,
// so service tests can run without a database.
type InMemoryStore struct {
	mutex sync.RWMutex

	orders       map[int64]*models.Order
	reviews      map[int64]*models.Review
	priceItems   map[int64]*models.PriceItem
	ledger       map[int64]*models.LedgerEntry
	nextOrderID  int64
	nextReviewID int64
	nextItemID   int64
	nextEntryID  int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		orders:     make(map[int64]*models.Order),
		reviews:    make(map[int64]*models.Review),
		priceItems: make(map[int64]*models.PriceItem),
		ledger:     make(map[int64]*models.LedgerEntry),
	}
}

func (s *InMemoryStore) SaveOrder(ctx context.Context, order *models.Order) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.nextOrderID++
	order.ID = s.nextOrderID
	copied := *order
	s.orders[order.ID] = &copied
	return nil
}

func (s *InMemoryStore) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	order, exists := s.orders[id]
	if !exists {
		return nil, ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *InMemoryStore) GetOrderByReviewToken(ctx context.Context, token string) (*models.Order, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if token == "" {
		return nil, ErrNotFound
	}
	for _, order := range s.orders {
		if order.ReviewToken == token {
			copied := *order
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryStore) ListOrders(ctx context.Context) ([]*models.Order, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.collectOrders(func(*models.Order) bool { return true }), nil
}

func (s *InMemoryStore) ListOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]*models.Order, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.collectOrders(func(o *models.Order) bool { return o.Status == status }), nil
}

func (s *InMemoryStore) collectOrders(match func(*models.Order) bool) []*models.Order {
	var orders []*models.Order
	for _, order := range s.orders {
		if match(order) {
			copied := *order
			orders = append(orders, &copied)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders
}

func (s *InMemoryStore) UpdateOrder(ctx context.Context, order *models.Order) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.orders[order.ID]; !exists {
		return ErrNotFound
	}
	copied := *order
	s.orders[order.ID] = &copied
	return nil
}

func (s *InMemoryStore) DeleteOrder(ctx context.Context, id int64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.orders[id]; !exists {
		return ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

func (s *InMemoryStore) SaveReview(ctx context.Context, review *models.Review) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.nextReviewID++
	review.ID = s.nextReviewID
	copied := *review
	s.reviews[review.ID] = &copied
	return nil
}

func (s *InMemoryStore) ListVisibleReviews(ctx context.Context) ([]*models.Review, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var reviews []*models.Review
	for _, review := range s.reviews {
		if review.Visible {
			copied := *review
			reviews = append(reviews, &copied)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

func (s *InMemoryStore) SavePriceItem(ctx context.Context, item *models.PriceItem) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.nextItemID++
	item.ID = s.nextItemID
	copied := *item
	s.priceItems[item.ID] = &copied
	return nil
}

func (s *InMemoryStore) ListPriceItems(ctx context.Context, onlyAvailable bool) ([]*models.PriceItem, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var items []*models.PriceItem
	for _, item := range s.priceItems {
		if onlyAvailable && !item.Available {
			continue
		}
		copied := *item
		items = append(items, &copied)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Description < items[j].Description
	})
	return items, nil
}

func (s *InMemoryStore) SetPriceItemAvailability(ctx context.Context, id int64, available bool) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	item, exists := s.priceItems[id]
	if !exists {
		return ErrNotFound
	}
	item.Available = available
	return nil
}

func (s *InMemoryStore) DeletePriceItem(ctx context.Context, id int64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.priceItems[id]; !exists {
		return ErrNotFound
	}
	delete(s.priceItems, id)
	return nil
}

func (s *InMemoryStore) SaveLedgerEntry(ctx context.Context, entry *models.LedgerEntry) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.nextEntryID++
	entry.ID = s.nextEntryID
	copied := *entry
	s.ledger[entry.ID] = &copied
	return nil
}

func (s *InMemoryStore) ListLedgerEntries(ctx context.Context) ([]*models.LedgerEntry, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var entries []*models.LedgerEntry
	for _, entry := range s.ledger {
		copied := *entry
		entries = append(entries, &copied)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].PostedAt.After(entries[j].PostedAt)
	})
	return entries, nil
}

func (s *InMemoryStore) HealthCheck() error {
	return nil
}
