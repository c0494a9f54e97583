package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Kuhaiku/cabana-2.0/internal/logger"
	"github.com/Kuhaiku/cabana-2.0/internal/models"
	"github.com/Kuhaiku/cabana-2.0/internal/storage"
	"github.com/Kuhaiku/cabana-2.0/internal/utils"
)

var (
	ErrPriceItemNotFound = errors.New("price item not found")
	ErrEmptyDescription  = errors.New("description must not be empty")
	ErrEmptyCategory     = errors.New("category must not be empty")
	ErrNegativePrice     = errors.New("price must not be negative")
)

type CatalogService struct {
	store storage.Store
	log   *logger.Logger
}

func NewCatalogService(store storage.Store, log *logger.Logger) *CatalogService {
	return &CatalogService{
		store: store,
		log:   log,
	}
}

// ListAvailable returns the public catalog: available items only, sorted by
// category then description.
func (s *CatalogService) ListAvailable(ctx context.Context) ([]*models.PriceItem, error) {
	return s.store.ListPriceItems(ctx, true)
}

// ListAll returns every item regardless of availability, for the admin panel.
func (s *CatalogService) ListAll(ctx context.Context) ([]*models.PriceItem, error) {
	return s.store.ListPriceItems(ctx, false)
}

// Create adds a catalog item. The key is derived from the creation instant
// and new items default to available.
func (s *CatalogService) Create(ctx context.Context, req *models.PriceItemRequest) (*models.PriceItem, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrEmptyDescription
	}
	if strings.TrimSpace(req.Category) == "" {
		return nil, ErrEmptyCategory
	}
	if req.UnitPrice < 0 {
		return nil, ErrNegativePrice
	}

	item := &models.PriceItem{
		Key:         utils.GeneratePriceItemKey(),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		UnitPrice:   req.UnitPrice,
		Available:   true,
	}

	if err := s.store.SavePriceItem(ctx, item); err != nil {
		s.log.Error("CATALOG", fmt.Sprintf("Failed to save price item %s: %v", item.Key, err))
		return nil, fmt.Errorf("failed to save price item: %w", err)
	}

	s.log.Info("CATALOG", fmt.Sprintf("Price item %d (%s) created", item.ID, item.Key))
	return item, nil
}

// SetAvailability sets the availability flag to an absolute value.
func (s *CatalogService) SetAvailability(ctx context.Context, id int64, available bool) error {
	if err := s.store.SetPriceItemAvailability(ctx, id, available); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrPriceItemNotFound
		}
		s.log.Error("CATALOG", fmt.Sprintf("Failed to toggle price item %d: %v", id, err))
		return fmt.Errorf("failed to toggle price item: %w", err)
	}

	s.log.Info("CATALOG", fmt.Sprintf("Price item %d availability set to %t", id, available))
	return nil
}

func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeletePriceItem(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrPriceItemNotFound
		}
		s.log.Error("CATALOG", fmt.Sprintf("Failed to delete price item %d: %v", id, err))
		return fmt.Errorf("failed to delete price item: %w", err)
	}

	s.log.Info("CATALOG", fmt.Sprintf("Price item %d deleted", id))
	return nil
}
