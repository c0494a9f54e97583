package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Kuhaiku/cabana-2.0/internal/logger"
	"github.com/Kuhaiku/cabana-2.0/internal/models"
	"github.com/Kuhaiku/cabana-2.0/internal/storage"
)

var ErrInvalidLedgerType = errors.New("ledger type must be entrada or saida")

type FinanceService struct {
	store storage.Store
	log   *logger.Logger
}

func NewFinanceService(store storage.Store, log *logger.Logger) *FinanceService {
	return &FinanceService{
		store: store,
		log:   log,
	}
}

// Report merges completed orders (as synthetic income lines) with manual
// ledger entries, sorted by date descending. Nothing is materialized; the
// report is rebuilt on every call.
func (s *FinanceService) Report(ctx context.Context) ([]*models.FinanceEntry, error) {
	completed, err := s.store.ListOrdersByStatus(ctx, models.OrderStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed orders: %w", err)
	}

	ledger, err := s.store.ListLedgerEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	entries := make([]*models.FinanceEntry, 0, len(completed)+len(ledger))
	for _, order := range completed {
		entries = append(entries, &models.FinanceEntry{
			ID:    order.ID,
			Type:  models.LedgerTypeIncome,
			Title: "Festa: " + order.CustomerName,
			Value: order.FinalValue,
			Date:  order.EventDate,
		})
	}
	for _, entry := range ledger {
		entries = append(entries, &models.FinanceEntry{
			ID:    entry.ID,
			Type:  entry.Type,
			Title: entry.Title,
			Value: entry.Value,
			Date:  entry.PostedAt.Format("2006-01-02"),
		})
	}

	// Dates are YYYY-MM-DD strings, so lexical order is chronological.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})

	return entries, nil
}

// AddEntry records a manual ledger entry.
func (s *FinanceService) AddEntry(ctx context.Context, req *models.LedgerEntryRequest) (*models.LedgerEntry, error) {
	entryType := strings.TrimSpace(req.Type)
	if entryType != models.LedgerTypeIncome && entryType != models.LedgerTypeExpense {
		return nil, ErrInvalidLedgerType
	}

	entry := &models.LedgerEntry{
		Type:        entryType,
		Title:       strings.TrimSpace(req.Title),
		Value:       req.Value,
		Description: req.Description,
		PostedAt:    time.Now(),
	}

	if err := s.store.SaveLedgerEntry(ctx, entry); err != nil {
		s.log.Error("FINANCE", fmt.Sprintf("Failed to save ledger entry %s: %v", entry.Title, err))
		return nil, fmt.Errorf("failed to save ledger entry: %w", err)
	}

	s.log.Info("FINANCE", fmt.Sprintf("Ledger entry %d (%s) recorded", entry.ID, entry.Type))
	return entry, nil
}
