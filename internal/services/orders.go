package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kuhaiku/cabana-2.0/internal/kafka"
	"github.com/Kuhaiku/cabana-2.0/internal/logger"
	"github.com/Kuhaiku/cabana-2.0/internal/models"
	"github.com/Kuhaiku/cabana-2.0/internal/storage"
	"github.com/Kuhaiku/cabana-2.0/internal/utils"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

type OrderService struct {
	store    storage.Store
	producer *kafka.Producer
	log      *logger.Logger
}

func NewOrderService(store storage.Store, producer *kafka.Producer, log *logger.Logger) *OrderService {
	return &OrderService{
		store:    store,
		producer: producer,
		log:      log,
	}
}

// Create records a new quote request. Status is set to pending here, never
// left to a storage default.
func (s *OrderService) Create(ctx context.Context, req *models.OrderRequest) (*models.Order, error) {
	s.log.LogProcess("ORDER", fmt.Sprintf("Creating order for %s", req.CustomerName))

	order := &models.Order{
		CustomerName:  req.CustomerName,
		Phone:         req.Phone,
		Address:       req.Address,
		ChildCount:    req.ChildCount,
		AgeRange:      req.AgeRange,
		TentModel:     req.TentModel,
		TentCount:     req.TentCount,
		Colors:        req.Colors,
		Theme:         req.Theme,
		StandardItems: req.StandardItems,
		ExtraItems:    req.ExtraItems,
		EventDate:     req.EventDate,
		EventTime:     req.EventTime,
		Dietary:       req.Dietary,
		Allergies:     req.Allergies,
		Status:        models.OrderStatusPending,
		CreatedAt:     time.Now(),
	}

	if err := s.store.SaveOrder(ctx, order); err != nil {
		s.log.Error("ORDER", fmt.Sprintf("Failed to save order for %s: %v", req.CustomerName, err))
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.log.LogOrder("CREATE", order.ID, "Order created with status pending")
	s.publishOrderEvent("order.created", order)

	return order, nil
}

func (s *OrderService) List(ctx context.Context) ([]*models.Order, error) {
	return s.store.ListOrders(ctx)
}

// Approve moves an order to approved and issues a fresh review token.
// Re-approving an approved order reissues the token; a completed order can no
// longer be approved.
func (s *OrderService) Approve(ctx context.Context, id int64) (string, error) {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return "", err
	}

	if order.Status == models.OrderStatusCompleted {
		s.log.LogOrder("APPROVE_REJECTED", id, "Order is already completed")
		return "", ErrInvalidTransition
	}

	token, err := utils.GenerateReviewToken()
	if err != nil {
		return "", err
	}

	order.Status = models.OrderStatusApproved
	order.ReviewToken = token

	if err := s.store.UpdateOrder(ctx, order); err != nil {
		s.log.Error("ORDER", fmt.Sprintf("Failed to approve order %d: %v", id, err))
		return "", fmt.Errorf("failed to approve order: %w", err)
	}

	s.log.LogOrder("APPROVE", id, "Order approved and review token issued")
	s.publishOrderEvent("order.approved", order)

	return token, nil
}

// Complete marks an approved order as completed, making it eligible for the
// financial report. Orders that never passed through approved are rejected.
func (s *OrderService) Complete(ctx context.Context, id int64) error {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return err
	}

	if order.Status != models.OrderStatusApproved {
		s.log.LogOrder("COMPLETE_REJECTED", id, fmt.Sprintf("Order has status %s, expected approved", order.Status))
		return ErrInvalidTransition
	}

	order.Status = models.OrderStatusCompleted

	if err := s.store.UpdateOrder(ctx, order); err != nil {
		s.log.Error("ORDER", fmt.Sprintf("Failed to complete order %d: %v", id, err))
		return fmt.Errorf("failed to complete order: %w", err)
	}

	s.log.LogOrder("COMPLETE", id, "Order completed")
	s.publishOrderEvent("order.completed", order)

	return nil
}

// Delete removes an order permanently. Allowed from any state.
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrOrderNotFound
		}
		s.log.Error("ORDER", fmt.Sprintf("Failed to delete order %d: %v", id, err))
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.log.LogOrder("DELETE", id, "Order deleted")
	s.publishOrderEvent("order.deleted", order)

	return nil
}

// Agenda returns the calendar view of approved orders.
func (s *OrderService) Agenda(ctx context.Context) ([]*models.AgendaEntry, error) {
	orders, err := s.store.ListOrdersByStatus(ctx, models.OrderStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved orders: %w", err)
	}

	entries := make([]*models.AgendaEntry, 0, len(orders))
	for _, order := range orders {
		entries = append(entries, &models.AgendaEntry{
			ID:        order.ID,
			Title:     order.CustomerName,
			Start:     order.EventDate,
			Phone:     order.Phone,
			Address:   order.Address,
			EventTime: order.EventTime,
			TentModel: order.TentModel,
			TentCount: order.TentCount,
		})
	}
	return entries, nil
}

func (s *OrderService) getOrder(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func (s *OrderService) publishOrderEvent(eventType string, order *models.Order) {
	if err := s.producer.PublishOrderEvent(eventType, order); err != nil {
		s.log.Error("KAFKA", fmt.Sprintf("Failed to publish %s event for order %d: %v", eventType, order.ID, err))
		s.log.LogProcess("FALLBACK", fmt.Sprintf("Order %d processed successfully despite Kafka publish failure", order.ID))
	}
}
