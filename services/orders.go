package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"food-delivery/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderService serves order reads and the customer and restaurant status changes.
type OrderService struct {
	orders   OrderStore
	sessions VerificationStore
	events   Publisher
	now      func() time.Time
}

// NewOrderService wires order reads and updates. sessions may be nil when no delivery
// verification is kept.
func NewOrderService(orders OrderStore, sessions VerificationStore, events Publisher) *OrderService {
	return &OrderService{orders: orders, sessions: sessions, events: events, now: time.Now}
}

// ListForCustomer returns the customer's orders, newest first.
func (s *OrderService) ListForCustomer(ctx context.Context, who Identity) ([]models.Order, error) {
	if !who.is(models.ActorCustomer) {
		return nil, ErrUnauthenticated
	}
	orders, err := s.orders.ListByCustomer(ctx, who.ID)
	if err != nil {
		return nil, unexpected("list customer orders", err)
	}
	return orders, nil
}

// GetForCustomer returns one of the customer's orders.
func (s *OrderService) GetForCustomer(ctx context.Context, who Identity, id primitive.ObjectID) (*models.Order, error) {
	if !who.is(models.ActorCustomer) {
		return nil, ErrUnauthenticated
	}
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, unexpected("load order", err)
	}
	if order == nil || order.CustomerID != who.ID {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}
	return order, nil
}

// ListForRestaurant returns the restaurant's orders, newest first.
func (s *OrderService) ListForRestaurant(ctx context.Context, who Identity) ([]models.Order, error) {
	if !who.is(models.ActorRestaurant) {
		return nil, ErrUnauthenticated
	}
	orders, err := s.orders.ListByRestaurant(ctx, who.ID)
	if err != nil {
		return nil, unexpected("list restaurant orders", err)
	}
	return orders, nil
}

// UpdateStatus moves a restaurant's order to a new status.
func (s *OrderService) UpdateStatus(ctx context.Context, who Identity, id primitive.ObjectID, raw string) (*models.Order, error) {
	if !who.is(models.ActorRestaurant) {
		return nil, ErrUnauthenticated
	}
	target, err := models.ParseStatus(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, unexpected("load order", err)
	}
	if order == nil || order.RestaurantID != who.ID {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}
	return s.transition(ctx, models.ActorRestaurant, order, OrderFilter{ID: id, RestaurantID: who.ID}, target)
}

// Cancel cancels a customer's order that the restaurant has not started on.
func (s *OrderService) Cancel(ctx context.Context, who Identity, id primitive.ObjectID) (*models.Order, error) {
	order, err := s.GetForCustomer(ctx, who, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, models.ActorCustomer, order, OrderFilter{ID: id, CustomerID: who.ID}, models.StatusCancelled)
}

func (s *OrderService) transition(ctx context.Context, actor models.Actor, order *models.Order, filter OrderFilter, target models.Status) (*models.Order, error) {
	if order.Status == target {
		return order, nil
	}
	if !models.CanTransition(actor, order.Status, target) {
		return nil, fmt.Errorf("%w: cannot move order from %s to %s", ErrInvalidTransition, order.Status, target)
	}

	now := s.now()
	filter.Status = order.Status
	updated, err := s.orders.SetStatus(ctx, filter, target, now)
	if err != nil {
		return nil, unexpected("update order status", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: order status changed concurrently", ErrInvalidTransition)
	}
	if target == models.StatusDelivered {
		s.expireSessions(ctx, updated.ID, now)
		publish(ctx, s.events, models.NewOrderEvent(models.EventOrderDelivered, updated, now))
		return updated, nil
	}
	publish(ctx, s.events, models.NewOrderEvent(models.EventOrderStatusChanged, updated, now))
	return updated, nil
}

func (s *OrderService) expireSessions(ctx context.Context, orderID primitive.ObjectID, now time.Time) {
	if s.sessions == nil {
		return
	}
	if _, err := s.sessions.ExpireActive(ctx, orderID, now); err != nil {
		log.Printf("order %s delivered but verification sessions were not expired: %v", orderID.Hex(), err)
	}
}
