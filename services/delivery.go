package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"food-delivery/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeliveryDeps are the stores the delivery workflow works against.
type DeliveryDeps struct {
	Orders   OrderStore
	Sessions VerificationStore
	Drivers  DriverStore
	Events   Publisher
}

// DeliveryService handles driver assignment and the final delivery step.
type DeliveryService struct {
	orders   OrderStore
	sessions VerificationStore
	drivers  DriverStore
	events   Publisher

	// requireVerification makes a live verification session a precondition of delivery.
	requireVerification bool
	now                 func() time.Time
}

func NewDeliveryService(deps DeliveryDeps, requireVerification bool) *DeliveryService {
	return &DeliveryService{
		orders:              deps.Orders,
		sessions:            deps.Sessions,
		drivers:             deps.Drivers,
		events:              deps.Events,
		requireVerification: requireVerification,
		now:                 time.Now,
	}
}

// ListPendingForDriver returns the driver's orders that are neither delivered nor cancelled yet.
func (s *DeliveryService) ListPendingForDriver(ctx context.Context, who Identity) ([]models.Order, error) {
	if !who.is(models.ActorDriver) {
		return nil, ErrUnauthenticated
	}
	orders, err := s.orders.ListByDriver(ctx, who.ID, models.DriverActionable)
	if err != nil {
		return nil, unexpected("list driver orders", err)
	}
	return orders, nil
}

// ListAvailable returns unassigned orders an active driver could claim.
func (s *DeliveryService) ListAvailable(ctx context.Context, who Identity) ([]models.Order, error) {
	if _, err := s.activeDriver(ctx, who); err != nil {
		return nil, err
	}
	orders, err := s.orders.ListUnassigned(ctx, models.Claimable)
	if err != nil {
		return nil, unexpected("list unassigned orders", err)
	}
	return orders, nil
}

// ClaimOrder assigns an unassigned order to the driver.
func (s *DeliveryService) ClaimOrder(ctx context.Context, who Identity, orderID primitive.ObjectID) (*models.Order, error) {
	if _, err := s.activeDriver(ctx, who); err != nil {
		return nil, err
	}
	now := s.now()
	order, err := s.orders.AssignDriver(ctx, orderID, who.ID, models.Claimable, now)
	if err != nil {
		return nil, unexpected("assign driver", err)
	}
	if order != nil {
		publish(ctx, s.events, models.NewOrderEvent(models.EventOrderAssigned, order, now))
		return order, nil
	}

	current, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, unexpected("load order", err)
	}
	switch {
	case current == nil:
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	case current.AssignedTo(who.ID):
		return current, nil
	case current.DriverID != nil:
		return nil, fmt.Errorf("%w: order is already assigned to another driver", ErrInvalidTransition)
	default:
		return nil, fmt.Errorf("%w: order can no longer be claimed (status %s)", ErrInvalidTransition, current.Status)
	}
}

// StartVerification opens a verification session for an order the driver is delivering.
func (s *DeliveryService) StartVerification(ctx context.Context, who Identity, orderID primitive.ObjectID, difficulty models.Difficulty) (*models.VerificationSession, error) {
	order, err := s.driverOrder(ctx, who, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.StatusOutForDelivery {
		return nil, fmt.Errorf("%w: order is not out for delivery", ErrInvalidTransition)
	}

	now := s.now()
	session := &models.VerificationSession{
		ID:         primitive.NewObjectID(),
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Status:     models.SessionActive,
		Difficulty: difficulty,
		CreatedAt:  now,
		ExpiresAt:  now.Add(difficulty.Window()),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, unexpected("create verification session", err)
	}
	return session, nil
}

// MarkDelivered completes an order the driver has out for delivery. Live verification
// sessions for the order are expired as part of the transition.
func (s *DeliveryService) MarkDelivered(ctx context.Context, who Identity, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.driverOrder(ctx, who, orderID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(models.ActorDriver, order.Status, models.StatusDelivered) {
		return nil, fmt.Errorf("%w: order is not out for delivery", ErrInvalidTransition)
	}

	now := s.now()
	if s.requireVerification {
		live, err := s.sessions.FindLive(ctx, order.ID, now)
		if err != nil {
			return nil, unexpected("load verification sessions", err)
		}
		if len(live) == 0 {
			return nil, fmt.Errorf("%w: delivery verification has not been started", ErrInvalidTransition)
		}
	}

	delivered, err := s.orders.SetStatus(ctx, OrderFilter{
		ID:       order.ID,
		DriverID: who.ID,
		Status:   models.StatusOutForDelivery,
	}, models.StatusDelivered, now)
	if err != nil {
		return nil, unexpected("mark delivered", err)
	}
	if delivered == nil {
		return nil, fmt.Errorf("%w: order is not out for delivery", ErrInvalidTransition)
	}

	if _, err := s.sessions.ExpireActive(ctx, order.ID, now); err != nil {
		log.Printf("order %s delivered but verification sessions were not expired: %v", order.ID.Hex(), err)
	}
	publish(ctx, s.events, models.NewOrderEvent(models.EventOrderDelivered, delivered, now))
	return delivered, nil
}

// SetActive toggles whether the driver takes new orders.
func (s *DeliveryService) SetActive(ctx context.Context, who Identity, active bool) error {
	if !who.is(models.ActorDriver) {
		return ErrUnauthenticated
	}
	ok, err := s.drivers.SetDriverActive(ctx, who.ID, active)
	if err != nil {
		return unexpected("update driver", err)
	}
	if !ok {
		return fmt.Errorf("%w: driver", ErrNotFound)
	}
	return nil
}

func (s *DeliveryService) activeDriver(ctx context.Context, who Identity) (*models.Driver, error) {
	if !who.is(models.ActorDriver) {
		return nil, ErrUnauthenticated
	}
	driver, err := s.drivers.GetDriver(ctx, who.ID)
	if err != nil {
		return nil, unexpected("load driver", err)
	}
	if driver == nil {
		return nil, ErrUnauthenticated
	}
	if !driver.IsActive {
		return nil, fmt.Errorf("%w: driver is not active", ErrValidation)
	}
	return driver, nil
}

// driverOrder loads an order and checks it is assigned to the calling driver.
func (s *DeliveryService) driverOrder(ctx context.Context, who Identity, orderID primitive.ObjectID) (*models.Order, error) {
	if !who.is(models.ActorDriver) {
		return nil, ErrUnauthenticated
	}
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, unexpected("load order", err)
	}
	if order == nil || !order.AssignedTo(who.ID) {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}
	return order, nil
}
