package memstore

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"food-delivery/models"
	"food-delivery/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Orders holds placed orders.
type Orders struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]models.Order
}

func NewOrders() *Orders {
	return &Orders{orders: make(map[primitive.ObjectID]models.Order)}
}

func (o *Orders) Create(_ context.Context, order *models.Order) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if _, ok := o.orders[order.ID]; ok {
		return models.ErrDuplicate
	}
	o.orders[order.ID] = detach(*order)
	return nil
}

func (o *Orders) Get(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	order, ok := o.orders[id]
	if !ok {
		return nil, nil
	}
	order = detach(order)
	return &order, nil
}

// Put stores an order as is, replacing any order with the same id.
func (o *Orders) Put(order models.Order) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.orders[order.ID] = detach(order)
}

func (o *Orders) ListByCustomer(_ context.Context, customerID primitive.ObjectID) ([]models.Order, error) {
	return o.list(func(order models.Order) bool { return order.CustomerID == customerID }), nil
}

func (o *Orders) ListByRestaurant(_ context.Context, restaurantID primitive.ObjectID) ([]models.Order, error) {
	return o.list(func(order models.Order) bool { return order.RestaurantID == restaurantID }), nil
}

func (o *Orders) ListByDriver(_ context.Context, driverID primitive.ObjectID, statuses []models.Status) ([]models.Order, error) {
	return o.list(func(order models.Order) bool {
		return order.AssignedTo(driverID) && order.Status.In(statuses)
	}), nil
}

func (o *Orders) ListUnassigned(_ context.Context, statuses []models.Status) ([]models.Order, error) {
	return o.list(func(order models.Order) bool {
		return order.DriverID == nil && order.Status.In(statuses)
	}), nil
}

func (o *Orders) SetStatus(_ context.Context, filter services.OrderFilter, status models.Status, now time.Time) (*models.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	order, ok := o.orders[filter.ID]
	if !ok || !matches(order, filter) {
		return nil, nil
	}
	order.Status = status
	order.UpdatedAt = now
	if status == models.StatusDelivered {
		at := now
		order.DeliveredAt = &at
	}
	o.orders[order.ID] = order
	order = detach(order)
	return &order, nil
}

func (o *Orders) AssignDriver(_ context.Context, id, driverID primitive.ObjectID, statuses []models.Status, now time.Time) (*models.Order, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	order, ok := o.orders[id]
	if !ok || order.DriverID != nil || !order.Status.In(statuses) {
		return nil, nil
	}
	driver := driverID
	order.DriverID = &driver
	order.UpdatedAt = now
	o.orders[id] = order
	order = detach(order)
	return &order, nil
}

func (o *Orders) list(keep func(models.Order) bool) []models.Order {
	o.mu.Lock()
	defer o.mu.Unlock()
	result := []models.Order{}
	for _, order := range o.orders {
		if keep(order) {
			result = append(result, detach(order))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

// detach copies the parts of an order that would otherwise alias the stored one.
func detach(order models.Order) models.Order {
	order.Items = slices.Clone(order.Items)
	if order.DriverID != nil {
		driver := *order.DriverID
		order.DriverID = &driver
	}
	if order.DeliveredAt != nil {
		at := *order.DeliveredAt
		order.DeliveredAt = &at
	}
	return order
}

func matches(order models.Order, f services.OrderFilter) bool {
	switch {
	case !f.CustomerID.IsZero() && order.CustomerID != f.CustomerID:
		return false
	case !f.RestaurantID.IsZero() && order.RestaurantID != f.RestaurantID:
		return false
	case !f.DriverID.IsZero() && !order.AssignedTo(f.DriverID):
		return false
	case f.Status != "" && order.Status != f.Status:
		return false
	}
	return true
}

// Sessions holds delivery verification sessions.
type Sessions struct {
	mu       sync.Mutex
	sessions map[primitive.ObjectID]models.VerificationSession
}

func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[primitive.ObjectID]models.VerificationSession)}
}

func (s *Sessions) Create(_ context.Context, session *models.VerificationSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session.ID.IsZero() {
		session.ID = primitive.NewObjectID()
	}
	s.sessions[session.ID] = *session
	return nil
}

func (s *Sessions) FindLive(_ context.Context, orderID primitive.ObjectID, now time.Time) ([]models.VerificationSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.VerificationSession
	for _, session := range s.sessions {
		if session.OrderID == orderID && session.Live(now) {
			result = append(result, session)
		}
	}
	return result, nil
}

// ByOrder returns every session recorded for an order.
func (s *Sessions) ByOrder(orderID primitive.ObjectID) []models.VerificationSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.VerificationSession
	for _, session := range s.sessions {
		if session.OrderID == orderID {
			result = append(result, session)
		}
	}
	return result
}

func (s *Sessions) ExpireActive(_ context.Context, orderID primitive.ObjectID, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var expired int64
	for id, session := range s.sessions {
		if session.OrderID == orderID && session.Status == models.SessionActive {
			session.Status = models.SessionExpired
			session.ExpiresAt = now
			s.sessions[id] = session
			expired++
		}
	}
	return expired, nil
}
