package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderAssigned      = "order.assigned"
	EventOrderDelivered     = "order.delivered"
)

// OrderEvent is published whenever an order is created or moves
type OrderEvent struct {
	Type         string              `json:"type"`
	OrderID      primitive.ObjectID  `json:"order_id"`
	CustomerID   primitive.ObjectID  `json:"customer_id"`
	RestaurantID primitive.ObjectID  `json:"restaurant_id"`
	DriverID     *primitive.ObjectID `json:"driver_id,omitempty"`
	Status       Status              `json:"status"`
	Total        float64             `json:"total"`
	OccurredAt   time.Time           `json:"occurred_at"`
}

// NewOrderEvent snapshots an order into an event of the given type.
func NewOrderEvent(eventType string, o *Order, at time.Time) OrderEvent {
	return OrderEvent{
		Type:         eventType,
		OrderID:      o.ID,
		CustomerID:   o.CustomerID,
		RestaurantID: o.RestaurantID,
		DriverID:     o.DriverID,
		Status:       o.Status,
		Total:        o.Total,
		OccurredAt:   at,
	}
}
