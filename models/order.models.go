package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LineItem is the frozen copy of a menu item taken at checkout.
type LineItem struct {
	MenuItemID primitive.ObjectID `bson:"menu_item_id" json:"menu_item_id"`
	Name       string             `bson:"name" json:"name"`
	Price      float64            `bson:"price" json:"price"`
	Quantity   int                `bson:"quantity" json:"quantity"`
}

// Order represents a customer's order from a single restaurant
type Order struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	CustomerID        primitive.ObjectID  `bson:"customer_id" json:"customer_id"`
	RestaurantID      primitive.ObjectID  `bson:"restaurant_id" json:"restaurant_id"`
	Items             []LineItem          `bson:"items" json:"items"`
	Subtotal          float64             `bson:"subtotal" json:"subtotal"`
	DeliveryFee       float64             `bson:"delivery_fee" json:"delivery_fee"`
	Discount          float64             `bson:"discount" json:"discount"`
	AppliedCouponCode string              `bson:"applied_coupon_code,omitempty" json:"applied_coupon_code,omitempty"`
	Total             float64             `bson:"total" json:"total"`
	Status            Status              `bson:"status" json:"status"`
	PaymentStatus     PaymentStatus       `bson:"payment_status" json:"payment_status"`
	DriverID          *primitive.ObjectID `bson:"driver_id,omitempty" json:"driver_id,omitempty"`
	CreatedAt         time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time           `bson:"updated_at" json:"updated_at"`
	DeliveredAt       *time.Time          `bson:"delivered_at,omitempty" json:"delivered_at,omitempty"`
}

// AssignedTo reports whether the order is assigned to the given driver.
func (o *Order) AssignedTo(driverID primitive.ObjectID) bool {
	return o.DriverID != nil && *o.DriverID == driverID
}
