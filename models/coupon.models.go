package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coupon is a single-use percentage discount owned by one customer
type Coupon struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code            string             `bson:"code" json:"code"`
	CustomerID      primitive.ObjectID `bson:"customer_id" json:"customer_id"`
	DiscountPercent int                `bson:"discount_percent" json:"discount_percent"`
	ExpiresAt       time.Time          `bson:"expires_at" json:"expires_at"`
	Applied         bool               `bson:"applied" json:"applied"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}

// Redeemable reports whether the coupon can still be used at now.
func (c *Coupon) Redeemable(now time.Time) bool {
	return !c.Applied && c.ExpiresAt.After(now)
}
