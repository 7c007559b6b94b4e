package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartLine is a single menu item a customer has selected but not yet ordered.
// RestaurantID is copied from the menu item when the line is added and is only a hint;
// checkout always resolves the restaurant from the menu item itself.
type CartLine struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CustomerID    primitive.ObjectID `bson:"customer_id" json:"customer_id"`
	RestaurantID  primitive.ObjectID `bson:"restaurant_id,omitempty" json:"restaurant_id,omitempty"`
	MenuItemID    primitive.ObjectID `bson:"menu_item_id" json:"menu_item_id"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	CheckoutToken string             `bson:"checkout_token,omitempty" json:"-"`
	ClaimedAt     *time.Time         `bson:"claimed_at,omitempty" json:"-"`
	AddedAt       time.Time          `bson:"added_at" json:"added_at"`
}

// Claimed reports whether the line is held by a checkout that started after staleBefore.
func (l CartLine) Claimed(staleBefore time.Time) bool {
	return l.CheckoutToken != "" && l.ClaimedAt != nil && l.ClaimedAt.After(staleBefore)
}
