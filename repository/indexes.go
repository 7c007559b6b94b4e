package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the stores rely on for uniqueness and lookups.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		"coupons": {
			{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "code", Value: 1}}, Options: unique},
		},
		"customers":         {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		"restaurant_admins": {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		"drivers":           {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		"cart_lines": {
			{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "checkout_token", Value: 1}}},
		},
		"menu_items": {{Keys: bson.D{{Key: "restaurant_id", Value: 1}}}},
		"orders": {
			{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "driver_id", Value: 1}, {Key: "status", Value: 1}}},
		},
		"verification_sessions": {{Keys: bson.D{{Key: "order_id", Value: 1}, {Key: "status", Value: 1}}}},
	}

	for name, specs := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, specs); err != nil {
			return fmt.Errorf("cannot create indexes on %s: %w", name, err)
		}
	}
	return nil
}
