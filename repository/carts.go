package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food-delivery/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CartRepo stores one document per cart line
type CartRepo struct {
	collection *mongo.Collection
}

func NewCartRepo(db *mongo.Database) *CartRepo {
	return &CartRepo{collection: db.Collection("cart_lines")}
}

func (r *CartRepo) ListLines(ctx context.Context, customerID primitive.ObjectID, lineIDs []primitive.ObjectID) ([]models.CartLine, error) {
	filter := bson.M{"customer_id": customerID}
	if lineIDs != nil {
		filter["_id"] = bson.M{"$in": lineIDs}
	}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "added_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("cannot list cart lines: %w", err)
	}
	defer cursor.Close(ctx)

	var result []models.CartLine
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode cart lines: %w", err)
	}
	return result, nil
}

// ClaimLines takes every listed line that is unclaimed or whose claim predates staleBefore.
// Each line is claimed by a single-document conditional update, so two checkouts never
// hold the same line.
func (r *CartRepo) ClaimLines(ctx context.Context, customerID primitive.ObjectID, lineIDs []primitive.ObjectID, token string, now, staleBefore time.Time) (int64, error) {
	filter := claimFilter(customerID, lineIDs, staleBefore)
	update := bson.M{"$set": bson.M{"checkout_token": token, "claimed_at": now}}
	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("cannot claim cart lines: %w", err)
	}
	return result.ModifiedCount, nil
}

func claimFilter(customerID primitive.ObjectID, lineIDs []primitive.ObjectID, staleBefore time.Time) bson.M {
	return bson.M{
		"_id":         bson.M{"$in": lineIDs},
		"customer_id": customerID,
		"$or": bson.A{
			bson.M{"checkout_token": bson.M{"$exists": false}},
			bson.M{"checkout_token": ""},
			bson.M{"claimed_at": bson.M{"$lte": staleBefore}},
		},
	}
}

func (r *CartRepo) ReleaseLines(ctx context.Context, customerID primitive.ObjectID, token string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"customer_id": customerID, "checkout_token": token},
		bson.M{"$unset": bson.M{"checkout_token": "", "claimed_at": ""}},
	)
	if err != nil {
		return fmt.Errorf("cannot release cart lines: %w", err)
	}
	return nil
}

func (r *CartRepo) DeleteClaimed(ctx context.Context, customerID primitive.ObjectID, token string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"customer_id": customerID, "checkout_token": token})
	if err != nil {
		return 0, fmt.Errorf("cannot delete cart lines: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *CartRepo) AddLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error) {
	var merged models.CartLine
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{
			"customer_id":    line.CustomerID,
			"menu_item_id":   line.MenuItemID,
			"checkout_token": bson.M{"$exists": false},
		},
		bson.M{"$inc": bson.M{"quantity": line.Quantity}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&merged)
	if err == nil {
		return &merged, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("cannot merge cart line: %w", err)
	}

	if line.ID.IsZero() {
		line.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, line); err != nil {
		return nil, fmt.Errorf("cannot add cart line: %w", err)
	}
	return line, nil
}

func (r *CartRepo) SetQuantity(ctx context.Context, customerID, lineID primitive.ObjectID, quantity int) (bool, error) {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": lineID, "customer_id": customerID},
		bson.M{"$set": bson.M{"quantity": quantity}},
	)
	if err != nil {
		return false, fmt.Errorf("cannot update cart line: %w", err)
	}
	return result.MatchedCount > 0, nil
}

func (r *CartRepo) RemoveLine(ctx context.Context, customerID, lineID primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": lineID, "customer_id": customerID})
	if err != nil {
		return false, fmt.Errorf("cannot remove cart line: %w", err)
	}
	return result.DeletedCount > 0, nil
}

func (r *CartRepo) Clear(ctx context.Context, customerID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"customer_id": customerID})
	if err != nil {
		return 0, fmt.Errorf("cannot clear cart: %w", err)
	}
	return result.DeletedCount, nil
}
