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

// CouponRepo stores customers' coupons, unique on (customer_id, code)
type CouponRepo struct {
	collection *mongo.Collection
}

func NewCouponRepo(db *mongo.Database) *CouponRepo {
	return &CouponRepo{collection: db.Collection("coupons")}
}

func (r *CouponRepo) FindRedeemable(ctx context.Context, code string, customerID primitive.ObjectID, now time.Time) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.collection.FindOne(ctx, redeemableFilter(code, customerID, now)).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get coupon: %w", err)
	}
	return &coupon, nil
}

// Consume is an "update where applied=false"; only one caller can ever see true.
func (r *CouponRepo) Consume(ctx context.Context, code string, customerID primitive.ObjectID) (bool, error) {
	result, err := r.collection.UpdateOne(ctx, appliedFilter(code, customerID, false), bson.M{"$set": bson.M{"applied": true}})
	if err != nil {
		return false, fmt.Errorf("cannot consume coupon: %w", err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *CouponRepo) Restore(ctx context.Context, code string, customerID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, appliedFilter(code, customerID, true), bson.M{"$set": bson.M{"applied": false}})
	if err != nil {
		return fmt.Errorf("cannot restore coupon: %w", err)
	}
	return nil
}

func redeemableFilter(code string, customerID primitive.ObjectID, now time.Time) bson.M {
	filter := appliedFilter(code, customerID, false)
	filter["expires_at"] = bson.M{"$gt": now}
	return filter
}

func appliedFilter(code string, customerID primitive.ObjectID, applied bool) bson.M {
	return bson.M{"code": code, "customer_id": customerID, "applied": applied}
}

func (r *CouponRepo) Issue(ctx context.Context, coupon *models.Coupon) error {
	if coupon.ID.IsZero() {
		coupon.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, coupon); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrDuplicate
		}
		return fmt.Errorf("cannot issue coupon: %w", err)
	}
	return nil
}

func (r *CouponRepo) ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Coupon, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"customer_id": customerID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("cannot list coupons: %w", err)
	}
	defer cursor.Close(ctx)

	var result []models.Coupon
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode coupons: %w", err)
	}
	return result, nil
}
