package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food-delivery/models"
	"food-delivery/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderRepo persists orders. Status changes are conditional updates on the current document.
type OrderRepo struct {
	collection *mongo.Collection
}

func NewOrderRepo(db *mongo.Database) *OrderRepo {
	return &OrderRepo{collection: db.Collection("orders")}
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

func (r *OrderRepo) Create(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("cannot create order: %w", err)
	}
	return nil
}

func (r *OrderRepo) Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get order: %w", err)
	}
	return &order, nil
}

func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Order, error) {
	return r.list(ctx, bson.M{"customer_id": customerID})
}

func (r *OrderRepo) ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]models.Order, error) {
	return r.list(ctx, bson.M{"restaurant_id": restaurantID})
}

func (r *OrderRepo) ListByDriver(ctx context.Context, driverID primitive.ObjectID, statuses []models.Status) ([]models.Order, error) {
	return r.list(ctx, bson.M{"driver_id": driverID, "status": bson.M{"$in": statuses}})
}

// ListUnassigned matches orders whose driver_id is missing or null.
func (r *OrderRepo) ListUnassigned(ctx context.Context, statuses []models.Status) ([]models.Order, error) {
	return r.list(ctx, bson.M{"driver_id": nil, "status": bson.M{"$in": statuses}})
}

func (r *OrderRepo) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cursor, err := r.collection.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("cannot list orders: %w", err)
	}
	defer cursor.Close(ctx)

	result := []models.Order{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode orders: %w", err)
	}
	return result, nil
}

func (r *OrderRepo) SetStatus(ctx context.Context, filter services.OrderFilter, status models.Status, now time.Time) (*models.Order, error) {
	set := bson.M{"status": status, "updated_at": now}
	if status == models.StatusDelivered {
		set["delivered_at"] = now
	}
	return r.findAndUpdate(ctx, orderFilter(filter), bson.M{"$set": set})
}

func (r *OrderRepo) AssignDriver(ctx context.Context, id, driverID primitive.ObjectID, statuses []models.Status, now time.Time) (*models.Order, error) {
	return r.findAndUpdate(ctx, unassignedFilter(id, statuses), bson.M{"$set": bson.M{"driver_id": driverID, "updated_at": now}})
}

func unassignedFilter(id primitive.ObjectID, statuses []models.Status) bson.M {
	return bson.M{"_id": id, "driver_id": nil, "status": bson.M{"$in": statuses}}
}

func (r *OrderRepo) findAndUpdate(ctx context.Context, filter, update bson.M) (*models.Order, error) {
	var order models.Order
	err := r.collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot update order: %w", err)
	}
	return &order, nil
}

func orderFilter(f services.OrderFilter) bson.M {
	filter := bson.M{"_id": f.ID}
	if !f.CustomerID.IsZero() {
		filter["customer_id"] = f.CustomerID
	}
	if !f.RestaurantID.IsZero() {
		filter["restaurant_id"] = f.RestaurantID
	}
	if !f.DriverID.IsZero() {
		filter["driver_id"] = f.DriverID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return filter
}
