package repository

import (
	"context"
	"errors"
	"fmt"

	"food-delivery/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AccountRepo keeps the three login collections. Emails are stored lowercased by the caller
// and unique per collection.
type AccountRepo struct {
	customers *mongo.Collection
	admins    *mongo.Collection
	drivers   *mongo.Collection
}

func NewAccountRepo(db *mongo.Database) *AccountRepo {
	return &AccountRepo{
		customers: db.Collection("customers"),
		admins:    db.Collection("restaurant_admins"),
		drivers:   db.Collection("drivers"),
	}
}

func (r *AccountRepo) CreateCustomer(ctx context.Context, c *models.Customer) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	return insertAccount(ctx, r.customers, c, "customer")
}

func (r *AccountRepo) GetCustomer(ctx context.Context, id primitive.ObjectID) (*models.Customer, error) {
	var c models.Customer
	if err := findAccount(ctx, r.customers, bson.M{"_id": id}, &c, "customer"); err != nil {
		return nil, err
	}
	if c.ID.IsZero() {
		return nil, nil
	}
	return &c, nil
}

func (r *AccountRepo) FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var c models.Customer
	if err := findAccount(ctx, r.customers, bson.M{"email": email}, &c, "customer"); err != nil {
		return nil, err
	}
	if c.ID.IsZero() {
		return nil, nil
	}
	return &c, nil
}

func (r *AccountRepo) CreateRestaurantAdmin(ctx context.Context, a *models.RestaurantAdmin) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	return insertAccount(ctx, r.admins, a, "restaurant admin")
}

func (r *AccountRepo) FindRestaurantAdminByEmail(ctx context.Context, email string) (*models.RestaurantAdmin, error) {
	var a models.RestaurantAdmin
	if err := findAccount(ctx, r.admins, bson.M{"email": email}, &a, "restaurant admin"); err != nil {
		return nil, err
	}
	if a.ID.IsZero() {
		return nil, nil
	}
	return &a, nil
}

func (r *AccountRepo) CreateDriver(ctx context.Context, d *models.Driver) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	return insertAccount(ctx, r.drivers, d, "driver")
}

func (r *AccountRepo) GetDriver(ctx context.Context, id primitive.ObjectID) (*models.Driver, error) {
	var d models.Driver
	if err := findAccount(ctx, r.drivers, bson.M{"_id": id}, &d, "driver"); err != nil {
		return nil, err
	}
	if d.ID.IsZero() {
		return nil, nil
	}
	return &d, nil
}

func (r *AccountRepo) FindDriverByEmail(ctx context.Context, email string) (*models.Driver, error) {
	var d models.Driver
	if err := findAccount(ctx, r.drivers, bson.M{"email": email}, &d, "driver"); err != nil {
		return nil, err
	}
	if d.ID.IsZero() {
		return nil, nil
	}
	return &d, nil
}

func (r *AccountRepo) SetDriverActive(ctx context.Context, id primitive.ObjectID, active bool) (bool, error) {
	result, err := r.drivers.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_active": active}})
	if err != nil {
		return false, fmt.Errorf("cannot update driver: %w", err)
	}
	return result.MatchedCount > 0, nil
}

func insertAccount(ctx context.Context, collection *mongo.Collection, doc interface{}, kind string) error {
	if _, err := collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrDuplicate
		}
		return fmt.Errorf("cannot create %s: %w", kind, err)
	}
	return nil
}

// findAccount leaves out untouched when no document matches.
func findAccount(ctx context.Context, collection *mongo.Collection, filter bson.M, out interface{}, kind string) error {
	err := collection.FindOne(ctx, filter).Decode(out)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("cannot get %s: %w", kind, err)
	}
	return nil
}
