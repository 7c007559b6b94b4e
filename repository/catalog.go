package repository

import (
	"context"
	"errors"
	"fmt"

	"food-delivery/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CatalogRepo stores restaurants and their menu items
type CatalogRepo struct {
	restaurants *mongo.Collection
	menuItems   *mongo.Collection
}

func NewCatalogRepo(db *mongo.Database) *CatalogRepo {
	return &CatalogRepo{
		restaurants: db.Collection("restaurants"),
		menuItems:   db.Collection("menu_items"),
	}
}

func (r *CatalogRepo) FindMenuItemsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.menuItems.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("cannot find menu items: %w", err)
	}
	defer cursor.Close(ctx)

	var result []models.MenuItem
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode menu items: %w", err)
	}
	return result, nil
}

func (r *CatalogRepo) FindRestaurantByID(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.restaurants.FindOne(ctx, bson.M{"_id": id}).Decode(&restaurant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get restaurant: %w", err)
	}
	return &restaurant, nil
}

func (r *CatalogRepo) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	cursor, err := r.restaurants.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("cannot list restaurants: %w", err)
	}
	defer cursor.Close(ctx)

	var result []models.Restaurant
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode restaurants: %w", err)
	}
	return result, nil
}

func (r *CatalogRepo) CreateRestaurant(ctx context.Context, restaurant *models.Restaurant) error {
	if restaurant.ID.IsZero() {
		restaurant.ID = primitive.NewObjectID()
	}
	if _, err := r.restaurants.InsertOne(ctx, restaurant); err != nil {
		return fmt.Errorf("cannot create restaurant: %w", err)
	}
	return nil
}

func (r *CatalogRepo) ListMenuItems(ctx context.Context, restaurantID primitive.ObjectID) ([]models.MenuItem, error) {
	cursor, err := r.menuItems.Find(ctx, bson.M{"restaurant_id": restaurantID}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("cannot list menu items: %w", err)
	}
	defer cursor.Close(ctx)

	var result []models.MenuItem
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("cannot decode menu items: %w", err)
	}
	return result, nil
}

func (r *CatalogRepo) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	if _, err := r.menuItems.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("cannot create menu item: %w", err)
	}
	return nil
}

func (r *CatalogRepo) UpdateMenuItem(ctx context.Context, item *models.MenuItem) (bool, error) {
	result, err := r.menuItems.UpdateOne(ctx,
		bson.M{"_id": item.ID, "restaurant_id": item.RestaurantID},
		bson.M{"$set": bson.M{
			"name":        item.Name,
			"price":       item.Price,
			"description": item.Description,
			"image_url":   item.ImageURL,
		}},
	)
	if err != nil {
		return false, fmt.Errorf("cannot update menu item: %w", err)
	}
	return result.MatchedCount > 0, nil
}

func (r *CatalogRepo) DeleteMenuItem(ctx context.Context, restaurantID, id primitive.ObjectID) (bool, error) {
	result, err := r.menuItems.DeleteOne(ctx, bson.M{"_id": id, "restaurant_id": restaurantID})
	if err != nil {
		return false, fmt.Errorf("cannot delete menu item: %w", err)
	}
	return result.DeletedCount > 0, nil
}
