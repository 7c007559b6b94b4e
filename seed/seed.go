// Package seed loads the demo catalog.
package seed

import (
	"context"
	"fmt"
	"log"

	"food-delivery/models"
	"food-delivery/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type sampleRestaurant struct {
	restaurant models.Restaurant
	menu       []models.MenuItem
}

const unsplash = "https://images.unsplash.com/"

var samples = []sampleRestaurant{
	{
		restaurant: models.Restaurant{
			Name:        "Spice Route Kitchen",
			Cuisine:     "Indian",
			ImageURL:    unsplash + "photo-1563245372-f21724e3856d?auto=format&fit=crop&w=870&q=80",
			Rating:      4.7,
			DeliveryFee: 2.99,
			EtaMins:     35,
			Address:     "123 Curry Lane, Raleigh, NC",
		},
		menu: []models.MenuItem{
			{Name: "Butter Chicken", Description: "Creamy tomato sauce", Price: 12.99, ImageURL: "https://plus.unsplash.com/premium_photo-1661419883163-bb4df1c10109?auto=format&fit=crop&w=870&q=80"},
			{Name: "Paneer Tikka", Description: "Grilled cottage cheese", Price: 10.49, ImageURL: unsplash + "photo-1666001120694-3ebe8fd207be?auto=format&fit=crop&w=870&q=80"},
			{Name: "Garlic Naan", Description: "Fresh baked naan with garlic", Price: 3.49, ImageURL: unsplash + "photo-1697155406014-04dc649b0953?auto=format&fit=crop&w=870&q=80"},
		},
	},
	{
		restaurant: models.Restaurant{
			Name:        "Bella Italia",
			Cuisine:     "Italian",
			ImageURL:    unsplash + "photo-1498579150354-977475b7ea0b?auto=format&fit=crop&w=870&q=80",
			Rating:      4.6,
			DeliveryFee: 3.49,
			EtaMins:     30,
			Address:     "789 Olive Street, Cary, NC",
		},
		menu: []models.MenuItem{
			{Name: "Margherita Pizza", Description: "Tomato, mozzarella, basil", Price: 11.99, ImageURL: unsplash + "photo-1601924582971-c9e8eafc0d9b?auto=format&fit=crop&w=870&q=80"},
			{Name: "Pasta Alfredo", Description: "Creamy alfredo sauce", Price: 13.49, ImageURL: unsplash + "photo-1627308595229-7830a5c91f9f?auto=format&fit=crop&w=870&q=80"},
			{Name: "Tiramisu", Description: "Classic dessert", Price: 6.99, ImageURL: unsplash + "photo-1605478601423-3a4c34c7f9ea?auto=format&fit=crop&w=870&q=80"},
		},
	},
	{
		restaurant: models.Restaurant{
			Name:        "Sushi Zen",
			Cuisine:     "Japanese",
			ImageURL:    unsplash + "photo-1544025162-d76694265947?auto=format&fit=crop&w=870&q=80",
			Rating:      4.8,
			DeliveryFee: 1.99,
			EtaMins:     25,
			Address:     "101 Sakura Avenue, Durham, NC",
		},
		menu: []models.MenuItem{
			{Name: "California Roll", Description: "Crab, avocado, cucumber", Price: 8.99, ImageURL: unsplash + "photo-1553621042-f6e147245754?auto=format&fit=crop&w=870&q=80"},
			{Name: "Salmon Nigiri", Description: "Fresh salmon over rice", Price: 12.49, ImageURL: unsplash + "photo-1546069901-ba9599a7e63c?auto=format&fit=crop&w=870&q=80"},
			{Name: "Miso Soup", Description: "Traditional soup", Price: 2.99, ImageURL: unsplash + "photo-1627308595229-7830a5c91f9f?auto=format&fit=crop&w=870&q=80"},
		},
	},
}

// Sample adds the demo restaurants and menus unless the catalog already has restaurants.
// It reports whether anything was written.
func Sample(ctx context.Context, menu services.MenuStore) (bool, error) {
	existing, err := menu.ListRestaurants(ctx)
	if err != nil {
		return false, fmt.Errorf("cannot list restaurants: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	for _, sample := range samples {
		restaurant := sample.restaurant
		restaurant.ID = primitive.NewObjectID()
		if err := menu.CreateRestaurant(ctx, &restaurant); err != nil {
			return false, fmt.Errorf("cannot seed %s: %w", restaurant.Name, err)
		}
		for _, item := range sample.menu {
			item.ID = primitive.NewObjectID()
			item.RestaurantID = restaurant.ID
			if err := menu.CreateMenuItem(ctx, &item); err != nil {
				return false, fmt.Errorf("cannot seed %s: %w", item.Name, err)
			}
		}
	}
	log.Printf("Seeded %d sample restaurants", len(samples))
	return true, nil
}
