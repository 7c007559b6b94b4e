package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Restaurant is a listing customers can order from
type Restaurant struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Cuisine     string             `bson:"cuisine" json:"cuisine"`
	ImageURL    string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	Rating      float64            `bson:"rating" json:"rating"`
	DeliveryFee float64            `bson:"delivery_fee" json:"deliveryFee"`
	EtaMins     int                `bson:"eta_mins" json:"etaMins"`
	Address     string             `bson:"address" json:"address"`
}

// MenuItem is the authoritative price and name of a dish
type MenuItem struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RestaurantID primitive.ObjectID `bson:"restaurant_id" json:"restaurantId"`
	Name         string             `bson:"name" json:"name"`
	Price        float64            `bson:"price" json:"price"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL     string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
}
