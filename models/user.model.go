package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is a registered customer account
type Customer struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Address      string             `bson:"address" json:"address"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// RestaurantAdmin is the login that manages one restaurant
type RestaurantAdmin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	RestaurantID primitive.ObjectID `bson:"restaurant_id" json:"restaurant_id"`
}

// Driver is a delivery driver account
type Driver struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FullName      string             `bson:"full_name" json:"fullName"`
	Address       string             `bson:"address" json:"address"`
	VehicleType   string             `bson:"vehicle_type" json:"vehicleType"`
	VehicleNumber string             `bson:"vehicle_number" json:"vehicleNumber"`
	LicenseNumber string             `bson:"license_number" json:"licenseNumber"`
	IsActive      bool               `bson:"is_active" json:"isActive"`
	Email         string             `bson:"email" json:"email"`
	PasswordHash  string             `bson:"password_hash" json:"-"`
}
