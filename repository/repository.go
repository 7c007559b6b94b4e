// Package repository implements the service stores on MongoDB.
package repository

import (
	"food-delivery/services"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	_ services.Catalog           = (*CatalogRepo)(nil)
	_ services.MenuStore         = (*CatalogRepo)(nil)
	_ services.CartStore         = (*CartRepo)(nil)
	_ services.CartEditor        = (*CartRepo)(nil)
	_ services.CouponStore       = (*CouponRepo)(nil)
	_ services.CouponIssuer      = (*CouponRepo)(nil)
	_ services.OrderStore        = (*OrderRepo)(nil)
	_ services.VerificationStore = (*SessionRepo)(nil)
	_ services.AccountStore      = (*AccountRepo)(nil)
)

// Repositories bundles every collection-backed store of one database.
type Repositories struct {
	Catalog  *CatalogRepo
	Carts    *CartRepo
	Coupons  *CouponRepo
	Orders   *OrderRepo
	Sessions *SessionRepo
	Accounts *AccountRepo
}

func New(db *mongo.Database) *Repositories {
	return &Repositories{
		Catalog:  NewCatalogRepo(db),
		Carts:    NewCartRepo(db),
		Coupons:  NewCouponRepo(db),
		Orders:   NewOrderRepo(db),
		Sessions: NewSessionRepo(db),
		Accounts: NewAccountRepo(db),
	}
}
