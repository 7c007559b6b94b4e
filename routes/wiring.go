package routes

import (
	"time"

	"food-delivery/controllers"
	"food-delivery/services"
	"food-delivery/utils"

	"github.com/gorilla/mux"
)

// CartRepository is both sides of the cart store.
type CartRepository interface {
	services.CartStore
	services.CartEditor
}

// CouponRepository redeems and issues coupons.
type CouponRepository interface {
	services.CouponStore
	services.CouponIssuer
}

// Stores is one backend's implementation of every collection.
type Stores struct {
	Catalog  controllers.CatalogBackend
	Carts    CartRepository
	Coupons  CouponRepository
	Orders   services.OrderStore
	Sessions services.VerificationStore
	Accounts services.AccountStore

	// Pricing is what checkout prices against. Catalog is used when it is nil.
	Pricing services.Catalog
}

type Options struct {
	Events              services.Publisher
	Email               *utils.EmailService
	ClaimTTL            time.Duration
	RequireVerification bool
}

// NewRouter builds the services and controllers over stores and registers every route.
func NewRouter(stores Stores, opts Options) *mux.Router {
	pricing := stores.Pricing
	if pricing == nil {
		pricing = stores.Catalog
	}
	checkout := services.NewCheckoutService(services.CheckoutDeps{
		Carts:   stores.Carts,
		Catalog: pricing,
		Coupons: stores.Coupons,
		Orders:  stores.Orders,
		Events:  opts.Events,
	}, opts.ClaimTTL)
	orders := services.NewOrderService(stores.Orders, stores.Sessions, opts.Events)
	delivery := services.NewDeliveryService(services.DeliveryDeps{
		Orders:   stores.Orders,
		Sessions: stores.Sessions,
		Drivers:  stores.Accounts,
		Events:   opts.Events,
	}, opts.RequireVerification)

	router := mux.NewRouter()
	RegisterRoutes(router, Controllers{
		Customers:   controllers.NewCustomerController(stores.Accounts),
		Restaurants: controllers.NewRestaurantController(stores.Accounts, stores.Catalog, orders),
		Drivers:     controllers.NewDriverController(stores.Accounts, delivery),
		Catalog:     controllers.NewCatalogController(stores.Catalog),
		Cart:        controllers.NewCartController(services.NewCartService(stores.Carts, stores.Carts, stores.Catalog)),
		Orders:      controllers.NewOrderController(checkout, orders, stores.Accounts, opts.Email),
		Coupons:     controllers.NewCouponController(services.NewCouponService(stores.Coupons)),
	})
	return router
}
