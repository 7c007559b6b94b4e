// routes/routes.go
package routes

import (
	"net/http"

	"food-delivery/controllers"
	"food-delivery/middleware"
	"food-delivery/models"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Controllers groups every handler set the router serves.
type Controllers struct {
	Customers   *controllers.CustomerController
	Restaurants *controllers.RestaurantController
	Drivers     *controllers.DriverController
	Catalog     *controllers.CatalogController
	Cart        *controllers.CartController
	Orders      *controllers.OrderController
	Coupons     *controllers.CouponController
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, c Controllers) {
	router.Use(middleware.PrometheusMiddleware)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Public routes
	router.HandleFunc("/customer-auth/register", c.Customers.Register).Methods("POST")
	router.HandleFunc("/customer-auth/login", c.Customers.Login).Methods("POST")
	router.HandleFunc("/restaurant-auth/register", c.Restaurants.Register).Methods("POST")
	router.HandleFunc("/restaurant-auth/login", c.Restaurants.Login).Methods("POST")
	router.HandleFunc("/driver/register", c.Drivers.Register).Methods("POST")
	router.HandleFunc("/driver/login", c.Drivers.Login).Methods("POST")

	router.HandleFunc("/restaurants", c.Catalog.GetRestaurants).Methods("GET")
	router.HandleFunc("/restaurants/{id}", c.Catalog.GetRestaurantByID).Methods("GET")
	router.HandleFunc("/restaurants/{id}/menu", c.Catalog.GetMenu).Methods("GET")

	// Customer routes
	customer := router.NewRoute().Subrouter()
	customer.Use(middleware.AuthMiddleware, middleware.RequireRole(models.ActorCustomer))
	customer.HandleFunc("/customer-auth/me", c.Customers.Me).Methods("GET")

	customer.HandleFunc("/cart", c.Cart.GetCart).Methods("GET")
	customer.HandleFunc("/cart", c.Cart.AddToCart).Methods("POST")
	customer.HandleFunc("/cart", c.Cart.ClearCart).Methods("DELETE")
	customer.HandleFunc("/cart/{lineId}", c.Cart.UpdateLine).Methods("PATCH")
	customer.HandleFunc("/cart/{lineId}", c.Cart.RemoveFromCart).Methods("DELETE")

	customer.HandleFunc("/orders", c.Orders.GetOrders).Methods("GET")
	customer.HandleFunc("/orders", c.Orders.CreateOrder).Methods("POST")
	customer.HandleFunc("/orders/{id}", c.Orders.GetOrder).Methods("GET")
	customer.HandleFunc("/orders/{id}", c.Orders.CancelOrder).Methods("DELETE")
	customer.HandleFunc("/payments/mock-checkout", c.Orders.MockCheckout).Methods("POST")

	customer.HandleFunc("/coupons", c.Coupons.GetCoupons).Methods("GET")
	customer.HandleFunc("/coupons", c.Coupons.IssueCoupon).Methods("POST")

	// Restaurant admin routes
	restaurant := router.NewRoute().Subrouter()
	restaurant.Use(middleware.AuthMiddleware, middleware.RequireRole(models.ActorRestaurant))
	restaurant.HandleFunc("/restaurant-auth/me", c.Restaurants.Me).Methods("GET")
	restaurant.HandleFunc("/restaurant/dashboard", c.Restaurants.Dashboard).Methods("GET")
	restaurant.HandleFunc("/restaurant/menu", c.Restaurants.CreateMenuItem).Methods("POST")
	restaurant.HandleFunc("/restaurant/menu/{id}", c.Restaurants.UpdateMenuItem).Methods("PUT")
	restaurant.HandleFunc("/restaurant/menu/{id}", c.Restaurants.DeleteMenuItem).Methods("DELETE")
	restaurant.HandleFunc("/restaurant/orders/{id}/status", c.Restaurants.UpdateOrderStatus).Methods("PUT", "PATCH")

	// Driver routes
	driver := router.NewRoute().Subrouter()
	driver.Use(middleware.AuthMiddleware, middleware.RequireRole(models.ActorDriver))
	driver.HandleFunc("/driver/me", c.Drivers.Me).Methods("GET")
	driver.HandleFunc("/driver/active", c.Drivers.SetActive).Methods("PATCH")
	driver.HandleFunc("/driver/orders/pending", c.Drivers.PendingOrders).Methods("GET")
	driver.HandleFunc("/driver/orders/available", c.Drivers.AvailableOrders).Methods("GET")
	driver.HandleFunc("/driver/orders/delivered/{id}", c.Drivers.MarkDelivered).Methods("POST")
	driver.HandleFunc("/driver/orders/{id}/claim", c.Drivers.ClaimOrder).Methods("POST")
	driver.HandleFunc("/driver/orders/{id}/verification", c.Drivers.StartVerification).Methods("POST")
}
