package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"food-delivery/memstore"
	"food-delivery/models"
	"food-delivery/utils"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type api struct {
	t      *testing.T
	router *mux.Router
	mem    *memstore.Store
}

func newAPI(t *testing.T) *api {
	t.Helper()
	utils.JwtKey = []byte("routes-test-secret")
	mem := memstore.New()
	router := NewRouter(Stores{
		Catalog:  mem.Catalog,
		Carts:    mem.Carts,
		Coupons:  mem.Coupons,
		Orders:   mem.Orders,
		Sessions: mem.Sessions,
		Accounts: mem.Accounts,
	}, Options{ClaimTTL: time.Minute})
	return &api{t: t, router: router, mem: mem}
}

func (a *api) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func (a *api) token(rec *httptest.ResponseRecorder) string {
	a.t.Helper()
	var body struct {
		Token string `json:"token"`
	}
	decode(a.t, rec, &body)
	require.NotEmpty(a.t, body.Token)
	return body.Token
}

func (a *api) registerCustomer(email string) string {
	rec := a.do("POST", "/customer-auth/register", "", map[string]string{
		"name": "Ada", "email": email, "password": "secret", "address": "1 Main St",
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return a.token(rec)
}

func (a *api) registerRestaurant(email string) (string, string) {
	rec := a.do("POST", "/restaurant-auth/register", "", map[string]string{
		"name": "Bella Italia", "cuisine": "Italian", "email": email, "password": "secret", "address": "789 Olive St",
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	var body struct {
		Token      string            `json:"token"`
		Restaurant models.Restaurant `json:"restaurant"`
	}
	decode(a.t, rec, &body)
	return body.Token, body.Restaurant.ID.Hex()
}

func (a *api) registerDriver(email string) string {
	rec := a.do("POST", "/driver/register", "", map[string]string{
		"fullName": "Kim Lee", "address": "2 Side St", "vehicleType": "bike",
		"vehicleNumber": "B-42", "licenseNumber": "L-1", "email": email, "password": "secret",
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return a.token(rec)
}

func (a *api) addMenuItem(restaurantToken, name string, price float64) string {
	rec := a.do("POST", "/restaurant/menu", restaurantToken, map[string]interface{}{"name": name, "price": price})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	var body struct {
		Item models.MenuItem `json:"item"`
	}
	decode(a.t, rec, &body)
	return body.Item.ID.Hex()
}

func TestOrderLifecycle(t *testing.T) {
	a := newAPI(t)
	restaurantToken, restaurantID := a.registerRestaurant("owner@bella.test")
	itemID := a.addMenuItem(restaurantToken, "Margherita", 10.99)
	customerToken := a.registerCustomer("ada@example.com")
	driverToken := a.registerDriver("kim@example.com")

	rec := a.do("GET", "/restaurants/"+restaurantID+"/menu", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var menu []models.MenuItem
	decode(t, rec, &menu)
	require.Len(t, menu, 1)

	rec = a.do("POST", "/cart", customerToken, map[string]interface{}{"menuItemId": itemID, "quantity": 2})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do("POST", "/orders", customerToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order models.Order
	decode(t, rec, &order)
	assert.Equal(t, 21.98, order.Subtotal)
	assert.Equal(t, 21.98, order.Total)
	assert.Equal(t, models.StatusPlaced, order.Status)
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)
	orderPath := order.ID.Hex()

	rec = a.do("GET", "/cart", customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cart struct {
		Lines []json.RawMessage `json:"lines"`
	}
	decode(t, rec, &cart)
	assert.Empty(t, cart.Lines)

	rec = a.do("PUT", "/restaurant/orders/"+orderPath+"/status", restaurantToken, map[string]string{"status": "ready_for_pickup"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do("GET", "/driver/orders/available", driverToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var available []models.Order
	decode(t, rec, &available)
	require.Len(t, available, 1)

	rec = a.do("POST", "/driver/orders/"+orderPath+"/claim", driverToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do("POST", "/driver/orders/delivered/"+orderPath, driverToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do("PATCH", "/restaurant/orders/"+orderPath+"/status", restaurantToken, map[string]string{"status": "out_for_delivery"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do("GET", "/driver/orders/pending", driverToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pending []models.Order
	decode(t, rec, &pending)
	require.Len(t, pending, 1)

	rec = a.do("POST", "/driver/orders/"+orderPath+"/verification", driverToken, map[string]string{"difficulty": "medium"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do("POST", "/driver/orders/delivered/"+orderPath, driverToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var delivered struct {
		Order models.Order `json:"order"`
	}
	decode(t, rec, &delivered)
	assert.Equal(t, models.StatusDelivered, delivered.Order.Status)

	for _, s := range a.mem.Sessions.ByOrder(order.ID) {
		assert.Equal(t, models.SessionExpired, s.Status)
	}

	rec = a.do("GET", "/orders/"+orderPath, customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &order)
	assert.Equal(t, models.StatusDelivered, order.Status)
}

func TestCouponCheckout(t *testing.T) {
	a := newAPI(t)
	restaurantToken, _ := a.registerRestaurant("owner@bella.test")
	itemID := a.addMenuItem(restaurantToken, "Tiramisu", 20)
	customerToken := a.registerCustomer("ada@example.com")

	rec := a.do("POST", "/coupons", customerToken, map[string]interface{}{"code": "save25", "discountPercent": 25})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do("POST", "/cart", customerToken, map[string]interface{}{"menuItemId": itemID})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = a.do("POST", "/orders", customerToken, map[string]string{"couponCode": "SAVE25"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var placed struct {
		models.Order
		DiscountApplied string `json:"discount_applied"`
	}
	decode(t, rec, &placed)
	assert.Equal(t, 5.0, placed.Discount)
	assert.Equal(t, 15.0, placed.Total)
	assert.Contains(t, placed.DiscountApplied, "25% off with SAVE25")

	rec = a.do("GET", "/coupons", customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var coupons []models.Coupon
	decode(t, rec, &coupons)
	require.Len(t, coupons, 1)
	assert.True(t, coupons[0].Applied)
}

func TestMockCheckout(t *testing.T) {
	a := newAPI(t)
	customerToken := a.registerCustomer("ada@example.com")

	rec := a.do("POST", "/payments/mock-checkout", customerToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	restaurantToken, _ := a.registerRestaurant("owner@bella.test")
	itemID := a.addMenuItem(restaurantToken, "Pasta", 13.49)
	a.do("POST", "/cart", customerToken, map[string]interface{}{"menuItemId": itemID, "quantity": 1})

	rec = a.do("POST", "/payments/mock-checkout", customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var receipt models.PaymentReceipt
	decode(t, rec, &receipt)
	assert.True(t, receipt.OK)
	assert.Equal(t, 13.49, receipt.Amount)
	assert.Equal(t, models.PaymentPaid, receipt.Status)
	assert.False(t, receipt.OrderID.IsZero())
}

func TestCustomerCancel(t *testing.T) {
	a := newAPI(t)
	restaurantToken, _ := a.registerRestaurant("owner@bella.test")
	itemID := a.addMenuItem(restaurantToken, "Pasta", 13.49)
	customerToken := a.registerCustomer("ada@example.com")
	a.do("POST", "/cart", customerToken, map[string]interface{}{"menuItemId": itemID})

	rec := a.do("POST", "/orders", customerToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var order models.Order
	decode(t, rec, &order)

	rec = a.do("DELETE", "/orders/"+order.ID.Hex(), customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do("PUT", "/restaurant/orders/"+order.ID.Hex()+"/status", restaurantToken, map[string]string{"status": "preparing"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthErrors(t *testing.T) {
	a := newAPI(t)
	customerToken := a.registerCustomer("ada@example.com")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   interface{}
		code   int
	}{
		{"no token", "GET", "/orders", "", nil, http.StatusUnauthorized},
		{"bad token", "GET", "/cart", "nope", nil, http.StatusUnauthorized},
		{"wrong role", "GET", "/driver/orders/pending", customerToken, nil, http.StatusForbidden},
		{"duplicate email", "POST", "/customer-auth/register", "", map[string]string{"name": "A", "email": "ADA@example.com", "password": "x"}, http.StatusConflict},
		{"missing fields", "POST", "/driver/register", "", map[string]string{"email": "kim@example.com"}, http.StatusBadRequest},
		{"wrong password", "POST", "/customer-auth/login", "", map[string]string{"email": "ada@example.com", "password": "wrong"}, http.StatusUnauthorized},
		{"unknown restaurant", "GET", "/restaurants/000000000000000000000000", "", nil, http.StatusNotFound},
		{"malformed id", "GET", "/orders/xyz", customerToken, nil, http.StatusBadRequest},
		{"health", "GET", "/health", "", nil, http.StatusOK},
		{"metrics", "GET", "/metrics", "", nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}

	rec := a.do("POST", "/customer-auth/login", "", map[string]string{"email": "Ada@Example.com", "password": "secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	token := a.token(rec)
	rec = a.do("GET", "/customer-auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me map[string]interface{}
	decode(t, rec, &me)
	assert.Equal(t, "ada@example.com", me["email"])
	assert.NotContains(t, me, "password_hash")
}

func TestRestaurantMenuManagement(t *testing.T) {
	a := newAPI(t)
	ownerToken, restaurantID := a.registerRestaurant("owner@bella.test")
	otherToken, _ := a.registerRestaurant("owner@sushi.test")
	itemID := a.addMenuItem(ownerToken, "Pasta", 13.49)

	rec := a.do("PUT", "/restaurant/menu/"+itemID, otherToken, map[string]interface{}{"price": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do("PUT", "/restaurant/menu/"+itemID, ownerToken, map[string]interface{}{"price": 14.99})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated struct {
		Item models.MenuItem `json:"item"`
	}
	decode(t, rec, &updated)
	assert.Equal(t, "Pasta", updated.Item.Name)
	assert.Equal(t, 14.99, updated.Item.Price)

	rec = a.do("POST", "/restaurant/menu", ownerToken, map[string]interface{}{"name": "Free lunch", "price": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do("GET", "/restaurant/dashboard", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dashboard struct {
		RestaurantName string            `json:"restaurantName"`
		MenuItems      []models.MenuItem `json:"menuItems"`
		Orders         []models.Order    `json:"orders"`
	}
	decode(t, rec, &dashboard)
	assert.Equal(t, "Bella Italia", dashboard.RestaurantName)
	assert.Len(t, dashboard.MenuItems, 1)
	assert.Empty(t, dashboard.Orders)

	rec = a.do("DELETE", "/restaurant/menu/"+itemID, ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = a.do("DELETE", "/restaurant/menu/"+itemID, ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do("GET", "/restaurants/"+restaurantID+"/menu", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestDriverAvailability(t *testing.T) {
	a := newAPI(t)
	driverToken := a.registerDriver("kim@example.com")

	rec := a.do("PATCH", "/driver/active", driverToken, map[string]bool{"isActive": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = a.do("GET", "/driver/orders/available", driverToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do("GET", "/driver/me", driverToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me models.Driver
	decode(t, rec, &me)
	assert.False(t, me.IsActive)
	assert.Equal(t, "Kim Lee", me.FullName)
}

// staleCatalog serves menu items at an outdated price, like a cache entry that outlived a write.
type staleCatalog struct {
	*memstore.Catalog
}

func (c staleCatalog) FindMenuItemsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.MenuItem, error) {
	items, err := c.Catalog.FindMenuItemsByIDs(ctx, ids)
	for i := range items {
		items[i].Price = 1
	}
	return items, err
}

func TestCheckoutPricesFromPricingCatalog(t *testing.T) {
	utils.JwtKey = []byte("routes-test-secret")
	mem := memstore.New()
	a := &api{t: t, mem: mem, router: NewRouter(Stores{
		Catalog:  staleCatalog{Catalog: mem.Catalog},
		Pricing:  mem.Catalog,
		Carts:    mem.Carts,
		Coupons:  mem.Coupons,
		Orders:   mem.Orders,
		Sessions: mem.Sessions,
		Accounts: mem.Accounts,
	}, Options{ClaimTTL: time.Minute})}

	restaurantToken, _ := a.registerRestaurant("owner@pricing.test")
	itemID := a.addMenuItem(restaurantToken, "Lasagna", 14.5)
	customerToken := a.registerCustomer("pricing@example.com")

	rec := a.do("POST", "/cart", customerToken, map[string]interface{}{"menuItemId": itemID, "quantity": 2})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do("POST", "/orders", customerToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order models.Order
	decode(t, rec, &order)
	assert.Equal(t, 29.0, order.Subtotal)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 14.5, order.Items[0].Price)
}
