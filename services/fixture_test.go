package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"food-delivery/memstore"
	"food-delivery/models"
	"food-delivery/services"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.OrderEvent
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, evt models.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var types []string
	for _, evt := range p.events {
		types = append(types, evt.Type)
	}
	return types
}

type fixture struct {
	store    *memstore.Store
	events   *recordingPublisher
	checkout *services.CheckoutService
	delivery *services.DeliveryService
	orders   *services.OrderService
	customer services.Identity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	events := &recordingPublisher{}
	return &fixture{
		store:  store,
		events: events,
		checkout: services.NewCheckoutService(services.CheckoutDeps{
			Carts:   store.Carts,
			Catalog: store.Catalog,
			Coupons: store.Coupons,
			Orders:  store.Orders,
			Events:  events,
		}, 2*time.Minute),
		delivery: services.NewDeliveryService(services.DeliveryDeps{
			Orders:   store.Orders,
			Sessions: store.Sessions,
			Drivers:  store.Accounts,
			Events:   events,
		}, false),
		orders:   services.NewOrderService(store.Orders, store.Sessions, events),
		customer: services.Identity{ID: primitive.NewObjectID(), Role: models.ActorCustomer},
	}
}

func (f *fixture) restaurant(t *testing.T, fee float64) *models.Restaurant {
	t.Helper()
	r := &models.Restaurant{Name: "Testaurant", Cuisine: "Italian", DeliveryFee: fee}
	require.NoError(t, f.store.Catalog.CreateRestaurant(context.Background(), r))
	return r
}

func (f *fixture) menuItem(t *testing.T, restaurantID primitive.ObjectID, name string, price float64) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{RestaurantID: restaurantID, Name: name, Price: price}
	require.NoError(t, f.store.Catalog.CreateMenuItem(context.Background(), item))
	return item
}

func (f *fixture) addToCart(t *testing.T, who services.Identity, item *models.MenuItem, qty int) *models.CartLine {
	t.Helper()
	line, err := f.store.Carts.AddLine(context.Background(), &models.CartLine{
		ID:           primitive.NewObjectID(),
		CustomerID:   who.ID,
		RestaurantID: item.RestaurantID,
		MenuItemID:   item.ID,
		Quantity:     qty,
		AddedAt:      time.Now(),
	})
	require.NoError(t, err)
	return line
}

func (f *fixture) coupon(t *testing.T, who services.Identity, code string, percent int, expires time.Time) {
	t.Helper()
	require.NoError(t, f.store.Coupons.Issue(context.Background(), &models.Coupon{
		Code:            code,
		CustomerID:      who.ID,
		DiscountPercent: percent,
		ExpiresAt:       expires,
		CreatedAt:       time.Now(),
	}))
}

func (f *fixture) cartSize(t *testing.T, who services.Identity) int {
	t.Helper()
	lines, err := f.store.Carts.ListLines(context.Background(), who.ID, nil)
	require.NoError(t, err)
	return len(lines)
}

func (f *fixture) driver(t *testing.T, active bool) services.Identity {
	t.Helper()
	d := &models.Driver{FullName: "Pending Driver", Email: primitive.NewObjectID().Hex() + "@t.com", IsActive: active}
	require.NoError(t, f.store.Accounts.CreateDriver(context.Background(), d))
	return services.Identity{ID: d.ID, Role: models.ActorDriver}
}

func (f *fixture) order(t *testing.T, restaurantID primitive.ObjectID, status models.Status, driver *primitive.ObjectID) *models.Order {
	t.Helper()
	o := models.Order{
		ID:           primitive.NewObjectID(),
		CustomerID:   f.customer.ID,
		RestaurantID: restaurantID,
		Status:       status,
		DriverID:     driver,
		CreatedAt:    time.Now(),
	}
	f.store.Orders.Put(o)
	return &o
}
