// Package memstore keeps every store in process memory. It backs STORE=memory and the tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"food-delivery/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store groups one in-memory implementation per collection.
type Store struct {
	Catalog  *Catalog
	Carts    *Carts
	Coupons  *Coupons
	Orders   *Orders
	Sessions *Sessions
	Accounts *Accounts
}

func New() *Store {
	return &Store{
		Catalog:  NewCatalog(),
		Carts:    NewCarts(),
		Coupons:  NewCoupons(),
		Orders:   NewOrders(),
		Sessions: NewSessions(),
		Accounts: NewAccounts(),
	}
}

// Catalog holds restaurants and menu items.
type Catalog struct {
	mu          sync.RWMutex
	restaurants map[primitive.ObjectID]models.Restaurant
	items       map[primitive.ObjectID]models.MenuItem
}

func NewCatalog() *Catalog {
	return &Catalog{
		restaurants: make(map[primitive.ObjectID]models.Restaurant),
		items:       make(map[primitive.ObjectID]models.MenuItem),
	}
}

func (c *Catalog) FindMenuItemsByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.MenuItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var result []models.MenuItem
	seen := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		if item, ok := c.items[id]; ok && !seen[id] {
			seen[id] = true
			result = append(result, item)
		}
	}
	return result, nil
}

func (c *Catalog) FindRestaurantByID(_ context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.restaurants[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (c *Catalog) ListRestaurants(_ context.Context) ([]models.Restaurant, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]models.Restaurant, 0, len(c.restaurants))
	for _, r := range c.restaurants {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (c *Catalog) CreateRestaurant(_ context.Context, r *models.Restaurant) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	c.restaurants[r.ID] = *r
	return nil
}

func (c *Catalog) ListMenuItems(_ context.Context, restaurantID primitive.ObjectID) ([]models.MenuItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var result []models.MenuItem
	for _, item := range c.items {
		if item.RestaurantID == restaurantID {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (c *Catalog) CreateMenuItem(_ context.Context, item *models.MenuItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	c.items[item.ID] = *item
	return nil
}

func (c *Catalog) UpdateMenuItem(_ context.Context, item *models.MenuItem) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	existing, ok := c.items[item.ID]
	if !ok || existing.RestaurantID != item.RestaurantID {
		return false, nil
	}
	c.items[item.ID] = *item
	return true, nil
}

func (c *Catalog) DeleteMenuItem(_ context.Context, restaurantID, id primitive.ObjectID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	existing, ok := c.items[id]
	if !ok || existing.RestaurantID != restaurantID {
		return false, nil
	}
	delete(c.items, id)
	return true, nil
}

// Carts holds cart lines.
type Carts struct {
	mu    sync.Mutex
	lines map[primitive.ObjectID]models.CartLine
}

func NewCarts() *Carts {
	return &Carts{lines: make(map[primitive.ObjectID]models.CartLine)}
}

func (c *Carts) ListLines(_ context.Context, customerID primitive.ObjectID, lineIDs []primitive.ObjectID) ([]models.CartLine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var wanted map[primitive.ObjectID]bool
	if lineIDs != nil {
		wanted = make(map[primitive.ObjectID]bool, len(lineIDs))
		for _, id := range lineIDs {
			wanted[id] = true
		}
	}
	var result []models.CartLine
	for _, line := range c.lines {
		if line.CustomerID != customerID || (wanted != nil && !wanted[line.ID]) {
			continue
		}
		result = append(result, line)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AddedAt.Before(result[j].AddedAt) })
	return result, nil
}

func (c *Carts) ClaimLines(_ context.Context, customerID primitive.ObjectID, lineIDs []primitive.ObjectID, token string, now, staleBefore time.Time) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var claimed int64
	for _, id := range lineIDs {
		line, ok := c.lines[id]
		if !ok || line.CustomerID != customerID || line.Claimed(staleBefore) {
			continue
		}
		at := now
		line.CheckoutToken = token
		line.ClaimedAt = &at
		c.lines[id] = line
		claimed++
	}
	return claimed, nil
}

func (c *Carts) ReleaseLines(_ context.Context, customerID primitive.ObjectID, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, line := range c.lines {
		if line.CustomerID == customerID && line.CheckoutToken == token {
			line.CheckoutToken = ""
			line.ClaimedAt = nil
			c.lines[id] = line
		}
	}
	return nil
}

func (c *Carts) DeleteClaimed(_ context.Context, customerID primitive.ObjectID, token string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var deleted int64
	for id, line := range c.lines {
		if line.CustomerID == customerID && line.CheckoutToken == token {
			delete(c.lines, id)
			deleted++
		}
	}
	return deleted, nil
}

func (c *Carts) AddLine(_ context.Context, line *models.CartLine) (*models.CartLine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, existing := range c.lines {
		if existing.CustomerID == line.CustomerID && existing.MenuItemID == line.MenuItemID && existing.CheckoutToken == "" {
			existing.Quantity += line.Quantity
			c.lines[id] = existing
			return &existing, nil
		}
	}
	if line.ID.IsZero() {
		line.ID = primitive.NewObjectID()
	}
	c.lines[line.ID] = *line
	stored := *line
	return &stored, nil
}

func (c *Carts) SetQuantity(_ context.Context, customerID, lineID primitive.ObjectID, quantity int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	line, ok := c.lines[lineID]
	if !ok || line.CustomerID != customerID {
		return false, nil
	}
	line.Quantity = quantity
	c.lines[lineID] = line
	return true, nil
}

func (c *Carts) RemoveLine(_ context.Context, customerID, lineID primitive.ObjectID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	line, ok := c.lines[lineID]
	if !ok || line.CustomerID != customerID {
		return false, nil
	}
	delete(c.lines, lineID)
	return true, nil
}

func (c *Carts) Clear(_ context.Context, customerID primitive.ObjectID) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var deleted int64
	for id, line := range c.lines {
		if line.CustomerID == customerID {
			delete(c.lines, id)
			deleted++
		}
	}
	return deleted, nil
}

// Coupons holds discount codes keyed by customer and code.
type Coupons struct {
	mu      sync.Mutex
	coupons map[string]models.Coupon
}

func NewCoupons() *Coupons {
	return &Coupons{coupons: make(map[string]models.Coupon)}
}

func couponKey(code string, customerID primitive.ObjectID) string {
	return customerID.Hex() + "/" + strings.ToUpper(code)
}

func (c *Coupons) FindRedeemable(_ context.Context, code string, customerID primitive.ObjectID, now time.Time) (*models.Coupon, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	coupon, ok := c.coupons[couponKey(code, customerID)]
	if !ok || !coupon.Redeemable(now) {
		return nil, nil
	}
	return &coupon, nil
}

func (c *Coupons) Consume(_ context.Context, code string, customerID primitive.ObjectID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := couponKey(code, customerID)
	coupon, ok := c.coupons[key]
	if !ok || coupon.Applied {
		return false, nil
	}
	coupon.Applied = true
	c.coupons[key] = coupon
	return true, nil
}

func (c *Coupons) Restore(_ context.Context, code string, customerID primitive.ObjectID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := couponKey(code, customerID)
	if coupon, ok := c.coupons[key]; ok {
		coupon.Applied = false
		c.coupons[key] = coupon
	}
	return nil
}

func (c *Coupons) Issue(_ context.Context, coupon *models.Coupon) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := couponKey(coupon.Code, coupon.CustomerID)
	if _, ok := c.coupons[key]; ok {
		return models.ErrDuplicate
	}
	if coupon.ID.IsZero() {
		coupon.ID = primitive.NewObjectID()
	}
	c.coupons[key] = *coupon
	return nil
}

func (c *Coupons) ListByCustomer(_ context.Context, customerID primitive.ObjectID) ([]models.Coupon, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var result []models.Coupon
	for _, coupon := range c.coupons {
		if coupon.CustomerID == customerID {
			result = append(result, coupon)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}
