package services

import (
	"context"
	"time"

	"food-delivery/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Catalog resolves menu items and restaurants.
type Catalog interface {
	FindMenuItemsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.MenuItem, error)
	FindRestaurantByID(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error)
}

// CartStore holds customers' pending cart lines.
type CartStore interface {
	// ListLines returns the customer's lines; a non-nil lineIDs restricts the result to those ids.
	ListLines(ctx context.Context, customerID primitive.ObjectID, lineIDs []primitive.ObjectID) ([]models.CartLine, error)
	// ClaimLines marks the given lines with token unless another checkout holds a claim
	// newer than staleBefore. It returns how many lines were claimed.
	ClaimLines(ctx context.Context, customerID primitive.ObjectID, lineIDs []primitive.ObjectID, token string, now, staleBefore time.Time) (int64, error)
	ReleaseLines(ctx context.Context, customerID primitive.ObjectID, token string) error
	DeleteClaimed(ctx context.Context, customerID primitive.ObjectID, token string) (int64, error)
}

// CouponStore holds single-use discount codes.
type CouponStore interface {
	FindRedeemable(ctx context.Context, code string, customerID primitive.ObjectID, now time.Time) (*models.Coupon, error)
	// Consume flips applied to true only if it is still false and reports whether it did.
	Consume(ctx context.Context, code string, customerID primitive.ObjectID) (bool, error)
	// Restore hands a consumed coupon back after the order it paid for was not placed.
	Restore(ctx context.Context, code string, customerID primitive.ObjectID) error
}

// OrderFilter scopes a conditional order update. Zero fields are not matched on.
type OrderFilter struct {
	ID           primitive.ObjectID
	CustomerID   primitive.ObjectID
	RestaurantID primitive.ObjectID
	DriverID     primitive.ObjectID
	Status       models.Status
}

// OrderStore persists orders.
type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]models.Order, error)
	ListByDriver(ctx context.Context, driverID primitive.ObjectID, statuses []models.Status) ([]models.Order, error)
	ListUnassigned(ctx context.Context, statuses []models.Status) ([]models.Order, error)
	// SetStatus moves the order matching filter to status and returns the updated order,
	// or nil when nothing matched.
	SetStatus(ctx context.Context, filter OrderFilter, status models.Status, now time.Time) (*models.Order, error)
	// AssignDriver sets the driver on an unassigned order whose status is in statuses.
	AssignDriver(ctx context.Context, id, driverID primitive.ObjectID, statuses []models.Status, now time.Time) (*models.Order, error)
}

// VerificationStore holds delivery verification sessions.
type VerificationStore interface {
	Create(ctx context.Context, s *models.VerificationSession) error
	FindLive(ctx context.Context, orderID primitive.ObjectID, now time.Time) ([]models.VerificationSession, error)
	ExpireActive(ctx context.Context, orderID primitive.ObjectID, now time.Time) (int64, error)
}

// DriverStore is the part of the driver accounts the delivery workflow needs.
type DriverStore interface {
	GetDriver(ctx context.Context, id primitive.ObjectID) (*models.Driver, error)
	SetDriverActive(ctx context.Context, id primitive.ObjectID, active bool) (bool, error)
}

// Publisher emits order lifecycle events.
type Publisher interface {
	PublishOrderEvent(ctx context.Context, evt models.OrderEvent) error
}

// CartEditor is the customer-facing side of the cart.
type CartEditor interface {
	// AddLine stores the line, merging its quantity into an unclaimed line for the same menu item.
	AddLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error)
	SetQuantity(ctx context.Context, customerID, lineID primitive.ObjectID, quantity int) (bool, error)
	RemoveLine(ctx context.Context, customerID, lineID primitive.ObjectID) (bool, error)
	Clear(ctx context.Context, customerID primitive.ObjectID) (int64, error)
}

// CouponIssuer creates and lists coupons.
type CouponIssuer interface {
	Issue(ctx context.Context, c *models.Coupon) error
	ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]models.Coupon, error)
}

// MenuStore is the restaurant-managed side of the catalog.
type MenuStore interface {
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	CreateRestaurant(ctx context.Context, r *models.Restaurant) error
	ListMenuItems(ctx context.Context, restaurantID primitive.ObjectID) ([]models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
	// UpdateMenuItem replaces the editable fields of an item owned by item.RestaurantID.
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) (bool, error)
	DeleteMenuItem(ctx context.Context, restaurantID, id primitive.ObjectID) (bool, error)
}

// AccountStore holds customer, restaurant admin and driver logins.
type AccountStore interface {
	DriverStore
	CreateCustomer(ctx context.Context, c *models.Customer) error
	GetCustomer(ctx context.Context, id primitive.ObjectID) (*models.Customer, error)
	FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	CreateRestaurantAdmin(ctx context.Context, a *models.RestaurantAdmin) error
	FindRestaurantAdminByEmail(ctx context.Context, email string) (*models.RestaurantAdmin, error)
	CreateDriver(ctx context.Context, d *models.Driver) error
	FindDriverByEmail(ctx context.Context, email string) (*models.Driver, error)
}
