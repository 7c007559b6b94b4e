package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"food-delivery/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckoutRequest selects what to check out. An empty LineIDs means the whole cart.
type CheckoutRequest struct {
	LineIDs    []primitive.ObjectID
	CouponCode string
}

// CheckoutResult is the placed order and, when a coupon was honoured, a description of it.
type CheckoutResult struct {
	Order    *models.Order
	Discount string
}

// CheckoutDeps are the stores the checkout workflow works against.
type CheckoutDeps struct {
	Carts   CartStore
	Catalog Catalog
	Coupons CouponStore
	Orders  OrderStore
	Events  Publisher
}

// CheckoutService turns cart lines into orders.
type CheckoutService struct {
	carts    CartStore
	catalog  Catalog
	coupons  CouponStore
	orders   OrderStore
	events   Publisher
	claimTTL time.Duration
	now      func() time.Time
	newToken func() string
}

// NewCheckoutService wires a checkout workflow. claimTTL bounds how long an abandoned
// checkout keeps cart lines locked.
func NewCheckoutService(deps CheckoutDeps, claimTTL time.Duration) *CheckoutService {
	return &CheckoutService{
		carts:    deps.Carts,
		catalog:  deps.Catalog,
		coupons:  deps.Coupons,
		orders:   deps.Orders,
		events:   deps.Events,
		claimTTL: claimTTL,
		now:      time.Now,
		newToken: uuid.NewString,
	}
}

// Checkout places an order for the customer's cart, or the requested subset of it.
func (s *CheckoutService) Checkout(ctx context.Context, who Identity, req CheckoutRequest) (*CheckoutResult, error) {
	if !who.is(models.ActorCustomer) {
		return nil, ErrUnauthenticated
	}
	subset := len(req.LineIDs) > 0

	var filter []primitive.ObjectID
	if subset {
		filter = req.LineIDs
	}
	lines, err := s.carts.ListLines(ctx, who.ID, filter)
	if err != nil {
		return nil, unexpected("load cart", err)
	}
	if len(lines) == 0 {
		return nil, s.nothingToCheckout(ctx, who.ID, subset)
	}

	now := s.now()
	token := s.newToken()
	claimed, err := s.carts.ClaimLines(ctx, who.ID, cartLineIDs(lines), token, now, now.Add(-s.claimTTL))
	if err != nil {
		return nil, unexpected("claim cart lines", err)
	}
	if claimed < int64(len(lines)) {
		// Another checkout holds some of these lines and will produce the order.
		s.release(ctx, who.ID, token)
		if subset {
			return nil, ErrNoMatchingItems
		}
		return nil, ErrEmptyCart
	}

	order, coupon, err := s.buildOrder(ctx, who.ID, lines, req.CouponCode, now)
	if err != nil {
		s.release(ctx, who.ID, token)
		return nil, err
	}

	result := &CheckoutResult{Order: order}
	if coupon != nil {
		applied, err := s.coupons.Consume(ctx, coupon.Code, who.ID)
		if err != nil {
			s.release(ctx, who.ID, token)
			return nil, unexpected("consume coupon", err)
		}
		if applied {
			result.Discount = fmt.Sprintf("%d%% off with %s (-$%.2f)", coupon.DiscountPercent, coupon.Code, order.Discount)
		} else {
			// Taken by a concurrent checkout between lookup and consume.
			dropDiscount(order)
			coupon = nil
		}
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.release(ctx, who.ID, token)
		if coupon != nil {
			s.restoreCoupon(ctx, coupon.Code, who.ID)
		}
		return nil, unexpected("create order", err)
	}

	if _, err := s.carts.DeleteClaimed(ctx, who.ID, token); err != nil {
		log.Printf("order %s placed but cart lines were not cleared: %v", order.ID.Hex(), err)
	}

	publish(ctx, s.events, models.NewOrderEvent(models.EventOrderPlaced, order, now))
	return result, nil
}

func (s *CheckoutService) nothingToCheckout(ctx context.Context, customerID primitive.ObjectID, subset bool) error {
	if !subset {
		return ErrEmptyCart
	}
	all, err := s.carts.ListLines(ctx, customerID, nil)
	if err != nil {
		return unexpected("load cart", err)
	}
	if len(all) == 0 {
		return ErrEmptyCart
	}
	return ErrNoMatchingItems
}

// buildOrder prices the lines from the catalog and snapshots them into a new order.
func (s *CheckoutService) buildOrder(ctx context.Context, customerID primitive.ObjectID, lines []models.CartLine, code string, now time.Time) (*models.Order, *models.Coupon, error) {
	menuIDs := make([]primitive.ObjectID, 0, len(lines))
	for _, line := range lines {
		menuIDs = append(menuIDs, line.MenuItemID)
	}
	menuItems, err := s.catalog.FindMenuItemsByIDs(ctx, menuIDs)
	if err != nil {
		return nil, nil, unexpected("load menu items", err)
	}
	menu := make(map[primitive.ObjectID]models.MenuItem, len(menuItems))
	for _, item := range menuItems {
		menu[item.ID] = item
	}

	restaurants := map[primitive.ObjectID]struct{}{}
	var restaurantID primitive.ObjectID
	var missing []string
	for _, line := range lines {
		item, ok := menu[line.MenuItemID]
		if !ok {
			missing = append(missing, line.MenuItemID.Hex())
			continue
		}
		if item.RestaurantID.IsZero() {
			continue
		}
		restaurants[item.RestaurantID] = struct{}{}
		restaurantID = item.RestaurantID
	}
	switch {
	case len(restaurants) == 0:
		return nil, nil, ErrRestaurantUnresolvable
	case len(restaurants) > 1:
		return nil, nil, ErrMixedRestaurantCart
	case len(missing) > 0:
		return nil, nil, fmt.Errorf("%w: menu items no longer available: %s", ErrNotFound, strings.Join(missing, ", "))
	}

	restaurant, err := s.catalog.FindRestaurantByID(ctx, restaurantID)
	if err != nil {
		return nil, nil, unexpected("load restaurant", err)
	}
	if restaurant == nil {
		return nil, nil, ErrRestaurantNotFound
	}

	subtotal := decimal.Zero
	items := make([]models.LineItem, 0, len(lines))
	for _, line := range lines {
		item := menu[line.MenuItemID]
		subtotal = subtotal.Add(lineAmount(item.Price, line.Quantity))
		items = append(items, models.LineItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   line.Quantity,
		})
	}

	var coupon *models.Coupon
	discount := decimal.Zero
	if code = strings.ToUpper(strings.TrimSpace(code)); code != "" {
		coupon, err = s.coupons.FindRedeemable(ctx, code, customerID, now)
		if err != nil {
			return nil, nil, unexpected("load coupon", err)
		}
		if coupon != nil {
			discount = percentOf(subtotal, coupon.DiscountPercent)
		}
	}

	fee := decimal.NewFromFloat(restaurant.DeliveryFee)
	order := &models.Order{
		ID:            primitive.NewObjectID(),
		CustomerID:    customerID,
		RestaurantID:  restaurant.ID,
		Items:         items,
		Subtotal:      cents(subtotal),
		DeliveryFee:   cents(fee),
		Discount:      cents(discount),
		Total:         cents(orderTotal(subtotal, fee, discount)),
		Status:        models.StatusPlaced,
		PaymentStatus: models.PaymentPaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if coupon != nil {
		order.AppliedCouponCode = coupon.Code
	}
	return order, coupon, nil
}

// dropDiscount reprices an order whose coupon could not be consumed.
func dropDiscount(order *models.Order) {
	total := orderTotal(decimal.NewFromFloat(order.Subtotal), decimal.NewFromFloat(order.DeliveryFee), decimal.Zero)
	order.Discount = 0
	order.AppliedCouponCode = ""
	order.Total = cents(total)
}

func (s *CheckoutService) restoreCoupon(ctx context.Context, code string, customerID primitive.ObjectID) {
	if err := s.coupons.Restore(ctx, code, customerID); err != nil {
		log.Printf("failed to restore coupon %s after failed checkout: %v", code, err)
	}
}

func (s *CheckoutService) release(ctx context.Context, customerID primitive.ObjectID, token string) {
	if err := s.carts.ReleaseLines(ctx, customerID, token); err != nil {
		log.Printf("failed to release cart claim %s: %v", token, err)
	}
}

func publish(ctx context.Context, events Publisher, evt models.OrderEvent) {
	if events == nil {
		return
	}
	if err := events.PublishOrderEvent(ctx, evt); err != nil {
		log.Printf("failed to publish %s for order %s: %v", evt.Type, evt.OrderID.Hex(), err)
	}
}

func cartLineIDs(lines []models.CartLine) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ID)
	}
	return ids
}

func unexpected(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnexpected, op, err)
}
