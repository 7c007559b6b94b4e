package services

import (
	"context"
	"fmt"
	"time"

	"food-delivery/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartView is a customer's cart priced from the current menu.
type CartView struct {
	Lines    []CartViewLine `json:"lines"`
	Subtotal float64        `json:"subtotal"`
}

type CartViewLine struct {
	models.CartLine
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CartService edits customers' carts.
type CartService struct {
	lines   CartStore
	editor  CartEditor
	catalog Catalog
	now     func() time.Time
}

func NewCartService(lines CartStore, editor CartEditor, catalog Catalog) *CartService {
	return &CartService{lines: lines, editor: editor, catalog: catalog, now: time.Now}
}

// Add puts quantity of a menu item in the customer's cart.
func (s *CartService) Add(ctx context.Context, who Identity, menuItemID primitive.ObjectID, quantity int) (*models.CartLine, error) {
	if !who.is(models.ActorCustomer) {
		return nil, ErrUnauthenticated
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	items, err := s.catalog.FindMenuItemsByIDs(ctx, []primitive.ObjectID{menuItemID})
	if err != nil {
		return nil, unexpected("load menu item", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: menu item", ErrNotFound)
	}

	line, err := s.editor.AddLine(ctx, &models.CartLine{
		ID:           primitive.NewObjectID(),
		CustomerID:   who.ID,
		RestaurantID: items[0].RestaurantID,
		MenuItemID:   menuItemID,
		Quantity:     quantity,
		AddedAt:      s.now(),
	})
	if err != nil {
		return nil, unexpected("add cart line", err)
	}
	return line, nil
}

// View returns the cart with current names and prices.
func (s *CartService) View(ctx context.Context, who Identity) (*CartView, error) {
	if !who.is(models.ActorCustomer) {
		return nil, ErrUnauthenticated
	}
	lines, err := s.lines.ListLines(ctx, who.ID, nil)
	if err != nil {
		return nil, unexpected("load cart", err)
	}
	ids := make([]primitive.ObjectID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.MenuItemID)
	}
	items, err := s.catalog.FindMenuItemsByIDs(ctx, ids)
	if err != nil {
		return nil, unexpected("load menu items", err)
	}
	menu := make(map[primitive.ObjectID]models.MenuItem, len(items))
	for _, item := range items {
		menu[item.ID] = item
	}

	view := &CartView{Lines: make([]CartViewLine, 0, len(lines))}
	subtotal := decimal.Zero
	for _, line := range lines {
		item, ok := menu[line.MenuItemID]
		if !ok {
			item.Name = "Unavailable item"
		}
		subtotal = subtotal.Add(lineAmount(item.Price, line.Quantity))
		view.Lines = append(view.Lines, CartViewLine{CartLine: line, Name: item.Name, Price: item.Price})
	}
	view.Subtotal = cents(subtotal)
	return view, nil
}

// SetQuantity changes the quantity of one of the customer's lines.
func (s *CartService) SetQuantity(ctx context.Context, who Identity, lineID primitive.ObjectID, quantity int) error {
	if !who.is(models.ActorCustomer) {
		return ErrUnauthenticated
	}
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	ok, err := s.editor.SetQuantity(ctx, who.ID, lineID, quantity)
	if err != nil {
		return unexpected("update cart line", err)
	}
	if !ok {
		return fmt.Errorf("%w: cart item", ErrNotFound)
	}
	return nil
}

// Remove deletes one of the customer's lines.
func (s *CartService) Remove(ctx context.Context, who Identity, lineID primitive.ObjectID) error {
	if !who.is(models.ActorCustomer) {
		return ErrUnauthenticated
	}
	ok, err := s.editor.RemoveLine(ctx, who.ID, lineID)
	if err != nil {
		return unexpected("remove cart line", err)
	}
	if !ok {
		return fmt.Errorf("%w: cart item", ErrNotFound)
	}
	return nil
}

// Clear empties the customer's cart.
func (s *CartService) Clear(ctx context.Context, who Identity) error {
	if !who.is(models.ActorCustomer) {
		return ErrUnauthenticated
	}
	if _, err := s.editor.Clear(ctx, who.ID); err != nil {
		return unexpected("clear cart", err)
	}
	return nil
}
