package controllers

import (
	"net/http"

	"food-delivery/middleware"
	"food-delivery/services"
	"food-delivery/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartController handles cart-related requests
type CartController struct {
	Carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{Carts: carts}
}

// AddToCart adds a menu item to the customer's cart
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MenuItemID string `json:"menuItemId"`
		Quantity   *int   `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, "add to cart", err)
		return
	}
	menuItemID, err := primitive.ObjectIDFromHex(req.MenuItemID)
	if err != nil {
		utils.WriteError(w, "add to cart", requireFields("menuItemId", ""))
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	line, err := cc.Carts.Add(ctx, middleware.Identity(r), menuItemID, quantity)
	if err != nil {
		utils.WriteError(w, "add to cart", err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, line)
}

// GetCart retrieves the customer's cart priced from the current menu
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	view, err := cc.Carts.View(ctx, middleware.Identity(r))
	if err != nil {
		utils.WriteError(w, "get cart", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, view)
}

// UpdateLine sets the quantity of one cart line
func (cc *CartController) UpdateLine(w http.ResponseWriter, r *http.Request) {
	lineID, err := pathID(r, "lineId")
	if err != nil {
		utils.WriteError(w, "update cart line", err)
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, "update cart line", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := cc.Carts.SetQuantity(ctx, middleware.Identity(r), lineID, req.Quantity); err != nil {
		utils.WriteError(w, "update cart line", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// RemoveFromCart removes one line from the customer's cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	lineID, err := pathID(r, "lineId")
	if err != nil {
		utils.WriteError(w, "remove cart line", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := cc.Carts.Remove(ctx, middleware.Identity(r), lineID); err != nil {
		utils.WriteError(w, "remove cart line", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	if err := cc.Carts.Clear(ctx, middleware.Identity(r)); err != nil {
		utils.WriteError(w, "clear cart", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
