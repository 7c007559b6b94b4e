package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"food-delivery/middleware"
	"food-delivery/models"
	"food-delivery/services"
	"food-delivery/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RestaurantController serves restaurant admins: their login, menu and incoming orders.
// Restaurant tokens carry the restaurant id as subject.
type RestaurantController struct {
	Accounts services.AccountStore
	Catalog  CatalogBackend
	Orders   *services.OrderService
}

func NewRestaurantController(accounts services.AccountStore, catalog CatalogBackend, orders *services.OrderService) *RestaurantController {
	return &RestaurantController{Accounts: accounts, Catalog: catalog, Orders: orders}
}

type restaurantRegistration struct {
	Name     string `json:"name"`
	Cuisine  string `json:"cuisine"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

// Register creates the restaurant together with its admin login
func (rc *RestaurantController) Register(w http.ResponseWriter, r *http.Request) {
	var req restaurantRegistration
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, "register restaurant", err)
		return
	}
	req.Email = normalizeEmail(req.Email)
	if err := requireFields("name", req.Name, "cuisine", req.Cuisine, "email", req.Email, "password", req.Password, "address", req.Address); err != nil {
		utils.WriteError(w, "register restaurant", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	existing, err := rc.Accounts.FindRestaurantAdminByEmail(ctx, req.Email)
	if err != nil {
		utils.WriteError(w, "register restaurant", storeFailure("find restaurant admin", err))
		return
	}
	if existing != nil {
		utils.WriteError(w, "register restaurant", duplicateEmail())
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		utils.WriteError(w, "register restaurant", err)
		return
	}

	restaurant := &models.Restaurant{
		ID:      primitive.NewObjectID(),
		Name:    req.Name,
		Cuisine: req.Cuisine,
		Rating:  4.5,
		EtaMins: 30,
		Address: req.Address,
	}
	if err := rc.Catalog.CreateRestaurant(ctx, restaurant); err != nil {
		utils.WriteError(w, "register restaurant", storeFailure("create restaurant", err))
		return
	}
	admin := &models.RestaurantAdmin{Email: req.Email, PasswordHash: hash, RestaurantID: restaurant.ID}
	if err := rc.Accounts.CreateRestaurantAdmin(ctx, admin); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			err = duplicateEmail()
		} else {
			err = storeFailure("create restaurant admin", err)
		}
		utils.WriteError(w, "register restaurant", err)
		return
	}

	token, err := utils.GenerateJWT(restaurant.ID, admin.Email, models.ActorRestaurant)
	if err != nil {
		utils.WriteError(w, "register restaurant", storeFailure("sign token", err))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"ok":         true,
		"message":    fmt.Sprintf("Welcome %s! Registration successful.", restaurant.Name),
		"token":      token,
		"restaurant": restaurant,
		"admin":      map[string]string{"email": admin.Email},
	})
}

// Login issues a restaurant token
func (rc *RestaurantController) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := decodeJSON(r, &creds); err != nil {
		utils.WriteError(w, "login restaurant", err)
		return
	}
	if err := creds.validate(); err != nil {
		utils.WriteError(w, "login restaurant", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	admin, err := rc.Accounts.FindRestaurantAdminByEmail(ctx, creds.Email)
	if err != nil {
		utils.WriteError(w, "login restaurant", storeFailure("find restaurant admin", err))
		return
	}
	if admin == nil || !passwordMatches(admin.PasswordHash, creds.Password) {
		utils.WriteError(w, "login restaurant", errInvalidCredentials)
		return
	}
	restaurant, err := rc.Catalog.FindRestaurantByID(ctx, admin.RestaurantID)
	if err != nil {
		utils.WriteError(w, "login restaurant", storeFailure("get restaurant", err))
		return
	}
	if restaurant == nil {
		utils.WriteError(w, "login restaurant", services.ErrRestaurantNotFound)
		return
	}

	token, err := utils.GenerateJWT(restaurant.ID, admin.Email, models.ActorRestaurant)
	if err != nil {
		utils.WriteError(w, "login restaurant", storeFailure("sign token", err))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":         true,
		"message":    fmt.Sprintf("Welcome %s!", restaurant.Name),
		"token":      token,
		"restaurant": restaurant,
	})
}

// Me returns the logged-in restaurant
func (rc *RestaurantController) Me(w http.ResponseWriter, r *http.Request) {
	restaurant, err := rc.restaurant(r)
	if err != nil {
		utils.WriteError(w, "restaurant profile", err)
		return
	}
	claims, _ := middleware.ClaimsFrom(r)
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":           true,
		"message":      fmt.Sprintf("Welcome %s!", restaurant.Name),
		"restaurantId": restaurant.ID,
		"restaurant":   restaurant,
		"email":        claims.Email,
	})
}

// Dashboard returns the restaurant with its menu and orders, newest first
func (rc *RestaurantController) Dashboard(w http.ResponseWriter, r *http.Request) {
	restaurant, err := rc.restaurant(r)
	if err != nil {
		utils.WriteError(w, "restaurant dashboard", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	menu, err := rc.Catalog.ListMenuItems(ctx, restaurant.ID)
	if err != nil {
		utils.WriteError(w, "restaurant dashboard", storeFailure("list menu", err))
		return
	}
	orders, err := rc.Orders.ListForRestaurant(ctx, middleware.Identity(r))
	if err != nil {
		utils.WriteError(w, "restaurant dashboard", err)
		return
	}
	if menu == nil {
		menu = []models.MenuItem{}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":             true,
		"restaurantName": restaurant.Name,
		"menuItems":      menu,
		"orders":         orders,
	})
}

type menuItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
}

func (m menuItemRequest) applyTo(item *models.MenuItem) error {
	if m.Name != nil {
		item.Name = *m.Name
	}
	if m.Description != nil {
		item.Description = *m.Description
	}
	if m.Price != nil {
		item.Price = *m.Price
	}
	if m.ImageURL != nil {
		item.ImageURL = *m.ImageURL
	}
	if err := requireFields("name", item.Name); err != nil {
		return err
	}
	if item.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", services.ErrValidation)
	}
	return nil
}

// CreateMenuItem adds a dish to the restaurant's menu
func (rc *RestaurantController) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	who := middleware.Identity(r)
	if who.ID.IsZero() || who.Role != models.ActorRestaurant {
		utils.WriteError(w, "create menu item", services.ErrUnauthenticated)
		return
	}
	var req menuItemRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, "create menu item", err)
		return
	}
	if req.Price == nil {
		utils.WriteError(w, "create menu item", requireFields("price", ""))
		return
	}
	item := &models.MenuItem{ID: primitive.NewObjectID(), RestaurantID: who.ID}
	if err := req.applyTo(item); err != nil {
		utils.WriteError(w, "create menu item", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := rc.Catalog.CreateMenuItem(ctx, item); err != nil {
		utils.WriteError(w, "create menu item", storeFailure("create menu item", err))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{"ok": true, "item": item})
}

// UpdateMenuItem changes the fields present in the body
func (rc *RestaurantController) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	who := middleware.Identity(r)
	if who.ID.IsZero() || who.Role != models.ActorRestaurant {
		utils.WriteError(w, "update menu item", services.ErrUnauthenticated)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, "update menu item", err)
		return
	}
	var req menuItemRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, "update menu item", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	items, err := rc.Catalog.FindMenuItemsByIDs(ctx, []primitive.ObjectID{id})
	if err != nil {
		utils.WriteError(w, "update menu item", storeFailure("load menu item", err))
		return
	}
	if len(items) == 0 || items[0].RestaurantID != who.ID {
		utils.WriteError(w, "update menu item", fmt.Errorf("%w: item", services.ErrNotFound))
		return
	}
	item := items[0]
	if err := req.applyTo(&item); err != nil {
		utils.WriteError(w, "update menu item", err)
		return
	}
	found, err := rc.Catalog.UpdateMenuItem(ctx, &item)
	if err != nil {
		utils.WriteError(w, "update menu item", storeFailure("update menu item", err))
		return
	}
	if !found {
		utils.WriteError(w, "update menu item", fmt.Errorf("%w: item", services.ErrNotFound))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "item": item})
}

// DeleteMenuItem removes a dish from the menu
func (rc *RestaurantController) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	who := middleware.Identity(r)
	if who.ID.IsZero() || who.Role != models.ActorRestaurant {
		utils.WriteError(w, "delete menu item", services.ErrUnauthenticated)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, "delete menu item", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	deleted, err := rc.Catalog.DeleteMenuItem(ctx, who.ID, id)
	if err != nil {
		utils.WriteError(w, "delete menu item", storeFailure("delete menu item", err))
		return
	}
	if !deleted {
		utils.WriteError(w, "delete menu item", fmt.Errorf("%w: item", services.ErrNotFound))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// UpdateOrderStatus moves one of the restaurant's orders along the status table
func (rc *RestaurantController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, "update order status", err)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, "update order status", err)
		return
	}
	if err := requireFields("status", req.Status); err != nil {
		utils.WriteError(w, "update order status", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	order, err := rc.Orders.UpdateStatus(ctx, middleware.Identity(r), id, req.Status)
	middleware.RecordOrderOperation("update_status", err == nil)
	if err != nil {
		utils.WriteError(w, "update order status", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "order": order})
}

func (rc *RestaurantController) restaurant(r *http.Request) (*models.Restaurant, error) {
	who := middleware.Identity(r)
	if who.ID.IsZero() || who.Role != models.ActorRestaurant {
		return nil, services.ErrUnauthenticated
	}
	ctx, cancel := requestContext(r)
	defer cancel()
	restaurant, err := rc.Catalog.FindRestaurantByID(ctx, who.ID)
	if err != nil {
		return nil, storeFailure("get restaurant", err)
	}
	if restaurant == nil {
		return nil, services.ErrRestaurantNotFound
	}
	return restaurant, nil
}
