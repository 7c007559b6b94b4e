package controllers

import (
	"net/http"

	"food-delivery/models"
	"food-delivery/services"
	"food-delivery/utils"
)

// CatalogController serves the public restaurant listing
type CatalogController struct {
	Catalog CatalogBackend
}

func NewCatalogController(catalog CatalogBackend) *CatalogController {
	return &CatalogController{Catalog: catalog}
}

// GetRestaurants retrieves all restaurants
func (cc *CatalogController) GetRestaurants(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	restaurants, err := cc.Catalog.ListRestaurants(ctx)
	if err != nil {
		utils.WriteError(w, "list restaurants", storeFailure("list restaurants", err))
		return
	}
	if restaurants == nil {
		restaurants = []models.Restaurant{}
	}
	utils.WriteJSON(w, http.StatusOK, restaurants)
}

// GetRestaurantByID retrieves a single restaurant
func (cc *CatalogController) GetRestaurantByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, "get restaurant", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	restaurant, err := cc.Catalog.FindRestaurantByID(ctx, id)
	if err != nil {
		utils.WriteError(w, "get restaurant", storeFailure("get restaurant", err))
		return
	}
	if restaurant == nil {
		utils.WriteError(w, "get restaurant", services.ErrRestaurantNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, restaurant)
}

// GetMenu retrieves a restaurant's menu items
func (cc *CatalogController) GetMenu(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, "get menu", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	restaurant, err := cc.Catalog.FindRestaurantByID(ctx, id)
	if err != nil {
		utils.WriteError(w, "get menu", storeFailure("get restaurant", err))
		return
	}
	if restaurant == nil {
		utils.WriteError(w, "get menu", services.ErrRestaurantNotFound)
		return
	}
	items, err := cc.Catalog.ListMenuItems(ctx, id)
	if err != nil {
		utils.WriteError(w, "get menu", storeFailure("list menu", err))
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	utils.WriteJSON(w, http.StatusOK, items)
}
