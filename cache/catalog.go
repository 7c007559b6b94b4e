package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"food-delivery/models"
	"food-delivery/services"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Backend is the catalog the cache reads through to.
type Backend interface {
	services.Catalog
	services.MenuStore
}

// CatalogCache is a read-through Redis cache in front of the catalog. Lookups fall back
// to the backend whenever Redis is unavailable.
type CatalogCache struct {
	Client  *redis.Client
	TTL     time.Duration
	backend Backend
}

func NewCatalogCache(client *redis.Client, ttl time.Duration, backend Backend) *CatalogCache {
	return &CatalogCache{Client: client, TTL: ttl, backend: backend}
}

func MenuItemKey(id primitive.ObjectID) string {
	return "catalog:menu_item:" + id.Hex()
}

func RestaurantKey(id primitive.ObjectID) string {
	return "catalog:restaurant:" + id.Hex()
}

func (c *CatalogCache) FindMenuItemsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = MenuItemKey(id)
	}

	cached, err := c.Client.MGet(ctx, keys...).Result()
	if err != nil {
		log.Printf("catalog cache unavailable, reading menu items from store: %v", err)
		return c.backend.FindMenuItemsByIDs(ctx, ids)
	}

	var result []models.MenuItem
	var misses []primitive.ObjectID
	for i, raw := range cached {
		s, ok := raw.(string)
		if !ok {
			misses = append(misses, ids[i])
			continue
		}
		var item models.MenuItem
		if err := json.Unmarshal([]byte(s), &item); err != nil {
			misses = append(misses, ids[i])
			continue
		}
		result = append(result, item)
	}
	if len(misses) == 0 {
		return result, nil
	}

	loaded, err := c.backend.FindMenuItemsByIDs(ctx, misses)
	if err != nil {
		return nil, err
	}
	pipe := c.Client.Pipeline()
	for _, item := range loaded {
		payload, _ := json.Marshal(item)
		pipe.Set(ctx, MenuItemKey(item.ID), payload, c.TTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("failed to cache menu items: %v", err)
	}
	return append(result, loaded...), nil
}

func (c *CatalogCache) FindRestaurantByID(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	raw, err := c.Client.Get(ctx, RestaurantKey(id)).Bytes()
	if err == nil {
		var r models.Restaurant
		if err := json.Unmarshal(raw, &r); err == nil {
			return &r, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("catalog cache unavailable, reading restaurant from store: %v", err)
		return c.backend.FindRestaurantByID(ctx, id)
	}

	r, err := c.backend.FindRestaurantByID(ctx, id)
	if err != nil || r == nil {
		return r, err
	}
	payload, _ := json.Marshal(r)
	if err := c.Client.Set(ctx, RestaurantKey(id), payload, c.TTL).Err(); err != nil {
		log.Printf("failed to cache restaurant %s: %v", id.Hex(), err)
	}
	return r, nil
}

func (c *CatalogCache) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	return c.backend.ListRestaurants(ctx)
}

func (c *CatalogCache) CreateRestaurant(ctx context.Context, r *models.Restaurant) error {
	return c.backend.CreateRestaurant(ctx, r)
}

func (c *CatalogCache) ListMenuItems(ctx context.Context, restaurantID primitive.ObjectID) ([]models.MenuItem, error) {
	return c.backend.ListMenuItems(ctx, restaurantID)
}

func (c *CatalogCache) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return c.backend.CreateMenuItem(ctx, item)
}

// UpdateMenuItem drops the cached item on both sides of the write. A read racing the write
// can still re-cache the old item until TTL.
func (c *CatalogCache) UpdateMenuItem(ctx context.Context, item *models.MenuItem) (bool, error) {
	c.invalidate(ctx, MenuItemKey(item.ID))
	ok, err := c.backend.UpdateMenuItem(ctx, item)
	if ok {
		c.invalidate(ctx, MenuItemKey(item.ID))
	}
	return ok, err
}

func (c *CatalogCache) DeleteMenuItem(ctx context.Context, restaurantID, id primitive.ObjectID) (bool, error) {
	c.invalidate(ctx, MenuItemKey(id))
	ok, err := c.backend.DeleteMenuItem(ctx, restaurantID, id)
	if ok {
		c.invalidate(ctx, MenuItemKey(id))
	}
	return ok, err
}

func (c *CatalogCache) invalidate(ctx context.Context, key string) {
	if err := c.Client.Del(ctx, key).Err(); err != nil {
		log.Printf("failed to invalidate %s: %v", key, err)
	}
}
