// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"food-delivery/cache"
	"food-delivery/config"
	"food-delivery/controllers"
	"food-delivery/events"
	"food-delivery/memstore"
	"food-delivery/repository"
	"food-delivery/routes"
	"food-delivery/seed"
	"food-delivery/services"
	"food-delivery/utils"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

type publisher interface {
	services.Publisher
	Close() error
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}
	cfg := config.Load()

	utils.JwtKey = []byte(cfg.JWTSecret)
	controllers.RequestTimeout = cfg.RequestTimeout

	stores, closeStores := openStores(cfg)
	defer closeStores()

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("Redis unavailable, catalog cache disabled: %v", err)
		} else {
			stores.Pricing = stores.Catalog
			stores.Catalog = cache.NewCatalogCache(rdb, cfg.CatalogCacheTTL, stores.Catalog)
			defer rdb.Close()
		}
	}

	if cfg.SeedSampleData {
		if _, err := seed.Sample(context.Background(), stores.Catalog); err != nil {
			log.Fatal(err)
		}
	}

	var orderEvents publisher = events.LogPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		orderEvents = events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
	}
	defer orderEvents.Close()

	router := routes.NewRouter(stores, routes.Options{
		Events:              orderEvents,
		Email:               utils.NewEmailService(cfg.SendgridAPIKey, cfg.EmailSender),
		ClaimTTL:            cfg.CheckoutClaimTTL,
		RequireVerification: cfg.RequireVerification,
	})

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server is running on port %s (store=%s)", cfg.Port, cfg.Store)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}

// openStores selects the backend named by STORE.
func openStores(cfg *config.Config) (routes.Stores, func()) {
	if cfg.Store == "memory" {
		mem := memstore.New()
		return routes.Stores{
			Catalog:  mem.Catalog,
			Carts:    mem.Carts,
			Coupons:  mem.Coupons,
			Orders:   mem.Orders,
			Sessions: mem.Sessions,
			Accounts: mem.Accounts,
		}, func() {}
	}

	client, err := utils.ConnectDB(cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}
	db := client.Database(cfg.MongoDatabase)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatal(err)
	}

	repos := repository.New(db)
	stores := routes.Stores{
		Catalog:  repos.Catalog,
		Carts:    repos.Carts,
		Coupons:  repos.Coupons,
		Orders:   repos.Orders,
		Sessions: repos.Sessions,
		Accounts: repos.Accounts,
	}
	return stores, func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Println(err)
		}
	}
}
