package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port             string
	MongoURI         string
	MongoDatabase    string
	Store            string
	JWTSecret        string
	RedisAddr        string
	CatalogCacheTTL  time.Duration
	KafkaBrokers     []string
	KafkaTopic       string
	SendgridAPIKey   string
	EmailSender      string
	CORSOrigins      []string
	CheckoutClaimTTL time.Duration
	RequestTimeout   time.Duration
	// RequireVerification refuses delivery without a live verification session.
	RequireVerification bool
	SeedSampleData      bool
}

// Load reads the configuration from the environment. Empty values fall back to defaults.
func Load() *Config {
	return &Config{
		Port:                getEnv("PORT", "8000"),
		MongoURI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:       getEnv("MONGODB_DATABASE", "food_delivery"),
		Store:               strings.ToLower(getEnv("STORE", "mongo")),
		JWTSecret:           getEnv("JWT_SECRET", "change-me"),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		CatalogCacheTTL:     getDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		KafkaBrokers:        getList("KAFKA_BROKERS"),
		KafkaTopic:          getEnv("KAFKA_TOPIC", "order-events"),
		SendgridAPIKey:      getEnv("SENDGRID_API_KEY", ""),
		EmailSender:         getEnv("EMAIL_SENDER", "orders@food-delivery.local"),
		CORSOrigins:         getListOr("CORS_ORIGINS", []string{"*"}),
		CheckoutClaimTTL:    getDuration("CHECKOUT_CLAIM_TTL", 2*time.Minute),
		RequestTimeout:      getDuration("REQUEST_TIMEOUT", 5*time.Second),
		RequireVerification: getBool("DELIVERY_VERIFICATION_REQUIRED", false),
		SeedSampleData:      getBool("SEED_SAMPLE_DATA", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func getList(key string) []string {
	var result []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

func getListOr(key string, defaultValue []string) []string {
	if list := getList(key); len(list) > 0 {
		return list
	}
	return defaultValue
}
