package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	Pricing  PricingConfig
	Cart     CartConfig
	Checkout CheckoutConfig
	Session  SessionConfig
	Reviews  ReviewsConfig
	Logger   LoggerConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// CatalogConfig holds configuration for the external catalogue API.
type CatalogConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// PricingConfig holds the storefront's toy business rules: a flat shipping
// charge and a single coupon code mapped to a percentage discount.
type PricingConfig struct {
	ShippingCharge  string // decimal, e.g. "50"
	CouponCode      string
	DiscountPercent int
}

// CartConfig holds cart store configuration.
type CartConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

// CheckoutConfig holds checkout flow configuration.
type CheckoutConfig struct {
	ProcessingDelay time.Duration
}

// SessionConfig holds cookie session configuration.
type SessionConfig struct {
	Secret string
	MaxAge int // seconds
}

// ReviewsConfig holds configuration for the ratings file store.
type ReviewsConfig struct {
	FilePath string
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load loads configuration from a .env file (if present) and environment
// variables. Environment variables win over .env values.
func Load() (*Config, error) {
	// Missing .env is fine; env vars alone are enough.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Catalog: CatalogConfig{
			BaseURL:  getEnv("CATALOG_BASE_URL", "https://fakestoreapi.com"),
			Timeout:  getEnvAsDuration("CATALOG_TIMEOUT", 10*time.Second),
			CacheTTL: getEnvAsDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		},
		Pricing: PricingConfig{
			ShippingCharge:  getEnv("SHIPPING_CHARGE", "50"),
			CouponCode:      getEnv("COUPON_CODE", "DISCOUNT10"),
			DiscountPercent: getEnvAsInt("COUPON_DISCOUNT_PERCENT", 10),
		},
		Cart: CartConfig{
			TTL:           getEnvAsDuration("CART_TTL", 24*time.Hour),
			SweepInterval: getEnvAsDuration("CART_SWEEP_INTERVAL", 10*time.Minute),
		},
		Checkout: CheckoutConfig{
			ProcessingDelay: getEnvAsDuration("CHECKOUT_PROCESSING_DELAY", 2500*time.Millisecond),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
			MaxAge: getEnvAsInt("SESSION_MAX_AGE", 86400*7),
		},
		Reviews: ReviewsConfig{
			FilePath: getEnv("REVIEWS_FILE", "data/reviews.json"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog base URL is required")
	}

	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("catalog timeout must be positive")
	}

	if c.Pricing.CouponCode == "" {
		return fmt.Errorf("coupon code is required")
	}

	if c.Pricing.DiscountPercent < 0 || c.Pricing.DiscountPercent > 100 {
		return fmt.Errorf("invalid discount percent: %d", c.Pricing.DiscountPercent)
	}

	if c.Cart.TTL <= 0 {
		return fmt.Errorf("cart TTL must be positive")
	}

	if c.Cart.SweepInterval <= 0 {
		return fmt.Errorf("cart sweep interval must be positive")
	}

	if c.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}

	if c.Reviews.FilePath == "" {
		return fmt.Errorf("reviews file path is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration or returns a default value.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
