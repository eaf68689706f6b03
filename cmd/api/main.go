package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopfront/internal/cart"
	"shopfront/internal/catalog"
	"shopfront/internal/checkout"
	"shopfront/internal/config"
	"shopfront/internal/handler"
	"shopfront/internal/middleware"
	"shopfront/internal/pricing"
	"shopfront/internal/review"
	"shopfront/internal/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting shopfront API server")

	// Initialize the catalogue client
	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, cfg.Catalog.CacheTTL, logger)

	// Initialize the cart store and its janitor
	carts := cart.NewStore(cfg.Cart.TTL, cfg.Cart.SweepInterval, logger)
	defer carts.Close()

	// Initialize pricing rules
	calculator, err := pricing.NewCalculator(
		cfg.Pricing.ShippingCharge,
		cfg.Pricing.CouponCode,
		cfg.Pricing.DiscountPercent,
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize pricing: %w", err)
	}

	// Initialize the checkout manager
	checkouts := checkout.NewManager(carts, cfg.Checkout.ProcessingDelay, logger)

	// Initialize the ratings store
	reviews, err := review.NewStore(cfg.Reviews.FilePath, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize ratings store: %w", err)
	}

	// Initialize HTTP handlers
	catalogHandler := handler.NewCatalogHandler(catalogClient, logger)
	cartHandler := handler.NewCartHandler(carts, catalogClient, calculator, logger)
	checkoutHandler := handler.NewCheckoutHandler(checkouts, carts, logger)
	authHandler := handler.NewAuthHandler(logger)
	reviewHandler := handler.NewReviewHandler(reviews, logger)

	// Initialize session cookie store and router
	sessionStore := middleware.NewSessionStore(cfg.Session.Secret, cfg.Session.MaxAge)
	mux := router.New(
		catalogHandler,
		cartHandler,
		checkoutHandler,
		authHandler,
		reviewHandler,
		sessionStore,
		logger,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
