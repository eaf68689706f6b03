package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	"shopfront/internal/handler"
	"shopfront/internal/middleware"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
	authHandler *handler.AuthHandler,
	reviewHandler *handler.ReviewHandler,
	sessionStore *sessions.CookieStore,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware in order: Recovery -> Logging -> CORS
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	// Health check endpoint (no session cookie issued)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Session(sessionStore, logger))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandler.GetProducts)
			r.Get("/category/{name}", catalogHandler.GetByCategory)
			r.Get("/{id}", catalogHandler.GetProduct)
		})
		r.Get("/catalog/categories", catalogHandler.GetCategories)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Post("/items", cartHandler.AddItem)
			r.Delete("/items/{id}", cartHandler.RemoveItem)
			r.Post("/items/{id}/increment", cartHandler.Increment)
			r.Post("/items/{id}/decrement", cartHandler.Decrement)
			r.Post("/coupon", cartHandler.ApplyCoupon)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.Start)
			r.Get("/", checkoutHandler.Get)
			r.Delete("/", checkoutHandler.Abandon)
			r.Post("/form", checkoutHandler.UpdateForm)
			r.Post("/next", checkoutHandler.Next)
			r.Post("/back", checkoutHandler.Back)
			r.Post("/order", checkoutHandler.PlaceOrder)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", reviewHandler.GetRatings)
			r.Put("/{productID}", reviewHandler.SetRating)
		})
	})

	return r
}
