package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"shopfront/internal/cart"
	"shopfront/internal/middleware"
	"shopfront/internal/model"
	"shopfront/internal/pricing"
)

// ProductGetter resolves a product ID against the catalogue.
type ProductGetter interface {
	Product(ctx context.Context, id int) (*model.Product, error)
}

// CartHandler handles cart mutation and summary requests. Every operation is
// scoped to the request's cart-session ID.
type CartHandler struct {
	carts   *cart.Store
	catalog ProductGetter
	pricing *pricing.Calculator
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts *cart.Store, catalog ProductGetter, calc *pricing.Calculator, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: catalog,
		pricing: calc,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// cartSummary is the rendered pricing breakdown; money is rounded to two
// places here and nowhere earlier.
type cartSummary struct {
	TotalItems int    `json:"totalItems"`
	Subtotal   string `json:"subtotal"`
	Shipping   string `json:"shipping"`
	Discount   string `json:"discount"`
	GrandTotal string `json:"grandTotal"`
	Coupon     string `json:"coupon,omitempty"`
}

type cartResponse struct {
	Items   []model.CartItem `json:"items"`
	Summary cartSummary      `json:"summary"`
}

func renderSummary(s pricing.Summary) cartSummary {
	return cartSummary{
		TotalItems: s.TotalItems,
		Subtotal:   s.Subtotal.StringFixed(2),
		Shipping:   s.Shipping.StringFixed(2),
		Discount:   s.Discount.StringFixed(2),
		GrandTotal: s.GrandTotal.StringFixed(2),
		Coupon:     s.Coupon,
	}
}

func (h *CartHandler) respondCart(w http.ResponseWriter, status int, sessionID string) {
	items := h.carts.Items(sessionID)
	summary := h.pricing.Summarize(items, h.carts.Coupon(sessionID))
	writeJSON(w, status, cartResponse{Items: items, Summary: renderSummary(summary)})
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respondCart(w, http.StatusOK, middleware.SessionID(r))
}

// AddItem handles POST /api/cart/items. The product ID is resolved against
// the catalogue; adding an already-carted product increments its quantity.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int `json:"productId"`
	}
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	product, err := h.catalog.Product(r.Context(), req.ProductID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	sessionID := middleware.SessionID(r)
	h.carts.Add(sessionID, *product)

	h.logger.Debug().Int("product_id", product.ID).Msg("item added to cart")
	h.respondCart(w, http.StatusOK, sessionID)
}

// RemoveItem handles DELETE /api/cart/items/{id}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	sessionID := middleware.SessionID(r)
	h.carts.Remove(sessionID, id)
	h.respondCart(w, http.StatusOK, sessionID)
}

// Increment handles POST /api/cart/items/{id}/increment.
func (h *CartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	sessionID := middleware.SessionID(r)
	h.carts.Increment(sessionID, id)
	h.respondCart(w, http.StatusOK, sessionID)
}

// Decrement handles POST /api/cart/items/{id}/decrement. Quantity floors at 1.
func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	sessionID := middleware.SessionID(r)
	h.carts.Decrement(sessionID, id)
	h.respondCart(w, http.StatusOK, sessionID)
}

// applyCouponResponse reports the coupon outcome alongside the refreshed cart.
type applyCouponResponse struct {
	Applied bool   `json:"applied"`
	Message string `json:"message"`
	cartResponse
}

// ApplyCoupon handles POST /api/cart/coupon. A valid code replaces any prior
// coupon; an invalid one resets the discount to zero. Both are 200s — a bad
// coupon is a normal negative outcome, not a failure.
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	sessionID := middleware.SessionID(r)

	applied := true
	message := "Coupon applied! " + h.pricing.PercentOff().String() + "% discount granted."
	coupon := req.Code
	if err := h.pricing.ValidateCoupon(req.Code); err != nil {
		applied = false
		message = "Invalid coupon code."
		coupon = ""
	}
	h.carts.SetCoupon(sessionID, coupon)

	items := h.carts.Items(sessionID)
	summary := h.pricing.Summarize(items, coupon)
	writeJSON(w, http.StatusOK, applyCouponResponse{
		Applied: applied,
		Message: message,
		cartResponse: cartResponse{
			Items:   items,
			Summary: renderSummary(summary),
		},
	})
}

func (h *CartHandler) itemID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeProductNotFound, "invalid product ID", h.logger)
		return 0, false
	}
	return id, true
}
