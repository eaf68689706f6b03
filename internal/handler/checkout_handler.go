package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"shopfront/internal/cart"
	"shopfront/internal/checkout"
	"shopfront/internal/middleware"
	"shopfront/internal/model"
	"shopfront/internal/pricing"
)

// CheckoutHandler drives the three-step checkout flow for a session.
type CheckoutHandler struct {
	checkouts *checkout.Manager
	carts     *cart.Store
	logger    zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(checkouts *checkout.Manager, carts *cart.Store, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkouts: checkouts,
		carts:     carts,
		logger:    logger.With().Str("handler", "checkout").Logger(),
	}
}

// checkoutResponse is the rendered checkout state.
type checkoutResponse struct {
	Step        int                `json:"step"`
	StepName    string             `json:"stepName"`
	Items       []model.CartItem   `json:"items"`
	TotalAmount string             `json:"totalAmount"`
	Form        model.CheckoutForm `json:"form"`
	Processing  bool               `json:"processing"`
	Confirmed   bool               `json:"confirmed"`
	OrderID     string             `json:"orderId,omitempty"`
}

func renderStatus(s checkout.Status) checkoutResponse {
	resp := checkoutResponse{
		Step:        int(s.Step),
		StepName:    s.StepName,
		Items:       s.Items,
		TotalAmount: pricing.Subtotal(s.Items).StringFixed(2),
		Form:        s.Form,
		Processing:  s.Processing,
		Confirmed:   s.Confirmed,
	}
	if s.Confirmed {
		resp.OrderID = s.OrderID.String()
	}
	return resp
}

// Start handles POST /api/checkout: begins a checkout from a snapshot of the
// session's cart. An empty cart starts an empty order, not an error.
func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r)

	status := h.checkouts.Start(sessionID, h.carts.Items(sessionID))
	writeJSON(w, http.StatusCreated, renderStatus(status))
}

// Get handles GET /api/checkout.
func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	status, err := h.checkouts.Status(middleware.SessionID(r))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, renderStatus(status))
}

// UpdateForm handles POST /api/checkout/form.
func (h *CheckoutHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	var form model.CheckoutForm
	if !decodeJSON(w, r, &form, h.logger) {
		return
	}

	sessionID := middleware.SessionID(r)
	if err := h.checkouts.UpdateForm(sessionID, form); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	status, err := h.checkouts.Status(sessionID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, renderStatus(status))
}

// Next handles POST /api/checkout/next: advances a step when the current one
// validates, otherwise reports the field errors and stays put.
func (h *CheckoutHandler) Next(w http.ResponseWriter, r *http.Request) {
	status, fieldErrors, err := h.checkouts.Next(middleware.SessionID(r))
	if err != nil {
		if errors.Is(err, model.ErrFixFormErrors) {
			writeFieldErrors(w, fieldErrors, h.logger)
			return
		}
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, renderStatus(status))
}

// Back handles POST /api/checkout/back.
func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	status, err := h.checkouts.Back(middleware.SessionID(r))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, renderStatus(status))
}

// PlaceOrder handles POST /api/checkout/order. A successful call answers 202
// with the processing state; settlement lands asynchronously and is observed
// via GET /api/checkout.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	status, fieldErrors, err := h.checkouts.PlaceOrder(middleware.SessionID(r))
	if err != nil {
		if errors.Is(err, model.ErrFixFormErrors) {
			writeFieldErrors(w, fieldErrors, h.logger)
			return
		}
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusAccepted, renderStatus(status))
}

// Abandon handles DELETE /api/checkout: discards the checkout and cancels any
// in-flight settlement.
func (h *CheckoutHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	h.checkouts.Abandon(middleware.SessionID(r))
	w.WriteHeader(http.StatusNoContent)
}
