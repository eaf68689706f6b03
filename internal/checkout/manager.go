package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shopfront/internal/model"
)

// CartClearer empties a session's cart after successful order placement.
type CartClearer interface {
	Clear(sessionID string)
}

// Manager owns the per-session checkout state machines.
//
// A checkout runs Delivery(0) → Payment(1) → Review(2), linear, no skipping.
// It is seeded from a snapshot of the cart at entry; an empty snapshot is an
// empty order, not an error. Placing the order enters a processing sub-state
// during which navigation is rejected; settlement is a simulated delay on a
// cancellable timer, cancelled when the session is abandoned. There is no real
// payment gateway behind it.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session

	carts    CartClearer
	delay    time.Duration
	validate *validator.Validate
	logger   zerolog.Logger
}

// session is one in-flight checkout.
type session struct {
	items      []model.CartItem
	form       model.CheckoutForm
	step       model.CheckoutStep
	processing bool
	confirmed  bool
	orderID    uuid.UUID
	cancel     context.CancelFunc
}

// Status is a snapshot of a checkout session's observable state.
type Status struct {
	Step       model.CheckoutStep
	StepName   string
	Items      []model.CartItem
	Form       model.CheckoutForm
	Processing bool
	Confirmed  bool
	OrderID    uuid.UUID
}

// NewManager creates a checkout manager.
func NewManager(carts CartClearer, processingDelay time.Duration, logger zerolog.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*session),
		carts:    carts,
		delay:    processingDelay,
		validate: newValidate(),
		logger:   logger.With().Str("component", "checkout").Logger(),
	}
}

// Start begins a fresh checkout for the session from a snapshot of the given
// cart items. Any previous checkout for the session is abandoned, including
// one mid-processing.
func (m *Manager) Start(sessionID string, items []model.CartItem) Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.sessions[sessionID]; ok && prev.cancel != nil {
		prev.cancel()
	}

	snapshot := make([]model.CartItem, len(items))
	copy(snapshot, items)

	s := &session{
		items: snapshot,
		form:  model.CheckoutForm{PaymentMethod: model.PaymentCashOnDelivery},
	}
	m.sessions[sessionID] = s

	m.logger.Debug().Int("items", len(snapshot)).Msg("checkout started")
	return m.statusLocked(s)
}

// Status reports the current state of the session's checkout.
func (m *Manager) Status(sessionID string) (Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return Status{}, model.ErrCheckoutNotFound
	}
	return m.statusLocked(s), nil
}

// UpdateForm merges the submitted form fields into the session's form.
// Rejected while the order is processing.
func (m *Manager) UpdateForm(sessionID string, form model.CheckoutForm) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return model.ErrCheckoutNotFound
	}
	if s.processing {
		return model.ErrCheckoutProcessing
	}

	if !form.PaymentMethod.Valid() {
		form.PaymentMethod = s.form.PaymentMethod
	}
	s.form = form
	return nil
}

// Next advances to the following step if the current step validates.
// On validation failure the step stays put and the field errors are returned
// alongside model.ErrFixFormErrors. Advancing past Review is a no-op.
func (m *Manager) Next(sessionID string) (Status, map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return Status{}, nil, model.ErrCheckoutNotFound
	}
	if s.processing {
		return m.statusLocked(s), nil, model.ErrCheckoutProcessing
	}

	if fieldErrors := validateStep(m.validate, s.step, s.form); len(fieldErrors) > 0 {
		return m.statusLocked(s), fieldErrors, model.ErrFixFormErrors
	}

	if s.step < model.StepReview {
		s.step++
	}
	return m.statusLocked(s), nil, nil
}

// Back moves to the previous step, flooring at Delivery. Rejected while the
// order is processing.
func (m *Manager) Back(sessionID string) (Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return Status{}, model.ErrCheckoutNotFound
	}
	if s.processing {
		return m.statusLocked(s), model.ErrCheckoutProcessing
	}

	if s.step > model.StepDelivery {
		s.step--
	}
	return m.statusLocked(s), nil
}

// PlaceOrder re-validates the final step and, on success, enters the
// processing sub-state. Settlement is simulated on a timer; when it fires the
// cart is cleared, an order ID is recorded, and the checkout is confirmed.
// Abandoning the session cancels the timer and no state changes land.
func (m *Manager) PlaceOrder(sessionID string) (Status, map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return Status{}, nil, model.ErrCheckoutNotFound
	}
	if s.processing {
		return m.statusLocked(s), nil, model.ErrCheckoutProcessing
	}
	if s.step != model.StepReview {
		return m.statusLocked(s), nil, model.ErrCheckoutIncomplete
	}

	if fieldErrors := validateStep(m.validate, s.step, s.form); len(fieldErrors) > 0 {
		return m.statusLocked(s), fieldErrors, model.ErrFixFormErrors
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.processing = true
	s.cancel = cancel

	go m.settle(ctx, sessionID)

	m.logger.Info().Str("session", sessionID).Msg("order processing started")
	return m.statusLocked(s), nil, nil
}

// settle waits out the simulated settlement delay, then confirms the order.
func (m *Manager) settle(ctx context.Context, sessionID string) {
	select {
	case <-time.After(m.delay):
	case <-ctx.Done():
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok || !s.processing {
		return
	}

	s.processing = false
	s.confirmed = true
	s.orderID = uuid.New()
	s.cancel = nil
	m.carts.Clear(sessionID)

	m.logger.Info().
		Str("session", sessionID).
		Str("order_id", s.orderID.String()).
		Msg("payment successful, order placed")
}

// Abandon discards the session's checkout, cancelling any in-flight
// settlement timer. Abandoning an absent session is a no-op.
func (m *Manager) Abandon(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	delete(m.sessions, sessionID)

	m.logger.Debug().Str("session", sessionID).Msg("checkout abandoned")
}

// statusLocked builds a Status snapshot. Callers must hold the lock.
func (m *Manager) statusLocked(s *session) Status {
	items := make([]model.CartItem, len(s.items))
	copy(items, s.items)

	return Status{
		Step:       s.step,
		StepName:   s.step.String(),
		Items:      items,
		Form:       s.form,
		Processing: s.processing,
		Confirmed:  s.confirmed,
		OrderID:    s.orderID,
	}
}
