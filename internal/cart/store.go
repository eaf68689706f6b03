package cart

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"shopfront/internal/model"
)

// Store holds carts in memory keyed by session ID.
//
// All mutations are synchronous and guarded by a single lock; readers always
// receive copies, never internal slices. Idle carts are swept by a background
// janitor after the configured TTL so abandoned sessions do not accumulate.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*cart

	ttl    time.Duration
	logger zerolog.Logger

	stopSweep chan struct{}
	wg        sync.WaitGroup
}

// cart is a single session's line items plus the bookkeeping the janitor needs.
// coupon is the currently applied coupon code, empty when none is active.
type cart struct {
	items      []model.CartItem
	coupon     string
	lastActive time.Time
}

// NewStore creates a cart store and starts its background janitor.
func NewStore(ttl, sweepInterval time.Duration, logger zerolog.Logger) *Store {
	s := &Store{
		carts:     make(map[string]*cart),
		ttl:       ttl,
		logger:    logger.With().Str("component", "cart-store").Logger(),
		stopSweep: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.sweepLoop(sweepInterval)

	return s
}

// sweepLoop periodically removes carts idle for longer than the TTL.
func (s *Store) sweepLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopSweep:
			return
		}
	}
}

func (s *Store) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.ttl)
	swept := 0
	for id, c := range s.carts {
		if c.lastActive.Before(cutoff) {
			delete(s.carts, id)
			swept++
		}
	}

	if swept > 0 {
		s.logger.Debug().Int("swept", swept).Int("remaining", len(s.carts)).Msg("swept idle carts")
	}
}

// touch returns the cart for the session, creating it on first use.
// Callers must hold the write lock.
func (s *Store) touch(sessionID string) *cart {
	c, ok := s.carts[sessionID]
	if !ok {
		c = &cart{}
		s.carts[sessionID] = c
	}
	c.lastActive = time.Now()
	return c
}

// Add inserts the product as a new quantity-1 line item, or increments the
// quantity of an existing line with the same product ID.
func (s *Store) Add(sessionID string, p model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.touch(sessionID)
	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, model.NewCartItem(p))
}

// Remove deletes the line item with the given product ID. Removing an absent
// ID is a no-op.
func (s *Store) Remove(sessionID string, productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.touch(sessionID)
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Increment raises the quantity of the line item by one. Absent IDs are a no-op.
func (s *Store) Increment(sessionID string, productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.touch(sessionID)
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity++
			return
		}
	}
}

// Decrement lowers the quantity of the line item by one, flooring at 1.
// A quantity-1 line is left untouched, never removed. Absent IDs are a no-op.
func (s *Store) Decrement(sessionID string, productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.touch(sessionID)
	for i := range c.items {
		if c.items[i].ProductID == productID {
			if c.items[i].Quantity > 1 {
				c.items[i].Quantity--
			}
			return
		}
	}
}

// SetCoupon records the applied coupon code for the session. Only one coupon
// is active at a time; setting replaces the prior one, and an empty code
// resets the discount.
func (s *Store) SetCoupon(sessionID, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.touch(sessionID)
	c.coupon = code
}

// Coupon returns the session's applied coupon code, empty when none is active.
func (s *Store) Coupon(sessionID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[sessionID]
	if !ok {
		return ""
	}
	return c.coupon
}

// Clear empties the session's cart and drops any applied coupon. Called after
// successful order placement.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.touch(sessionID)
	c.items = nil
	c.coupon = ""
}

// Items returns a copy of the session's line items in insertion order.
func (s *Store) Items(sessionID string) []model.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[sessionID]
	if !ok {
		return []model.CartItem{}
	}

	items := make([]model.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// Close stops the background janitor and waits for it to finish.
func (s *Store) Close() error {
	close(s.stopSweep)
	s.wg.Wait()
	return nil
}
