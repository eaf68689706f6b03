package cart

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(time.Hour, time.Hour, zerolog.Nop())
	t.Cleanup(func() { s.Close() })
	return s
}

func testProduct(id int, price string) model.Product {
	return model.Product{
		ID:    id,
		Title: fmt.Sprintf("Product %d", id),
		Price: decimal.RequireFromString(price),
	}
}

func TestStore_Add_NewProduct(t *testing.T) {
	s := newTestStore(t)

	s.Add("sess-1", testProduct(1, "9.99"))

	items := s.Items("sess-1")
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].ProductID)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestStore_Add_SameProductTwice_IncrementsQuantity(t *testing.T) {
	s := newTestStore(t)
	p := testProduct(1, "9.99")

	s.Add("sess-1", p)
	s.Add("sess-1", p)

	items := s.Items("sess-1")
	require.Len(t, items, 1, "adding the same product twice must not duplicate the line")
	assert.Equal(t, 2, items[0].Quantity)
}

func TestStore_Remove(t *testing.T) {
	s := newTestStore(t)
	s.Add("sess-1", testProduct(1, "9.99"))
	s.Add("sess-1", testProduct(2, "19.99"))

	s.Remove("sess-1", 1)

	items := s.Items("sess-1")
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].ProductID)
}

func TestStore_Remove_AbsentID_NoOp(t *testing.T) {
	s := newTestStore(t)
	s.Add("sess-1", testProduct(1, "9.99"))

	s.Remove("sess-1", 42)

	assert.Len(t, s.Items("sess-1"), 1)
}

func TestStore_IncrementDecrement(t *testing.T) {
	s := newTestStore(t)
	s.Add("sess-1", testProduct(1, "9.99"))

	s.Increment("sess-1", 1)
	s.Increment("sess-1", 1)
	s.Decrement("sess-1", 1)

	items := s.Items("sess-1")
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestStore_Decrement_FloorsAtOne(t *testing.T) {
	s := newTestStore(t)
	s.Add("sess-1", testProduct(1, "9.99"))

	s.Decrement("sess-1", 1)
	s.Decrement("sess-1", 1)

	items := s.Items("sess-1")
	require.Len(t, items, 1, "decrement must never remove a line")
	assert.Equal(t, 1, items[0].Quantity)
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore(t)
	s.Add("sess-1", testProduct(1, "9.99"))
	s.Add("sess-1", testProduct(2, "19.99"))

	s.Clear("sess-1")

	assert.Empty(t, s.Items("sess-1"))
}

func TestStore_Coupon_SetAndReplace(t *testing.T) {
	s := newTestStore(t)

	assert.Empty(t, s.Coupon("sess-1"))

	s.SetCoupon("sess-1", "DISCOUNT10")
	assert.Equal(t, "DISCOUNT10", s.Coupon("sess-1"))

	s.SetCoupon("sess-1", "")
	assert.Empty(t, s.Coupon("sess-1"))
}

func TestStore_Clear_DropsCoupon(t *testing.T) {
	s := newTestStore(t)
	s.Add("sess-1", testProduct(1, "9.99"))
	s.SetCoupon("sess-1", "DISCOUNT10")

	s.Clear("sess-1")

	assert.Empty(t, s.Coupon("sess-1"))
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	s := newTestStore(t)

	s.Add("sess-1", testProduct(1, "9.99"))
	s.Add("sess-2", testProduct(2, "19.99"))

	items1 := s.Items("sess-1")
	items2 := s.Items("sess-2")
	require.Len(t, items1, 1)
	require.Len(t, items2, 1)
	assert.Equal(t, 1, items1[0].ProductID)
	assert.Equal(t, 2, items2[0].ProductID)
}

func TestStore_Items_ReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	s.Add("sess-1", testProduct(1, "9.99"))

	items := s.Items("sess-1")
	items[0].Quantity = 99

	assert.Equal(t, 1, s.Items("sess-1")[0].Quantity)
}

func TestStore_Items_UnknownSession_Empty(t *testing.T) {
	s := newTestStore(t)

	assert.Empty(t, s.Items("nope"))
}

func TestStore_Sweep_RemovesIdleCarts(t *testing.T) {
	s := NewStore(10*time.Millisecond, time.Hour, zerolog.Nop())
	defer s.Close()

	s.Add("sess-1", testProduct(1, "9.99"))
	time.Sleep(20 * time.Millisecond)
	s.sweep()

	assert.Empty(t, s.Items("sess-1"))
}

func TestStore_ConcurrentSessions(t *testing.T) {
	s := newTestStore(t)
	p := testProduct(1, "9.99")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			session := fmt.Sprintf("sess-%d", n)
			for j := 0; j < 100; j++ {
				s.Add(session, p)
				s.Increment(session, 1)
				s.Decrement(session, 1)
				s.Items(session)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		items := s.Items(fmt.Sprintf("sess-%d", i))
		require.Len(t, items, 1)
		assert.Equal(t, 100, items[0].Quantity)
	}
}
