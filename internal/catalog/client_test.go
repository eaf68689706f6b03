package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productListJSON = `[
	{"id": 1, "title": "USB Cable", "price": 9.99, "description": "A cable", "category": "electronics", "image": "https://example.com/1.png", "rating": {"rate": 4.5, "count": 120}},
	{"id": 2, "title": "Gold Ring", "price": 199.99, "description": "A ring", "category": "jewelery", "image": "https://example.com/2.png", "rating": {"rate": 4.8, "count": 30}}
]`

const singleProductJSON = `{"id": 1, "title": "USB Cable", "price": 9.99, "description": "A cable", "category": "electronics", "image": "https://example.com/1.png", "rating": {"rate": 4.5, "count": 120}}`

func newTestClient(t *testing.T, handler http.HandlerFunc, cacheTTL time.Duration) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, cacheTTL, zerolog.Nop())
}

func TestClient_Products(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		w.Write([]byte(productListJSON))
	}, time.Minute)

	products, err := c.Products(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "USB Cable", products[0].Title)
	assert.Equal(t, "9.99", products[0].Price.String())
	assert.Equal(t, 4.5, products[0].Rating.Rate)
}

func TestClient_Product_SingleObjectResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/1", r.URL.Path)
		w.Write([]byte(singleProductJSON))
	}, time.Minute)

	p, err := c.Product(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "electronics", p.Category)
}

func TestClient_ProductsByCategory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/category/electronics", r.URL.Path)
		w.Write([]byte(productListJSON))
	}, time.Minute)

	products, err := c.ProductsByCategory(context.Background(), "electronics")

	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestClient_Categories_DistinctAndSorted(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(productListJSON))
	}, time.Minute)

	categories, err := c.Categories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"electronics", "jewelery"}, categories)
}

func TestClient_CachesResponses(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(productListJSON))
	}, time.Minute)

	_, err := c.Products(context.Background())
	require.NoError(t, err)
	_, err = c.Products(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_ServesStaleCacheOnFetchFailure(t *testing.T) {
	var fail atomic.Bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(productListJSON))
	}, time.Millisecond)

	_, err := c.Products(context.Background())
	require.NoError(t, err)

	// Let the cache entry expire, then break the upstream.
	time.Sleep(5 * time.Millisecond)
	fail.Store(true)

	products, err := c.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestClient_FetchFailure_NoCache(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, time.Minute)

	_, err := c.Products(context.Background())

	assert.ErrorContains(t, err, "Failed to load products")
}

func TestClient_ProductNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, time.Minute)

	_, err := c.Product(context.Background(), 999)

	assert.Error(t, err)
}
