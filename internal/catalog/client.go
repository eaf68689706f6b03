package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"shopfront/internal/model"
)

// Client fetches products from the external read-only catalogue API.
//
// Requests carry no retry or backoff: a failed fetch is reported as
// model.ErrCatalogUnavailable and whatever was served before stays served —
// responses are kept in a TTL cache and a stale entry is preferred over an
// error when the upstream is down.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *Cache
	logger  zerolog.Logger
}

// NewClient creates a catalogue client for the given base URL.
func NewClient(baseURL string, timeout, cacheTTL time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		cache:   NewCache(cacheTTL),
		logger:  logger.With().Str("component", "catalog-client").Logger(),
	}
}

// Products retrieves the full product list.
func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	return c.fetch(ctx, "/products")
}

// ProductsByCategory retrieves the products in a single category.
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	return c.fetch(ctx, "/products/category/"+url.PathEscape(category))
}

// Product retrieves a single product by ID.
func (c *Client) Product(ctx context.Context, id int) (*model.Product, error) {
	products, err := c.fetch(ctx, fmt.Sprintf("/products/%d", id))
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, model.ErrProductNotFound
	}
	return &products[0], nil
}

// Categories returns the distinct category names present in the catalogue,
// sorted alphabetically.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// fetch performs a GET against the catalogue and decodes the response.
// Single-product endpoints return an object rather than a list; both shapes
// are handled here so the cache stays uniform.
func (c *Client) fetch(ctx context.Context, path string) ([]model.Product, error) {
	if products, ok := c.cache.Get(path); ok {
		return products, nil
	}

	products, err := c.request(ctx, path)
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			return nil, err
		}
		// Serve stale data over an error when the upstream is down.
		if stale, ok := c.cache.GetStale(path); ok {
			c.logger.Warn().Err(err).Str("path", path).Msg("catalog fetch failed, serving stale cache")
			return stale, nil
		}
		c.logger.Error().Err(err).Str("path", path).Msg("catalog fetch failed")
		return nil, model.ErrCatalogUnavailable
	}

	c.cache.Set(path, products)
	return products, nil
}

func (c *Client) request(ctx context.Context, path string) ([]model.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, model.ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}

	var products []model.Product
	if err := json.Unmarshal(body, &products); err == nil {
		return products, nil
	}

	// Single-product responses are a bare object.
	var product model.Product
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return []model.Product{product}, nil
}
