package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"shopfront/internal/catalog"
	"shopfront/internal/model"
)

// CatalogClient is the slice of the catalogue client the handler needs.
type CatalogClient interface {
	Products(ctx context.Context) ([]model.Product, error)
	Product(ctx context.Context, id int) (*model.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]model.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// CatalogHandler handles product browsing requests.
type CatalogHandler struct {
	client CatalogClient
	logger zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(client CatalogClient, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		client: client,
		logger: logger.With().Str("handler", "catalog").Logger(),
	}
}

// GetProducts handles GET /api/products with optional filter/sort params:
// category, search, maxPrice, minRating, sort (asc|desc).
func (h *CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	query, ok := parseQuery(w, r, h.logger)
	if !ok {
		return
	}

	products, err := h.client.Products(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, catalog.Filter(products, query))
}

// GetProduct handles GET /api/products/{id}.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeProductNotFound, "invalid product ID", h.logger)
		return
	}

	product, err := h.client.Product(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// GetByCategory handles GET /api/products/category/{name}.
func (h *CatalogHandler) GetByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.client.ProductsByCategory(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetCategories handles GET /api/catalog/categories.
func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.client.Categories(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// parseQuery builds a catalog filter query from URL parameters.
func parseQuery(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (catalog.Query, bool) {
	params := r.URL.Query()

	query := catalog.Query{
		Category: params.Get("category"),
		Search:   params.Get("search"),
	}

	if v := params.Get("maxPrice"); v != "" {
		maxPrice, err := decimal.NewFromString(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid maxPrice parameter", logger)
			return catalog.Query{}, false
		}
		query.MaxPrice = &maxPrice
	}

	if v := params.Get("minRating"); v != "" {
		minRating, err := strconv.Atoi(v)
		if err != nil || minRating < 0 || minRating > 5 {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid minRating parameter", logger)
			return catalog.Query{}, false
		}
		query.MinRating = minRating
	}

	switch sort := params.Get("sort"); sort {
	case "", catalog.SortPriceAsc, catalog.SortPriceDesc:
		query.Sort = sort
	default:
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid sort parameter", logger)
		return catalog.Query{}, false
	}

	return query, true
}
