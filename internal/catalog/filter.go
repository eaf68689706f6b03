package catalog

import (
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"shopfront/internal/model"
)

// Sort orders for the filter pipeline.
const (
	SortPriceAsc  = "asc"
	SortPriceDesc = "desc"
)

// Query describes the client-side filter pipeline applied to a product list.
// Zero values disable their filter: empty or "all" category, empty search,
// nil price ceiling, zero minimum rating, empty sort order.
type Query struct {
	Category  string
	Search    string
	MaxPrice  *decimal.Decimal
	MinRating int
	Sort      string
}

// Filter applies the query to the product list and returns a derived slice.
// The source list is never mutated. The predicates commute, so their order is
// a matter of clarity only; the price sort must come last and is stable.
func Filter(products []model.Product, q Query) []model.Product {
	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if !q.matches(p) {
			continue
		}
		filtered = append(filtered, p)
	}

	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price.LessThan(filtered[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[j].Price.LessThan(filtered[i].Price)
		})
	}

	return filtered
}

func (q Query) matches(p model.Product) bool {
	if q.Category != "" && q.Category != "all" && p.Category != q.Category {
		return false
	}

	if search := strings.TrimSpace(q.Search); search != "" {
		if !strings.Contains(strings.ToLower(p.Title), strings.ToLower(search)) {
			return false
		}
	}

	if q.MaxPrice != nil && p.Price.GreaterThan(*q.MaxPrice) {
		return false
	}

	if q.MinRating > 0 && int(math.Floor(p.Rating.Rate)) < q.MinRating {
		return false
	}

	return true
}
