package model

import "github.com/shopspring/decimal"

// Product represents a product record in the external catalogue.
// The catalogue is read-only; the storefront only filters and sorts copies.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      Rating          `json:"rating"`
}

// Rating is the aggregate customer rating carried by a catalogue product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}
