package model

import "github.com/shopspring/decimal"

// CartItem is a product reference paired with a quantity.
// A cart holds at most one CartItem per product ID; adding an existing
// product increments the quantity instead of duplicating the line.
type CartItem struct {
	ProductID   int             `json:"productId"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
}

// LineTotal returns price × quantity for this line.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewCartItem creates a quantity-1 line item from a catalogue product.
func NewCartItem(p Product) CartItem {
	return CartItem{
		ProductID:   p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		Quantity:    1,
	}
}
