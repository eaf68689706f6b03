package pricing

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"shopfront/internal/model"
)

// Calculator derives order totals from cart contents and an optional coupon.
//
// All arithmetic stays in decimal; rounding to two places happens only when a
// summary is rendered, so the discount never drifts through intermediates.
type Calculator struct {
	shipping   decimal.Decimal
	couponCode string
	percentOff decimal.Decimal
	logger     zerolog.Logger
}

// Summary is the derived pricing breakdown for a cart.
type Summary struct {
	TotalItems int
	Subtotal   decimal.Decimal
	Shipping   decimal.Decimal
	Discount   decimal.Decimal
	GrandTotal decimal.Decimal
	Coupon     string
}

// NewCalculator creates a pricing calculator from the configured business
// rules: a flat shipping charge and one coupon code worth a percentage off.
func NewCalculator(shippingCharge, couponCode string, discountPercent int, logger zerolog.Logger) (*Calculator, error) {
	shipping, err := decimal.NewFromString(shippingCharge)
	if err != nil {
		return nil, fmt.Errorf("invalid shipping charge %q: %w", shippingCharge, err)
	}

	return &Calculator{
		shipping:   shipping,
		couponCode: strings.ToUpper(strings.TrimSpace(couponCode)),
		percentOff: decimal.NewFromInt(int64(discountPercent)),
		logger:     logger.With().Str("component", "pricing").Logger(),
	}, nil
}

// Subtotal is Σ price × quantity over all line items.
func Subtotal(items []model.CartItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

// TotalItems is Σ quantity over all line items.
func TotalItems(items []model.CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// ValidateCoupon checks a coupon code against the configured one.
// Matching is whitespace-trimmed and case-insensitive. A mismatch is a normal
// negative outcome, reported as model.ErrInvalidCoupon.
func (c *Calculator) ValidateCoupon(code string) error {
	if !strings.EqualFold(strings.TrimSpace(code), c.couponCode) {
		c.logger.Debug().Str("coupon", code).Msg("coupon code did not match")
		return model.ErrInvalidCoupon
	}
	return nil
}

// PercentOff returns the configured discount percentage.
func (c *Calculator) PercentOff() decimal.Decimal {
	return c.percentOff
}

// Summarize computes the pricing breakdown for the given cart contents.
// coupon is the currently applied coupon code, or empty when none is active;
// a stale or invalid code contributes no discount. The shipping charge is
// flat and applies even to an empty cart.
func (c *Calculator) Summarize(items []model.CartItem, coupon string) Summary {
	subtotal := Subtotal(items)

	discount := decimal.Zero
	applied := ""
	if coupon != "" && c.ValidateCoupon(coupon) == nil {
		discount = subtotal.Mul(c.percentOff).Div(decimal.NewFromInt(100))
		applied = c.couponCode
	}

	return Summary{
		TotalItems: TotalItems(items),
		Subtotal:   subtotal,
		Shipping:   c.shipping,
		Discount:   discount,
		GrandTotal: subtotal.Sub(discount).Add(c.shipping),
		Coupon:     applied,
	}
}
