// Package totals computes the monetary figures shown on an invoice preview
// and carried by every export payload.
//
// All functions are pure. Inputs that are not finite numbers are treated as
// zero, and the grand total is never clamped: a discount larger than
// subtotal plus tax yields a negative total, and it is up to the caller to
// decide whether that is acceptable.
package totals

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Priced is anything that contributes price * quantity to a subtotal.
type Priced interface {
	UnitPrice() float64
	Qty() float64
}

// Line is a bare price/quantity pair.
type Line struct {
	Price    float64
	Quantity float64
}

func (l Line) UnitPrice() float64 { return l.Price }
func (l Line) Qty() float64       { return l.Quantity }

// Totals holds the derived figures of an invoice, in the same currency unit
// as the inputs.
type Totals struct {
	Subtotal  float64
	TaxAmount float64
	Total     float64
}

// Compute sums items in order and applies the tax rate (a percentage) and a
// fixed discount amount.
func Compute[T Priced](items []T, taxRatePercent, discount float64) Totals {
	var subtotal float64
	for _, it := range items {
		// the conversion keeps the product rounded before the add (no FMA)
		subtotal += float64(finite(it.UnitPrice()) * finite(it.Qty()))
	}

	tax := subtotal * (finite(taxRatePercent) / 100)

	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal + tax - finite(discount),
	}
}

// Coerce converts user-entered text to a number. Empty, malformed or
// non-finite input becomes 0.
func Coerce(s string) float64 {
	return CoerceOr(s, 0)
}

// CoerceOr is Coerce with a caller-chosen fallback.
func CoerceOr(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// Format renders an amount with exactly two decimals.
func Format(x float64) string {
	return decimal.NewFromFloat(finite(x)).StringFixed(2)
}

func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
