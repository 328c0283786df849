package checkout

import (
	"math"

	"github.com/warungpos/storefront/internal/cart"
)

// TaxRate is PPN, applied as a surcharge on the subtotal.
const TaxRate = 0.11

// Totals is the pricing breakdown for an order in whole rupiah.
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

// Tax computes PPN on a subtotal, rounded to the nearest rupiah.
func Tax(subtotal int64) int64 {
	return int64(math.Round(float64(subtotal) * TaxRate))
}

// Price computes the full breakdown for a subtotal.
func Price(subtotal int64) Totals {
	tax := Tax(subtotal)
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}
}

// PriceLines computes the breakdown for a set of cart lines.
func PriceLines(lines []cart.Line) Totals {
	var subtotal int64
	for _, line := range lines {
		subtotal += line.Price * int64(line.Quantity)
	}
	return Price(subtotal)
}
