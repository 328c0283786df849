package checkout

import (
	"testing"

	"github.com/warungpos/storefront/internal/cart"
)

func TestTax(t *testing.T) {
	cases := []struct {
		subtotal int64
		want     int64
	}{
		{0, 0},
		{15000, 1650},
		{30000, 3300},
		{100, 11},
		// 95 * 0.11 = 10.45 rounds down, 50 * 0.11 = 5.5 rounds up.
		{95, 10},
		{50, 6},
	}

	for _, tc := range cases {
		if got := Tax(tc.subtotal); got != tc.want {
			t.Errorf("Tax(%d) = %d, want %d", tc.subtotal, got, tc.want)
		}
	}
}

func TestPrice(t *testing.T) {
	totals := Price(30000)
	if totals.Subtotal != 30000 || totals.Tax != 3300 || totals.Total != 33300 {
		t.Errorf("unexpected totals: %+v", totals)
	}
}

func TestPriceLines(t *testing.T) {
	lines := []cart.Line{
		{ProductID: "p1", Price: 15000, Quantity: 2},
		{ProductID: "p2", Price: 5000, Quantity: 1},
	}

	totals := PriceLines(lines)
	if totals.Subtotal != 35000 {
		t.Errorf("expected subtotal 35000, got %d", totals.Subtotal)
	}
	if totals.Tax != 3850 {
		t.Errorf("expected tax 3850, got %d", totals.Tax)
	}
	if totals.Total != 38850 {
		t.Errorf("expected total 38850, got %d", totals.Total)
	}
}
