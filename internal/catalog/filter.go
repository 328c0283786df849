package catalog

import (
	"strings"

	"github.com/warungpos/storefront/internal/domain"
)

// Visible filters a product list down to what the menu shows: unavailable
// products are dropped, then an optional exact category match (case matters,
// category labels are canonical), then an optional case-insensitive substring
// match on the name. Input order is preserved; the filter has no state.
func Visible(products []domain.Product, category, query string) []domain.Product {
	query = strings.TrimSpace(query)
	lowerQuery := strings.ToLower(query)

	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !p.Available {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if lowerQuery != "" && !strings.Contains(strings.ToLower(p.Name), lowerQuery) {
			continue
		}
		result = append(result, p)
	}
	return result
}
