package catalog

import (
	"sort"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/upstream"
)

// sortProducts orders in place. Price sorting compares the cheapest variant;
// anything else compares update time. An empty sort key keeps the upstream
// order.
func sortProducts(products []upstream.Product, sortKey string, reverse bool) {
	if sortKey == "" {
		return
	}

	if sortKey == SortKeyPrice {
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceRange.MinVariantPrice.AmountDecimal().
				LessThan(products[j].PriceRange.MinVariantPrice.AmountDecimal())
		})
	} else {
		sort.SliceStable(products, func(i, j int) bool {
			return updatedAt(products[i]).Before(updatedAt(products[j]))
		})
	}

	if reverse {
		for i, j := 0, len(products)-1; i < j; i, j = i+1, j-1 {
			products[i], products[j] = products[j], products[i]
		}
	}
}

// updatedAt parses the product timestamp; malformed values sort first.
func updatedAt(product upstream.Product) time.Time {
	parsed, err := time.Parse(time.RFC3339, product.UpdatedAt)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
