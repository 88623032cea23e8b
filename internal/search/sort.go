package search

import (
	"sort"
	"strings"

	"mercadolibre-replica/internal/domain"
)

// Sort keys understood by Sort. The sort-options catalog also advertises
// title_desc and date_asc, which fall through to input order like any other
// unrecognized key.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortTitleAsc  = "title_asc"
	SortDateDesc  = "date_desc"
)

// Sort returns a stably ordered copy of products for the named sort key.
// Ties keep their original relative order. An unknown or blank key leaves
// the input order unchanged.
func Sort(products []domain.Product, sortBy string) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)

	var less func(a, b domain.Product) bool
	switch strings.ToLower(sortBy) {
	case SortPriceAsc:
		less = func(a, b domain.Product) bool { return a.Price.Cmp(b.Price) < 0 }
	case SortPriceDesc:
		less = func(a, b domain.Product) bool { return a.Price.Cmp(b.Price) > 0 }
	case SortTitleAsc:
		less = func(a, b domain.Product) bool { return a.Title < b.Title }
	case SortDateDesc:
		less = func(a, b domain.Product) bool { return a.DateCreated.After(b.DateCreated) }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
