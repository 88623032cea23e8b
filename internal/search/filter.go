// Package search holds the read-only transforms applied to store snapshots:
// multi-field filtering, stable ordering and pagination. All textual
// comparisons are case-insensitive.
package search

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"mercadolibre-replica/internal/domain"
)

// ByTitleContains keeps products whose title contains substr. Length rules
// for substr are enforced by the caller, not here.
func ByTitleContains(products []domain.Product, substr string) []domain.Product {
	needle := strings.ToLower(substr)
	out := make([]domain.Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), needle) {
			out = append(out, p)
		}
	}
	return out
}

// ByBrand keeps products carrying a BRAND attribute equal to brand.
func ByBrand(products []domain.Product, brand string) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range products {
		if hasBrand(p, brand) {
			out = append(out, p)
		}
	}
	return out
}

// ByPriceRange keeps products with min <= price <= max, bounds inclusive.
// A nil bound means unbounded on that side.
func ByPriceRange(products []domain.Product, min, max *decimal.Decimal) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range products {
		if inPriceRange(p, min, max) {
			out = append(out, p)
		}
	}
	return out
}

// ByCondition keeps products with the given condition.
func ByCondition(products []domain.Product, condition string) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range products {
		if strings.EqualFold(p.Condition, condition) {
			out = append(out, p)
		}
	}
	return out
}

// ByStatus keeps products with the given status.
func ByStatus(products []domain.Product, status string) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range products {
		if strings.EqualFold(p.Status, status) {
			out = append(out, p)
		}
	}
	return out
}

// ByCurrency keeps products priced in the given currency.
func ByCurrency(products []domain.Product, currencyID string) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range products {
		if strings.EqualFold(p.CurrencyID, currencyID) {
			out = append(out, p)
		}
	}
	return out
}

// WithVariations keeps products that have at least one variation.
func WithVariations(products []domain.Product) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range products {
		if len(p.Variations) > 0 {
			out = append(out, p)
		}
	}
	return out
}

// Advanced applies the AND of the title, brand, price-range and condition
// filters. Blank or nil arguments do not filter; with every argument absent
// the snapshot is returned unchanged.
func Advanced(products []domain.Product, query, brand string, min, max *decimal.Decimal, condition string) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if query != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(query)) {
			continue
		}
		if brand != "" && !hasBrand(p, brand) {
			continue
		}
		if !inPriceRange(p, min, max) {
			continue
		}
		if condition != "" && !strings.EqualFold(p.Condition, condition) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// AllBrands returns the distinct BRAND attribute values, sorted ascending.
func AllBrands(products []domain.Product) []string {
	return distinctAttributeValues(products, domain.AttributeBrand)
}

// AllCategories returns the distinct values of the category-signal
// attributes (footwear type, clothing type, model), sorted ascending.
func AllCategories(products []domain.Product) []string {
	return distinctAttributeValues(products,
		domain.AttributeFootwearType, domain.AttributeClothingType, domain.AttributeModel)
}

func hasBrand(p domain.Product, brand string) bool {
	for _, attr := range p.Attributes {
		if attr.ID == domain.AttributeBrand && strings.EqualFold(attr.ValueName, brand) {
			return true
		}
	}
	return false
}

func inPriceRange(p domain.Product, min, max *decimal.Decimal) bool {
	if min != nil && p.Price.Cmp(*min) < 0 {
		return false
	}
	if max != nil && p.Price.Cmp(*max) > 0 {
		return false
	}
	return true
}

func distinctAttributeValues(products []domain.Product, attributeIDs ...string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, p := range products {
		for _, attr := range p.Attributes {
			if attr.ValueName == "" {
				continue
			}
			for _, id := range attributeIDs {
				if attr.ID != id {
					continue
				}
				if _, ok := seen[attr.ValueName]; !ok {
					seen[attr.ValueName] = struct{}{}
					values = append(values, attr.ValueName)
				}
			}
		}
	}
	sort.Strings(values)
	return values
}
