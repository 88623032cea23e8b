package catalog

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"mercadolibre-replica/internal/domain"
)

const (
	minLimit = 1
	maxLimit = 200
)

func validateID(pattern *regexp.Regexp, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Invalidf("product id cannot be empty")
	}
	if !pattern.MatchString(id) {
		return domain.Invalidf("product id must match %s", pattern)
	}
	return nil
}

func validatePagination(offset, limit int) error {
	if offset < 0 {
		return domain.Invalidf("offset cannot be negative")
	}
	if limit < minLimit || limit > maxLimit {
		return domain.Invalidf("limit must be between %d and %d", minLimit, maxLimit)
	}
	return nil
}

func validatePriceRange(min, max *decimal.Decimal) error {
	if min != nil && min.Sign() < 0 {
		return domain.Invalidf("minimum price cannot be negative")
	}
	if max != nil && max.Sign() <= 0 {
		return domain.Invalidf("maximum price must be greater than 0")
	}
	if min != nil && max != nil && min.Cmp(*max) > 0 {
		return domain.Invalidf("minimum price cannot exceed maximum price")
	}
	return nil
}

func validateStatus(status string) error {
	for _, valid := range domain.Statuses() {
		if status == valid {
			return nil
		}
	}
	return domain.Invalidf("invalid status %q, valid statuses: %s", status, strings.Join(domain.Statuses(), ", "))
}

// validateStatusTransition forbids any transition out of closed. Every other
// transition, self-transitions included, is allowed.
func validateStatusTransition(from, to string) error {
	if from == domain.StatusClosed {
		return domain.Invalidf("cannot change the status of a closed product")
	}
	return nil
}

func validateCondition(condition string) error {
	switch condition {
	case domain.ConditionNew, domain.ConditionUsed, domain.ConditionNotSpecified:
		return nil
	}
	return domain.Invalidf("invalid condition %q", condition)
}

// validateBrandExists matches case-insensitively so brand filters behave like
// the brand search itself.
func validateBrandExists(brand string, available []string) error {
	for _, b := range available {
		if strings.EqualFold(b, brand) {
			return nil
		}
	}
	return domain.Invalidf("brand %q does not exist, available brands: %s", brand, strings.Join(available, ", "))
}
