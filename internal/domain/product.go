package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product statuses. A closed product is terminal: it never changes again.
const (
	StatusActive = "active"
	StatusPaused = "paused"
	StatusClosed = "closed"
)

// Product conditions.
const (
	ConditionNew          = "new"
	ConditionUsed         = "used"
	ConditionNotSpecified = "not_specified"
)

// Attribute ids with special meaning for search.
const (
	AttributeBrand        = "BRAND"
	AttributeFootwearType = "FOOTWEAR_TYPE"
	AttributeClothingType = "CLOTHING_TYPE"
	AttributeModel        = "MODEL"
)

// Statuses lists the valid product statuses.
func Statuses() []string {
	return []string{StatusActive, StatusPaused, StatusClosed}
}

// Product is a catalog listing with its pictures, attributes and variations.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CurrencyID  string          `json:"currency_id"`
	Condition   string          `json:"condition"`
	Status      string          `json:"status"`
	Thumbnail   string          `json:"thumbnail,omitempty"`
	Permalink   string          `json:"permalink,omitempty"`
	DateCreated time.Time       `json:"date_created"`
	LastUpdated time.Time       `json:"last_updated"`
	Pictures    []Picture       `json:"pictures,omitempty"`
	Attributes  []Attribute     `json:"attributes,omitempty"`
	Variations  []Variation     `json:"variations,omitempty"`
}

// Attribute describes a product characteristic such as brand or material.
type Attribute struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ValueName string `json:"value_name"`
}

// Variation is one purchasable configuration of a product (size, color, ...).
type Variation struct {
	ID                    int64                  `json:"id"`
	Price                 decimal.Decimal        `json:"price"`
	AvailableQuantity     int                    `json:"available_quantity"`
	AttributeCombinations []AttributeCombination `json:"attribute_combinations,omitempty"`
}

// AttributeCombination is one name/value pair of a variation.
type AttributeCombination struct {
	Name      string `json:"name"`
	ValueName string `json:"value_name"`
}

// Picture holds the plain and https URLs of a product image.
type Picture struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	SecureURL string `json:"secure_url"`
}

// Clone returns an independent copy of the product. Mutating the copy must
// never be observable through the original, so nested slices are copied too.
func (p Product) Clone() Product {
	cp := p
	if p.Pictures != nil {
		cp.Pictures = make([]Picture, len(p.Pictures))
		copy(cp.Pictures, p.Pictures)
	}
	if p.Attributes != nil {
		cp.Attributes = make([]Attribute, len(p.Attributes))
		copy(cp.Attributes, p.Attributes)
	}
	if p.Variations != nil {
		cp.Variations = make([]Variation, len(p.Variations))
		for i, v := range p.Variations {
			if v.AttributeCombinations != nil {
				combos := make([]AttributeCombination, len(v.AttributeCombinations))
				copy(combos, v.AttributeCombinations)
				v.AttributeCombinations = combos
			}
			cp.Variations[i] = v
		}
	}
	return cp
}

// BrandName returns the value of the BRAND attribute, or "" when absent.
func (p Product) BrandName() string {
	for _, attr := range p.Attributes {
		if attr.ID == AttributeBrand {
			return attr.ValueName
		}
	}
	return ""
}
