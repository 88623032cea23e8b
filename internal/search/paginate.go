package search

import "mercadolibre-replica/internal/domain"

// Paging carries the navigation metadata derived from a paginated listing.
type Paging struct {
	Total           int  `json:"total"`
	PrimaryResults  int  `json:"primary_results"`
	Offset          int  `json:"offset"`
	Limit           int  `json:"limit"`
	HasNextPage     bool `json:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page"`
	NextOffset      *int `json:"next_offset,omitempty"`
	PreviousOffset  *int `json:"previous_offset,omitempty"`
}

// Paginate slices products at offset, keeping up to limit elements, and
// derives the navigation metadata from the pre-slice length.
func Paginate(products []domain.Product, offset, limit int) ([]domain.Product, Paging) {
	total := len(products)

	paging := Paging{
		Total:           total,
		PrimaryResults:  total,
		Offset:          offset,
		Limit:           limit,
		HasNextPage:     offset+limit < total,
		HasPreviousPage: offset > 0,
	}
	if paging.HasNextPage {
		next := offset + limit
		paging.NextOffset = &next
	}
	if paging.HasPreviousPage {
		prev := offset - limit
		if prev < 0 {
			prev = 0
		}
		paging.PreviousOffset = &prev
	}

	if offset >= total {
		return []domain.Product{}, paging
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := make([]domain.Product, end-offset)
	copy(page, products[offset:end])
	return page, paging
}
