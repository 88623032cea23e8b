package catalog

import (
	"github.com/shopspring/decimal"

	"mercadolibre-replica/internal/domain"
	"mercadolibre-replica/internal/search"
)

// Summary is the compact product shape used in listing results.
type Summary struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	CurrencyID string          `json:"currency_id"`
	Condition  string          `json:"condition"`
	Thumbnail  string          `json:"thumbnail,omitempty"`
	Status     string          `json:"status"`
}

// SortOption is one entry of the sort-options catalog. Active marks the sort
// applied to the current result set.
type SortOption struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// ListResponse is the paginated result envelope for listings and searches.
type ListResponse struct {
	SiteID         string        `json:"site_id,omitempty"`
	Query          string        `json:"query,omitempty"`
	Paging         search.Paging `json:"paging"`
	Results        []Summary     `json:"results"`
	Sort           *SortOption   `json:"sort,omitempty"`
	AvailableSorts []SortOption  `json:"available_sorts,omitempty"`
}

// BatchResult tallies the per-item outcomes of a batch operation.
type BatchResult struct {
	TotalProcessed int    `json:"totalProcessed"`
	Successful     int    `json:"successful"`
	Failed         int    `json:"failed"`
	Message        string `json:"message,omitempty"`
}

// Statistics aggregates the catalog-wide counters.
type Statistics struct {
	TotalProducts          int      `json:"totalProducts"`
	ActiveProducts         int      `json:"activeProducts"`
	TotalBrands            int      `json:"totalBrands"`
	TotalCategories        int      `json:"totalCategories"`
	ProductsWithVariations int      `json:"productsWithVariations"`
	Brands                 []string `json:"brands"`
	Categories             []string `json:"categories"`
}

// SortOptions lists every advertised sort. title_desc and date_asc are
// advertised here but fall through to input order in the sort engine.
func (s *Service) SortOptions() []SortOption {
	return []SortOption{
		{ID: "relevance", Name: "Más relevantes"},
		{ID: search.SortPriceAsc, Name: "Menor precio"},
		{ID: search.SortPriceDesc, Name: "Mayor precio"},
		{ID: search.SortTitleAsc, Name: "A-Z"},
		{ID: "title_desc", Name: "Z-A"},
		{ID: search.SortDateDesc, Name: "Más recientes"},
		{ID: "date_asc", Name: "Más antiguos"},
	}
}

func (s *Service) buildListResponse(results []Summary, query string, paging search.Paging, sortBy string) *ListResponse {
	available := s.SortOptions()
	var active *SortOption
	if sortBy != "" {
		for i := range available {
			if available[i].ID == sortBy {
				available[i].Active = true
				active = &available[i]
				break
			}
		}
	}
	return &ListResponse{
		SiteID:         s.siteID,
		Query:          query,
		Paging:         paging,
		Results:        results,
		Sort:           active,
		AvailableSorts: available,
	}
}

func toSummaries(products []domain.Product) []Summary {
	out := make([]Summary, 0, len(products))
	for _, p := range products {
		out = append(out, Summary{
			ID:         p.ID,
			Title:      p.Title,
			Price:      p.Price,
			CurrencyID: p.CurrencyID,
			Condition:  p.Condition,
			Thumbnail:  p.Thumbnail,
			Status:     p.Status,
		})
	}
	return out
}
