// Package catalog implements the product catalog operations: lifecycle
// mutations gated by validation, multi-criteria search, sorted and paginated
// listing, batch operations and aggregate statistics.
package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"mercadolibre-replica/internal/domain"
	"mercadolibre-replica/internal/idgen"
	productrepo "mercadolibre-replica/internal/repository/product"
	"mercadolibre-replica/internal/search"
)

const maxBatchSize = 100

// New products below this price are rejected at creation.
var minNewProductPrice = decimal.NewFromInt(100)

type Service struct {
	repo      productrepo.Repository
	ids       idgen.Generator
	idPattern *regexp.Regexp
	siteID    string
	logger    *log.Logger
	now       func() time.Time
}

// New builds a Service. prefix is the catalog id prefix (e.g. "MLA"); ids
// must produce values matching prefix followed by digits.
func New(repo productrepo.Repository, ids idgen.Generator, prefix, siteID string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		repo:      repo,
		ids:       ids,
		idPattern: regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `\d+$`),
		siteID:    siteID,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateInput carries the structurally pre-validated fields of a new product.
type CreateInput struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Price       decimal.Decimal    `json:"price"`
	CurrencyID  string             `json:"currency_id"`
	Condition   string             `json:"condition"`
	Thumbnail   string             `json:"thumbnail"`
	Pictures    []domain.Picture   `json:"pictures"`
	Attributes  []domain.Attribute `json:"attributes"`
	Variations  []domain.Variation `json:"variations"`
}

// UpdateInput is a partial update: only non-nil fields overwrite the product.
type UpdateInput struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CurrencyID  *string          `json:"currency_id"`
	Condition   *string          `json:"condition"`
	Status      *string          `json:"status"`
	Thumbnail   *string          `json:"thumbnail"`
}

// SearchParams are the optional filters of an advanced search. Blank or nil
// values do not filter.
type SearchParams struct {
	Query     string
	Brand     string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	Condition string
	Offset    int
	Limit     int
	SortBy    string
}

// Create validates the business rules, assigns an id and inserts the product
// with status active.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	if in.Price.Sign() <= 0 {
		return nil, domain.Invalidf("price must be greater than 0")
	}
	if err := validateCondition(in.Condition); err != nil {
		return nil, err
	}
	if in.Condition == domain.ConditionNew && in.Price.Cmp(minNewProductPrice) < 0 {
		return nil, domain.Invalidf("new products require a minimum price of %s", minNewProductPrice)
	}

	id := s.ids.NewID()
	if err := validateID(s.idPattern, id); err != nil {
		return nil, fmt.Errorf("id generator broke its contract: %w", err)
	}

	now := s.now().UTC()
	p := domain.Product{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		CurrencyID:  in.CurrencyID,
		Condition:   in.Condition,
		Status:      domain.StatusActive,
		Thumbnail:   in.Thumbnail,
		DateCreated: now,
		LastUpdated: now,
		Pictures:    in.Pictures,
		Attributes:  in.Attributes,
		Variations:  in.Variations,
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Printf("catalog: created id=%s title=%q", p.ID, p.Title)
	return &p, nil
}

// CreateBatch creates up to 100 products sequentially. The first failure
// aborts the whole batch.
func (s *Service) CreateBatch(ctx context.Context, ins []CreateInput) ([]domain.Product, error) {
	if len(ins) > maxBatchSize {
		return nil, domain.Invalidf("cannot create more than %d products at once", maxBatchSize)
	}
	created := make([]domain.Product, 0, len(ins))
	for i, in := range ins {
		p, err := s.Create(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("batch item %d: %w", i, err)
		}
		created = append(created, *p)
	}
	return created, nil
}

// GetByID validates the id shape and returns the product.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := validateID(s.idPattern, id); err != nil {
		return nil, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, id)
	}
	return p, nil
}

// List returns a sorted, paginated page over the whole catalog.
func (s *Service) List(ctx context.Context, offset, limit int, sortBy string) (*ListResponse, error) {
	if err := validatePagination(offset, limit); err != nil {
		return nil, err
	}
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	page, paging := search.Paginate(search.Sort(all, sortBy), offset, limit)
	return &ListResponse{
		Results: toSummaries(page),
		Paging:  paging,
	}, nil
}

// AdvancedSearch filters, sorts and paginates the catalog and wraps the page
// in the full search envelope.
func (s *Service) AdvancedSearch(ctx context.Context, params SearchParams) (*ListResponse, error) {
	if err := validatePagination(params.Offset, params.Limit); err != nil {
		return nil, err
	}
	if err := validatePriceRange(params.MinPrice, params.MaxPrice); err != nil {
		return nil, err
	}

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := search.Advanced(all, params.Query, params.Brand, params.MinPrice, params.MaxPrice, params.Condition)
	page, paging := search.Paginate(search.Sort(matched, params.SortBy), params.Offset, params.Limit)

	resp := s.buildListResponse(toSummaries(page), params.Query, paging, params.SortBy)
	s.logger.Printf("catalog: advanced search query=%q brand=%q matched=%d", params.Query, params.Brand, paging.Total)
	return resp, nil
}

// SearchByTitle returns every product whose title contains title, which must
// be at least 2 characters long.
func (s *Service) SearchByTitle(ctx context.Context, title string) ([]domain.Product, error) {
	trimmed := strings.TrimSpace(title)
	if len(trimmed) < 2 {
		return nil, domain.Invalidf("title must be at least 2 characters long")
	}
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return search.ByTitleContains(all, trimmed), nil
}

// SearchByBrand returns every product of the given brand. Unknown brands are
// rejected with the list of available ones.
func (s *Service) SearchByBrand(ctx context.Context, brand string) ([]domain.Product, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateBrandExists(brand, search.AllBrands(all)); err != nil {
		return nil, err
	}
	return search.ByBrand(all, brand), nil
}

// SearchByPriceRange returns products priced inside the inclusive range,
// optionally restricted to one currency.
func (s *Service) SearchByPriceRange(ctx context.Context, min, max *decimal.Decimal, currencyID string) ([]domain.Product, error) {
	if err := validatePriceRange(min, max); err != nil {
		return nil, err
	}
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	results := search.ByPriceRange(all, min, max)
	if currencyID != "" {
		results = search.ByCurrency(results, currencyID)
	}
	return results, nil
}

// Update overwrites the fields present in the partial input and refreshes the
// last-update timestamp. Absent fields are left untouched.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error) {
	if err := validateID(s.idPattern, id); err != nil {
		return nil, err
	}
	if in.Price != nil && in.Price.Sign() <= 0 {
		return nil, domain.Invalidf("price must be greater than 0")
	}
	updated, err := s.repo.Update(ctx, id, func(p *domain.Product) error {
		mergeUpdate(p, in)
		p.LastUpdated = s.now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Printf("catalog: updated id=%s", id)
	return updated, nil
}

// UpdatePrice sets a new price. reason is audit metadata: it is logged and
// has no further effect.
func (s *Service) UpdatePrice(ctx context.Context, id string, newPrice decimal.Decimal, reason string) (*domain.Product, error) {
	if err := validateID(s.idPattern, id); err != nil {
		return nil, err
	}
	if newPrice.Sign() <= 0 {
		return nil, domain.Invalidf("price must be greater than 0")
	}
	var oldPrice decimal.Decimal
	updated, err := s.repo.Update(ctx, id, func(p *domain.Product) error {
		oldPrice = p.Price
		p.Price = newPrice
		p.LastUpdated = s.now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Printf("catalog: price updated id=%s %s -> %s reason=%q", id, oldPrice, newPrice, reason)
	return updated, nil
}

// UpdateStatus transitions the product to newStatus. Transitions out of
// closed are illegal; everything else, self-transitions included, is allowed.
func (s *Service) UpdateStatus(ctx context.Context, id, newStatus string) (*domain.Product, error) {
	if err := validateID(s.idPattern, id); err != nil {
		return nil, err
	}
	if err := validateStatus(newStatus); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, func(p *domain.Product) error {
		if err := validateStatusTransition(p.Status, newStatus); err != nil {
			return err
		}
		p.Status = newStatus
		p.LastUpdated = s.now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Printf("catalog: status updated id=%s status=%s", id, newStatus)
	return updated, nil
}

// SoftDelete closes the product. Deleting an already closed product is an
// error; closed is terminal.
func (s *Service) SoftDelete(ctx context.Context, id string) error {
	if err := validateID(s.idPattern, id); err != nil {
		return err
	}
	_, err := s.repo.Update(ctx, id, func(p *domain.Product) error {
		if p.Status == domain.StatusClosed {
			return domain.Invalidf("product is already deleted")
		}
		p.Status = domain.StatusClosed
		p.LastUpdated = s.now().UTC()
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Printf("catalog: soft deleted id=%s", id)
	return nil
}

// DeleteBatch soft-deletes each id, tallying per-item outcomes instead of
// propagating failures. It never fails as a whole.
func (s *Service) DeleteBatch(ctx context.Context, ids []string) BatchResult {
	result := BatchResult{TotalProcessed: len(ids)}
	for _, id := range ids {
		if err := s.SoftDelete(ctx, id); err != nil {
			s.logger.Printf("catalog: batch delete id=%s failed: %v", id, err)
			result.Failed++
			continue
		}
		result.Successful++
	}
	return result
}

// Statistics aggregates counts and the distinct brand/category sets over one
// consistent snapshot.
func (s *Service) Statistics(ctx context.Context) (*Statistics, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	brands := search.AllBrands(all)
	categories := search.AllCategories(all)
	return &Statistics{
		TotalProducts:          len(all),
		ActiveProducts:         len(search.ByStatus(all, domain.StatusActive)),
		TotalBrands:            len(brands),
		TotalCategories:        len(categories),
		ProductsWithVariations: len(search.WithVariations(all)),
		Brands:                 brands,
		Categories:             categories,
	}, nil
}

// Count reports the current store size.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func mergeUpdate(p *domain.Product, in UpdateInput) {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.CurrencyID != nil {
		p.CurrencyID = *in.CurrencyID
	}
	if in.Condition != nil {
		p.Condition = *in.Condition
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.Thumbnail != nil {
		p.Thumbnail = *in.Thumbnail
	}
}
