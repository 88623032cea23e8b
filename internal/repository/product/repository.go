package product

import (
	"context"

	"mercadolibre-replica/internal/domain"
)

// Repository owns the canonical product collection. Every product crossing
// the boundary is an independent copy: callers never share backing slices
// with the store.
type Repository interface {
	// Insert adds a product. Fails with domain.ErrDuplicate when the id is taken.
	Insert(ctx context.Context, p domain.Product) error
	// GetByID returns a copy of the product or domain.ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// ListAll returns a point-in-time copy of every product, in insertion order.
	ListAll(ctx context.Context) ([]domain.Product, error)
	// Count returns the current number of products.
	Count(ctx context.Context) (int, error)
	// Update applies mutate to the stored product under the write lock and
	// returns a copy of the result. The product is unchanged when mutate errors.
	Update(ctx context.Context, id string, mutate func(*domain.Product) error) (*domain.Product, error)
}
