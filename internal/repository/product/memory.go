package product

import (
	"context"
	"io"
	"log"
	"sync"

	"mercadolibre-replica/internal/domain"
)

type memoryRepo struct {
	mu     sync.RWMutex
	items  []domain.Product
	index  map[string]int
	logger *log.Logger
}

// NewMemory returns an in-memory Repository guarded by a reader/writer lock.
// Reads see a consistent snapshot; mutations are mutually exclusive with all
// other mutations and with snapshot reads.
func NewMemory(logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &memoryRepo{
		index:  make(map[string]int),
		logger: logger,
	}
}

func (r *memoryRepo) Insert(_ context.Context, p domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[p.ID]; ok {
		r.logger.Printf("product repo: insert id=%s duplicate", p.ID)
		return domain.ErrDuplicate
	}
	r.index[p.ID] = len(r.items)
	r.items = append(r.items, p.Clone())
	r.logger.Printf("product repo: inserted id=%s title=%q count=%d", p.ID, p.Title, len(r.items))
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.index[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := r.items[idx].Clone()
	return &cp, nil
}

func (r *memoryRepo) ListAll(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]domain.Product, len(r.items))
	for i, p := range r.items {
		snapshot[i] = p.Clone()
	}
	return snapshot, nil
}

func (r *memoryRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

func (r *memoryRepo) Update(_ context.Context, id string, mutate func(*domain.Product) error) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.index[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	// Mutate a copy so a failing mutate leaves the stored product untouched.
	cp := r.items[idx].Clone()
	if err := mutate(&cp); err != nil {
		return nil, err
	}
	r.items[idx] = cp
	out := cp.Clone()
	r.logger.Printf("product repo: updated id=%s status=%s", id, cp.Status)
	return &out, nil
}
