package book

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repository used by tests and local tooling.
// It mirrors the Postgres contract, including ISBN uniqueness and
// insertion-order listing.
type MemoryRepo struct {
	mu     sync.RWMutex
	books  map[int64]Book
	order  []int64
	nextID int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{books: make(map[int64]Book), nextID: 1}
}

func (r *MemoryRepo) Create(_ context.Context, b Book) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.books {
		if existing.ISBN == b.ISBN {
			return Book{}, fmt.Errorf("%w: %s", ErrDuplicateISBN, b.ISBN)
		}
	}

	now := time.Now().UTC()
	b.ID = r.nextID
	b.CreatedAt = now
	b.UpdatedAt = now
	r.nextID++
	r.books[b.ID] = b
	r.order = append(r.order, b.ID)
	return b, nil
}

func (r *MemoryRepo) GetByID(_ context.Context, id int64) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (r *MemoryRepo) List(_ context.Context, q Query) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Book
	for i := q.Offset; i < len(r.order) && len(out) < q.Limit; i++ {
		out = append(out, r.books[r.order[i]])
	}
	return out, nil
}

func (r *MemoryRepo) ListByCategory(_ context.Context, category string) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Book
	for _, id := range r.order {
		if r.books[id].Category == category {
			out = append(out, r.books[id])
		}
	}
	return out, nil
}

func (r *MemoryRepo) ListBelowStock(_ context.Context, threshold int) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Book
	for _, id := range r.order {
		if r.books[id].StockQuantity < threshold {
			out = append(out, r.books[id])
		}
	}
	return out, nil
}

func (r *MemoryRepo) Update(_ context.Context, id int64, p Patch) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}

	if p.ISBN != nil && *p.ISBN != b.ISBN {
		for _, existing := range r.books {
			if existing.ID != id && existing.ISBN == *p.ISBN {
				return Book{}, fmt.Errorf("%w: %s", ErrDuplicateISBN, *p.ISBN)
			}
		}
		b.ISBN = *p.ISBN
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.CostUSD != nil {
		b.CostUSD = *p.CostUSD
	}
	if p.SellingPriceLocal != nil {
		b.SellingPriceLocal = *p.SellingPriceLocal
	}
	if p.StockQuantity != nil {
		b.StockQuantity = *p.StockQuantity
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.SupplierCountry != nil {
		b.SupplierCountry = *p.SupplierCountry
	}

	b.UpdatedAt = time.Now().UTC()
	r.books[id] = b
	return b, nil
}

func (r *MemoryRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return ErrNotFound
	}
	delete(r.books, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
