package book

import (
	"context"
	"fmt"
)

// DefaultLimit bounds unpaginated list requests.
const DefaultLimit = 100

// Service provides book inventory business logic on top of a Repository.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the supplied fields and stores a new book. The returned
// book carries the generated id and timestamps.
func (s *Service) Create(ctx context.Context, b Book) (Book, error) {
	if err := validateFields(b); err != nil {
		return Book{}, err
	}
	return s.repo.Create(ctx, b)
}

// GetByID returns a book by its id.
func (s *Service) GetByID(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns books in insertion order. Negative offsets are clamped to
// zero and missing or oversized limits fall back to DefaultLimit.
func (s *Service) List(ctx context.Context, q Query) ([]Book, error) {
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.Limit <= 0 || q.Limit > DefaultLimit {
		q.Limit = DefaultLimit
	}
	return s.repo.List(ctx, q)
}

// ListByCategory returns all books in the given category, or ErrNotFound
// when the category holds none.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]Book, error) {
	books, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("%w: no books in category %q", ErrNotFound, category)
	}
	return books, nil
}

// ListBelowStock returns all books with stock strictly below threshold, or
// ErrNotFound when no book qualifies.
func (s *Service) ListBelowStock(ctx context.Context, threshold int) ([]Book, error) {
	books, err := s.repo.ListBelowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("%w: no books below stock %d", ErrNotFound, threshold)
	}
	return books, nil
}

// Update merges only the fields present in the patch into the stored book
// and refreshes updated_at.
func (s *Service) Update(ctx context.Context, id int64, p Patch) (Book, error) {
	if err := validatePatch(p); err != nil {
		return Book{}, err
	}
	return s.repo.Update(ctx, id, p)
}

// Delete removes a book by its id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ValidISBN reports whether s consists of exactly 10 or 13 numeric digits.
func ValidISBN(s string) bool {
	if len(s) != 10 && len(s) != 13 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validateFields(b Book) error {
	if b.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if b.Author == "" {
		return fmt.Errorf("%w: author is required", ErrInvalidInput)
	}
	if !ValidISBN(b.ISBN) {
		return fmt.Errorf("%w: isbn must be 10 or 13 digits", ErrInvalidInput)
	}
	if b.CostUSD < 0 {
		return fmt.Errorf("%w: cost_usd must be non-negative", ErrInvalidInput)
	}
	if b.SellingPriceLocal < 0 {
		return fmt.Errorf("%w: selling_price_local must be non-negative", ErrInvalidInput)
	}
	if b.StockQuantity < 0 {
		return fmt.Errorf("%w: stock_quantity must be non-negative", ErrInvalidInput)
	}
	return nil
}

func validatePatch(p Patch) error {
	if p.ISBN != nil && !ValidISBN(*p.ISBN) {
		return fmt.Errorf("%w: isbn must be 10 or 13 digits", ErrInvalidInput)
	}
	if p.CostUSD != nil && *p.CostUSD < 0 {
		return fmt.Errorf("%w: cost_usd must be non-negative", ErrInvalidInput)
	}
	if p.SellingPriceLocal != nil && *p.SellingPriceLocal < 0 {
		return fmt.Errorf("%w: selling_price_local must be non-negative", ErrInvalidInput)
	}
	if p.StockQuantity != nil && *p.StockQuantity < 0 {
		return fmt.Errorf("%w: stock_quantity must be non-negative", ErrInvalidInput)
	}
	return nil
}
