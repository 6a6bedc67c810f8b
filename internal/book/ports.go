package book

import (
	"context"
)

// Repository defines the contract for book data storage.
type Repository interface {
	Create(ctx context.Context, b Book) (Book, error)
	GetByID(ctx context.Context, id int64) (Book, error)
	List(ctx context.Context, q Query) ([]Book, error)
	ListByCategory(ctx context.Context, category string) ([]Book, error)
	ListBelowStock(ctx context.Context, threshold int) ([]Book, error)
	Update(ctx context.Context, id int64, p Patch) (Book, error)
	Delete(ctx context.Context, id int64) error
}
