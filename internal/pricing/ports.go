package pricing

import (
	"context"

	"bookinv/internal/book"
)

// BookStore is the slice of the book repository the pricing service needs:
// looking a book up and writing its selling price back.
type BookStore interface {
	GetByID(ctx context.Context, id int64) (book.Book, error)
	Update(ctx context.Context, id int64, p book.Patch) (book.Book, error)
}
