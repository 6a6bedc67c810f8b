package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

const bookColumns = `id, title, author, isbn, cost_usd, selling_price_local,
       stock_quantity, category, supplier_country, created_at, updated_at`

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.CostUSD, &b.SellingPriceLocal,
		&b.StockQuantity, &b.Category, &b.SupplierCountry, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func (r *PostgresRepo) Create(ctx context.Context, b Book) (Book, error) {
	const query = `
		INSERT INTO books (title, author, isbn, cost_usd, selling_price_local,
		                   stock_quantity, category, supplier_country, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + bookColumns

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	created, err := scanBook(r.db.QueryRow(timeoutCtx, query,
		b.Title, b.Author, b.ISBN, b.CostUSD, b.SellingPriceLocal,
		b.StockQuantity, b.Category, b.SupplierCountry,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return Book{}, fmt.Errorf("%w: %s", ErrDuplicateISBN, b.ISBN)
		}
		return Book{}, err
	}
	return created, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books ORDER BY id LIMIT $1 OFFSET $2`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBooks(rows)
}

func (r *PostgresRepo) ListByCategory(ctx context.Context, category string) ([]Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE category = $1 ORDER BY id`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBooks(rows)
}

func (r *PostgresRepo) ListBelowStock(ctx context.Context, threshold int) ([]Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE stock_quantity < $1 ORDER BY id`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBooks(rows)
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, p Patch) (Book, error) {
	sets := []string{}
	args := []any{}
	argn := 1

	add := func(col string, val any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, argn))
		args = append(args, val)
		argn++
	}

	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Author != nil {
		add("author", *p.Author)
	}
	if p.ISBN != nil {
		add("isbn", *p.ISBN)
	}
	if p.CostUSD != nil {
		add("cost_usd", *p.CostUSD)
	}
	if p.SellingPriceLocal != nil {
		add("selling_price_local", *p.SellingPriceLocal)
	}
	if p.StockQuantity != nil {
		add("stock_quantity", *p.StockQuantity)
	}
	if p.Category != nil {
		add("category", *p.Category)
	}
	if p.SupplierCountry != nil {
		add("supplier_country", *p.SupplierCountry)
	}

	// updated_at refreshes even for an empty patch.
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(`UPDATE books SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), argn, bookColumns)
	args = append(args, id)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		if isUniqueViolation(err) {
			return Book{}, fmt.Errorf("%w: %s", ErrDuplicateISBN, *p.ISBN)
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM books WHERE id = $1`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectBooks(rows pgx.Rows) ([]Book, error) {
	var out []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
