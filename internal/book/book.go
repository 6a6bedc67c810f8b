package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// ErrDuplicateISBN is returned when a create or update would reuse an
// ISBN that already belongs to another book.
var ErrDuplicateISBN = errors.New("isbn already exists")

// ErrInvalidInput is returned for malformed book fields (bad ISBN,
// negative numeric values, missing required strings).
var ErrInvalidInput = errors.New("invalid book input")

// Book represents one inventory item. CostUSD is the acquisition cost in
// the base currency; SellingPriceLocal is written by the pricing service.
type Book struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	Author            string    `json:"author"`
	ISBN              string    `json:"isbn"`
	CostUSD           float64   `json:"cost_usd"`
	SellingPriceLocal float64   `json:"selling_price_local"`
	StockQuantity     int       `json:"stock_quantity"`
	Category          string    `json:"category"`
	SupplierCountry   string    `json:"supplier_country"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Patch carries a partial update. Only non-nil fields are applied;
// everything else keeps its stored value.
type Patch struct {
	Title             *string
	Author            *string
	ISBN              *string
	CostUSD           *float64
	SellingPriceLocal *float64
	StockQuantity     *int
	Category          *string
	SupplierCountry   *string
}

// IsEmpty reports whether the patch carries no fields at all.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Author == nil && p.ISBN == nil &&
		p.CostUSD == nil && p.SellingPriceLocal == nil && p.StockQuantity == nil &&
		p.Category == nil && p.SupplierCountry == nil
}

// Query defines pagination for listing books. Offset is zero-based and
// results follow insertion order.
type Query struct {
	Offset int
	Limit  int
}
