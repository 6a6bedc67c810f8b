package pricing

import (
	"context"

	"github.com/rs/zerolog/log"

	"bookinv/internal/book"
	"bookinv/internal/exchange"
)

// Service computes localized selling prices: fetch rate, apply margin,
// persist the result onto the book.
type Service struct {
	books BookStore
	rates exchange.Converter
}

// NewService creates a new pricing service.
func NewService(books BookStore, rates exchange.Converter) *Service {
	return &Service{books: books, rates: rates}
}

// CalculatePrice converts the book's cost into toCurrency, applies the
// margin and persists the selling price. A marginPercent of zero or less
// falls back to DefaultMarginPercent.
//
// The conversion and the persistence write are two independent steps: when
// the write fails after a successful conversion the computed result is
// still returned and the failure is only logged.
func (s *Service) CalculatePrice(ctx context.Context, bookID int64, toCurrency string, marginPercent float64) (Result, error) {
	if marginPercent <= 0 {
		marginPercent = DefaultMarginPercent
	}

	b, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return Result{}, err
	}

	quote, err := s.rates.Convert(ctx, b.CostUSD, BaseCurrency, toCurrency)
	if err != nil {
		return Result{}, err
	}

	costLocal := round2(quote.ConvertedAmount)
	sellingPrice := round2(costLocal * (1 + marginPercent/100))

	result := Result{
		BookID:        b.ID,
		CostUSD:       round2(b.CostUSD),
		ExchangeRate:  round2(quote.Rate),
		CostLocal:     costLocal,
		MarginPercent: round2(marginPercent),
		SellingPrice:  sellingPrice,
		Currency:      toCurrency,
		CalculatedAt:  quote.Timestamp,
	}

	if _, err := s.books.Update(ctx, bookID, book.Patch{SellingPriceLocal: &sellingPrice}); err != nil {
		log.Warn().
			Int64("book_id", bookID).
			Str("currency", toCurrency).
			Err(err).
			Msg("selling price computed but not persisted")
	}

	return result, nil
}
