package exchange

import (
	"context"
	"errors"
	"math"
	"time"
)

// ErrUnavailable is returned when the upstream rate provider cannot be
// reached or answers with something other than a usable rate.
var ErrUnavailable = errors.New("exchange rate service unavailable")

// Quote is the result of one currency conversion. Quotes are ephemeral:
// they are returned to callers but never persisted.
type Quote struct {
	Amount          float64   `json:"amount"`
	FromCurrency    string    `json:"from_currency"`
	ToCurrency      string    `json:"to_currency"`
	Rate            float64   `json:"exchange_rate"`
	ConvertedAmount float64   `json:"converted_amount"`
	Timestamp       time.Time `json:"calculation_timestamp"`
}

// Converter resolves a rate for a currency pair and converts an amount.
type Converter interface {
	Convert(ctx context.Context, amount float64, from, to string) (Quote, error)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
