package pricing

import (
	"math"
	"time"
)

// DefaultMarginPercent is the markup applied when the caller does not
// supply one.
const DefaultMarginPercent = 40.0

// BaseCurrency is the currency book costs are stated in.
const BaseCurrency = "USD"

// Result is the detailed outcome of one price calculation. All monetary
// values and the rate are rounded to 2 decimal places.
type Result struct {
	BookID        int64     `json:"id"`
	CostUSD       float64   `json:"cost_usd"`
	ExchangeRate  float64   `json:"exchange_rate"`
	CostLocal     float64   `json:"cost_local"`
	MarginPercent float64   `json:"margin_percentage"`
	SellingPrice  float64   `json:"selling_price"`
	Currency      string    `json:"currency"`
	CalculatedAt  time.Time `json:"calculation_timestamp"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
