package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConverter struct {
	rate float64
	err  error
}

func (s *stubConverter) Convert(_ context.Context, amount float64, from, to string) (Quote, error) {
	if s.err != nil {
		return Quote{}, s.err
	}
	return Quote{
		Amount:          amount,
		FromCurrency:    from,
		ToCurrency:      to,
		Rate:            s.rate,
		ConvertedAmount: round2(amount * s.rate),
		Timestamp:       time.Now().UTC(),
	}, nil
}

func doConvert(t *testing.T, converter Converter, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/books/healthcheck/api/exchange-rate", bytes.NewReader(raw))
	NewHTTPHandler(converter).Convert(w, r)
	return w
}

func TestHTTPHandler_Convert(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		w := doConvert(t, &stubConverter{rate: 0.90}, map[string]any{
			"amount":        10.00,
			"from_currency": "usd",
			"to_currency":   "eur",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"exchange_rate":0.9`)
		assert.Contains(t, w.Body.String(), `"converted_amount":9`)
		// currency codes are normalized to upper case
		assert.Contains(t, w.Body.String(), `"to_currency":"EUR"`)
	})

	t.Run("negative amount", func(t *testing.T) {
		w := doConvert(t, &stubConverter{rate: 0.90}, map[string]any{
			"amount":        -1,
			"from_currency": "USD",
			"to_currency":   "EUR",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("missing currency", func(t *testing.T) {
		w := doConvert(t, &stubConverter{rate: 0.90}, map[string]any{
			"amount":        10,
			"from_currency": "USD",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("bad currency code", func(t *testing.T) {
		w := doConvert(t, &stubConverter{rate: 0.90}, map[string]any{
			"amount":        10,
			"from_currency": "USD",
			"to_currency":   "EURO",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("upstream unavailable", func(t *testing.T) {
		w := doConvert(t, &stubConverter{err: ErrUnavailable}, map[string]any{
			"amount":        10,
			"from_currency": "USD",
			"to_currency":   "EUR",
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "EXTERNAL_SERVICE_ERROR")
	})
}
