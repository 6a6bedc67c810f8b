package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	})
}

func TestClient_Convert(t *testing.T) {
	t.Run("uses the fetched rate", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/fetch-one", r.URL.Path)
			assert.Equal(t, "USD", r.URL.Query().Get("from"))
			assert.Equal(t, "EUR", r.URL.Query().Get("to"))
			assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"result": {"EUR": 0.90}}`))
		}))
		defer srv.Close()

		quote, err := newTestClient(srv).Convert(context.Background(), 10.00, "USD", "EUR")
		require.NoError(t, err)

		assert.Equal(t, 10.00, quote.Amount)
		assert.Equal(t, "USD", quote.FromCurrency)
		assert.Equal(t, "EUR", quote.ToCurrency)
		assert.Equal(t, 0.90, quote.Rate)
		assert.Equal(t, 9.00, quote.ConvertedAmount)
		assert.False(t, quote.Timestamp.IsZero())
	})

	t.Run("rounds converted amount to two decimals", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"result": {"COP": 4113.557}}`))
		}))
		defer srv.Close()

		quote, err := newTestClient(srv).Convert(context.Background(), 10.99, "USD", "COP")
		require.NoError(t, err)

		assert.Equal(t, 45207.99, quote.ConvertedAmount)
	})

	t.Run("missing target rate", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"result": {"GBP": 0.78}}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv).Convert(context.Background(), 10.00, "USD", "EUR")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("upstream error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		_, err := newTestClient(srv).Convert(context.Background(), 10.00, "USD", "EUR")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv).Convert(context.Background(), 10.00, "USD", "EUR")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("unreachable upstream", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		_, err := newTestClient(srv).Convert(context.Background(), 10.00, "USD", "EUR")
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}
