package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.fastforex.io"

// Config holds the FastForex connection settings. It is passed in at
// construction so nothing in this package reads ambient state.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client looks up exchange rates from FastForex.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
	}
}

// fetchOneResponse matches fetch-one: {"result": {"<TO>": <rate>}}.
type fetchOneResponse struct {
	Result map[string]float64 `json:"result"`
}

// Convert fetches the rate for the currency pair and applies it to amount.
// A failed call surfaces immediately as ErrUnavailable; there is no retry.
func (c *Client) Convert(ctx context.Context, amount float64, from, to string) (Quote, error) {
	u := fmt.Sprintf("%s/fetch-one?from=%s&to=%s&api_key=%s",
		c.baseURL, url.QueryEscape(from), url.QueryEscape(to), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("%w: unexpected status code %d", ErrUnavailable, resp.StatusCode)
	}

	var body fetchOneResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Quote{}, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}

	rate, ok := body.Result[to]
	if !ok {
		return Quote{}, fmt.Errorf("%w: no rate for %s", ErrUnavailable, to)
	}

	return Quote{
		Amount:          amount,
		FromCurrency:    from,
		ToCurrency:      to,
		Rate:            rate,
		ConvertedAmount: round2(amount * rate),
		Timestamp:       time.Now().UTC(),
	}, nil
}
