package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultChartBaseURL is the production chart API base.
const DefaultChartBaseURL = "https://query1.finance.yahoo.com"

// YahooClient fetches intraday prices from the Yahoo Finance chart API.
// It requests 1-minute candles for the current session and takes the most
// recent close.
type YahooClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ Source = (*YahooClient)(nil)

// YahooOption customises a YahooClient.
type YahooOption func(*YahooClient)

// WithBaseURL overrides the chart API base URL (used in tests).
func WithBaseURL(baseURL string) YahooOption {
	return func(c *YahooClient) { c.baseURL = baseURL }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) YahooOption {
	return func(c *YahooClient) { c.httpClient = hc }
}

// NewYahooClient creates a chart API client.
func NewYahooClient(opts ...YahooOption) *YahooClient {
	c := &YahooClient{
		baseURL:    DefaultChartBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// chartResponse is the subset of the chart payload the client reads.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// LatestPrice returns the last non-null 1-minute close of the current session,
// falling back to the regular market price when the close series is empty.
func (c *YahooClient) LatestPrice(ctx context.Context, symbol string) (float64, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1m&range=1d", c.baseURL, url.PathEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("build chart request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch chart: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, ErrNoData
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("chart request failed: status %d", resp.StatusCode)
	}

	var chart chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return 0, fmt.Errorf("decode chart response: %w", err)
	}

	if chart.Chart.Error != nil || len(chart.Chart.Result) == 0 {
		return 0, ErrNoData
	}

	result := chart.Chart.Result[0]
	for _, q := range result.Indicators.Quote {
		for i := len(q.Close) - 1; i >= 0; i-- {
			if q.Close[i] != nil {
				return *q.Close[i], nil
			}
		}
	}

	if result.Meta.RegularMarketPrice > 0 {
		return result.Meta.RegularMarketPrice, nil
	}
	return 0, ErrNoData
}
