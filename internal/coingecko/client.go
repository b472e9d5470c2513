package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/coindeck/coindeck/internal/domain"
)

const (
	// DefaultBaseURL is the public CoinGecko v3 API root.
	DefaultBaseURL = "https://api.coingecko.com/api/v3"

	defaultTimeout = 30 * time.Second
	userAgent      = "Coindeck/1.0"
)

// Client talks to the CoinGecko REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a CoinGecko API client. An empty baseURL falls back to
// DefaultBaseURL and a non-positive timeout falls back to defaultTimeout.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// MarketsQuery selects one page of market data.
type MarketsQuery struct {
	Currency string // vs_currency code, e.g. "usd"
	Order    string // API sort key, e.g. "market_cap_desc"
	Page     int    // 1-based page number
	PerPage  int    // rows per page
}

// Markets fetches one page of coins ordered by the given key, including the
// 7-day sparkline series for each coin.
func (c *Client) Markets(ctx context.Context, q MarketsQuery) ([]domain.Coin, error) {
	query := url.Values{}
	query.Set("vs_currency", q.Currency)
	query.Set("order", q.Order)
	query.Set("per_page", strconv.Itoa(q.PerPage))
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("sparkline", "true")

	body, err := c.doRequest(ctx, http.MethodGet, "/coins/markets", query)
	if err != nil {
		return nil, err
	}

	var coins []domain.Coin
	if err := json.Unmarshal(body, &coins); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}

	return coins, nil
}

// doRequest performs an HTTP request against the API and classifies failures
// into the domain error values.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("coingecko request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("coingecko request failed", "error", err)
		return nil, domain.ErrMarketUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		c.logger.Error("coingecko rate limit hit", "status", resp.StatusCode)
		return nil, domain.ErrRateLimited
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("coingecko request error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: status %d", domain.ErrMarketUnavailable, resp.StatusCode)
	}

	return body, nil
}
