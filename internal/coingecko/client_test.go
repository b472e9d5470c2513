package coingecko

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/coindeck/coindeck/internal/domain"
	"github.com/coindeck/coindeck/internal/log"
)

const marketsPayload = `[
	{
		"id": "bitcoin",
		"symbol": "btc",
		"name": "Bitcoin",
		"image": "https://assets.example.org/bitcoin.png",
		"current_price": 43250.12,
		"market_cap": 846293741023,
		"market_cap_rank": 1,
		"total_volume": 28109374102,
		"price_change_percentage_24h": -1.52,
		"circulating_supply": 19584231.0,
		"sparkline_in_7d": {"price": [41000.5, 42100.0, 43250.12]},
		"last_updated": "2024-03-14T09:26:53.123Z"
	},
	{
		"id": "ethereum",
		"symbol": "eth",
		"name": "Ethereum",
		"image": "https://assets.example.org/ethereum.png",
		"current_price": 2310.7,
		"market_cap": 277612903841,
		"market_cap_rank": 2,
		"total_volume": 11930174820,
		"price_change_percentage_24h": 0.83,
		"circulating_supply": 120151632.9,
		"sparkline_in_7d": {"price": [2290.1, 2250.4, 2310.7]},
		"last_updated": "2024-03-14T09:26:41.002Z"
	}
]`

func TestMarketsRequestParams(t *testing.T) {
	var gotPath string
	var gotQuery url.Values

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, log.NullLogger())
	_, err := c.Markets(context.Background(), MarketsQuery{
		Currency: "eur",
		Order:    "market_cap_asc",
		Page:     3,
		PerPage:  25,
	})
	if err != nil {
		t.Fatalf("Markets returned error: %v", err)
	}

	if gotPath != "/coins/markets" {
		t.Errorf("path = %q, want /coins/markets", gotPath)
	}

	want := map[string]string{
		"vs_currency": "eur",
		"order":       "market_cap_asc",
		"per_page":    "25",
		"page":        "3",
		"sparkline":   "true",
	}
	for k, v := range want {
		if got := gotQuery.Get(k); got != v {
			t.Errorf("query %s = %q, want %q", k, got, v)
		}
	}
}

func TestMarketsDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(marketsPayload))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, log.NullLogger())
	coins, err := c.Markets(context.Background(), MarketsQuery{
		Currency: "usd",
		Order:    "market_cap_desc",
		Page:     1,
		PerPage:  100,
	})
	if err != nil {
		t.Fatalf("Markets returned error: %v", err)
	}

	if len(coins) != 2 {
		t.Fatalf("got %d coins, want 2", len(coins))
	}

	btc := coins[0]
	if btc.ID != "bitcoin" || btc.Name != "Bitcoin" || btc.DisplaySymbol() != "BTC" {
		t.Errorf("bitcoin fields wrong: %+v", btc)
	}
	if btc.CurrentPrice != 43250.12 {
		t.Errorf("bitcoin price = %v, want 43250.12", btc.CurrentPrice)
	}
	if len(btc.Sparkline.Price) != 3 {
		t.Errorf("bitcoin sparkline has %d points, want 3", len(btc.Sparkline.Price))
	}
	if btc.TrendUp() {
		t.Error("bitcoin series ends below start, TrendUp should be false")
	}

	eth := coins[1]
	if eth.ID != "ethereum" || !eth.TrendUp() {
		t.Errorf("ethereum fields wrong: %+v", eth)
	}
}

func TestMarketsErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			want: domain.ErrRateLimited,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			want: domain.ErrMarketUnavailable,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			want: domain.ErrMarketUnavailable,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"unexpected": "shape"`))
			},
			want: domain.ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(srv.URL, time.Second, log.NullLogger())
			_, err := c.Markets(context.Background(), MarketsQuery{
				Currency: "usd",
				Order:    "market_cap_desc",
				Page:     1,
				PerPage:  100,
			})
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMarketsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := NewClient(srv.URL, time.Second, log.NullLogger())
	_, err := c.Markets(context.Background(), MarketsQuery{
		Currency: "usd",
		Order:    "market_cap_desc",
		Page:     1,
		PerPage:  100,
	})
	if !errors.Is(err, domain.ErrMarketUnavailable) {
		t.Errorf("err = %v, want %v", err, domain.ErrMarketUnavailable)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", 0, nil)
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, DefaultBaseURL)
	}
	if c.httpClient.Timeout != defaultTimeout {
		t.Errorf("timeout = %v, want %v", c.httpClient.Timeout, defaultTimeout)
	}
	if c.logger == nil {
		t.Error("logger should fall back to a default")
	}
}
