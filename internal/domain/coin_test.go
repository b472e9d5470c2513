package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCoinTrendUp(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
		up     bool
	}{
		{"rising", []float64{100, 120, 150}, true},
		{"falling", []float64{150, 120, 100}, false},
		{"flat tie counts as up", []float64{100, 100}, true},
		{"dip then recovery above start", []float64{100, 50, 101}, true},
		{"only endpoints matter", []float64{100, 900, 99}, false},
		{"single point", []float64{42}, true},
		{"empty series", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Coin{Sparkline: Sparkline{Price: tt.series}}
			if got := c.TrendUp(); got != tt.up {
				t.Errorf("TrendUp() = %v, want %v for series %v", got, tt.up, tt.series)
			}
		})
	}
}

func TestCoinDecode(t *testing.T) {
	raw := `{
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
	}`

	var c Coin
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if c.ID != "bitcoin" || c.Name != "Bitcoin" {
		t.Errorf("identity fields wrong: %q %q", c.ID, c.Name)
	}
	if c.CurrentPrice != 43250.12 {
		t.Errorf("CurrentPrice = %v, want 43250.12", c.CurrentPrice)
	}
	if c.MarketCapRank != 1 {
		t.Errorf("MarketCapRank = %d, want 1", c.MarketCapRank)
	}
	if len(c.Sparkline.Price) != 3 || c.Sparkline.Price[0] != 41000.5 {
		t.Errorf("sparkline not decoded: %v", c.Sparkline.Price)
	}
	if c.DisplaySymbol() != "BTC" {
		t.Errorf("DisplaySymbol() = %q, want BTC", c.DisplaySymbol())
	}
	if c.UpdatedAt().IsZero() {
		t.Error("UpdatedAt() returned zero time for valid timestamp")
	}
}

func TestCoinUpdatedAtMalformed(t *testing.T) {
	c := Coin{LastUpdated: "yesterday-ish"}
	if !c.UpdatedAt().Equal(time.Time{}) {
		t.Errorf("UpdatedAt() = %v, want zero time", c.UpdatedAt())
	}
}
