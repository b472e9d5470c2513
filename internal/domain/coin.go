package domain

import (
	"strings"
	"time"
)

// Coin is one market row as served by the markets endpoint. Values are
// carried verbatim from the API; nothing is recomputed or merged locally,
// and the whole set is replaced on every successful fetch.
type Coin struct {
	ID                string    `json:"id"`
	Symbol            string    `json:"symbol"`
	Name              string    `json:"name"`
	Image             string    `json:"image"`
	CurrentPrice      float64   `json:"current_price"`
	MarketCap         float64   `json:"market_cap"`
	MarketCapRank     int       `json:"market_cap_rank"`
	TotalVolume       float64   `json:"total_volume"`
	PriceChange24h    float64   `json:"price_change_percentage_24h"`
	CirculatingSupply float64   `json:"circulating_supply"`
	Sparkline         Sparkline `json:"sparkline_in_7d"`
	LastUpdated       string    `json:"last_updated"`
}

// Sparkline carries the inline 7-day price series requested with
// sparkline=true.
type Sparkline struct {
	Price []float64 `json:"price"`
}

// TrendUp reports whether the 7-day series ends at or above where it
// started. A tie counts as up; series too short to compare count as up.
func (c Coin) TrendUp() bool {
	s := c.Sparkline.Price
	if len(s) < 2 {
		return true
	}
	return s[len(s)-1] >= s[0]
}

// DisplaySymbol returns the ticker symbol in the upper-cased form used
// for display.
func (c Coin) DisplaySymbol() string {
	return strings.ToUpper(c.Symbol)
}

// UpdatedAt parses the last_updated timestamp. Returns the zero time if
// the field is missing or malformed.
func (c Coin) UpdatedAt() time.Time {
	t, err := time.Parse(time.RFC3339, c.LastUpdated)
	if err != nil {
		return time.Time{}
	}
	return t
}
