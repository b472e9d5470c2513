package domain

import "fmt"

// Currency selects the quote currency for market requests. Code is the
// API parameter value, Symbol the prefix shown before prices.
type Currency struct {
	Code   string
	Symbol string
	Label  string
}

var (
	CurrencyUSD = Currency{Code: "usd", Symbol: "$", Label: "USD"}
	CurrencyEUR = Currency{Code: "eur", Symbol: "€", Label: "EUR"}
)

// Currencies returns the selectable currencies in menu order.
func Currencies() []Currency {
	return []Currency{CurrencyUSD, CurrencyEUR}
}

// CurrencyByCode resolves a currency from its API code.
func CurrencyByCode(code string) (Currency, bool) {
	for _, c := range Currencies() {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// SortOrder selects the server-side ordering of market pages. Key is the
// API parameter value.
type SortOrder struct {
	Key   string
	Label string
}

var (
	OrderMarketCapDesc = SortOrder{Key: "market_cap_desc", Label: "Market Cap ↓"}
	OrderMarketCapAsc  = SortOrder{Key: "market_cap_asc", Label: "Market Cap ↑"}
)

// SortOrders returns the selectable sort orders in menu order.
func SortOrders() []SortOrder {
	return []SortOrder{OrderMarketCapDesc, OrderMarketCapAsc}
}

// SortOrderByKey resolves a sort order from its API key.
func SortOrderByKey(key string) (SortOrder, bool) {
	for _, o := range SortOrders() {
		if o.Key == key {
			return o, true
		}
	}
	return SortOrder{}, false
}

// PageSizes returns the selectable rows-per-page values in cycle order.
func PageSizes() []int {
	return []int{10, 25, 50, 100}
}

// PriceRange is one client-side price bucket. A nil Max means the bucket
// is open-ended upward.
type PriceRange struct {
	Label string
	Min   float64
	Max   *float64
}

// Contains reports whether a price falls in the bucket. Both bounds are
// inclusive, so a price sitting exactly on a boundary belongs to the
// buckets on either side of it.
func (r PriceRange) Contains(price float64) bool {
	if price < r.Min {
		return false
	}
	return r.Max == nil || price <= *r.Max
}

// PriceRanges returns the fixed bucket set: 100-wide buckets up to 700,
// then a single open-ended one.
func PriceRanges() []PriceRange {
	ranges := make([]PriceRange, 0, 8)
	for lo := 0.0; lo < 700; lo += 100 {
		hi := lo + 100
		ranges = append(ranges, PriceRange{
			Label: fmt.Sprintf("%.0f - %.0f", lo, hi),
			Min:   lo,
			Max:   &hi,
		})
	}
	ranges = append(ranges, PriceRange{Label: "> 700", Min: 700})
	return ranges
}
