package market

import (
	"sort"
	"strings"

	"github.com/coindeck/coindeck/internal/domain"
)

// PriceSort orders the displayed rows by current price on top of the
// server-side ordering.
type PriceSort int

const (
	PriceSortNone PriceSort = iota
	PriceSortAsc
	PriceSortDesc
)

// Label returns a short description for the status line, empty when off.
func (p PriceSort) Label() string {
	switch p {
	case PriceSortAsc:
		return "price ↑"
	case PriceSortDesc:
		return "price ↓"
	default:
		return ""
	}
}

// FilterByName returns the coins whose name contains the query,
// case-insensitively. An empty query returns the input unchanged.
func FilterByName(coins []domain.Coin, query string) []domain.Coin {
	if query == "" {
		return coins
	}
	q := strings.ToLower(query)
	out := make([]domain.Coin, 0, len(coins))
	for _, c := range coins {
		if strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	return out
}

// FilterByRange returns the coins whose current price falls inside r.
// A nil range returns the input unchanged.
func FilterByRange(coins []domain.Coin, r *domain.PriceRange) []domain.Coin {
	if r == nil {
		return coins
	}
	out := make([]domain.Coin, 0, len(coins))
	for _, c := range coins {
		if r.Contains(c.CurrentPrice) {
			out = append(out, c)
		}
	}
	return out
}

// SortByPrice returns the coins ordered by current price. PriceSortNone
// returns the input unchanged; otherwise a sorted copy is returned so the
// caller keeps the server ordering.
func SortByPrice(coins []domain.Coin, order PriceSort) []domain.Coin {
	if order == PriceSortNone {
		return coins
	}
	out := make([]domain.Coin, len(coins))
	copy(out, coins)
	sort.SliceStable(out, func(i, j int) bool {
		if order == PriceSortAsc {
			return out[i].CurrentPrice < out[j].CurrentPrice
		}
		return out[i].CurrentPrice > out[j].CurrentPrice
	})
	return out
}
