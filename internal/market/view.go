package market

import "github.com/coindeck/coindeck/internal/domain"

const defaultPageSize = 10

// FetchRequest describes one page fetch issued by the view. The ID ties the
// eventual response back to its issue; only the response for the most
// recently issued ID is ever applied.
type FetchRequest struct {
	ID       uint64
	Currency domain.Currency
	Order    domain.SortOrder
	Page     int
	PerPage  int
}

// View holds the market browsing state: the fetch inputs (currency, order,
// page) and the page-scoped display controls (name query, price range,
// price sort), together with the most recently fetched page of coins.
//
// It contains no terminal types, so tests can drive it directly.
type View struct {
	currency domain.Currency
	order    domain.SortOrder
	page     int
	pageSize int

	query     string
	rng       *domain.PriceRange
	priceSort PriceSort

	coins    []domain.Coin
	loading  bool
	fetched  bool // at least one page has arrived
	lastFull bool // the fetched page held exactly pageSize rows

	lastReq uint64 // id of the most recently issued fetch
}

// NewView creates a view on the first page of the given currency and order.
func NewView(currency domain.Currency, order domain.SortOrder, pageSize int) *View {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &View{
		currency: currency,
		order:    order,
		page:     1,
		pageSize: pageSize,
	}
}

// IssueFetch marks the view as loading and returns the request to run for
// the current currency, order and page. Each call invalidates all earlier
// requests.
func (v *View) IssueFetch() FetchRequest {
	v.lastReq++
	v.loading = true
	return FetchRequest{
		ID:       v.lastReq,
		Currency: v.currency,
		Order:    v.order,
		Page:     v.page,
		PerPage:  v.pageSize,
	}
}

// ApplyResult installs a fetched page and reports whether it was applied.
// Responses for anything but the most recent request leave the view
// untouched.
func (v *View) ApplyResult(id uint64, coins []domain.Coin) bool {
	if id != v.lastReq {
		return false
	}
	v.coins = coins
	v.loading = false
	v.fetched = true
	v.lastFull = len(coins) == v.pageSize
	return true
}

// ApplyError clears the loading flag for a failed fetch and reports whether
// the error was current. The previously fetched page stays in place.
func (v *View) ApplyError(id uint64) bool {
	if id != v.lastReq {
		return false
	}
	v.loading = false
	return true
}

// SetCurrency switches the quote currency. It reports whether the view
// changed and a new fetch is needed; any change rewinds to the first page.
func (v *View) SetCurrency(c domain.Currency) bool {
	if c.Code == v.currency.Code {
		return false
	}
	v.currency = c
	v.page = 1
	return true
}

// SetOrder switches the server-side sort order. It reports whether the view
// changed and a new fetch is needed; any change rewinds to the first page.
func (v *View) SetOrder(o domain.SortOrder) bool {
	if o.Key == v.order.Key {
		return false
	}
	v.order = o
	v.page = 1
	return true
}

// SetPageSize changes the rows fetched per page. It reports whether the
// view changed and a new fetch is needed; any change rewinds to the first
// page.
func (v *View) SetPageSize(n int) bool {
	if n <= 0 || n == v.pageSize {
		return false
	}
	v.pageSize = n
	v.page = 1
	return true
}

// NextPage advances to the next page when the current one came back full.
// A short page is the last one the API has.
func (v *View) NextPage() bool {
	if !v.lastFull {
		return false
	}
	v.page++
	return true
}

// PrevPage steps back one page.
func (v *View) PrevPage() bool {
	if v.page <= 1 {
		return false
	}
	v.page--
	return true
}

// SetQuery sets the name filter applied to the displayed rows.
func (v *View) SetQuery(q string) { v.query = q }

// SetPriceRange sets the price bucket filter; nil clears it.
func (v *View) SetPriceRange(r *domain.PriceRange) { v.rng = r }

// CyclePriceSort steps the display price sort none, ascending, descending
// and back to none, returning the new value.
func (v *View) CyclePriceSort() PriceSort {
	switch v.priceSort {
	case PriceSortNone:
		v.priceSort = PriceSortAsc
	case PriceSortAsc:
		v.priceSort = PriceSortDesc
	default:
		v.priceSort = PriceSortNone
	}
	return v.priceSort
}

// Rows returns the coins to display: the fetched page narrowed by the name
// query and price range, then reordered by the price sort. The fetched page
// itself is never mutated.
func (v *View) Rows() []domain.Coin {
	rows := FilterByName(v.coins, v.query)
	rows = FilterByRange(rows, v.rng)
	return SortByPrice(rows, v.priceSort)
}

// Coins returns the raw fetched page.
func (v *View) Coins() []domain.Coin { return v.coins }

// Currency returns the active quote currency.
func (v *View) Currency() domain.Currency { return v.currency }

// Order returns the active server-side sort order.
func (v *View) Order() domain.SortOrder { return v.order }

// Page returns the 1-based page number.
func (v *View) Page() int { return v.page }

// PageSize returns the rows requested per page.
func (v *View) PageSize() int { return v.pageSize }

// Query returns the active name filter.
func (v *View) Query() string { return v.query }

// PriceRange returns the active price bucket, nil when off.
func (v *View) PriceRange() *domain.PriceRange { return v.rng }

// PriceSort returns the active display price sort.
func (v *View) PriceSort() PriceSort { return v.priceSort }

// Loading reports whether a fetch is in flight.
func (v *View) Loading() bool { return v.loading }

// Fetched reports whether any page has arrived yet.
func (v *View) Fetched() bool { return v.fetched }

// HasNext reports whether a further page may exist. The API sends no total,
// so a full page is the only signal that more rows could follow.
func (v *View) HasNext() bool { return v.lastFull }

// Total reports the exact number of coins the API has for the current
// currency and order. It is only known while looking at a short final page;
// ok is false otherwise.
func (v *View) Total() (int, bool) {
	if !v.fetched || v.loading || v.lastFull {
		return 0, false
	}
	return (v.page-1)*v.pageSize + len(v.coins), true
}
