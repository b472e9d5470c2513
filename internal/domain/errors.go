package domain

import "errors"

// Sentinel errors for market data operations
var (
	// ErrMarketUnavailable indicates the market data API could not be
	// reached or answered with an unexpected status
	ErrMarketUnavailable = errors.New("market data is unavailable")

	// ErrRateLimited indicates the API rejected the request with HTTP 429
	ErrRateLimited = errors.New("market data request was rate limited")

	// ErrInvalidResponse indicates the API returned a payload that could
	// not be decoded
	ErrInvalidResponse = errors.New("market data response is invalid")
)
