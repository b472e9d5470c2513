package tui

import (
	"github.com/coindeck/coindeck/internal/domain"
)

// Message types for the TUI

// MarketsMsg delivers one fetched page of market rows
type MarketsMsg struct {
	ReqID uint64
	Coins []domain.Coin
}

// MarketsErrMsg reports a failed page fetch
type MarketsErrMsg struct {
	ReqID uint64
	Err   error
}

// Error implements the error interface
func (e MarketsErrMsg) Error() string {
	return e.Err.Error()
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
