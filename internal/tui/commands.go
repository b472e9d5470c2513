package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/coindeck/coindeck/internal/coingecko"
	"github.com/coindeck/coindeck/internal/market"
)

// Command factories for async operations

// FetchMarketsCmd fetches one page of market rows. The request id rides
// along so the model can discard completions that are no longer current.
func FetchMarketsCmd(client *coingecko.Client, req market.FetchRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		coins, err := client.Markets(ctx, coingecko.MarketsQuery{
			Currency: req.Currency.Code,
			Order:    req.Order.Key,
			Page:     req.Page,
			PerPage:  req.PerPage,
		})
		if err != nil {
			return MarketsErrMsg{ReqID: req.ID, Err: err}
		}
		return MarketsMsg{ReqID: req.ID, Coins: coins}
	}
}

// TickCmd returns a command that ticks after the given duration
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
