package tui

import (
	"fmt"
	"strings"

	"github.com/coindeck/coindeck/internal/market"
	"github.com/coindeck/coindeck/internal/tui/styles"
)

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return styles.SpinnerStyle.Render(frames[frame%len(frames)])
}

// marketSummary builds the footer summary of the current view state:
// currency, order, pagination knowledge and any client-side narrowing.
func marketSummary(v *market.View) string {
	parts := []string{
		v.Currency().Label,
		v.Order().Label,
		fmt.Sprintf("Page %d", v.Page()),
		fmt.Sprintf("%d/page", v.PageSize()),
	}

	// The API exposes no total, so only report what the page lengths prove:
	// a short page fixes the exact count, a full page means more may follow.
	if total, ok := v.Total(); ok {
		parts = append(parts, fmt.Sprintf("%d coins", total))
	} else if v.HasNext() {
		parts = append(parts, "more…")
	}

	if r := v.PriceRange(); r != nil {
		parts = append(parts, r.Label)
	}
	if label := v.PriceSort().Label(); label != "" {
		parts = append(parts, label)
	}

	return strings.Join(parts, " · ")
}
