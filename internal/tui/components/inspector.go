package components

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"

	"github.com/coindeck/coindeck/internal/domain"
	"github.com/coindeck/coindeck/internal/tui/styles"
)

// Layout constants for inspector
const (
	InspectorBorderHeight     = 2
	InspectorScrollIndicators = 2

	chartHeight = 6
)

// inspectorContent holds the three-zone layout content
type inspectorContent struct {
	header string // fixed top
	body   string // scrollable middle
	footer string // fixed bottom
}

// Inspector displays detail for the selected coin
type Inspector struct {
	coin       *domain.Coin
	currency   domain.Currency
	width      int
	height     int
	offset     int // scroll offset
	maxVisible int // max visible lines
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	return Inspector{}
}

// SetCoin sets the coin to display
func (i *Inspector) SetCoin(coin *domain.Coin, currency domain.Currency) {
	i.coin = coin
	i.currency = currency
	i.offset = 0 // Reset scroll on selection change
}

// HasCoin returns true if there is a coin to display
func (i Inspector) HasCoin() bool {
	return i.coin != nil
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
	// Reserve space for border, scroll indicators, title and blank line
	i.maxVisible = height - InspectorBorderHeight - InspectorScrollIndicators - 2
	if i.maxVisible < 1 {
		i.maxVisible = 1
	}
}

// View renders the component
func (i Inspector) View() string {
	style := styles.InactiveBorder

	// Border takes 2 chars (1 each side), leave 1 char safety margin
	contentWidth := i.width - 3
	if contentWidth < 10 {
		contentWidth = 10
	}
	content := i.renderInspector(contentWidth)

	// Title line (styled, matching the table)
	titleLine := styles.AccentStyle.Render(styles.Truncate("Detail", contentWidth))

	// Three-zone layout: header is fixed, body scrolls, footer is fixed
	headerLines := splitLines(content.header)
	footerLines := splitLines(content.footer)
	bodyLines := splitLines(content.body)

	availableForBody := i.maxVisible - len(headerLines) - len(footerLines)
	if availableForBody < 1 {
		availableForBody = 1
	}

	// Clamp body scroll offset
	totalBodyLines := len(bodyLines)
	maxOffset := totalBodyLines - availableForBody
	if maxOffset < 0 {
		maxOffset = 0
	}
	offset := i.offset
	if offset > maxOffset {
		offset = maxOffset
	}

	end := offset + availableForBody
	if end > totalBodyLines {
		end = totalBodyLines
	}
	visibleBody := bodyLines[offset:end]

	// Scroll indicators for body only
	header := " "
	if offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < totalBodyLines {
		footer = styles.DimStyle.Render("↓ more")
	}

	var parts []string
	parts = append(parts, titleLine)
	parts = append(parts, "")

	if len(headerLines) > 0 && content.header != "" {
		parts = append(parts, strings.Join(headerLines, "\n"))
	}

	parts = append(parts, header)

	if len(visibleBody) > 0 {
		parts = append(parts, strings.Join(visibleBody, "\n"))
	}

	// Pad between body end and footer if body is shorter than available space
	if len(visibleBody) < availableForBody {
		padding := availableForBody - len(visibleBody)
		for j := 0; j < padding; j++ {
			parts = append(parts, "")
		}
	}

	parts = append(parts, footer)

	if len(footerLines) > 0 && content.footer != "" {
		parts = append(parts, strings.Join(footerLines, "\n"))
	}

	rendered := strings.Join(parts, "\n")

	// Subtract frame (border) size so total rendered size equals width x height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(i.width - frameW).
		Height(i.height - frameH).
		Render(rendered)
}

// renderInspector renders the panel content as three zones
func (i Inspector) renderInspector(width int) inspectorContent {
	if i.coin == nil {
		return inspectorContent{body: styles.DimStyle.Render("No coin selected")}
	}
	return inspectorContent{
		header: i.renderHeader(*i.coin, width),
		body:   i.renderBody(*i.coin, width),
		footer: i.renderFooter(*i.coin, width),
	}
}

func (i Inspector) renderHeader(coin domain.Coin, width int) string {
	var b strings.Builder

	name := styles.Truncate(coin.Name, width-len(coin.DisplaySymbol())-1)
	b.WriteString(styles.TitleStyle.Render(name))
	b.WriteString(" ")
	b.WriteString(styles.AccentStyle.Render(coin.DisplaySymbol()))
	b.WriteString("\n")

	if coin.MarketCapRank > 0 {
		b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Rank #%d", coin.MarketCapRank)))
		b.WriteString("\n")
	}

	b.WriteString(styles.TitleStyle.Render(formatPrice(i.currency, coin.CurrentPrice)))
	b.WriteString("  ")
	changeStyle := styles.ErrorStyle
	if coin.PriceChange24h >= 0 {
		changeStyle = styles.SuccessStyle
	}
	b.WriteString(changeStyle.Render(formatChange(coin.PriceChange24h)))
	b.WriteString(styles.DimStyle.Render(" 24h"))

	return strings.TrimRight(b.String(), "\n")
}

func (i Inspector) renderBody(coin domain.Coin, width int) string {
	var b strings.Builder

	b.WriteString(styles.DimStyle.Render("Last 7 days"))
	b.WriteString("\n")
	b.WriteString(i.renderChart(coin, width))
	b.WriteString("\n\n")

	sym := i.currency.Symbol
	b.WriteString(styles.DimStyle.Render("Market Cap: " + sym + formatMarketCap(coin.MarketCap)))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("Volume 24h: " + sym + formatMarketCap(coin.TotalVolume)))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("Supply: " + formatSupply(coin.CirculatingSupply) + " " + coin.DisplaySymbol()))

	if coin.Image != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.DimStyle.Render("Icon:"))
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render(chunkWrap(coin.Image, width)))
	}

	return b.String()
}

func (i Inspector) renderChart(coin domain.Coin, width int) string {
	prices := coin.Sparkline.Price
	if len(prices) < 2 {
		return styles.DimStyle.Render("No chart data")
	}

	chartWidth := width - 12 // leave room for the y-axis labels
	if chartWidth < 10 {
		chartWidth = 10
	}

	chart := asciigraph.Plot(prices,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Precision(2),
	)

	if coin.TrendUp() {
		return styles.SuccessStyle.Render(chart)
	}
	return styles.ErrorStyle.Render(chart)
}

func (i Inspector) renderFooter(coin domain.Coin, width int) string {
	updated := coin.UpdatedAt()
	if updated.IsZero() {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.DimStyle.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("Updated " + humanize.Time(updated)))

	return b.String()
}

// splitLines splits a string into lines, returning nil for empty string
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// chunkWrap hard-wraps a string every width runes, for URLs and other
// text without natural break points
func chunkWrap(s string, width int) string {
	if width <= 0 {
		return s
	}

	var result strings.Builder
	runes := []rune(s)
	for start := 0; start < len(runes); start += width {
		end := start + width
		if end > len(runes) {
			end = len(runes)
		}
		if start > 0 {
			result.WriteString("\n")
		}
		result.WriteString(string(runes[start:end]))
	}
	return result.String()
}
