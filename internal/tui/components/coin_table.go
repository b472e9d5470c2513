package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/coindeck/coindeck/internal/domain"
	"github.com/coindeck/coindeck/internal/tui/styles"
)

// Spinner frames for loading animation
var tableSpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Layout constants for the coin table
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2

	// Column widths, excluding the one-space gap after each cell
	rankWidth   = 4
	priceWidth  = 13
	changeWidth = 8
	capWidth    = 18
	supplyWidth = 18
	sparkWide   = 10
	sparkNarrow = 8
	symbolWidth = 6

	// Interior width at which the 24h change and market cap columns appear
	wideThreshold = 100
)

// CoinTable is a scrollable table of market rows. The rows handed to it are
// already filtered and sorted; the table only handles display, selection and
// the filter input widget.
type CoinTable struct {
	rows     []domain.Coin
	rawCount int // rows on the fetched page before narrowing
	currency domain.Currency

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	// Table title (shown in header)
	title string

	// Loading state
	loading      bool
	spinnerFrame int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
}

// NewCoinTable creates an empty coin table
func NewCoinTable() *CoinTable {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &CoinTable{
		filterInput: ti,
	}
}

// SetRows replaces the displayed rows. rawCount is the size of the fetched
// page before the name and range filters narrowed it.
func (c *CoinTable) SetRows(rows []domain.Coin, rawCount int, currency domain.Currency) {
	c.rows = rows
	c.rawCount = rawCount
	c.currency = currency
	if c.cursor > len(rows)-1 {
		c.cursor = len(rows) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
	c.ensureVisible()
}

func (c *CoinTable) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

func (c *CoinTable) SetFocused(focused bool) {
	c.focused = focused
}

func (c *CoinTable) IsFocused() bool {
	return c.focused
}

func (c *CoinTable) Title() string {
	return c.title
}

func (c *CoinTable) SetTitle(title string) {
	c.title = title
}

func (c *CoinTable) SetLoading(loading bool) {
	c.loading = loading
}

func (c *CoinTable) IsLoading() bool {
	return c.loading
}

// SetSpinnerFrame updates the spinner animation frame
func (c *CoinTable) SetSpinnerFrame(frame int) {
	c.spinnerFrame = frame
}

// SelectedCoin returns the coin under the cursor, nil when the table is empty
func (c *CoinTable) SelectedCoin() *domain.Coin {
	if len(c.rows) == 0 || c.cursor >= len(c.rows) {
		return nil
	}
	return &c.rows[c.cursor]
}

func (c *CoinTable) SelectedIndex() int {
	return c.cursor
}

func (c *CoinTable) SetSelectedIndex(idx int) {
	max := len(c.rows) - 1
	if max < 0 {
		c.cursor = 0
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx > max {
		idx = max
	}
	c.cursor = idx
	c.ensureVisible()
}

func (c *CoinTable) RowCount() int {
	return len(c.rows)
}

// MoveCursor moves the selection by delta rows, clamped to the table
func (c *CoinTable) MoveCursor(delta int) {
	if len(c.rows) == 0 {
		return
	}
	c.cursor += delta
	if c.cursor < 0 {
		c.cursor = 0
	}
	if c.cursor > len(c.rows)-1 {
		c.cursor = len(c.rows) - 1
	}
	c.ensureVisible()
}

// HandleKey processes a navigation key, returns whether it was consumed
func (c *CoinTable) HandleKey(key string) bool {
	if len(c.rows) == 0 {
		return false
	}

	switch key {
	case "j", "down":
		c.MoveCursor(1)
		return true
	case "k", "up":
		c.MoveCursor(-1)
		return true
	case "g":
		c.cursor = 0
		c.offset = 0
		return true
	case "G":
		c.cursor = len(c.rows) - 1
		c.ensureVisible()
		return true
	case "ctrl+d":
		c.MoveCursor(c.maxVisible / 2)
		return true
	case "ctrl+u":
		c.MoveCursor(-c.maxVisible / 2)
		return true
	}

	return false
}

// Filter input

// ToggleFilter activates the filter input
func (c *CoinTable) ToggleFilter() {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
}

// ClearFilter deactivates the filter and empties the input
func (c *CoinTable) ClearFilter() {
	c.filterActive = false
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
}

// FocusFilter puts the filter input back into typing mode
func (c *CoinTable) FocusFilter() {
	c.filterInput.Focus()
}

// BlurFilter leaves the filter applied but returns keys to navigation
func (c *CoinTable) BlurFilter() {
	c.filterInput.Blur()
}

// IsFiltering returns true if filter mode is active
func (c *CoinTable) IsFiltering() bool {
	return c.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (c *CoinTable) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// FilterValue returns the current filter text
func (c *CoinTable) FilterValue() string {
	return c.filterInput.Value()
}

// UpdateFilter routes a message to the filter input
func (c *CoinTable) UpdateFilter(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.filterInput, cmd = c.filterInput.Update(msg)
	return cmd
}

// Internal methods

func (c *CoinTable) recalcMaxVisible() {
	// Interior height minus title, column header and scroll indicators
	interiorHeight := c.height - BorderHeight
	c.maxVisible = interiorHeight - ScrollIndicatorLines - 2
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *CoinTable) ensureVisible() {
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

// Rendering

func (c *CoinTable) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	content := c.renderContent()

	// Subtract frame (border) size so total rendered size equals width x height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(c.width - frameW).
		Height(c.height - frameH).
		Render(content)
}

func (c *CoinTable) renderContent() string {
	itemWidth := c.width - BorderWidth
	if itemWidth < 10 {
		itemWidth = 10
	}
	wide := itemWidth >= wideThreshold

	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title, itemWidth))
	headerLine := c.renderColumnHeader(itemWidth, wide)

	if c.loading && len(c.rows) == 0 {
		spinner := tableSpinnerFrames[c.spinnerFrame%len(tableSpinnerFrames)]
		loadingLine := styles.DimStyle.Render(spinner + " Loading...")
		return titleLine + "\n" + headerLine + "\n" + " " + "\n" + loadingLine + "\n" + " "
	}

	count := len(c.rows)
	if count == 0 {
		emptyMsg := styles.DimStyle.Render("No coins")
		if c.rawCount > 0 {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := titleLine + "\n" + headerLine + "\n" + " " + "\n" + emptyMsg + "\n" + " "
		if c.filterActive {
			content += "\n" + c.renderFilterBar()
		}
		return content
	}

	var lines []string

	end := c.offset + c.maxVisible
	if end > count {
		end = count
	}

	for i := c.offset; i < end; i++ {
		lines = append(lines, c.renderRow(c.rows[i], i == c.cursor, itemWidth, wide))
	}

	// ALWAYS reserve space for header (even if empty) to prevent layout shifts
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}

	// ALWAYS reserve space for footer (even if empty)
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := strings.Join(lines, "\n")
	content = titleLine + "\n" + headerLine + "\n" + header + "\n" + content + "\n" + footer

	if c.filterActive {
		content += "\n" + c.renderFilterBar()
	}

	return content
}

func (c *CoinTable) nameWidth(itemWidth int, wide bool) int {
	fixed := rankWidth + 1 + priceWidth + 1 + supplyWidth + 1
	if wide {
		fixed += changeWidth + 1 + capWidth + 1 + sparkWide
	} else {
		fixed += sparkNarrow
	}
	nameW := itemWidth - 2 - fixed // 2 for the row margins
	if nameW < 12 {
		nameW = 12
	}
	return nameW
}

func (c *CoinTable) renderColumnHeader(itemWidth int, wide bool) string {
	nameW := c.nameWidth(itemWidth, wide)

	line := " " + styles.PadLeft("#", rankWidth) + " " +
		styles.Pad("NAME", nameW) +
		styles.PadLeft("PRICE", priceWidth) + " "
	if wide {
		line += styles.PadLeft("24H", changeWidth) + " " +
			styles.PadLeft("MKT CAP", capWidth) + " "
	}
	line += styles.PadLeft("SUPPLY", supplyWidth) + " "
	if wide {
		line += styles.Pad("7D", sparkWide)
	} else {
		line += styles.Pad("7D", sparkNarrow)
	}

	return styles.DimStyle.Render(line)
}

func (c *CoinTable) renderRow(coin domain.Coin, selected bool, itemWidth int, wide bool) string {
	nameW := c.nameWidth(itemWidth, wide)

	rank := "-"
	if coin.MarketCapRank > 0 {
		rank = strconv.Itoa(coin.MarketCapRank)
	}

	trendFg := styles.Red
	if coin.TrendUp() {
		trendFg = styles.Green
	}
	changeFg := styles.Red
	if coin.PriceChange24h >= 0 {
		changeFg = styles.Green
	}

	sparkW := sparkNarrow
	if wide {
		sparkW = sparkWide
	}

	nameBound := nameW - symbolWidth - 1
	gold := styles.Gold
	dim := styles.DimGray

	parts := []styles.RowPart{
		{Text: styles.PadLeft(rank, rankWidth) + " ", Foreground: &dim},
		{Text: styles.Pad(styles.Truncate(coin.Name, nameBound), nameBound) + " "},
		{Text: styles.Pad(coin.DisplaySymbol(), symbolWidth), Foreground: &gold},
		{Text: styles.PadLeft(formatPrice(c.currency, coin.CurrentPrice), priceWidth) + " "},
	}

	if wide {
		parts = append(parts,
			styles.RowPart{Text: styles.PadLeft(formatChange(coin.PriceChange24h), changeWidth) + " ", Foreground: &changeFg},
			styles.RowPart{Text: styles.PadLeft(formatMarketCap(coin.MarketCap), capWidth) + " "},
		)
	}

	parts = append(parts,
		styles.RowPart{Text: styles.PadLeft(formatSupply(coin.CirculatingSupply), supplyWidth) + " "},
		styles.RowPart{
			Text:       styles.Sparkline(coin.Sparkline.Price, sparkW),
			Foreground: &trendFg,
		})

	return styles.RenderListRow(parts, selected, itemWidth)
}

func (c *CoinTable) renderFilterBar() string {
	input := c.filterInput.View()

	countStr := ""
	if c.filterInput.Value() != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", len(c.rows), c.rawCount))
	}

	return input + countStr
}

// Formatting helpers shared by the table and the inspector

// formatPrice prefixes the currency symbol to the raw price. The price is
// shown exactly as the API sent it, with no rounding.
func formatPrice(currency domain.Currency, price float64) string {
	return currency.Symbol + strconv.FormatFloat(price, 'f', -1, 64)
}

func formatChange(pct float64) string {
	return fmt.Sprintf("%+.2f%%", pct)
}

func formatMarketCap(cap float64) string {
	if cap <= 0 {
		return "-"
	}
	return humanize.Comma(int64(cap))
}

// formatSupply shows the raw supply figure without abbreviation.
func formatSupply(supply float64) string {
	if supply <= 0 {
		return "-"
	}
	return strconv.FormatFloat(supply, 'f', -1, 64)
}
