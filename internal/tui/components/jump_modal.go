package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/coindeck/coindeck/internal/domain"
	"github.com/coindeck/coindeck/internal/tui/styles"
)

// coinSource adapts a coin slice for fuzzy matching on name and symbol
type coinSource []domain.Coin

func (s coinSource) String(i int) string {
	return s[i].Name + " " + s[i].DisplaySymbol()
}

func (s coinSource) Len() int {
	return len(s)
}

// JumpModal is a fuzzy finder over the rows currently on screen. Confirming
// a match moves the table selection to that row.
type JumpModal struct {
	input     textinput.Model
	rows      coinSource
	currency  domain.Currency
	matches   []fuzzy.Match
	cursor    int
	visible   bool
	width     int
	height    int
	prevQuery string
}

// NewJumpModal creates a new jump modal component
func NewJumpModal() JumpModal {
	ti := textinput.New()
	ti.Placeholder = "Type to jump..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return JumpModal{
		input: ti,
	}
}

// Show makes the jump modal visible over the given rows
func (o *JumpModal) Show(rows []domain.Coin, currency domain.Currency) {
	o.visible = true
	o.input.Focus()
	o.input.SetValue("")
	o.rows = rows
	o.currency = currency
	o.matches = allMatches(o.rows)
	o.cursor = 0
	o.prevQuery = ""
}

// Hide hides the jump modal
func (o *JumpModal) Hide() {
	o.visible = false
	o.input.Blur()
}

// IsVisible returns true if the jump modal is visible
func (o JumpModal) IsVisible() bool {
	return o.visible
}

// SetSize updates the component dimensions
func (o *JumpModal) SetSize(width, height int) {
	o.width = width
	o.height = height
	o.input.Width = width - 10
}

// Query returns the current search query
func (o JumpModal) Query() string {
	return o.input.Value()
}

// SelectedRow returns the index into the rows given to Show for the match
// under the cursor, -1 when there is none.
func (o JumpModal) SelectedRow() int {
	if len(o.matches) == 0 || o.cursor >= len(o.matches) {
		return -1
	}
	return o.matches[o.cursor].Index
}

// ResultCount returns the number of matches
func (o JumpModal) ResultCount() int {
	return len(o.matches)
}

// Init initializes the component
func (o JumpModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages. The bool result reports that the user confirmed
// the match under the cursor.
func (o JumpModal) Update(msg tea.Msg) (JumpModal, tea.Cmd, bool) {
	if !o.visible {
		return o, nil, false
	}

	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, JumpKeys.Escape):
			o.Hide()
			return o, nil, false

		case key.Matches(msg, JumpKeys.Enter):
			if len(o.matches) > 0 {
				return o, nil, true // Selected
			}
			return o, nil, false

		case key.Matches(msg, JumpKeys.Down):
			if o.cursor < len(o.matches)-1 {
				o.cursor++
			}
			return o, nil, false

		case key.Matches(msg, JumpKeys.Up):
			if o.cursor > 0 {
				o.cursor--
			}
			return o, nil, false

		default:
			// Pass to text input
			o.input, cmd = o.input.Update(msg)
			o.refreshMatches()
			return o, cmd, false
		}
	}

	// Handle other messages
	o.input, cmd = o.input.Update(msg)
	o.refreshMatches()
	return o, cmd, false
}

func (o *JumpModal) refreshMatches() {
	query := o.input.Value()
	if query == o.prevQuery {
		return
	}
	o.prevQuery = query

	if query == "" {
		o.matches = allMatches(o.rows)
	} else {
		o.matches = fuzzy.FindFrom(query, o.rows)
	}
	o.cursor = 0
}

// allMatches lists every row unfiltered, in table order
func allMatches(rows coinSource) []fuzzy.Match {
	out := make([]fuzzy.Match, len(rows))
	for i := range rows {
		out[i] = fuzzy.Match{Str: rows.String(i), Index: i}
	}
	return out
}

// View renders the component
func (o JumpModal) View() string {
	if !o.visible {
		return ""
	}

	// Modal dimensions
	modalWidth := o.width * 2 / 3
	if modalWidth < 40 {
		modalWidth = 40
	}
	if modalWidth > 80 {
		modalWidth = 80
	}
	maxResults := 10

	var b strings.Builder

	// Title
	b.WriteString("Jump to Coin")
	b.WriteString("\n\n")

	// Input field
	b.WriteString(o.input.View())
	b.WriteString("\n\n")

	o.renderResults(&b, modalWidth, maxResults)

	content := lipgloss.NewStyle().
		Width(modalWidth - 4).
		Render(b.String())

	modal := styles.ModalStyle.
		Width(modalWidth).
		Render(content)

	// Center horizontally and vertically
	return lipgloss.Place(
		o.width,
		o.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
	)
}

// renderResults renders the match list
func (o JumpModal) renderResults(b *strings.Builder, modalWidth, maxResults int) {
	if len(o.matches) == 0 {
		if o.input.Value() != "" {
			b.WriteString(styles.DimStyle.Render("No matches found"))
		} else {
			b.WriteString(styles.DimStyle.Render("No rows on screen"))
		}
		return
	}

	displayCount := len(o.matches)
	if displayCount > maxResults {
		displayCount = maxResults
	}

	for i := 0; i < displayCount; i++ {
		match := o.matches[i]
		coin := o.rows[match.Index]
		selected := i == o.cursor

		var line strings.Builder

		rank := "-"
		if coin.MarketCapRank > 0 {
			rank = fmt.Sprintf("#%d", coin.MarketCapRank)
		}
		line.WriteString(styles.DimBadgeStyle.Render(rank))
		line.WriteString(" ")

		price := formatPrice(o.currency, coin.CurrentPrice)
		// Leave room for the badge, price and modal padding
		maxTitleWidth := modalWidth - lipgloss.Width(price) - 14
		title := styles.Truncate(match.Str, maxTitleWidth)
		line.WriteString(highlightMatches(title, match.MatchedIndexes, selected))

		line.WriteString(styles.DimStyle.Render("  " + price))

		b.WriteString(line.String())
		b.WriteString("\n")
	}

	if len(o.matches) > maxResults {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("... and %d more", len(o.matches)-maxResults)))
	}
}

// highlightMatches renders text with matched characters highlighted.
// Consecutive runes with the same match state are styled in one batch so
// no padding sneaks in between them.
func highlightMatches(text string, matchedIndexes []int, selected bool) string {
	normal := lipgloss.NewStyle().Foreground(styles.LightGray)
	match := styles.MatchHighlightStyle
	if selected {
		normal = lipgloss.NewStyle().Foreground(styles.White).Background(styles.SlateLight)
		match = styles.MatchHighlightSelectedStyle
	}

	if len(matchedIndexes) == 0 {
		return normal.Render(text)
	}

	matchSet := make(map[int]bool)
	for _, idx := range matchedIndexes {
		matchSet[idx] = true
	}

	var result strings.Builder
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		isMatch := matchSet[i]

		var batch strings.Builder
		for i < len(runes) && matchSet[i] == isMatch {
			batch.WriteRune(runes[i])
			i++
		}

		if isMatch {
			result.WriteString(match.Render(batch.String()))
		} else {
			result.WriteString(normal.Render(batch.String()))
		}
	}

	return result.String()
}
