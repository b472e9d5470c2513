package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/coindeck/coindeck/internal/coingecko"
	"github.com/coindeck/coindeck/internal/domain"
	"github.com/coindeck/coindeck/internal/market"
	"github.com/coindeck/coindeck/internal/tui/components"
	"github.com/coindeck/coindeck/internal/tui/styles"
)

// ApplicationState represents the current application state
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

// modalKind identifies which selection menu the modal is serving
type modalKind int

const (
	modalNone modalKind = iota
	modalCurrency
	modalOrder
	modalRange
)

const (
	// Inspector takes the right-hand share of the screen when visible
	InspectorPercent = 30
	MinPanelWidth    = 15

	// Vertical layout: single footer line
	ChromeHeight = 1
)

// Shown on every fetch failure, regardless of cause. The log carries the
// distinct cause; the user sees one message.
const fetchFailedStatus = "Failed to fetch data, try again later"

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Market data access
	Client  *coingecko.Client
	Timeout time.Duration

	// View state machine: fetch params, request ids, client-side narrowing
	Market *market.View

	// UI components
	Table       *components.CoinTable
	SelectModal components.SelectModal
	Jump        components.JumpModal
	Inspector   components.Inspector

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg     string
	StatusIsErr   bool
	SpinnerFrame  int
	ShowInspector bool

	// Which menu the select modal is currently serving
	modal modalKind

	// Set by manual refresh so the next applied result reports completion
	refreshing bool
}

// NewModel creates a new application model
func NewModel(client *coingecko.Client, view *market.View, timeout time.Duration) Model {
	table := components.NewCoinTable()
	table.SetTitle("Coins")
	table.SetFocused(true)

	return Model{
		State:       StateBrowsing,
		Client:      client,
		Timeout:     timeout,
		Market:      view,
		Table:       table,
		SelectModal: components.NewSelectModal(),
		Jump:        components.NewJumpModal(),
		Inspector:   components.NewInspector(),
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.issueFetch(),
		TickCmd(100*time.Millisecond),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		if m.Market.Loading() {
			m.Table.SetSpinnerFrame(m.SpinnerFrame)
		}
		return m, TickCmd(100 * time.Millisecond)

	case MarketsMsg:
		// Latest-issued-wins: completions for superseded requests change nothing
		if !m.Market.ApplyResult(msg.ReqID, msg.Coins) {
			slog.Debug("Discarded stale market response", "reqID", msg.ReqID)
			return m, nil
		}
		m.Table.SetLoading(false)
		m.refreshRows()
		if m.refreshing {
			m.refreshing = false
			m.StatusMsg = "Refreshed"
			m.StatusIsErr = false
			return m, ClearStatusCmd(3 * time.Second)
		}
		return m, nil

	case MarketsErrMsg:
		if !m.Market.ApplyError(msg.ReqID) {
			slog.Debug("Discarded stale market error", "reqID", msg.ReqID, "error", msg.Err)
			return m, nil
		}
		slog.Error("Market fetch failed", "reqID", msg.ReqID, "error", msg.Err)
		m.Table.SetLoading(false)
		m.refreshing = false
		m.StatusMsg = fetchFailedStatus
		m.StatusIsErr = true
		return m, ClearStatusCmd(4 * time.Second)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help screen: any key returns
	if m.State == StateHelp {
		m.State = StateBrowsing
		return m, nil
	}

	// Jump overlay swallows all keys while visible
	if m.Jump.IsVisible() {
		var cmd tea.Cmd
		var confirmed bool
		m.Jump, cmd, confirmed = m.Jump.Update(msg)
		if confirmed {
			if idx := m.Jump.SelectedRow(); idx >= 0 {
				m.Table.SetSelectedIndex(idx)
				m.syncInspector()
			}
			m.Jump.Hide()
		}
		return m, cmd
	}

	// Selection modal swallows all keys while visible
	if m.SelectModal.IsVisible() {
		handled, choice := m.SelectModal.HandleKey(msg.String())
		if handled {
			if choice != nil {
				return m.applyModalChoice(*choice)
			}
			return m, nil
		}
	}

	// Filter typing mode: keys feed the input, rows recompute live
	if m.Table.IsFilterTyping() {
		switch {
		case key.Matches(msg, components.TableKeys.Escape):
			m.Table.ClearFilter()
			m.Market.SetQuery("")
			m.refreshRows()
			return m, nil
		case key.Matches(msg, components.TableKeys.Enter):
			// Commit: filter stays applied, keys go back to navigation
			m.Table.BlurFilter()
			return m, nil
		}
		if msg.String() == "backspace" && m.Table.FilterValue() == "" {
			m.Table.ClearFilter()
			return m, nil
		}
		cmd := m.Table.UpdateFilter(msg)
		m.Market.SetQuery(m.Table.FilterValue())
		m.refreshRows()
		return m, cmd
	}

	// Global keys
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.State = StateHelp
		return m, nil

	case "esc":
		if m.Table.IsFiltering() {
			m.Table.ClearFilter()
			m.Market.SetQuery("")
			m.refreshRows()
			return m, nil
		}
		if m.ShowInspector {
			m.ShowInspector = false
			m.updateLayout()
		}
		return m, nil

	case "/":
		if m.Table.IsFiltering() {
			m.Table.FocusFilter()
		} else {
			m.Table.ToggleFilter()
		}
		return m, nil

	case "c":
		m.modal = modalCurrency
		options, active := currencyOptions(m.Market.Currency())
		m.SelectModal.Show("Currency", options, active, "c")
		return m, nil

	case "s":
		m.modal = modalOrder
		options, active := orderOptions(m.Market.Order())
		m.SelectModal.Show("Sort Order", options, active, "s")
		return m, nil

	case "b":
		m.modal = modalRange
		options, active := rangeOptions(m.Market.PriceRange())
		m.SelectModal.Show("Price Range", options, active, "b")
		return m, nil

	case "p":
		m.Market.CyclePriceSort()
		m.refreshRows()
		return m, nil

	case "L":
		if m.Market.SetPageSize(nextPageSize(domain.PageSizes(), m.Market.PageSize())) {
			return m, m.issueFetch()
		}
		return m, nil

	case "h", "left":
		if m.Market.PrevPage() {
			return m, m.issueFetch()
		}
		m.StatusMsg = "Already on first page"
		m.StatusIsErr = false
		return m, ClearStatusCmd(2 * time.Second)

	case "l", "right":
		if m.Market.NextPage() {
			return m, m.issueFetch()
		}
		m.StatusMsg = "No more pages"
		m.StatusIsErr = false
		return m, ClearStatusCmd(2 * time.Second)

	case "r":
		m.refreshing = true
		return m, m.issueFetch()

	case "f":
		m.Jump.SetSize(m.Width, m.Height)
		m.Jump.Show(m.Market.Rows(), m.Market.Currency())
		return m, m.Jump.Init()

	case "i":
		m.ShowInspector = !m.ShowInspector
		m.updateLayout()
		m.syncInspector()
		return m, nil

	case "enter":
		if !m.ShowInspector {
			m.ShowInspector = true
			m.updateLayout()
		}
		m.syncInspector()
		return m, nil
	}

	// Table navigation
	if m.Table.HandleKey(msg.String()) {
		m.syncInspector()
	}
	return m, nil
}

// handleMouseMsg scrolls the table cursor with the wheel
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.State == StateHelp || m.Jump.IsVisible() || m.SelectModal.IsVisible() {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.Table.MoveCursor(-3)
		m.syncInspector()
	case tea.MouseButtonWheelDown:
		m.Table.MoveCursor(3)
		m.syncInspector()
	}
	return m, nil
}

// applyModalChoice resolves a confirmed selection from the select modal
func (m Model) applyModalChoice(idx int) (tea.Model, tea.Cmd) {
	kind := m.modal
	m.modal = modalNone

	switch kind {
	case modalCurrency:
		currencies := domain.Currencies()
		if idx < len(currencies) && m.Market.SetCurrency(currencies[idx]) {
			return m, m.issueFetch()
		}

	case modalOrder:
		orders := domain.SortOrders()
		if idx < len(orders) && m.Market.SetOrder(orders[idx]) {
			return m, m.issueFetch()
		}

	case modalRange:
		// Option 0 is "All"; the buckets follow in order
		if idx == 0 {
			m.Market.SetPriceRange(nil)
		} else {
			ranges := domain.PriceRanges()
			if idx-1 < len(ranges) {
				m.Market.SetPriceRange(&ranges[idx-1])
			}
		}
		m.refreshRows()
	}

	return m, nil
}

// issueFetch asks the view for the next fetch request and turns it into
// a command
func (m *Model) issueFetch() tea.Cmd {
	req := m.Market.IssueFetch()
	m.Table.SetLoading(true)
	return FetchMarketsCmd(m.Client, req, m.Timeout)
}

// refreshRows recomputes the displayed rows from the view state
func (m *Model) refreshRows() {
	m.Table.SetRows(m.Market.Rows(), len(m.Market.Coins()), m.Market.Currency())
	m.syncInspector()
}

// syncInspector points the inspector at the coin under the cursor
func (m *Model) syncInspector() {
	m.Inspector.SetCoin(m.Table.SelectedCoin(), m.Market.Currency())
}

// updateLayout recalculates component dimensions
func (m *Model) updateLayout() {
	contentHeight := m.Height - ChromeHeight

	if m.ShowInspector {
		inspectorWidth := m.Width * InspectorPercent / 100
		if inspectorWidth < MinPanelWidth {
			inspectorWidth = MinPanelWidth
		}
		tableWidth := m.Width - inspectorWidth
		if tableWidth < MinPanelWidth {
			tableWidth = MinPanelWidth
		}
		m.Table.SetSize(tableWidth, contentHeight)
		m.Inspector.SetSize(inspectorWidth, contentHeight)
	} else {
		m.Table.SetSize(m.Width, contentHeight)
	}
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	contentHeight := m.Height - ChromeHeight

	var content string
	if m.ShowInspector {
		inspectorWidth := m.Width * InspectorPercent / 100
		if inspectorWidth < MinPanelWidth {
			inspectorWidth = MinPanelWidth
		}
		tableWidth := m.Width - inspectorWidth
		if tableWidth < MinPanelWidth {
			tableWidth = MinPanelWidth
		}

		m.Table.SetSize(tableWidth, contentHeight)
		m.Inspector.SetSize(inspectorWidth, contentHeight)
		m.Inspector.SetCoin(m.Table.SelectedCoin(), m.Market.Currency())

		content = lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.Table.View(),
			m.Inspector.View(),
		)
	} else {
		m.Table.SetSize(m.Width, contentHeight)
		content = m.Table.View()
	}

	// Footer
	footer := m.renderFooter()

	// Combine all
	view := lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		footer,
	)

	// Overlay jump modal if visible
	if m.Jump.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.Jump.View())
	}

	// Overlay select modal if visible
	if m.SelectModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.SelectModal.View())
	}

	return view
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: spinner while loading, else any status message
	var left string
	if m.Market.Loading() {
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading...")
	} else if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	// Center section: view state summary
	center := styles.DimStyle.Render(marketSummary(m.Market))

	// Right side: "? help" hint
	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	// Layout: left + centered summary + right
	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	totalContent := leftWidth + centerWidth + rightWidth
	if totalContent >= m.Width {
		// Not enough space - just left + right
		gap := m.Width - leftWidth - rightWidth
		if gap < 0 {
			gap = 0
		}
		return left + strings.Repeat(" ", gap) + right
	}

	// Center the summary in available space
	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
NAVIGATION                      SELECTION
  j/k        Up/down               c    Currency (USD/EUR)
  g/G        First/last row        s    Sort order
  Ctrl+u/d   Half page             b    Price range bucket
  h/l        Prev/next page        p    Cycle price sort
                                   L    Cycle page size
FILTER & VIEW
  /          Filter by name      OTHER
  f          Jump to coin          r    Refresh page
  i/Enter    Inspector             q    Quit
  Esc        Clear / close         ?    This help

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// currencyOptions builds the select modal option list for currencies
func currencyOptions(active domain.Currency) ([]string, int) {
	currencies := domain.Currencies()
	options := make([]string, len(currencies))
	activeIdx := 0
	for i, cur := range currencies {
		options[i] = cur.Label
		if cur.Code == active.Code {
			activeIdx = i
		}
	}
	return options, activeIdx
}

// orderOptions builds the select modal option list for sort orders
func orderOptions(active domain.SortOrder) ([]string, int) {
	orders := domain.SortOrders()
	options := make([]string, len(orders))
	activeIdx := 0
	for i, ord := range orders {
		options[i] = ord.Label
		if ord.Key == active.Key {
			activeIdx = i
		}
	}
	return options, activeIdx
}

// rangeOptions builds the select modal option list for price ranges,
// with "All" leading the fixed buckets
func rangeOptions(active *domain.PriceRange) ([]string, int) {
	ranges := domain.PriceRanges()
	options := make([]string, 0, len(ranges)+1)
	options = append(options, "All")
	activeIdx := 0
	for i, r := range ranges {
		options = append(options, r.Label)
		if active != nil && r.Label == active.Label {
			activeIdx = i + 1
		}
	}
	return options, activeIdx
}

// nextPageSize returns the size after current in the cycle
func nextPageSize(sizes []int, current int) int {
	for i, size := range sizes {
		if size == current {
			return sizes[(i+1)%len(sizes)]
		}
	}
	return sizes[0]
}
