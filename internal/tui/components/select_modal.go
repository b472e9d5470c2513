package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/coindeck/coindeck/internal/tui/styles"
)

// SelectModal is a small popup for choosing one option from a short list.
// The same component backs the currency, sort order and price range menus.
type SelectModal struct {
	visible   bool
	title     string
	options   []string
	cursor    int
	activeIdx int
	toggleKey string // the key that opened the modal also closes it
}

// NewSelectModal creates a new selection modal
func NewSelectModal() SelectModal {
	return SelectModal{activeIdx: -1}
}

// Show displays the modal with the given options. activeIdx marks the
// currently applied option, -1 for none.
func (m *SelectModal) Show(title string, options []string, activeIdx int, toggleKey string) {
	m.visible = true
	m.title = title
	m.options = options
	m.activeIdx = activeIdx
	m.toggleKey = toggleKey
	// Position cursor on the active option
	m.cursor = 0
	if activeIdx >= 0 && activeIdx < len(options) {
		m.cursor = activeIdx
	}
}

// Hide dismisses the modal
func (m *SelectModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m SelectModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, choice).
// If choice is non-nil, the user confirmed the option at that index.
func (m *SelectModal) HandleKey(key string) (handled bool, choice *int) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
		return true, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return true, nil
	case "enter":
		chosen := m.cursor
		m.visible = false
		return true, &chosen
	case "esc", m.toggleKey:
		m.visible = false
		return true, nil
	}

	return true, nil // consume all keys when visible
}

// View renders the selection modal
func (m SelectModal) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	width := 20
	for _, opt := range m.options {
		if w := lipgloss.Width(opt) + 4; w > width {
			width = w
		}
	}

	var lines []string
	for i, opt := range m.options {
		selected := i == m.cursor
		isActive := i == m.activeIdx

		var prefix string
		if isActive {
			prefix = "✓ "
		} else {
			prefix = "  "
		}

		text := prefix + opt

		if selected {
			line := lipgloss.NewStyle().
				Foreground(styles.White).
				Background(styles.SlateLight).
				Render(styles.Pad(text, width))
			lines = append(lines, line)
		} else if isActive {
			line := lipgloss.NewStyle().
				Foreground(styles.Gold).
				Render(styles.Pad(text, width))
			lines = append(lines, line)
		} else {
			line := lipgloss.NewStyle().
				Foreground(styles.LightGray).
				Render(styles.Pad(text, width))
			lines = append(lines, line)
		}
	}

	content := strings.Join(lines, "\n")

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Gold).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render(m.title) + "\n" + content)

	return modal
}
