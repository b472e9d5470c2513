package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/coindeck/coindeck/internal/domain"
)

func jumpRows() []domain.Coin {
	return []domain.Coin{
		{Name: "Bitcoin", Symbol: "btc", MarketCapRank: 1, CurrentPrice: 43250.12},
		{Name: "Ethereum", Symbol: "eth", MarketCapRank: 2, CurrentPrice: 2310.7},
		{Name: "Dogecoin", Symbol: "doge", MarketCapRank: 9, CurrentPrice: 0.08},
	}
}

func typeInto(t *testing.T, jm JumpModal, text string) JumpModal {
	t.Helper()
	jm, _, confirmed := jm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	if confirmed {
		t.Fatal("typing must not confirm a selection")
	}
	return jm
}

func TestJumpModalShowListsAllRows(t *testing.T) {
	jm := NewJumpModal()
	jm.Show(jumpRows(), domain.CurrencyUSD)

	if !jm.IsVisible() {
		t.Fatal("modal should be visible after Show")
	}
	if jm.ResultCount() != 3 {
		t.Errorf("ResultCount = %d, want all 3 rows", jm.ResultCount())
	}
	if jm.SelectedRow() != 0 {
		t.Errorf("SelectedRow = %d, want 0", jm.SelectedRow())
	}
}

func TestJumpModalNarrowsAndMapsIndex(t *testing.T) {
	jm := NewJumpModal()
	jm.Show(jumpRows(), domain.CurrencyUSD)

	jm = typeInto(t, jm, "doge")

	if jm.ResultCount() != 1 {
		t.Fatalf("ResultCount = %d, want 1", jm.ResultCount())
	}
	if jm.SelectedRow() != 2 {
		t.Errorf("SelectedRow = %d, want the Dogecoin row index 2", jm.SelectedRow())
	}
}

func TestJumpModalClearRestoresAllRows(t *testing.T) {
	jm := NewJumpModal()
	jm.Show(jumpRows(), domain.CurrencyUSD)
	jm = typeInto(t, jm, "doge")

	for i := 0; i < 4; i++ {
		jm, _, _ = jm.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}

	if jm.ResultCount() != 3 {
		t.Errorf("ResultCount = %d after clearing, want 3", jm.ResultCount())
	}
}

func TestJumpModalConfirm(t *testing.T) {
	jm := NewJumpModal()
	jm.Show(jumpRows(), domain.CurrencyUSD)

	jm, _, _ = jm.Update(tea.KeyMsg{Type: tea.KeyDown})
	jm, _, confirmed := jm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !confirmed {
		t.Fatal("enter on a match should confirm")
	}
	if jm.SelectedRow() != 1 {
		t.Errorf("SelectedRow = %d, want 1", jm.SelectedRow())
	}
}

func TestJumpModalNoMatchNoConfirm(t *testing.T) {
	jm := NewJumpModal()
	jm.Show(jumpRows(), domain.CurrencyUSD)
	jm = typeInto(t, jm, "zzz")

	if jm.ResultCount() != 0 {
		t.Fatalf("ResultCount = %d, want 0", jm.ResultCount())
	}
	if jm.SelectedRow() != -1 {
		t.Errorf("SelectedRow = %d, want -1", jm.SelectedRow())
	}

	jm, _, confirmed := jm.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if confirmed {
		t.Error("enter with no matches must not confirm")
	}
	if !jm.IsVisible() {
		t.Error("failed confirm should keep the modal open")
	}
}

func TestJumpModalEscapeHides(t *testing.T) {
	jm := NewJumpModal()
	jm.Show(jumpRows(), domain.CurrencyUSD)

	jm, _, confirmed := jm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if confirmed || jm.IsVisible() {
		t.Error("esc should close without confirming")
	}
}
