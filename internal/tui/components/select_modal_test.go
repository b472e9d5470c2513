package components

import "testing"

func showTestModal(m *SelectModal) {
	m.Show("Currency", []string{"USD ($)", "EUR (€)"}, 0, "c")
}

func TestSelectModalShowPositionsCursor(t *testing.T) {
	m := NewSelectModal()
	m.Show("Sort", []string{"Market Cap ↓", "Market Cap ↑"}, 1, "s")

	if !m.IsVisible() {
		t.Fatal("modal should be visible after Show")
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want it on the active option", m.cursor)
	}
}

func TestSelectModalNavigation(t *testing.T) {
	m := NewSelectModal()
	showTestModal(&m)

	handled, choice := m.HandleKey("j")
	if !handled || choice != nil {
		t.Fatalf("j: handled=%v choice=%v", handled, choice)
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d after j, want 1", m.cursor)
	}

	m.HandleKey("j")
	if m.cursor != 1 {
		t.Errorf("cursor = %d, must not pass the last option", m.cursor)
	}

	m.HandleKey("k")
	m.HandleKey("k")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, must not pass the first option", m.cursor)
	}
}

func TestSelectModalConfirm(t *testing.T) {
	m := NewSelectModal()
	showTestModal(&m)

	m.HandleKey("j")
	handled, choice := m.HandleKey("enter")
	if !handled || choice == nil {
		t.Fatal("enter should confirm a choice")
	}
	if *choice != 1 {
		t.Errorf("choice = %d, want 1", *choice)
	}
	if m.IsVisible() {
		t.Error("modal should close on confirm")
	}
}

func TestSelectModalDismiss(t *testing.T) {
	t.Run("esc", func(t *testing.T) {
		m := NewSelectModal()
		showTestModal(&m)
		handled, choice := m.HandleKey("esc")
		if !handled || choice != nil || m.IsVisible() {
			t.Error("esc should close without a choice")
		}
	})

	t.Run("toggle key", func(t *testing.T) {
		m := NewSelectModal()
		showTestModal(&m)
		handled, choice := m.HandleKey("c")
		if !handled || choice != nil || m.IsVisible() {
			t.Error("the opening key should close without a choice")
		}
	})
}

func TestSelectModalConsumesKeys(t *testing.T) {
	m := NewSelectModal()
	showTestModal(&m)

	handled, choice := m.HandleKey("x")
	if !handled || choice != nil {
		t.Error("visible modal should swallow unrelated keys")
	}
	if !m.IsVisible() {
		t.Error("unrelated keys should not close the modal")
	}
}

func TestSelectModalHiddenIgnoresKeys(t *testing.T) {
	m := NewSelectModal()
	if handled, _ := m.HandleKey("j"); handled {
		t.Error("hidden modal should not handle keys")
	}
}
