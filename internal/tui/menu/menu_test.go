// ABOUTME: Tests for the main menu screen
// ABOUTME: Validates cursor movement and emitted selection messages

package menu

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"folio-admin/internal/entity"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestMenuItems(t *testing.T) {
	m := New()

	want := len(entity.Registry()) + 4
	if len(m.items) != want {
		t.Errorf("expected %d items, got %d", want, len(m.items))
	}
	if m.items[0].label != "Projects" {
		t.Errorf("expected first item 'Projects', got %s", m.items[0].label)
	}
	if m.items[len(m.items)-1].label != "Quit" {
		t.Errorf("expected last item 'Quit', got %s", m.items[len(m.items)-1].label)
	}
}

func TestCursorBounds(t *testing.T) {
	m := New()

	m.Update(key("up"))
	if m.cursor != 0 {
		t.Errorf("cursor moved above the first item: %d", m.cursor)
	}

	for i := 0; i < len(m.items)+5; i++ {
		m.Update(key("j"))
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor moved past the last item: %d", m.cursor)
	}
}

func TestSelectEntity(t *testing.T) {
	m := New()
	m.Update(key("down"))

	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(EntitySelectedMsg)
	if !ok {
		t.Fatalf("expected EntitySelectedMsg, got %T", cmd())
	}
	if msg.Desc.Name != entity.Registry()[1].Name {
		t.Errorf("expected second entity, got %s", msg.Desc.Name)
	}
}

func TestSelectActions(t *testing.T) {
	m := New()
	base := len(entity.Registry())

	m.cursor = base
	_, cmd := m.Update(key("enter"))
	if _, ok := cmd().(OverviewSelectedMsg); !ok {
		t.Errorf("expected OverviewSelectedMsg, got %T", cmd())
	}

	m.cursor = base + 1
	_, cmd = m.Update(key("enter"))
	if _, ok := cmd().(SendSelectedMsg); !ok {
		t.Errorf("expected SendSelectedMsg, got %T", cmd())
	}

	m.cursor = base + 2
	_, cmd = m.Update(key("enter"))
	if _, ok := cmd().(LogoutMsg); !ok {
		t.Errorf("expected LogoutMsg, got %T", cmd())
	}

	m.cursor = base + 3
	_, cmd = m.Update(key("enter"))
	if _, ok := cmd().(QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestQuitKey(t *testing.T) {
	m := New()

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestViewMarksCursor(t *testing.T) {
	m := New()
	m.Update(key("down"))

	view := m.View()
	if !strings.Contains(view, "> ") {
		t.Error("expected cursor marker in view")
	}
	if !strings.Contains(view, "Send newsletter") {
		t.Error("expected action items in view")
	}
}
