// ABOUTME: Tests for the bulk tag intake screen
// ABOUTME: Covers empty-input rejection and completion messages

package tagpage

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"folio-admin/internal/client"
	"folio-admin/internal/entity"
	"folio-admin/internal/tui/event"
)

func TestSubmitRejectsEmptyInput(t *testing.T) {
	p := New(nil)
	p.input = "  \n\n  "

	p.submit()
	if p.err != "At least one tag is required" {
		t.Errorf("expected empty-input error, got %q", p.err)
	}
	if p.busy {
		t.Error("expected no request for empty input")
	}
}

func TestCreatedReportsCount(t *testing.T) {
	p := New(nil)
	p.busy = true

	_, cmd := p.Update(createdMsg{created: []entity.Record{{"_id": "t1"}, {"_id": "t2"}}})
	if cmd == nil {
		t.Fatal("expected completion command")
	}
	msg, ok := cmd().(DoneMsg)
	if !ok {
		t.Fatalf("expected DoneMsg, got %T", cmd())
	}
	if msg.Created != 2 {
		t.Errorf("expected 2 created, got %d", msg.Created)
	}
}

func TestCreateUnauthorizedRoutesToLogin(t *testing.T) {
	p := New(nil)
	p.busy = true

	_, cmd := p.Update(createdMsg{err: client.ErrUnauthorized})
	if cmd == nil {
		t.Fatal("expected command for auth expiry")
	}
	if _, ok := cmd().(event.AuthExpiredMsg); !ok {
		t.Errorf("expected AuthExpiredMsg, got %T", cmd())
	}
}

func TestEscapeCancels(t *testing.T) {
	p := New(nil)

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected cancel command")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Errorf("expected CancelledMsg, got %T", cmd())
	}
}
