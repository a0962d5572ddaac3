// ABOUTME: Tests for the login screen
// ABOUTME: Covers validation, result handling, and the busy guard

package loginpage

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"folio-admin/internal/entity"
)

func TestValidateEmail(t *testing.T) {
	if err := validateEmail(""); err == nil {
		t.Error("expected error for empty email")
	}
	if err := validateEmail("not-an-email"); err == nil {
		t.Error("expected error for address without @")
	}
	if err := validateEmail("admin@example.com"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoginSuccessEmitsLoggedIn(t *testing.T) {
	l := New(nil, "")
	l.busy = true

	_, cmd := l.Update(loginResultMsg{user: entity.Record{"email": "admin@example.com"}})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(LoggedInMsg)
	if !ok {
		t.Fatalf("expected LoggedInMsg, got %T", cmd())
	}
	if msg.User.String("email") != "admin@example.com" {
		t.Errorf("expected user carried through, got %v", msg.User)
	}
}

func TestLoginFailureShowsError(t *testing.T) {
	l := New(nil, "")
	l.busy = true

	l.Update(loginResultMsg{err: errors.New("invalid credentials")})

	if l.busy {
		t.Error("expected busy cleared")
	}
	if !strings.Contains(l.View(), "invalid credentials") {
		t.Errorf("expected error in view:\n%s", l.View())
	}
}

func TestBusyIgnoresKeys(t *testing.T) {
	l := New(nil, "")
	l.busy = true
	l.err = "previous"

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if l.err != "previous" {
		t.Error("expected input ignored while busy")
	}
}

func TestNoticeShown(t *testing.T) {
	l := New(nil, "Session expired, please sign in again")

	if !strings.Contains(l.View(), "Session expired") {
		t.Error("expected notice in view")
	}
}
