// ABOUTME: Tests for the root TUI model
// ABOUTME: Covers screen routing, auth expiry, and frame rendering

package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"folio-admin/internal/client"
	"folio-admin/internal/entity"
	"folio-admin/internal/session"
	"folio-admin/internal/tui/event"
	"folio-admin/internal/tui/listpage"
	"folio-admin/internal/tui/loginpage"
	"folio-admin/internal/tui/menu"
	"folio-admin/internal/tui/overview"
)

func testApp(t *testing.T, loggedIn bool) *App {
	t.Helper()
	sess := session.New(t.TempDir(), "folio")
	if loggedIn {
		if err := sess.Save("token", "refresh"); err != nil {
			t.Fatal(err)
		}
	}
	return New(client.New("http://localhost:0", sess), "Folio Admin")
}

func TestStartScreenFollowsSession(t *testing.T) {
	a := testApp(t, false)
	if a.screen != ScreenLogin {
		t.Errorf("expected login screen without credentials, got %d", a.screen)
	}

	a = testApp(t, true)
	if a.screen != ScreenMenu {
		t.Errorf("expected menu screen with credentials, got %d", a.screen)
	}
}

func TestLoginRoutesToMenu(t *testing.T) {
	a := testApp(t, false)

	a.Update(loginpage.LoggedInMsg{User: entity.Record{"email": "admin@example.com"}})
	if a.screen != ScreenMenu {
		t.Errorf("expected menu after login, got %d", a.screen)
	}
	if a.user.String("email") != "admin@example.com" {
		t.Errorf("expected user stored, got %v", a.user)
	}
}

func TestEntitySelectionOpensList(t *testing.T) {
	a := testApp(t, true)

	a.Update(menu.EntitySelectedMsg{Desc: entity.Project})
	if a.screen != ScreenList {
		t.Errorf("expected list screen, got %d", a.screen)
	}
	if a.list == nil {
		t.Error("expected list model created")
	}
}

func TestSingletonOpensFormDirectly(t *testing.T) {
	a := testApp(t, true)

	a.Update(menu.EntitySelectedMsg{Desc: entity.Settings})
	if a.screen != ScreenForm {
		t.Errorf("expected form screen for singleton, got %d", a.screen)
	}
}

func TestTagCreationOpensIntake(t *testing.T) {
	a := testApp(t, true)
	a.Update(menu.EntitySelectedMsg{Desc: entity.Tag})

	a.Update(listpage.NewRequestedMsg{Desc: entity.Tag})
	if a.screen != ScreenTags {
		t.Errorf("expected tag intake screen, got %d", a.screen)
	}
}

func TestEditOpensForm(t *testing.T) {
	a := testApp(t, true)
	a.Update(menu.EntitySelectedMsg{Desc: entity.Project})

	a.Update(listpage.EditRequestedMsg{Desc: entity.Project, Record: entity.Record{"_id": "p1"}})
	if a.screen != ScreenForm {
		t.Errorf("expected form screen, got %d", a.screen)
	}
	if a.list == nil {
		t.Error("expected list kept for return navigation")
	}
}

func TestAuthExpiryReturnsToLogin(t *testing.T) {
	a := testApp(t, true)
	a.Update(menu.EntitySelectedMsg{Desc: entity.Project})

	a.Update(event.AuthExpiredMsg{})
	if a.screen != ScreenLogin {
		t.Errorf("expected login screen after expiry, got %d", a.screen)
	}
	if a.list != nil || a.form != nil {
		t.Error("expected children cleared on expiry")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	a := testApp(t, true)

	a.Update(menu.LogoutMsg{})
	if a.screen != ScreenLogin {
		t.Errorf("expected login screen after logout, got %d", a.screen)
	}
	if a.client.Session().LoggedIn() {
		t.Error("expected stored credentials cleared")
	}
}

func TestOverviewRoundTrip(t *testing.T) {
	a := testApp(t, true)

	a.Update(menu.OverviewSelectedMsg{})
	if a.screen != ScreenOverview {
		t.Errorf("expected overview screen, got %d", a.screen)
	}
	if a.overview == nil {
		t.Error("expected overview model created")
	}

	a.Update(overview.BackMsg{})
	if a.screen != ScreenMenu {
		t.Errorf("expected menu after back, got %d", a.screen)
	}
	if a.overview != nil {
		t.Error("expected overview released")
	}
}

func TestBackFromListReturnsToMenu(t *testing.T) {
	a := testApp(t, true)
	a.Update(menu.EntitySelectedMsg{Desc: entity.Project})

	a.Update(listpage.BackMsg{})
	if a.screen != ScreenMenu {
		t.Errorf("expected menu screen, got %d", a.screen)
	}
	if a.list != nil {
		t.Error("expected list released")
	}
}

func TestNoticeShownInFooter(t *testing.T) {
	a := testApp(t, true)

	a.Update(event.NoticeMsg{Text: "Project deleted"})
	if !strings.Contains(a.renderFooter(), "Project deleted") {
		t.Error("expected notice in footer")
	}

	// Next keypress clears the notice
	a.Update(tea.KeyMsg{Type: tea.KeyDown})
	if strings.Contains(a.renderFooter(), "Project deleted") {
		t.Error("expected notice cleared after input")
	}
}

func TestFrameCarriesBranding(t *testing.T) {
	a := testApp(t, true)
	a.user = entity.Record{"email": "admin@example.com"}

	view := a.View()
	if !strings.Contains(view, "Folio Admin") {
		t.Error("expected app name in frame")
	}
	if !strings.Contains(view, "admin@example.com") {
		t.Error("expected signed-in email in frame")
	}
}

type recordingSender struct {
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.msgs = append(r.msgs, msg)
}

func TestSessionExpiryHookSendsAuthExpired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	sess := session.New(t.TempDir(), "folio")
	if err := sess.Save("token", "refresh"); err != nil {
		t.Fatal(err)
	}
	c := client.New(server.URL, sess)

	sender := &recordingSender{}
	wireSessionExpiry(c, sender)

	if _, err := c.Me(context.Background()); !client.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}

	if len(sender.msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(sender.msgs))
	}
	if _, ok := sender.msgs[0].(event.AuthExpiredMsg); !ok {
		t.Errorf("expected AuthExpiredMsg, got %T", sender.msgs[0])
	}
	if sess.LoggedIn() {
		t.Error("expected stored credentials cleared on 401")
	}
}

func TestCtrlCQuits(t *testing.T) {
	a := testApp(t, true)

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}
