// ABOUTME: Tests for the newsletter composer
// ABOUTME: Covers recipient parsing and the targeted-send guard

package sendpage

import (
	"testing"

	"folio-admin/internal/client"
	"folio-admin/internal/tui/event"
)

func TestParseEmails(t *testing.T) {
	got := parseEmails(" a@x.com \n\nb@y.com\n")
	if len(got) != 2 || got[0] != "a@x.com" || got[1] != "b@y.com" {
		t.Errorf("unexpected emails: %v", got)
	}
	if got := parseEmails("\n  \n"); got != nil {
		t.Errorf("expected no emails from blank input, got %v", got)
	}
}

func TestTargetedSendNeedsRecipients(t *testing.T) {
	p := New(nil)
	p.subject = "Hi"
	p.message = "Body"
	p.sendToAll = false
	p.emails = ""

	p.submit()
	if p.err != "At least one recipient is required" {
		t.Errorf("expected recipient guard, got %q", p.err)
	}
	if p.busy {
		t.Error("expected no request without recipients")
	}
}

func TestSendToAllSkipsRecipients(t *testing.T) {
	p := New(nil)
	p.subject = "Hi"
	p.message = "Body"
	p.sendToAll = true
	p.emails = "ignored@x.com"

	_, cmd := p.submit()
	if !p.busy {
		t.Fatal("expected request in flight")
	}
	if cmd == nil {
		t.Fatal("expected send command")
	}
}

func TestSentEmitsCompletion(t *testing.T) {
	p := New(nil)
	p.busy = true

	_, cmd := p.Update(sentResultMsg{})
	if cmd == nil {
		t.Fatal("expected completion command")
	}
	if _, ok := cmd().(SentMsg); !ok {
		t.Errorf("expected SentMsg, got %T", cmd())
	}
}

func TestSendUnauthorizedRoutesToLogin(t *testing.T) {
	p := New(nil)
	p.busy = true

	_, cmd := p.Update(sentResultMsg{err: client.ErrUnauthorized})
	if cmd == nil {
		t.Fatal("expected command for auth expiry")
	}
	if _, ok := cmd().(event.AuthExpiredMsg); !ok {
		t.Errorf("expected AuthExpiredMsg, got %T", cmd())
	}
}
