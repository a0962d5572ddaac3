// ABOUTME: Tests for the session credential store
// ABOUTME: Covers save/load round-trips, expiry, and clearing

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveAndLoad(t *testing.T) {
	s := New(t.TempDir(), "folio")

	if err := s.Save("access-123", "refresh-456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := s.AccessToken(); got != "access-123" {
		t.Errorf("expected access-123, got %q", got)
	}
	if got := s.RefreshToken(); got != "refresh-456" {
		t.Errorf("expected refresh-456, got %q", got)
	}
	if !s.LoggedIn() {
		t.Error("expected LoggedIn true after save")
	}
}

func TestAccessToken_MissingFile(t *testing.T) {
	s := New(t.TempDir(), "folio")

	if got := s.AccessToken(); got != "" {
		t.Errorf("expected empty token, got %q", got)
	}
	if s.LoggedIn() {
		t.Error("expected LoggedIn false with no credential file")
	}
}

func TestAccessToken_Expired(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, "folio")

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	data, _ := json.Marshal(credentialData{
		AccessToken:    "stale",
		AccessExpires:  past,
		RefreshToken:   "fresh",
		RefreshExpires: future,
	})
	if err := os.WriteFile(filepath.Join(dir, "folio_credentials.json"), data, 0600); err != nil {
		t.Fatal(err)
	}

	if got := s.AccessToken(); got != "" {
		t.Errorf("expected expired access token to read as empty, got %q", got)
	}
	if got := s.RefreshToken(); got != "fresh" {
		t.Errorf("expected refresh token to survive, got %q", got)
	}
}

func TestClear(t *testing.T) {
	s := New(t.TempDir(), "folio")

	if err := s.Save("a", "b"); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.AccessToken() != "" || s.RefreshToken() != "" {
		t.Error("expected both tokens cleared")
	}

	// Clearing again must not fail
	if err := s.Clear(); err != nil {
		t.Errorf("expected clearing an absent file to succeed, got %v", err)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, "folio")

	if err := os.WriteFile(filepath.Join(dir, "folio_credentials.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if got := s.AccessToken(); got != "" {
		t.Errorf("expected corrupt file to read as logged out, got %q", got)
	}
}
