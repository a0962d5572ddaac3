// ABOUTME: Tests for the list command
// ABOUTME: Covers table output, entity validation, and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRunList_Table(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/project" {
			t.Errorf("expected path /api/project, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("expected bearer header, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"_id": "p1", "title": "Portfolio Site", "status": "published"},
			},
			"pagination": map[string]any{"total": 1, "totalPages": 1},
		})
	}))
	defer server.Close()
	setupLoggedIn(t, server.URL)

	var buf bytes.Buffer
	if code := runList(context.Background(), &buf, "project"); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}

	out := buf.String()
	if !strings.Contains(out, "Portfolio Site") {
		t.Errorf("expected row in output, got:\n%s", out)
	}
	if !strings.Contains(out, "Page 1 of 1") {
		t.Errorf("expected page label, got:\n%s", out)
	}
}

func TestRunList_JSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data":       []map[string]any{{"_id": "c1", "title": "Snippet"}},
			"pagination": map[string]any{"total": 1, "totalPages": 1},
		})
	}))
	defer server.Close()
	setupLoggedIn(t, server.URL)

	jsonOutput = true
	defer func() { jsonOutput = false }()

	var buf bytes.Buffer
	if code := runList(context.Background(), &buf, "code"); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}

	var output struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("expected valid JSON, got %v:\n%s", err, buf.String())
	}
	if output.Total != 1 {
		t.Errorf("expected total 1, got %d", output.Total)
	}
}

func TestRunList_UnknownEntity(t *testing.T) {
	setupLoggedIn(t, "http://unused")

	var buf bytes.Buffer
	if code := runList(context.Background(), &buf, "widget"); code != 2 {
		t.Errorf("expected exit 2 for unknown entity, got %d", code)
	}
	if !strings.Contains(buf.String(), "valid:") {
		t.Errorf("expected valid entity list in error, got %s", buf.String())
	}
}

func TestRunList_SettingsNotListable(t *testing.T) {
	setupLoggedIn(t, "http://unused")

	var buf bytes.Buffer
	if code := runList(context.Background(), &buf, "settings"); code != 2 {
		t.Errorf("expected exit 2 for singleton, got %d", code)
	}
}

func TestRunList_NotLoggedIn(t *testing.T) {
	setupConfigDir(t)

	var buf bytes.Buffer
	if code := runList(context.Background(), &buf, "project"); code != 1 {
		t.Errorf("expected exit 1 when logged out, got %d", code)
	}
	if !strings.Contains(buf.String(), "folio login") {
		t.Errorf("expected login hint, got %s", buf.String())
	}
}

func TestRunList_TypeFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "snippets" {
			t.Errorf("expected type=snippets, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{}})
	}))
	defer server.Close()
	setupLoggedIn(t, server.URL)

	listType = "snippets"
	defer func() { listType = "" }()

	var buf bytes.Buffer
	if code := runList(context.Background(), &buf, "code"); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
}
