// ABOUTME: Shared test helpers for CLI command tests
// ABOUTME: Isolates the config dir and seeds a logged-in session

package cmd

import (
	"path/filepath"
	"testing"

	"folio-admin/internal/session"
)

// setupConfigDir points the credential store at a temp directory
func setupConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return filepath.Join(dir, "folio-admin")
}

// setupLoggedIn seeds stored credentials and points the CLI at the
// given backend URL
func setupLoggedIn(t *testing.T, backendURL string) {
	t.Helper()
	configDir := setupConfigDir(t)

	sess := session.New(configDir, "folio")
	if err := sess.Save("test-token", "test-refresh"); err != nil {
		t.Fatal(err)
	}

	apiURL = backendURL
	t.Cleanup(func() { apiURL = "" })
}
