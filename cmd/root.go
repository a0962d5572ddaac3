// ABOUTME: Root command for the folio CLI
// ABOUTME: Handles global flags and client construction

package cmd

import (
	"github.com/spf13/cobra"

	"folio-admin/internal/client"
	"folio-admin/internal/config"
	"folio-admin/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Admin console for the Folio content platform",
	Long: `folio is a command-line admin console for the Folio content platform.

It manages projects, code entries, tags, admins, inquiries, newsletter
subscribers, and site settings against the platform's REST backend.

Environment Variables:
  FOLIO_API_URL       Backend API URL (default: http://localhost:5000)
  FOLIO_TOKEN_PREFIX  Credential file prefix (default: folio)`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides FOLIO_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	return config.Load().APIBaseURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newClient builds the API client with the persisted session attached
func newClient() *client.Client {
	cfg := config.Load()
	sess := session.New(session.DefaultConfigDir(), cfg.TokenPrefix)
	return client.New(GetAPIURL(), sess)
}
