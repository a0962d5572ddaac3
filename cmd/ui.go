// ABOUTME: UI command for the folio CLI
// ABOUTME: Launches the interactive terminal admin console

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"folio-admin/internal/config"
	"folio-admin/internal/session"
	"folio-admin/internal/tui"
	"folio-admin/internal/tui/debuglog"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive admin console",
	Long: `Launch the full-screen terminal admin console.

The console manages every content section: projects, code entries,
tags, admins, inquiries, newsletter subscribers, and site settings.`,
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runUI(); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
	// Bare "folio" launches the console
	rootCmd.Run = uiCmd.Run
}

// runUI starts the TUI and returns exit code
func runUI() int {
	if err := debuglog.Init(session.DefaultConfigDir()); err == nil {
		defer debuglog.Close()
	}

	cfg := config.Load()
	if err := tui.Run(newClient(), cfg.AppName); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
