// ABOUTME: Logout command for the folio CLI
// ABOUTME: Clears the locally stored credential pair

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored credentials",
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runLogout(os.Stdout); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session and returns exit code
func runLogout(w io.Writer) int {
	c := newClient()
	if err := c.Logout(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintln(w, "Logged out")
	return 0
}
