// ABOUTME: Whoami command for the folio CLI
// ABOUTME: Shows the profile of the signed-in administrator

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in administrator",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami fetches and prints the admin profile, returns exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	c := newClient()
	if !c.Session().LoggedIn() {
		fmt.Fprintln(w, "Not logged in. Run: folio login")
		return 1
	}

	user, err := c.Me(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	name := strings.TrimSpace(user.String("firstName") + " " + user.String("lastName"))
	fmt.Fprintf(w, "Name:   %s\n", name)
	fmt.Fprintf(w, "Email:  %s\n", user.String("email"))
	if mobile := user.String("mobile"); mobile != "" {
		fmt.Fprintf(w, "Mobile: %s\n", mobile)
	}
	return 0
}
