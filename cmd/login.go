// ABOUTME: Login command for the folio CLI
// ABOUTME: Authenticates and persists the credential pair

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the backend",
	Long: `Authenticate against the backend and store the returned tokens.

Credentials can be passed as flags; missing values are prompted for.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Administrator email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Administrator password")
}

// runLogin executes the login flow and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	email := strings.TrimSpace(loginEmail)
	password := loginPassword

	if email == "" || password == "" {
		if IsJSONOutput() {
			fmt.Fprintln(w, "Error: --email and --password are required with --json")
			return 2
		}
		if err := promptCredentials(&email, &password); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	c := newClient()
	result, err := c.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	name := strings.TrimSpace(result.User.String("firstName") + " " + result.User.String("lastName"))
	if name == "" {
		name = result.User.String("email")
	}
	fmt.Fprintf(w, "Signed in as %s\n", name)
	return 0
}

// promptCredentials asks for whichever credential is missing
func promptCredentials(email, password *string) error {
	var fields []huh.Field
	if *email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(email))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(password))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeBase())
	return form.Run()
}
