// ABOUTME: Send command for the folio CLI
// ABOUTME: Dispatches a newsletter to all or selected subscribers

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"folio-admin/internal/client"
)

var (
	sendSubject string
	sendMessage string
	sendAll     bool
	sendTo      []string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a newsletter",
	Long: `Send a newsletter to subscribers.

Use --all for every active subscriber, or --to for specific addresses.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSend(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVar(&sendSubject, "subject", "", "Newsletter subject (required)")
	sendCmd.Flags().StringVar(&sendMessage, "message", "", "Newsletter body (required)")
	sendCmd.Flags().BoolVar(&sendAll, "all", false, "Send to all subscribers")
	sendCmd.Flags().StringSliceVar(&sendTo, "to", nil, "Recipient addresses (comma-separated or repeated)")
}

// runSend dispatches the newsletter and returns exit code
func runSend(ctx context.Context, w io.Writer) int {
	subject := strings.TrimSpace(sendSubject)
	if subject == "" || strings.TrimSpace(sendMessage) == "" {
		fmt.Fprintln(w, "Error: --subject and --message are required")
		return 2
	}
	if !sendAll && len(sendTo) == 0 {
		fmt.Fprintln(w, "Error: pass --all or at least one --to address")
		return 2
	}

	c := newClient()
	if !c.Session().LoggedIn() {
		fmt.Fprintln(w, "Not logged in. Run: folio login")
		return 1
	}

	input := client.SendMailInput{
		Subject:     subject,
		Message:     sendMessage,
		UseTemplate: true,
		SendToAll:   sendAll,
		Emails:      sendTo,
	}
	if err := c.SendNewsletter(ctx, input); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if sendAll {
		fmt.Fprintln(w, "Newsletter sent to all subscribers")
	} else {
		fmt.Fprintf(w, "Newsletter sent to %d recipient(s)\n", len(sendTo))
	}
	return 0
}
