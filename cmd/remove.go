// ABOUTME: Remove command for the folio CLI
// ABOUTME: Deletes records by id, honoring each entity's delete semantics

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

	"folio-admin/internal/entity"
)

var removeCmd = &cobra.Command{
	Use:   "remove <entity> <id>...",
	Short: "Delete records by id",
	Long: `Delete one or more records.

Most entities are soft-deleted in a single batch request. Inquiries and
newsletter subscribers are deleted permanently, one request per id.

Exit codes:
  0 - All deletions succeeded
  1 - Not logged in
  2 - Error`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRemove(ctx, os.Stdout, args[0], args[1:])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

// runRemove deletes the given ids and returns exit code
func runRemove(ctx context.Context, w io.Writer, name string, ids []string) int {
	desc, ok := entity.Lookup(name)
	if !ok || desc.Singleton {
		fmt.Fprintf(w, "Error: unknown entity %q (valid: %s)\n", name, strings.Join(entityNames(), ", "))
		return 2
	}

	c := newClient()
	if !c.Session().LoggedIn() {
		fmt.Fprintln(w, "Not logged in. Run: folio login")
		return 1
	}

	if desc.DeleteMode == entity.DeleteSoft {
		if err := c.DeleteMany(ctx, desc, ids); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		fmt.Fprintf(w, "Deleted %d record(s)\n", len(ids))
		return 0
	}

	// Hard deletes go one request per id
	for _, id := range ids {
		if err := c.Delete(ctx, desc, id); err != nil {
			fmt.Fprintf(w, "Error deleting %s: %v\n", id, err)
			return 2
		}
		fmt.Fprintf(w, "Deleted %s permanently\n", id)
	}
	return 0
}
