// ABOUTME: Stats command for the folio CLI
// ABOUTME: Fetches record totals for every entity concurrently

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"folio-admin/internal/client"
	"folio-admin/internal/entity"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show record totals per entity",
	Long: `Fetch the record totals of every listable entity.

Totals are requested concurrently, one minimal list call per entity.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runStats(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// runStats collects totals and returns exit code
func runStats(ctx context.Context, w io.Writer) int {
	c := newClient()
	if !c.Session().LoggedIn() {
		fmt.Fprintln(w, "Not logged in. Run: folio login")
		return 1
	}

	totals, err := collectTotals(ctx, c)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(totals, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Entity\tTotal")
	for _, d := range entity.Registry() {
		if d.Singleton {
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\n", d.Plural, totals[d.Name])
	}
	tw.Flush()
	return 0
}

// collectTotals fires one minimal list request per entity
func collectTotals(ctx context.Context, c *client.Client) (map[string]int, error) {
	totals := map[string]int{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, d := range entity.Registry() {
		if d.Singleton {
			continue
		}
		d := d
		g.Go(func() error {
			result, err := c.List(ctx, d, 1, 1, "")
			if err != nil {
				return fmt.Errorf("%s: %w", d.Name, err)
			}
			mu.Lock()
			totals[d.Name] = result.Total
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return totals, nil
}
