// ABOUTME: List command for the folio CLI
// ABOUTME: Prints one page of an entity as a table or JSON

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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"folio-admin/internal/entity"
)

var (
	listPage  int
	listLimit int
	listType  string
)

var listCmd = &cobra.Command{
	Use:   "list <entity>",
	Short: "List records of an entity",
	Long: `List one page of an entity's records.

Entities: ` + strings.Join(entityNames(), ", ") + `

Exit codes:
  0 - Success
  1 - Not logged in
  2 - Error (connectivity, unknown entity)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runList(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number (1-based)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Page size (defaults to the entity's page size)")
	listCmd.Flags().StringVar(&listType, "type", "", "Filter value for entities that support one")
}

// runList fetches and prints one page, returns exit code
func runList(ctx context.Context, w io.Writer, name string) int {
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

	limit := listLimit
	if limit <= 0 {
		limit = desc.PageSize
	}

	result, err := c.List(ctx, desc, listPage, limit, listType)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		output := map[string]any{
			"rows":       result.Rows,
			"total":      result.Total,
			"totalPages": result.TotalPages,
			"page":       listPage,
		}
		data, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	printTable(w, desc, result.Rows)
	page := entity.Page{Number: listPage, Size: limit, Total: result.Total}
	fmt.Fprintln(w, page.Label())
	return 0
}

// printTable renders rows using the descriptor's columns
func printTable(w io.Writer, desc entity.Descriptor, rows []entity.Record) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	var heads []string
	for _, col := range desc.Columns {
		heads = append(heads, col.Title)
	}
	heads = append([]string{"ID"}, heads...)
	fmt.Fprintln(tw, strings.Join(heads, "\t"))

	for _, row := range rows {
		cells := []string{row.ID()}
		for _, col := range desc.Columns {
			cells = append(cells, col.Cell(row))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

// entityNames lists the listable entity names
func entityNames() []string {
	var names []string
	for _, d := range entity.Registry() {
		if !d.Singleton {
			names = append(names, d.Name)
		}
	}
	return names
}
