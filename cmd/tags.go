// ABOUTME: Tags command group for the folio CLI
// ABOUTME: Bulk creation from args or stdin, plus tag search

package cmd

import (
	"bufio"
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

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage content tags",
}

var tagsAddCmd = &cobra.Command{
	Use:   "add [tag]...",
	Short: "Create tags in bulk",
	Long: `Create tags in a single request.

Tags come from the arguments, or one per line on stdin when no
arguments are given.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTagsAdd(ctx, os.Stdout, os.Stdin, args)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var tagsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tags by name",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTagsSearch(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
	tagsCmd.AddCommand(tagsAddCmd)
	tagsCmd.AddCommand(tagsSearchCmd)
}

// runTagsAdd bulk-creates tags and returns exit code
func runTagsAdd(ctx context.Context, w io.Writer, r io.Reader, args []string) int {
	tags := cleanTags(args)
	if len(tags) == 0 {
		tags = readTagLines(r)
	}
	if len(tags) == 0 {
		fmt.Fprintln(w, "Error: at least one tag is required")
		return 2
	}

	c := newClient()
	if !c.Session().LoggedIn() {
		fmt.Fprintln(w, "Not logged in. Run: folio login")
		return 1
	}

	created, err := c.CreateTags(ctx, tags)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Created %d tag(s)\n", len(created))
	return 0
}

// runTagsSearch looks up tags and returns exit code
func runTagsSearch(ctx context.Context, w io.Writer, query string) int {
	c := newClient()
	if !c.Session().LoggedIn() {
		fmt.Fprintln(w, "Not logged in. Run: folio login")
		return 1
	}

	tags, err := c.SearchTags(ctx, query)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(tags, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(tags) == 0 {
		fmt.Fprintln(w, "No tags found")
		return 0
	}
	for _, tag := range tags {
		fmt.Fprintln(w, tag.String("tag"))
	}
	return 0
}

// cleanTags trims args and drops blanks
func cleanTags(args []string) []string {
	var out []string
	for _, a := range args {
		a = strings.TrimSpace(a)
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

// readTagLines reads one tag per line from the reader
func readTagLines(r io.Reader) []string {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
