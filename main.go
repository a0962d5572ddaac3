// ABOUTME: Entry point for the folio CLI
// ABOUTME: Admin console for the Folio content platform

package main

import (
	"fmt"
	"os"

	"folio-admin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
