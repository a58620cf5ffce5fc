// Command expstats is the companion CLI: scan the library from a terminal,
// load a scan into SQLite, or tag a single image.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "expstats",
		Short:         "Photo statistics for Exposure image libraries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newLoadDBCmd())
	rootCmd.AddCommand(newTagCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
