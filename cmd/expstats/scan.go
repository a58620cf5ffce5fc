package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"exposurestats/internal/config"
	"exposurestats/internal/library"
	"exposurestats/internal/logger"
	"exposurestats/internal/service"
	"exposurestats/internal/stats"
)

func newScanCmd() *cobra.Command {
	var keywordsCSV string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the library and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := logger.NewConsoleLogger()

			manager := service.NewManager(cfg, log, nil)
			snap, err := manager.Rescan(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Photos:   %d\n", len(snap.Photos))
			fmt.Printf("Cameras:  %d\n", len(snap.Cameras))
			fmt.Printf("Lenses:   %d\n", len(snap.Lenses))
			fmt.Printf("Dangling: %d\n", snap.DanglingSidecars)
			fmt.Printf("Unloaded: %d\n", snap.UnloadedSidecars)

			if keywordsCSV != "" {
				if err := writeKeywordsCSV(keywordsCSV, snap); err != nil {
					return err
				}
				fmt.Printf("Keyword counts written to %s\n", keywordsCSV)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&keywordsCSV, "keywords-csv", "", "write keyword counts to this CSV file")
	return cmd
}

func writeKeywordsCSV(path string, snap *library.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Keywords", "Count"}); err != nil {
		return err
	}
	for _, row := range stats.ByKeyword(snap.Keywords, nil) {
		if err := w.Write([]string{row.Label, strconv.Itoa(row.Count)}); err != nil {
			return err
		}
	}
	return nil
}
