package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"exposurestats/internal/config"
	"exposurestats/internal/logger"
	"exposurestats/internal/repository/sqlite"
	"exposurestats/internal/service"
)

func newLoadDBCmd() *cobra.Command {
	var dbPath string
	var reset bool

	cmd := &cobra.Command{
		Use:   "load-db",
		Short: "Scan the library and load it into SQLite",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := logger.NewConsoleLogger()

			if dbPath == "" {
				dbPath = cfg.DatabasePath
			}

			db, err := sqlite.New(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if reset {
				if err := db.Reset(); err != nil {
					return err
				}
				log.Info("database reset: %s", dbPath)
			}

			manager := service.NewManager(cfg, log, nil)
			if _, err := manager.Rescan(cmd.Context()); err != nil {
				return err
			}

			photoRepo := sqlite.NewPhotoRepository(db)
			kwRepo := sqlite.NewKeywordRepository(db)
			if err := manager.LoadToDB(photoRepo, kwRepo); err != nil {
				return err
			}

			fmt.Printf("Library loaded into %s\n", dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "database file (defaults to DATABASE_PATH)")
	cmd.Flags().BoolVar(&reset, "reset", false, "drop and recreate tables first")
	return cmd
}
