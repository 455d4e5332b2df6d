package main

import (
	"fmt"

	"tagnotes/cmd/internal/domain/sqlite"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Apply, roll back or inspect schema migrations",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := "up"
		if len(args) == 1 {
			direction = args[0]
		}

		db, err := openDatabase()
		if err != nil {
			return fmt.Errorf("init database: %w", err)
		}
		defer func() {
			if err := sqlite.Close(db); err != nil {
				log.Errorf("failed to close database: %v", err)
			}
		}()

		if err := sqlite.Migrate(cmd.Context(), db, direction); err != nil {
			return fmt.Errorf("migrate %s: %w", direction, err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
