package main

import (
	"fmt"
	"os"

	"tagnotes/cmd/internal/config"
	"tagnotes/cmd/internal/domain/sqlite"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "tagnotes",
	Short:         "REST backend for notes and the tags attached to them",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := config.Parse(cmd.Context())
		if err != nil {
			return err
		}

		cfg = parsed
		log.SetLevel(cfg.App.Level())
		log.SetHeader("${time_rfc3339} ${level} ${short_file}:${line}")
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openDatabase() (*gorm.DB, error) {
	return sqlite.Init(sqlite.Options{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogQueries:      cfg.App.Level() == log.DEBUG,
	})
}
