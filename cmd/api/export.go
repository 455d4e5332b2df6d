package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"tagnotes/cmd/internal/contract"
	"tagnotes/cmd/internal/domain/sqlite"
	"tagnotes/cmd/internal/domain/sqlite/repository"
	"tagnotes/cmd/internal/service"
	"tagnotes/cmd/internal/utils/apierror"
	"tagnotes/cmd/internal/utils/validators"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

type ExportData struct {
	ExportedAt time.Time           `json:"exportedAt"`
	Notes      []*contract.NoteDTO `json:"notes"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every note with its tag references as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		outputPath, _ := cmd.Flags().GetString("output")

		db, err := openDatabase()
		if err != nil {
			return fmt.Errorf("init database: %w", err)
		}
		defer func() {
			if err := sqlite.Close(db); err != nil {
				log.Errorf("failed to close database: %v", err)
			}
		}()

		noteService := service.NewNoteService(
			repository.NewNoteRepository(db),
			repository.NewTagRepository(db),
			sqlite.NewTransactor(db),
			validators.New(),
			cfg.Page.MaxSize,
		)

		out := io.Writer(os.Stdout)
		if outputPath != "" {
			f, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}
		return exportNotes(cmd.Context(), noteService, out)
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}

type noteExporter interface {
	ExportNotes(ctx context.Context) ([]*contract.NoteDTO, apierror.ErrorResponse)
}

func exportNotes(ctx context.Context, notes noteExporter, w io.Writer) error {
	dtos, apierr := notes.ExportNotes(ctx)
	if apierr != nil {
		return fmt.Errorf("failed to export notes: status %d", apierr.Code())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&ExportData{
		ExportedAt: time.Now().UTC(),
		Notes:      dtos,
	})
}
