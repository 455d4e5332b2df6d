package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"tagnotes/cmd/internal/config"
	"tagnotes/cmd/internal/domain/sqlite"
	"tagnotes/cmd/internal/http/middleware"
	"tagnotes/cmd/internal/http/router"
	"tagnotes/cmd/internal/utils"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database and start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	db, err := openDatabase()
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer func() {
		if err := sqlite.Close(db); err != nil {
			log.Errorf("failed to close database: %v", err)
		}
	}()

	if err := sqlite.Migrate(ctx, db, "up"); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	tokens, err := newTokenValidator(ctx, cfg.JWT)
	if err != nil {
		return fmt.Errorf("init token validator: %w", err)
	}

	e := router.New(cfg, db, tokens)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Infof("%s listening on %s", cfg.App.Name, cfg.HTTP.Addr)
		if err := e.Start(cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return e.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("wait app stop: %w", err)
	}
	return nil
}

// newTokenValidator prefers the JWKS endpoint over the shared secret. It
// returns a nil validator when authentication is not configured.
func newTokenValidator(ctx context.Context, jwt config.JWTConfig) (middleware.TokenValidator, error) {
	if !jwt.Enabled() {
		log.Warn("no JWT secret or JWKS url configured, /api is unauthenticated")
		return nil, nil
	}

	if jwt.JWKSURL != "" {
		return utils.NewJWKSValidator(ctx, jwt.JWKSURL)
	}
	return utils.NewHMACValidator(jwt.Base64Secret)
}
