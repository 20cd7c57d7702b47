package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/stockstat/internal/analysis"
	"github.com/mtlprog/stockstat/internal/api"
	"github.com/mtlprog/stockstat/internal/config"
)

func serveCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the dashboard HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Value: cfg.HTTPPort, Usage: "listen port"},
		},
		Action: func(c *cli.Context) error {
			provider, closeProvider, err := openProvider(c.Context, cfg)
			if err != nil {
				return err
			}
			defer closeProvider()

			engine := analysis.NewEngine(provider, cfg.DefaultSymbol)
			return serve(c.Context, api.NewServer(c.String("port"), engine), cfg.PriceSource)
		},
	}
}

// serve runs srv until ctx is cancelled or the listener fails. A listener failure such as a
// port already in use is returned so the process exits non-zero.
func serve(ctx context.Context, srv *http.Server, source string) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", srv.Addr, "price_source", source)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}

	slog.Info("shutdown complete")
	return nil
}
