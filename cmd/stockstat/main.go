package main

import (
	"context"
	"embed"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	_ "time/tzdata"

	"github.com/mtlprog/stockstat/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	config.LoadDotEnv()
	cfg := config.Load()
	slog.SetDefault(newLogger(os.Stderr, cfg))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp(cfg, os.Stdout).RunContext(ctx, os.Args); err != nil {
		log.Fatalf("stockstat: %v", err)
	}
}

func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
