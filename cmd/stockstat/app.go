package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/stockstat/internal/analysis"
	"github.com/mtlprog/stockstat/internal/config"
	"github.com/mtlprog/stockstat/internal/database"
	"github.com/mtlprog/stockstat/internal/domain"
	"github.com/mtlprog/stockstat/internal/pricedb"
	"github.com/mtlprog/stockstat/internal/yahoo"
)

func newApp(cfg config.Config, out io.Writer) *cli.App {
	return &cli.App{
		Name:   "stockstat",
		Usage:  "historical stock price statistics dashboard",
		Writer: out,
		Commands: []*cli.Command{
			serveCommand(cfg),
			analyzeCommand(cfg),
			exportCommand(cfg),
			migrateCommand(cfg),
			importCommand(cfg),
		},
	}
}

func symbolFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "symbol",
		Aliases: []string{"s"},
		Usage:   "ticker symbol; empty uses DEFAULT_SYMBOL",
	}
}

func triggerFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "trigger",
		Aliases: []string{"t"},
		Usage:   "control that fired: a period token (5d, 1mo, ..., max) or find",
	}
}

func periodFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "period",
		Usage: "period currently selected in the dashboard",
	}
}

func requestFrom(c *cli.Context) analysis.Request {
	return analysis.Request{
		Symbol:    c.String("symbol"),
		Trigger:   domain.ParseTrigger(c.String("trigger")),
		Requested: domain.Period(c.String("period")),
	}
}

func newYahooClient(cfg config.Config) *yahoo.Client {
	return yahoo.NewClient(cfg.YahooURL, cfg.YahooRetryMax, cfg.YahooRetryBaseDelay, cfg.YahooTimeout, cfg.HTTPSProxy)
}

// openProvider returns the configured price source and a function releasing its resources.
func openProvider(ctx context.Context, cfg config.Config) (analysis.Provider, func(), error) {
	switch cfg.PriceSource {
	case config.SourcePostgres:
		repo, closeDB, err := openRepository(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return repo, closeDB, nil
	default:
		return newYahooClient(cfg), func() {}, nil
	}
}

func openRepository(ctx context.Context, cfg config.Config) (*pricedb.Repository, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL is required")
	}
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return pricedb.NewRepository(pool), pool.Close, nil
}
