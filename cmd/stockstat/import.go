package main

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/stockstat/internal/analysis"
	"github.com/mtlprog/stockstat/internal/config"
	"github.com/mtlprog/stockstat/internal/domain"
)

func importCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "load daily closes from Yahoo Finance into the daily_prices table",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "symbol", Aliases: []string{"s"}, Usage: "ticker symbols to load", Required: true},
			&cli.StringFlag{Name: "period", Value: string(domain.PeriodMax), Usage: "lookback to load"},
		},
		Action: func(c *cli.Context) error {
			period, ok := domain.ParsePeriod(c.String("period"))
			if !ok {
				return fmt.Errorf("unknown period %q", c.String("period"))
			}

			repo, closeDB, err := openRepository(c.Context, cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			client := newYahooClient(cfg)
			for _, raw := range c.StringSlice("symbol") {
				symbol := analysis.NormalizeSymbol(raw)
				series, err := client.Fetch(c.Context, symbol, period)
				if err != nil {
					return fmt.Errorf("fetching %s: %w", symbol, err)
				}
				n, err := repo.Save(c.Context, series)
				if err != nil {
					return err
				}
				slog.Info("imported daily prices", "symbol", symbol, "period", period, "rows", n)
				fmt.Fprintf(c.App.Writer, "%s: %d row(s)\n", symbol, n)
			}
			return nil
		},
	}
}
