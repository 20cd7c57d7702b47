package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/mtlprog/stockstat/internal/analysis"
	"github.com/mtlprog/stockstat/internal/config"
)

var (
	gainColor  = color.New(color.FgGreen)
	lossColor  = color.New(color.FgRed)
	titleColor = color.New(color.Bold)
)

func analyzeCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "print the statistics for a symbol and period",
		Flags: []cli.Flag{
			symbolFlag(),
			triggerFlag(),
			periodFlag(),
			&cli.BoolFlag{Name: "json", Usage: "print the view as JSON"},
		},
		Action: func(c *cli.Context) error {
			provider, closeProvider, err := openProvider(c.Context, cfg)
			if err != nil {
				return err
			}
			defer closeProvider()

			engine := analysis.NewEngine(provider, cfg.DefaultSymbol)
			view := analysis.NewView(engine.Analyze(c.Context, requestFrom(c)))

			if c.Bool("json") {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}
			return printView(c.App.Writer, view)
		},
	}
}

// printView writes the headline cards and the yearly table as aligned text.
func printView(w io.Writer, v analysis.View) error {
	if _, err := titleColor.Fprintln(w, v.Title); err != nil {
		return err
	}
	if v.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", v.Error)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Latest Price\t%s\n", v.LatestPrice)
	fmt.Fprintf(tw, "Average Price\t%s\n", v.AveragePrice)
	fmt.Fprintf(tw, "Gain/Loss\t%s\n", colorGain(v.GainLoss))
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(v.Yearly) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(analysis.YearlyColumns, "\t"))
	for _, row := range v.Yearly {
		cells := row.Cells()
		last := len(cells) - 1
		cells[last] = colorGain(cells[last])
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func colorGain(s string) string {
	switch {
	case strings.Contains(s, "-"):
		return lossColor.Sprint(s)
	case s == analysis.GainLossSentinel, strings.Contains(s, "NaN"):
		return s
	default:
		return gainColor.Sprint(s)
	}
}
