package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/stockstat/internal/analysis"
	"github.com/mtlprog/stockstat/internal/config"
	"github.com/mtlprog/stockstat/internal/export"
)

func exportCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write the statistics to an .xlsx file and/or a Google spreadsheet",
		Flags: []cli.Flag{
			symbolFlag(),
			triggerFlag(),
			periodFlag(),
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "path of the .xlsx file to write"},
			&cli.StringFlag{Name: "spreadsheet-id", Usage: "Google spreadsheet to rewrite (needs GOOGLE_CREDENTIALS_JSON)"},
		},
		Action: func(c *cli.Context) error {
			out := c.String("out")
			spreadsheetID := c.String("spreadsheet-id")
			if out == "" && spreadsheetID == "" {
				return errors.New("nothing to do: set --out and/or --spreadsheet-id")
			}
			if spreadsheetID != "" && cfg.GoogleCredentialsJSON == "" {
				return errors.New("GOOGLE_CREDENTIALS_JSON is required for --spreadsheet-id")
			}

			provider, closeProvider, err := openProvider(c.Context, cfg)
			if err != nil {
				return err
			}
			defer closeProvider()

			analyzer := export.EngineAnalyzer{Engine: analysis.NewEngine(provider, cfg.DefaultSymbol)}
			req := requestFrom(c)

			var view analysis.View
			if spreadsheetID != "" {
				writer, err := export.NewSheetsWriter(c.Context, spreadsheetID, cfg.GoogleCredentialsJSON)
				if err != nil {
					return err
				}
				view, err = export.NewService(analyzer, writer).Export(c.Context, req)
				if err != nil {
					return err
				}
			} else {
				view = analyzer.Analyze(c.Context, req)
			}

			if out != "" {
				if err := export.WriteWorkbookFile(out, view); err != nil {
					return err
				}
				slog.Info("workbook written", "path", out, "symbol", view.Symbol, "period", view.Period)
			}

			fmt.Fprintln(c.App.Writer, view.Title)
			return nil
		},
	}
}
