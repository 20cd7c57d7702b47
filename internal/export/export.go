package export

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/mtlprog/stockstat/internal/analysis"
)

const (
	SummarySheet = "Summary"
	YearlySheet  = "Yearly"
	SeriesSheet  = "Series"
)

// SheetWriter writes an analysis view to a spreadsheet destination.
type SheetWriter interface {
	Write(ctx context.Context, view analysis.View) error
}

// Analyzer produces the result to export.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) analysis.View
}

// EngineAnalyzer adapts an *analysis.Engine to Analyzer.
type EngineAnalyzer struct {
	Engine *analysis.Engine
}

func (a EngineAnalyzer) Analyze(ctx context.Context, req analysis.Request) analysis.View {
	return analysis.NewView(a.Engine.Analyze(ctx, req))
}

// Service runs an analysis and hands the view to a SheetWriter.
type Service struct {
	analyzer Analyzer
	writer   SheetWriter
}

// NewService creates an export service.
func NewService(analyzer Analyzer, writer SheetWriter) *Service {
	return &Service{analyzer: analyzer, writer: writer}
}

// Export analyzes req and writes the result. Views that carry an error are still written
// so the destination reflects the latest request.
func (s *Service) Export(ctx context.Context, req analysis.Request) (analysis.View, error) {
	view := s.analyzer.Analyze(ctx, req)
	if view.Error != "" {
		slog.Warn("exporting degraded analysis", "symbol", view.Symbol, "period", view.Period, "error", view.Error)
	}

	if err := s.writer.Write(ctx, view); err != nil {
		return view, fmt.Errorf("writing %s %s: %w", view.Symbol, view.Period, err)
	}

	slog.Info("analysis exported", "symbol", view.Symbol, "period", view.Period, "years", len(view.Yearly))
	return view, nil
}

// summaryValues builds the Summary sheet: the title followed by label/value pairs.
func summaryValues(v analysis.View) [][]any {
	data := [][]any{
		{v.Title},
		{"Symbol", v.Symbol},
		{"Period", v.PeriodLabel},
		{"Latest Price", v.LatestPrice},
		{"Average Price", v.AveragePrice},
		{"Gain/Loss", v.GainLoss},
	}
	if v.Error != "" {
		data = append(data, []any{"Error", v.Error})
	}
	return data
}

// yearlyValues builds the Yearly sheet with analysis.YearlyColumns as the header row.
// Finite amounts become numbers; "NaN" and infinities stay as text.
func yearlyValues(v analysis.View) [][]any {
	data := make([][]any, 0, len(v.Yearly)+1)
	data = append(data, lo.ToAnySlice(analysis.YearlyColumns))
	for _, row := range v.Yearly {
		data = append(data, []any{
			row.Year,
			numericCell(row.Min),
			numericCell(row.Max),
			numericCell(row.StdDev),
			numericCell(row.Mean),
			row.GainLoss,
		})
	}
	return data
}

// seriesValues builds the Series sheet: one Date/Close row per observation.
func seriesValues(v analysis.View) [][]any {
	data := make([][]any, 0, len(v.Series)+1)
	data = append(data, []any{"Date", "Close"})
	for _, p := range v.Series {
		data = append(data, []any{p.Date, p.Close})
	}
	return data
}

func numericCell(s string) any {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return s
	}
	return f
}
