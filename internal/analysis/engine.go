package analysis

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mtlprog/stockstat/internal/domain"
	"github.com/mtlprog/stockstat/internal/period"
)

// DefaultSymbol is analysed when a request carries no symbol.
const DefaultSymbol = "VTI"

// Provider fetches the daily closes of symbol over period.
// Implementations may return an empty series or an error; both are shown as "no data".
type Provider interface {
	Fetch(ctx context.Context, symbol string, period domain.Period) (domain.PriceSeries, error)
}

// Request is one dashboard interaction.
type Request struct {
	Symbol    string
	Trigger   domain.Trigger
	Requested domain.Period // period in effect before this interaction, may be empty
}

// Engine resolves the period, fetches the series once and aggregates it.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	provider      Provider
	defaultSymbol string
}

// NewEngine creates an Engine. An empty defaultSymbol means DefaultSymbol.
func NewEngine(provider Provider, defaultSymbol string) *Engine {
	if defaultSymbol == "" {
		defaultSymbol = DefaultSymbol
	}
	return &Engine{provider: provider, defaultSymbol: NormalizeSymbol(defaultSymbol)}
}

// Analyze runs one request. It always returns a renderable result.
func (e *Engine) Analyze(ctx context.Context, req Request) domain.AnalysisResult {
	symbol := NormalizeSymbol(req.Symbol)
	if symbol == "" {
		symbol = e.defaultSymbol
	}
	p := period.Resolve(req.Trigger, req.Requested)

	series, err := e.provider.Fetch(ctx, symbol, p)
	if err != nil {
		if errors.Is(err, domain.ErrNoData) {
			slog.Info("no price data", "symbol", symbol, "period", p)
		} else {
			slog.Warn("price fetch failed, showing no data", "symbol", symbol, "period", p, "error", err)
		}
		series = domain.PriceSeries{}
	}
	series.Symbol = symbol

	result := Aggregate(series)
	result.Period = p
	result.PeriodLabel = p.Label()
	return result
}

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
