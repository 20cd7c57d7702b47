// Package analysis turns a price series into the dashboard's result bundle.
package analysis

import (
	"log/slog"
	"math"
	"slices"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mtlprog/stockstat/internal/domain"
	"github.com/mtlprog/stockstat/internal/stats"
)

// Aggregate computes the headline metrics and the per-year breakdown of series.
// Closes must be finite. An empty series yields a result carrying domain.NoDataMessage.
func Aggregate(series domain.PriceSeries) domain.AnalysisResult {
	result := domain.AnalysisResult{
		Symbol: series.Symbol,
		Yearly: []domain.YearlyStat{},
		Series: series,
	}
	if series.Empty() {
		result.Error = domain.NoDataMessage
		return result
	}

	obs := series.Observations
	first, last := obs[0].Close, obs[len(obs)-1].Close

	result.Headline = domain.Headline{
		LatestPrice:          domain.Round2(last),
		AveragePrice:         round2(stats.Mean(stats.FromFloats(series.Closes()))),
		TotalGainLossPercent: domain.Round2(gainLoss(series.Symbol, 0, first, last)),
	}
	result.Yearly = yearly(series.Symbol, obs)
	return result
}

// yearly groups observations by calendar year, oldest year first.
func yearly(symbol string, obs []domain.Observation) []domain.YearlyStat {
	groups := lo.GroupBy(obs, func(o domain.Observation) int { return o.Date.Year() })
	years := lo.Keys(groups)
	slices.Sort(years)

	return lo.Map(years, func(year int, _ int) domain.YearlyStat {
		return yearStat(symbol, year, groups[year])
	})
}

func yearStat(symbol string, year int, group []domain.Observation) domain.YearlyStat {
	closes := stats.FromFloats(lo.Map(group, func(o domain.Observation, _ int) float64 { return o.Close }))
	first, last := group[0].Close, group[len(group)-1].Close

	return domain.YearlyStat{
		Year:            year,
		Min:             round2(stats.Min(closes)),
		Max:             round2(stats.Max(closes)),
		StdDev:          domain.Round2(stats.SampleStdDev(closes)),
		Mean:            round2(stats.Mean(closes)),
		GainLossPercent: domain.Round2(gainLoss(symbol, year, first, last)),
		Count:           len(group),
	}
}

// gainLoss is (first - last) / last * 100. year is zero for the whole series.
func gainLoss(symbol string, year int, first, last float64) float64 {
	g := domain.PercentChange(first, last)
	if math.IsNaN(g) || math.IsInf(g, 0) {
		slog.Warn("gain/loss undefined: last close is zero", "symbol", symbol, "year", year, "result", g)
	}
	return g
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return domain.Round2(f)
}
