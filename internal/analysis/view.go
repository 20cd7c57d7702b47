package analysis

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"

	"github.com/mtlprog/stockstat/internal/domain"
)

// Placeholders shown on the headline cards when there is no data.
const (
	PriceSentinel    = "$00.00"
	GainLossSentinel = "%00.00"
)

// YearlyColumns are the headers of the yearly statistics table.
var YearlyColumns = []string{"Year", "Min", "Max", "Standard deviation", "Price Avg", "Gain/Loss"}

// View is the presentation form of an AnalysisResult: currency values carry a leading "$",
// the headline gain/loss a leading "%" and the yearly gain/loss a trailing "%".
type View struct {
	Symbol       string        `json:"symbol"`
	Period       domain.Period `json:"period"`
	PeriodLabel  string        `json:"periodLabel"`
	Title        string        `json:"title"`
	Error        string        `json:"error"`
	LatestPrice  string        `json:"latestPrice"`
	AveragePrice string        `json:"averagePrice"`
	GainLoss     string        `json:"gainLoss"`
	Yearly       []YearRow     `json:"yearly"`
	Series       []Point       `json:"series"`
}

// YearRow is one row of the yearly statistics table.
type YearRow struct {
	Year     int    `json:"year"`
	Min      string `json:"min"`
	Max      string `json:"max"`
	StdDev   string `json:"stdDev"`
	Mean     string `json:"priceAvg"`
	GainLoss string `json:"gainLoss"`
	Count    int    `json:"count"`
}

// Cells returns the row in YearlyColumns order.
func (r YearRow) Cells() []string {
	return []string{strconv.Itoa(r.Year), r.Min, r.Max, r.StdDev, r.Mean, r.GainLoss}
}

// Point is one chart sample.
type Point struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// NewView formats r for the presentation layer.
func NewView(r domain.AnalysisResult) View {
	v := View{
		Symbol:       r.Symbol,
		Period:       r.Period,
		PeriodLabel:  r.PeriodLabel,
		Title:        fmt.Sprintf("%s (%s) Stock Analysis", r.Symbol, r.PeriodLabel),
		Error:        r.Error,
		LatestPrice:  PriceSentinel,
		AveragePrice: PriceSentinel,
		GainLoss:     GainLossSentinel,
		Yearly: lo.Map(r.Yearly, func(y domain.YearlyStat, _ int) YearRow {
			return YearRow{
				Year:     y.Year,
				Min:      domain.FormatFixed(y.Min),
				Max:      domain.FormatFixed(y.Max),
				StdDev:   domain.FormatFixed(y.StdDev),
				Mean:     domain.FormatFixed(y.Mean),
				GainLoss: domain.FormatFixed(y.GainLossPercent) + "%",
				Count:    y.Count,
			}
		}),
		Series: lo.Map(r.Series.Observations, func(o domain.Observation, _ int) Point {
			return Point{Date: o.Date.Format("2006-01-02"), Close: o.Close}
		}),
	}

	if r.Error == "" {
		v.LatestPrice = "$" + domain.FormatFixed(r.Headline.LatestPrice)
		v.AveragePrice = "$" + domain.FormatFixed(r.Headline.AveragePrice)
		v.GainLoss = "%" + domain.FormatFixed(r.Headline.TotalGainLossPercent)
	}
	return v
}
