package domain

// NoDataMessage is shown when a symbol and period produce no observations.
const NoDataMessage = "No data found, symbol may be delisted"

// Headline holds the summary figures over the whole series, rounded to two decimals.
type Headline struct {
	LatestPrice          float64
	AveragePrice         float64
	TotalGainLossPercent float64
}

// YearlyStat describes the closes of one calendar year, rounded to two decimals.
// StdDev is NaN for a year with a single observation.
type YearlyStat struct {
	Year            int
	Min             float64
	Max             float64
	StdDev          float64
	Mean            float64
	GainLossPercent float64
	Count           int
}

// AnalysisResult is the bundle handed to the presentation layer. Error is empty on success;
// when it is set the headline is zero and Yearly is empty.
type AnalysisResult struct {
	Symbol      string
	Period      Period
	PeriodLabel string
	Headline    Headline
	Error       string
	Yearly      []YearlyStat
	Series      PriceSeries
}
