package domain

import (
	"errors"
	"time"
)

// Observation is a single daily close.
type Observation struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is a chronologically ordered run of daily closes for one symbol.
// An empty series means the provider found nothing for the symbol and period.
type PriceSeries struct {
	Symbol       string        `json:"symbol"`
	Observations []Observation `json:"observations"`
}

// Empty reports whether the series has no observations.
func (s PriceSeries) Empty() bool {
	return len(s.Observations) == 0
}

// Closes returns the closing prices in chronological order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Observations))
	for i, o := range s.Observations {
		closes[i] = o.Close
	}
	return closes
}

// ErrNoData is returned by providers that know the symbol and period have no observations.
var ErrNoData = errors.New("no price data")
