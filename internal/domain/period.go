package domain

import (
	"slices"
	"strings"
	"time"
)

// Period is a lookback window token understood by the price providers.
// Tokens are case-sensitive.
type Period string

const (
	Period5D  Period = "5d"
	Period1Mo Period = "1mo"
	Period3Mo Period = "3mo"
	Period6Mo Period = "6mo"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
	Period5Y  Period = "5y"
	Period10Y Period = "10y"
	PeriodYTD Period = "ytd"
	PeriodMax Period = "max"
)

// DefaultPeriod is in effect on first load and after a symbol submit.
const DefaultPeriod = Period1Y

var periods = []Period{
	Period5D, Period1Mo, Period3Mo, Period6Mo, Period1Y,
	Period2Y, Period5Y, Period10Y, PeriodYTD, PeriodMax,
}

// Periods returns all recognized tokens in the order the period controls are shown.
func Periods() []Period {
	return slices.Clone(periods)
}

// ParsePeriod returns the period for s and whether s is a recognized token.
func ParsePeriod(s string) (Period, bool) {
	p := Period(s)
	return p, p.Valid()
}

// Valid reports whether p is one of the recognized tokens.
func (p Period) Valid() bool {
	return slices.Contains(periods, p)
}

// Label returns the display label, e.g. "1Y" or "YTD".
func (p Period) Label() string {
	return strings.ToUpper(string(p))
}

// Since returns midnight of the first calendar day covered by the window ending at now.
// Windows are calendar based ("5d" is five calendar days). PeriodMax returns the zero time.
// Unrecognized periods fall back to DefaultPeriod.
func (p Period) Since(now time.Time) time.Time {
	var start time.Time
	switch p {
	case Period5D:
		start = now.AddDate(0, 0, -5)
	case Period1Mo:
		start = now.AddDate(0, -1, 0)
	case Period3Mo:
		start = now.AddDate(0, -3, 0)
	case Period6Mo:
		start = now.AddDate(0, -6, 0)
	case Period1Y:
		start = now.AddDate(-1, 0, 0)
	case Period2Y:
		start = now.AddDate(-2, 0, 0)
	case Period5Y:
		start = now.AddDate(-5, 0, 0)
	case Period10Y:
		start = now.AddDate(-10, 0, 0)
	case PeriodYTD:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	case PeriodMax:
		return time.Time{}
	default:
		return DefaultPeriod.Since(now)
	}
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())
}
