package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

const pricePrecision = 2

// Round2 rounds v to two decimal places the way numpy does: scale by 100, round half to even,
// scale back. 0.125 becomes 0.12 and 1.005 (scaled to 100.4999...) becomes 1. NaN and
// infinities pass through.
func Round2(v float64) float64 {
	if !isFinite(v) {
		return v
	}
	scale := math.Pow10(pricePrecision)
	return math.RoundToEven(v*scale) / scale
}

// FormatFixed renders v with exactly two decimal places ("105.00", "-16.67").
// Non-finite values render as "NaN", "+Inf" or "-Inf".
func FormatFixed(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return decimal.NewFromFloat(v).StringFixed(pricePrecision)
}

// PercentChange returns (from - to) / to * 100.
//
// The operand order is the one the dashboard has always shown: the first close minus the last,
// divided by the last. A zero divisor yields ±Inf or NaN instead of panicking.
func PercentChange(from, to float64) float64 {
	if to == 0 || !isFinite(from) || !isFinite(to) {
		return (from - to) / to * 100
	}
	f, _ := decimal.NewFromFloat(from).
		Sub(decimal.NewFromFloat(to)).
		Div(decimal.NewFromFloat(to)).
		Mul(decimal.NewFromInt(100)).
		Float64()
	return f
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
