// Package stats provides descriptive statistics over decimal slices.
package stats

import (
	"log/slog"
	"math"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// FromFloats converts float64 values to decimals.
func FromFloats(values []float64) []decimal.Decimal {
	return lo.Map(values, func(v float64, _ int) decimal.Decimal {
		return decimal.NewFromFloat(v)
	})
}

// Sum adds all values.
func Sum(values []decimal.Decimal) decimal.Decimal {
	return lo.Reduce(values, func(acc decimal.Decimal, v decimal.Decimal, _ int) decimal.Decimal {
		return acc.Add(v)
	}, decimal.Zero)
}

// Mean calculates the arithmetic mean of a decimal slice.
func Mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return Sum(values).Div(decimal.NewFromInt(int64(len(values))))
}

// Variance calculates the sample variance (n-1 divisor) of a decimal slice.
// Fewer than two values yield zero; use SampleStdDev to tell that case apart.
func Variance(values []decimal.Decimal) decimal.Decimal {
	if len(values) < 2 {
		return decimal.Zero
	}

	mean := Mean(values)
	sumSqDiff := lo.Reduce(values, func(acc decimal.Decimal, v decimal.Decimal, _ int) decimal.Decimal {
		diff := v.Sub(mean)
		return acc.Add(diff.Mul(diff))
	}, decimal.Zero)

	return sumSqDiff.Div(decimal.NewFromInt(int64(len(values) - 1)))
}

// StdDev calculates the sample standard deviation of a decimal slice.
func StdDev(values []decimal.Decimal) decimal.Decimal {
	v := Variance(values)
	f, exact := v.Float64()
	if !exact {
		slog.Debug("precision loss in StdDev float64 conversion", "variance", v.String())
	}
	return decimal.NewFromFloat(math.Sqrt(f))
}

// SampleStdDev is StdDev as a float64, NaN when there are fewer than two values.
func SampleStdDev(values []decimal.Decimal) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	f, _ := StdDev(values).Float64()
	return f
}

// Min returns the smallest value, or zero for an empty slice.
func Min(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Min(values[0], values[1:]...)
}

// Max returns the largest value, or zero for an empty slice.
func Max(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Max(values[0], values[1:]...)
}
