// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/finaly55/opti-credit/pkg/constants"
)

// RoundUnit rounds a value to the nearest whole currency unit. Halves round
// towards positive infinity so that -0.5 becomes 0 and 0.5 becomes 1.
func RoundUnit(val float64) float64 {
	return math.Floor(val + 0.5)
}

// RoundYear rounds a fractional year to one decimal.
func RoundYear(val float64) float64 {
	return math.Round(val*constants.YearPrecision) / constants.YearPrecision
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// MonthlyRate converts an annual percentage into a simple monthly rate.
func MonthlyRate(annualPct float64) float64 {
	return annualPct / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// CompoundMonthlyRate converts an annual percentage into the monthly rate that
// compounds to the same annual growth.
func CompoundMonthlyRate(annualPct float64) float64 {
	return math.Pow(1+annualPct/constants.PercentageMultiplier, 1.0/constants.MonthsPerYear) - 1
}
