// Package appreciation converts between a target resale price and the
// constant annual growth rate that reaches it.
package appreciation

import (
	"math"

	"github.com/finaly55/opti-credit/pkg/constants"
	"github.com/finaly55/opti-credit/pkg/mathutil"
)

// RateFromPrices returns the compound annual growth rate, as a percentage,
// that takes currentPrice to futurePrice in the given number of years.
// Non-positive years or current price yield 0.
func RateFromPrices(currentPrice, futurePrice, years float64) float64 {
	if years <= 0 || currentPrice <= 0 {
		return 0
	}
	return (math.Pow(futurePrice/currentPrice, 1/years) - 1) * constants.PercentageMultiplier
}

// FuturePriceFromRate compounds currentPrice at ratePct per year and rounds to
// the nearest currency unit.
func FuturePriceFromRate(currentPrice, ratePct, years float64) float64 {
	return mathutil.RoundUnit(currentPrice * math.Pow(1+ratePct/constants.PercentageMultiplier, years))
}
