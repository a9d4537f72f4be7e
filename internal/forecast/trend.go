// Package forecast extrapolates a stock price from historical daily closes
// with an ordinary least-squares line over the series ordinals.
package forecast

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// InsufficientData is returned whenever fewer than MinDataPoints closes are
// available.
const InsufficientData = "Not enough historical data to forge a prediction."

const MinDataPoints = 10

var printer = message.NewPrinter(language.English)

// Predict fits closes against their 0-based ordinals and reports the price
// extrapolated horizonDays steps past the end of the series. The slope of
// the fit doubles as the average daily growth trend.
func Predict(closes []float64, horizonDays int) string {
	if len(closes) < MinDataPoints {
		return InsufficientData
	}

	slope, intercept := leastSquares(closes)
	predicted := slope*float64(len(closes)+horizonDays-1) + intercept

	return printer.Sprintf(
		"The Oracle predicts a value of around $%.2f in %d days, with an average daily growth trend of $%.2f.",
		predicted, horizonDays, slope,
	)
}

// leastSquares fits y = slope*x + intercept with x as the element index.
// The index is strictly increasing, so the denominator never degenerates.
func leastSquares(ys []float64) (slope, intercept float64) {
	n := float64(len(ys))

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	slope = (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
