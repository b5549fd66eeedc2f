package calculation

import (
	"math"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// DefaultTrailingWindow is the trailing-return window in months.
const DefaultTrailingWindow = 24

// TrailingReturns computes the annualized compound return over the window months
// preceding each index. Indices before a full window are NaN. A non-positive
// window falls back to DefaultTrailingWindow.
func TrailingReturns(returns []float64, window int) domain.TrailingReturnSeries {
	if window <= 0 {
		window = DefaultTrailingWindow
	}
	trailing := make(domain.TrailingReturnSeries, len(returns))
	for i := range returns {
		if i < window {
			trailing[i] = math.NaN()
			continue
		}
		growth := 1.0
		for _, r := range returns[i-window : i] {
			growth *= 1 + r
		}
		cumulative := growth - 1
		trailing[i] = math.Pow(1+cumulative, 12/float64(window)) - 1
	}
	return trailing
}
