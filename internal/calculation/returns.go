package calculation

import (
	"math"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// RandomSource is the subset of *rand.Rand the generators draw from. Each run owns one.
type RandomSource interface {
	Float64() float64
	NormFloat64() float64
}

// recoveryVolatilityFactor scales the monthly volatility inside a crash recovery window.
const recoveryVolatilityFactor = 1.5

// MonthlyExpectedReturn converts an annual rate to the equivalent monthly compounded rate.
func MonthlyExpectedReturn(annualRate float64) float64 {
	return math.Pow(1+annualRate, 1.0/12) - 1
}

// MonthlyVolatility converts annual volatility to monthly volatility.
func MonthlyVolatility(annualVolatility float64) float64 {
	return annualVolatility / math.Sqrt(12)
}

// GenerateReturns draws numMonths normally distributed monthly returns and, when
// crash is non-nil, injects crash shocks followed by recovery windows.
func GenerateReturns(numMonths int, annualRate, annualVolatility float64, crash *domain.CrashConfig, rng RandomSource) (domain.ReturnSeries, error) {
	if numMonths <= 0 {
		return domain.ReturnSeries{}, invalidParameter("month count must be positive, got %d", numMonths)
	}
	if math.IsNaN(annualVolatility) || annualVolatility < 0 {
		return domain.ReturnSeries{}, invalidParameter("annual volatility cannot be negative, got %v", annualVolatility)
	}
	if err := validateCrash(crash); err != nil {
		return domain.ReturnSeries{}, err
	}

	mean := MonthlyExpectedReturn(annualRate)
	sd := MonthlyVolatility(annualVolatility)

	monthly := make([]float64, numMonths)
	for i := range monthly {
		monthly[i] = mean + sd*rng.NormFloat64()
	}

	series := domain.ReturnSeries{Monthly: monthly}
	if crash != nil {
		series.CrashMonths = injectCrashes(monthly, mean, sd, *crash, rng)
	}
	return series, nil
}

// injectCrashes overwrites monthly in place and returns the crash month indices.
// The crash mask is drawn for every month before any overwrite happens; crashes
// are then applied in month order so a later crash replaces an earlier recovery.
func injectCrashes(monthly []float64, mean, sd float64, crash domain.CrashConfig, rng RandomSource) []int {
	n := len(monthly)
	crashed := make([]bool, n)
	for i := range crashed {
		crashed[i] = rng.Float64() < crash.Probability
	}

	var crashMonths []int
	recoverySD := sd * recoveryVolatilityFactor
	for i := 0; i < n; i++ {
		if !crashed[i] {
			continue
		}
		monthly[i] = crash.Return
		crashMonths = append(crashMonths, i)
		for j := 1; j < crash.RecoveryMonths && i+j < n; j++ {
			progress := float64(j) / float64(crash.RecoveryMonths)
			monthly[i+j] = mean*progress + recoverySD*rng.NormFloat64()
		}
	}
	return crashMonths
}
