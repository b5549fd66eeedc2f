package main

import (
	"fmt"
	"math/rand"

	"github.com/rpgo/portfolio-simulator/internal/calculation"
	"github.com/rpgo/portfolio-simulator/internal/config"
	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// Prints crash and recovery windows for a high-probability crash setting so the
// recovery ramp toward the normal mean can be eyeballed.
func main() {
	crash := config.DefaultCrashConfig()
	crash.Probability = 0.05
	const (
		months     = 120
		annualRate = 0.07
		volatility = 0.15
	)

	series, err := calculation.GenerateReturns(months, annualRate, volatility, crash, rand.New(rand.NewSource(7)))
	if err != nil {
		panic(err)
	}
	fmt.Printf("Crash months: %v\n", series.CrashMonths)
	fmt.Printf("Monthly mean: %.5f, sd: %.5f\n", calculation.MonthlyExpectedReturn(annualRate), calculation.MonthlyVolatility(volatility))

	for _, start := range series.CrashMonths {
		fmt.Printf("\nCrash at month %d:\n", start)
		for j := 0; j < crash.RecoveryMonths && start+j < len(series.Monthly); j++ {
			fmt.Printf("  +%02d  target mean %.5f  drawn %.5f\n", j, recoveryMean(annualRate, crash, j), series.Monthly[start+j])
		}
	}
}

func recoveryMean(annualRate float64, crash *domain.CrashConfig, j int) float64 {
	if j == 0 {
		return crash.Return
	}
	return calculation.MonthlyExpectedReturn(annualRate) * float64(j) / float64(crash.RecoveryMonths)
}
