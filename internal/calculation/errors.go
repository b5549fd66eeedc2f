package calculation

import (
	"errors"
	"fmt"
	"math"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// ErrInvalidParameter is returned (wrapped) when simulation inputs are rejected
// before any simulation work begins.
var ErrInvalidParameter = errors.New("invalid parameter")

// MaxSimulationMonths bounds the accumulation phase of a single path (100 years).
const MaxSimulationMonths = 1200

func invalidParameter(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

// ValidateParameters checks the batch inputs.
func ValidateParameters(p domain.SimulationParameters) error {
	if p.RetirementAge <= p.StartingAge {
		return invalidParameter("retirement age (%d) must be greater than starting age (%d)", p.RetirementAge, p.StartingAge)
	}
	if years := p.RetirementAge - p.StartingAge; years <= 0 || years > MaxSimulationMonths/12 {
		return invalidParameter("simulation spans %d years, at most %d are supported", years, MaxSimulationMonths/12)
	}
	if p.NumSimulations < 1 {
		return invalidParameter("number of simulations must be at least 1, got %d", p.NumSimulations)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"monthly income", p.MonthlyIncome},
		{"monthly expenses", p.MonthlyExpenses},
		{"initial investment", p.InitialInvestment},
		{"annual return rate", p.AnnualReturnRate},
		{"annual volatility", p.AnnualVolatility},
		{"inflation rate", p.InflationRate},
	} {
		if !isFinite(f.value) {
			return invalidParameter("%s must be a finite number, got %v", f.name, f.value)
		}
	}
	if math.IsNaN(p.AnnualVolatility) || p.AnnualVolatility < 0 {
		return invalidParameter("annual volatility cannot be negative, got %v", p.AnnualVolatility)
	}
	if math.IsNaN(p.AnnualReturnRate) || p.AnnualReturnRate <= -1 {
		return invalidParameter("annual return rate must be greater than -100%%, got %v", p.AnnualReturnRate)
	}
	if math.IsNaN(p.InflationRate) || p.InflationRate <= -1 {
		return invalidParameter("inflation rate must be greater than -100%%, got %v", p.InflationRate)
	}
	if p.TrailingWindow < 0 {
		return invalidParameter("trailing window cannot be negative, got %d", p.TrailingWindow)
	}
	return validateCrash(p.Crash)
}

func validateCrash(c *domain.CrashConfig) error {
	if c == nil {
		return nil
	}
	if math.IsNaN(c.Probability) || c.Probability < 0 || c.Probability > 1 {
		return invalidParameter("crash probability must be between 0 and 1, got %v", c.Probability)
	}
	if !isFinite(c.Return) {
		return invalidParameter("crash return must be a finite number, got %v", c.Return)
	}
	if c.RecoveryMonths < 1 {
		return invalidParameter("crash recovery months must be at least 1, got %d", c.RecoveryMonths)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
