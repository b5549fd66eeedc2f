package domain

import "time"

// CrashConfig enables market crash injection in the return series.
type CrashConfig struct {
	Probability    float64 `yaml:"probability" json:"probability"`         // Per-month chance of a crash
	Return         float64 `yaml:"return" json:"return"`                   // Fixed return applied on the crash month, e.g. -0.20
	RecoveryMonths int     `yaml:"recovery_months" json:"recovery_months"` // Length of the recovery window including the crash month
}

// SimulationParameters holds the immutable inputs of one simulation batch.
// Percentage-valued fields are decimals (0.07, not 7).
type SimulationParameters struct {
	StartingAge       int     `yaml:"starting_age" json:"starting_age"`
	RetirementAge     int     `yaml:"retirement_age" json:"retirement_age"`
	MonthlyIncome     float64 `yaml:"monthly_income" json:"monthly_income"`
	MonthlyExpenses   float64 `yaml:"monthly_expenses" json:"monthly_expenses"`
	AnnualReturnRate  float64 `yaml:"annual_return_rate" json:"annual_return_rate"`
	AnnualVolatility  float64 `yaml:"annual_volatility" json:"annual_volatility"`
	InflationRate     float64 `yaml:"inflation_rate" json:"inflation_rate"`
	InitialInvestment float64 `yaml:"initial_investment" json:"initial_investment"`
	NumSimulations    int     `yaml:"num_simulations" json:"num_simulations"`

	Crash *CrashConfig `yaml:"crash,omitempty" json:"crash,omitempty"`

	// StartDate anchors the month index; zero means DefaultStartDate.
	StartDate time.Time `yaml:"start_date,omitempty" json:"start_date,omitempty"`
	// TrailingWindow is the trailing-return window in months; zero means 24.
	TrailingWindow int `yaml:"trailing_window,omitempty" json:"trailing_window,omitempty"`
	// Seed pins the random source of the batch; zero derives one from the clock.
	Seed int64 `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// DefaultStartDate is the month the simulation clock starts in when none is configured.
var DefaultStartDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// NumMonths returns the number of simulated months until retirement.
func (p SimulationParameters) NumMonths() int {
	return (p.RetirementAge - p.StartingAge) * 12
}

// EffectiveStartDate returns StartDate or DefaultStartDate when unset.
func (p SimulationParameters) EffectiveStartDate() time.Time {
	if p.StartDate.IsZero() {
		return DefaultStartDate
	}
	return p.StartDate
}

// MonthlyNetContribution is the uninflated difference between income and expenses.
func (p SimulationParameters) MonthlyNetContribution() float64 {
	return p.MonthlyIncome - p.MonthlyExpenses
}
