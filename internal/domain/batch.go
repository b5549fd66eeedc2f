package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SimulationRun is one independent path of a batch.
type SimulationRun struct {
	ID       int                  `json:"id"`
	Seed     int64                `json:"seed"`
	Path     PortfolioPath        `json:"path"`
	Returns  ReturnSeries         `json:"returns"`
	Trailing TrailingReturnSeries `json:"-"`
}

// SimulationBatch is the full set of runs produced by one invocation. It is not
// mutated after the runner returns it.
type SimulationBatch struct {
	Parameters SimulationParameters `json:"parameters"`
	Months     MonthIndex           `json:"months"`
	Runs       []SimulationRun      `json:"runs"`
	Seed       int64                `json:"seed"`
}

// FinalValues returns the final portfolio value of every run.
func (b *SimulationBatch) FinalValues() []float64 {
	values := make([]float64, len(b.Runs))
	for i, run := range b.Runs {
		values[i] = run.Path.Final()
	}
	return values
}

// ValueStatistic pairs a final-value statistic with the monthly income it supports.
type ValueStatistic struct {
	FinalValue    decimal.Decimal `json:"final_value"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
}

// PercentileBand is the cross-run distribution of portfolio values at one month.
type PercentileBand struct {
	Month int       `json:"month"`
	Date  time.Time `json:"date"`
	Age   float64   `json:"age"`
	P10   float64   `json:"p10"`
	P50   float64   `json:"p50"`
	P90   float64   `json:"p90"`
}

// BatchStatistics summarizes the final values of a batch.
type BatchStatistics struct {
	NumSimulations      int              `json:"num_simulations"`
	NumMonths           int              `json:"num_months"`
	SafeWithdrawalRate  decimal.Decimal  `json:"safe_withdrawal_rate"`
	Mean                ValueStatistic   `json:"mean"`
	Median              ValueStatistic   `json:"median"`
	P10                 ValueStatistic   `json:"p10"`
	P90                 ValueStatistic   `json:"p90"`
	Min                 decimal.Decimal  `json:"min"`
	Max                 decimal.Decimal  `json:"max"`
	TotalContributions  decimal.Decimal  `json:"total_contributions"` // sum of net contributions, identical across runs
	CrashRate           decimal.Decimal  `json:"crash_rate"`          // share of runs with at least one crash
	GuardRate           decimal.Decimal  `json:"guard_rate"`          // share of runs that hit the negative-balance guard
	MonthlyBands        []PercentileBand `json:"monthly_bands"`
}

// BatchReport bundles a batch with its statistics for the output layer.
type BatchReport struct {
	Batch        *SimulationBatch `json:"batch"`
	Statistics   BatchStatistics  `json:"statistics"`
	GeneratedAt  time.Time        `json:"generated_at"`
	IncludePaths bool             `json:"-"`
}
