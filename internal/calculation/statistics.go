package calculation

import (
	"math"
	"sort"

	"github.com/rpgo/portfolio-simulator/internal/domain"
	money "github.com/rpgo/portfolio-simulator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// SafeWithdrawalRate is the annual withdrawal rate used to express a final balance as monthly income.
var SafeWithdrawalRate = decimal.NewFromFloat(0.04)

// Summarize computes final-value statistics and per-month percentile bands for a batch.
func Summarize(batch *domain.SimulationBatch) domain.BatchStatistics {
	stats := domain.BatchStatistics{SafeWithdrawalRate: SafeWithdrawalRate}
	if batch == nil || len(batch.Runs) == 0 {
		return stats
	}

	finals := batch.FinalValues()
	sorted := append([]float64(nil), finals...)
	sort.Float64s(sorted)

	stats.NumSimulations = len(batch.Runs)
	stats.NumMonths = batch.Runs[0].Path.Len()
	stats.Mean = valueStatistic(calculateMean(finals))
	stats.Median = valueStatistic(toDecimal(Percentile(sorted, 50)))
	stats.P10 = valueStatistic(toDecimal(Percentile(sorted, 10)))
	stats.P90 = valueStatistic(toDecimal(Percentile(sorted, 90)))
	stats.Min = toDecimal(sorted[0])
	stats.Max = toDecimal(sorted[len(sorted)-1])

	contributions := money.Zero()
	for _, r := range batch.Runs[0].Path.Records {
		contributions = contributions.Add(money.NewMoneyFromDecimal(toDecimal(r.NetContribution)))
	}
	stats.TotalContributions = contributions.Round().Decimal

	crashed, guarded := 0, 0
	for _, run := range batch.Runs {
		if len(run.Returns.CrashMonths) > 0 {
			crashed++
		}
		if run.Path.GuardMonths() > 0 {
			guarded++
		}
	}
	n := decimal.NewFromInt(int64(len(batch.Runs)))
	stats.CrashRate = decimal.NewFromInt(int64(crashed)).Div(n)
	stats.GuardRate = decimal.NewFromInt(int64(guarded)).Div(n)

	stats.MonthlyBands = calculateMonthlyBands(batch)
	return stats
}

func valueStatistic(value decimal.Decimal) domain.ValueStatistic {
	return domain.ValueStatistic{
		FinalValue:    value,
		MonthlyIncome: money.NewMoneyFromDecimal(value).MonthlyWithdrawal(SafeWithdrawalRate).Decimal,
	}
}

// calculateMean averages in decimal so identical inputs yield exactly that input.
func calculateMean(values []float64) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	var sum decimal.Decimal
	for _, v := range values {
		sum = sum.Add(toDecimal(v))
	}
	return sum.Div(decimal.NewFromInt(int64(len(values))))
}

// toDecimal converts v, mapping NaN and infinities (which decimal cannot hold) to zero.
func toDecimal(v float64) decimal.Decimal {
	if !isFinite(v) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// Percentile returns the p-th percentile (0-100) of an ascending slice using linear
// interpolation between closest ranks. It returns NaN for an empty slice.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 || p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[n-1]
	}
	rank := p / 100 * float64(n-1)
	lower := int(math.Floor(rank))
	upper := lower + 1
	if upper >= n {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}

// calculateMonthlyBands builds the cross-run p10/p50/p90 of portfolio value for every month.
func calculateMonthlyBands(batch *domain.SimulationBatch) []domain.PercentileBand {
	reference := batch.Runs[0].Path.Records
	bands := make([]domain.PercentileBand, len(reference))
	column := make([]float64, len(batch.Runs))
	for m, rec := range reference {
		for i, run := range batch.Runs {
			column[i] = run.Path.Records[m].PortfolioValue
		}
		sort.Float64s(column)
		bands[m] = domain.PercentileBand{
			Month: m,
			Date:  rec.Date,
			Age:   rec.Age,
			P10:   Percentile(column, 10),
			P50:   Percentile(column, 50),
			P90:   Percentile(column, 90),
		}
	}
	return bands
}

// NewBatchReport bundles a batch with its statistics for the output layer.
func NewBatchReport(batch *domain.SimulationBatch, includePaths bool) *domain.BatchReport {
	return &domain.BatchReport{
		Batch:        batch,
		Statistics:   Summarize(batch),
		GeneratedAt:  nowFunc(),
		IncludePaths: includePaths,
	}
}
