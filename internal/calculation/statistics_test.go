package calculation

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/rpgo/portfolio-simulator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentile(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	tests := []struct {
		p        float64
		expected float64
	}{
		{0, 1},
		{10, 1.4},
		{50, 3},
		{90, 4.6},
		{100, 5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, Percentile(values, tt.p), 1e-12, "p%.0f", tt.p)
	}

	assert.Equal(t, 7.0, Percentile([]float64{7}, 90))
	assert.True(t, math.IsNaN(Percentile(nil, 50)))
	// Even count median averages the middle pair.
	assert.Equal(t, 2.5, Percentile([]float64{1, 2, 3, 4}, 50))
}

func TestSummarize_FinalValueStatistics(t *testing.T) {
	stats := Summarize(batchFromFinals(400, 100, 300, 200))

	assert.Equal(t, 4, stats.NumSimulations)
	assert.Equal(t, 1, stats.NumMonths)
	assert.True(t, stats.Mean.FinalValue.Equal(decimal.NewFromInt(250)), "mean %s", stats.Mean.FinalValue)
	assert.True(t, stats.Median.FinalValue.Equal(decimal.NewFromInt(250)), "median %s", stats.Median.FinalValue)
	assert.InDelta(t, 130, stats.P10.FinalValue.InexactFloat64(), 1e-9)
	assert.InDelta(t, 370, stats.P90.FinalValue.InexactFloat64(), 1e-9)
	assert.True(t, stats.Min.Equal(decimal.NewFromInt(100)))
	assert.True(t, stats.Max.Equal(decimal.NewFromInt(400)))
	assert.True(t, stats.TotalContributions.Equal(decimal.NewFromInt(1000)))
}

func TestSummarize_MonthlyIncomeUsesSafeWithdrawalRate(t *testing.T) {
	stats := Summarize(batchFromFinals(1200000, 1200000))

	assert.True(t, stats.SafeWithdrawalRate.Equal(decimal.NewFromFloat(0.04)))
	assert.Equal(t, "4000.00", stats.Mean.MonthlyIncome.StringFixed(2))
	assert.Equal(t, "4000.00", stats.P10.MonthlyIncome.StringFixed(2))
}

func TestSummarize_IdenticalRunsCollapse(t *testing.T) {
	params := exampleParameters()
	params.NumSimulations = 10
	params.Seed = 5

	batch, err := NewBatchRunner().Run(context.Background(), params)
	require.NoError(t, err)

	stats := Summarize(batch)
	expected := decimal.NewFromInt(86000)
	for name, v := range map[string]decimal.Decimal{
		"mean":   stats.Mean.FinalValue,
		"median": stats.Median.FinalValue,
		"p10":    stats.P10.FinalValue,
		"p90":    stats.P90.FinalValue,
	} {
		assert.True(t, v.Equal(expected), "%s = %s", name, v)
	}
	assert.True(t, stats.GuardRate.IsZero())
	assert.True(t, stats.CrashRate.IsZero())
}

func TestSummarize_MonthlyBands(t *testing.T) {
	batch, err := NewBatchRunner().Run(context.Background(), stochasticParameters())
	require.NoError(t, err)

	stats := Summarize(batch)
	require.Len(t, stats.MonthlyBands, len(batch.Months))
	for i, band := range stats.MonthlyBands {
		assert.Equal(t, i, band.Month)
		assert.Equal(t, batch.Months[i], band.Date)
		assert.LessOrEqual(t, band.P10, band.P50)
		assert.LessOrEqual(t, band.P50, band.P90)
	}
	last := stats.MonthlyBands[len(stats.MonthlyBands)-1]
	assert.InDelta(t, stats.Median.FinalValue.InexactFloat64(), last.P50, 1e-6)
}

func TestSummarize_CrashAndGuardRates(t *testing.T) {
	batch := batchFromFinals(1, 2, 3, 4)
	batch.Runs[0].Returns.CrashMonths = []int{0}
	batch.Runs[1].Path.Records[0].GuardApplied = true
	batch.Runs[2].Path.Records[0].GuardApplied = true

	stats := Summarize(batch)
	assert.True(t, stats.CrashRate.Equal(decimal.NewFromFloat(0.25)))
	assert.True(t, stats.GuardRate.Equal(decimal.NewFromFloat(0.5)))
}

func TestSummarize_EmptyBatch(t *testing.T) {
	stats := Summarize(&domain.SimulationBatch{})
	assert.Equal(t, 0, stats.NumSimulations)
	assert.Empty(t, stats.MonthlyBands)

	stats = Summarize(nil)
	assert.True(t, stats.Mean.FinalValue.IsZero())
}

func TestSummarize_NonFiniteValuesDoNotPanic(t *testing.T) {
	batch := batchFromFinals(100, math.NaN(), 300, math.Inf(1))
	batch.Runs[0].Path.Records[0].NetContribution = math.NaN()

	var stats domain.BatchStatistics
	require.NotPanics(t, func() { stats = Summarize(batch) })
	assert.True(t, stats.Mean.FinalValue.Equal(decimal.NewFromInt(100)), "mean %s", stats.Mean.FinalValue)
	assert.True(t, stats.Max.IsZero())
	assert.True(t, stats.TotalContributions.IsZero())
	assert.Len(t, stats.MonthlyBands, 1)
}

func TestNewBatchReport(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	SetNowFunc(func() time.Time { return fixed })
	defer SetNowFunc(time.Now)

	report := NewBatchReport(batchFromFinals(10, 20), true)
	assert.Equal(t, fixed, report.GeneratedAt)
	assert.True(t, report.IncludePaths)
	assert.Equal(t, 2, report.Statistics.NumSimulations)
}
