package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/portfolio-simulator/internal/calculation"
	"github.com/rpgo/portfolio-simulator/internal/config"
	"github.com/rpgo/portfolio-simulator/internal/domain"
)

const exampleConfig = "../testdata/example_config.yaml"

var twelve = decimal.NewFromInt(12)

func loadExample(t *testing.T) *domain.Configuration {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile(exampleConfig)
	require.NoError(t, err)
	return cfg
}

func TestEndToEndSimulation(t *testing.T) {
	cfg := loadExample(t)
	assert.Equal(t, 40, cfg.Simulation.NumSimulations)
	require.NotNil(t, cfg.Simulation.Crash)

	batch, err := calculation.NewBatchRunner().Run(context.Background(), cfg.Simulation)
	require.NoError(t, err)
	require.Len(t, batch.Runs, 40)
	require.Len(t, batch.Months, 120)
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), batch.Months[0])
	assert.Equal(t, time.Date(2034, 12, 31, 0, 0, 0, 0, time.UTC), batch.Months[119])

	for i, run := range batch.Runs {
		assert.Equal(t, i, run.ID)
		assert.Equal(t, cfg.Simulation.Seed+int64(i), run.Seed)
		require.Equal(t, 120, run.Path.Len())
		assert.Equal(t, 120, run.Returns.Len())
		assert.Len(t, run.Trailing, 120)
		assert.False(t, run.Trailing.Defined(23))
		assert.True(t, run.Trailing.Defined(24))
		assert.Equal(t, 24.0, run.Path.Records[0].Age)
	}

	again, err := calculation.NewBatchRunner().Run(context.Background(), cfg.Simulation)
	require.NoError(t, err)
	assert.Equal(t, batch.FinalValues(), again.FinalValues(), "seeded batches are reproducible")
}

func TestBasicCalculations(t *testing.T) {
	cfg := loadExample(t)
	batch, err := calculation.NewBatchRunner().Run(context.Background(), cfg.Simulation)
	require.NoError(t, err)

	stats := calculation.Summarize(batch)
	assert.Equal(t, 40, stats.NumSimulations)
	assert.Equal(t, 120, stats.NumMonths)
	assert.True(t, stats.P10.FinalValue.LessThanOrEqual(stats.Median.FinalValue))
	assert.True(t, stats.Median.FinalValue.LessThanOrEqual(stats.P90.FinalValue))
	assert.True(t, stats.Min.LessThanOrEqual(stats.P10.FinalValue))
	assert.True(t, stats.P90.FinalValue.LessThanOrEqual(stats.Max))
	assert.True(t, stats.Median.FinalValue.GreaterThan(decimal.NewFromFloat(cfg.Simulation.InitialInvestment)))
	assert.Len(t, stats.MonthlyBands, 120)

	want := stats.Median.FinalValue.Mul(calculation.SafeWithdrawalRate).Div(twelve)
	assert.True(t, want.Equal(stats.Median.MonthlyIncome))
}

func TestDeterministicWithoutVolatility(t *testing.T) {
	cfg := loadExample(t)
	params := cfg.Simulation
	params.AnnualVolatility = 0
	params.Crash = nil
	params.Seed = 0

	batch, err := calculation.NewBatchRunner().Run(context.Background(), params)
	require.NoError(t, err)
	stats := calculation.Summarize(batch)

	assert.True(t, stats.Mean.FinalValue.Equal(stats.Median.FinalValue))
	assert.True(t, stats.P10.FinalValue.Equal(stats.Median.FinalValue))
	assert.True(t, stats.P90.FinalValue.Equal(stats.Median.FinalValue))
	assert.True(t, stats.CrashRate.IsZero())

	monthly := calculation.MonthlyExpectedReturn(params.AnnualReturnRate)
	trailing := batch.Runs[0].Trailing
	for i := 24; i < len(trailing); i++ {
		assert.InDelta(t, params.AnnualReturnRate, trailing[i], 1e-9)
	}
	for _, r := range batch.Runs[0].Returns.Monthly {
		assert.InDelta(t, monthly, r, 1e-15)
	}
}

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()
	cfg := loadExample(t)
	assert.NoError(t, parser.ValidateConfiguration(cfg))

	cfg.Simulation.Crash.RecoveryMonths = 0
	err := parser.ValidateConfiguration(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, calculation.ErrInvalidParameter)
}
