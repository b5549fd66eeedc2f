package calculation

import (
	"time"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// scriptedSource replays fixed uniform and normal draws; exhausted streams yield 0.
type scriptedSource struct {
	uniforms []float64
	normals  []float64
	ui, ni   int
}

func (s *scriptedSource) Float64() float64 {
	if s.ui >= len(s.uniforms) {
		return 0.999
	}
	v := s.uniforms[s.ui]
	s.ui++
	return v
}

func (s *scriptedSource) NormFloat64() float64 {
	if len(s.normals) == 0 {
		return 0
	}
	v := s.normals[s.ni%len(s.normals)]
	s.ni++
	return v
}

// uniformsWithCrashesAt returns n uniform draws that fall below any positive
// crash probability exactly at the given months.
func uniformsWithCrashesAt(n int, months ...int) []float64 {
	u := make([]float64, n)
	for i := range u {
		u[i] = 0.999
	}
	for _, m := range months {
		u[m] = 0
	}
	return u
}

func exampleParameters() domain.SimulationParameters {
	return domain.SimulationParameters{
		StartingAge:       24,
		RetirementAge:     26,
		MonthlyIncome:     5000,
		MonthlyExpenses:   3500,
		AnnualReturnRate:  0,
		AnnualVolatility:  0,
		InflationRate:     0,
		InitialInvestment: 50000,
		NumSimulations:    1,
	}
}

func constantReturns(n int, r float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = r
	}
	return out
}

// batchFromFinals builds a batch whose runs each have a single month ending at the given values.
func batchFromFinals(finals ...float64) *domain.SimulationBatch {
	date := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	batch := &domain.SimulationBatch{Months: domain.MonthIndex{date}}
	for i, v := range finals {
		batch.Runs = append(batch.Runs, domain.SimulationRun{
			ID: i,
			Path: domain.PortfolioPath{Records: []domain.MonthRecord{
				{Month: 0, Date: date, Age: 30, NetContribution: 1000, PortfolioValue: v},
			}},
		})
	}
	return batch
}
