package calculation

import (
	"math"
	"time"

	"github.com/rpgo/portfolio-simulator/internal/domain"
	"github.com/rpgo/portfolio-simulator/pkg/dateutil"
)

// FlatInterestRate is the annual rate applied instead of the market return while
// the balance after contributions is negative.
const FlatInterestRate = 0.05

const guardGrowthFactor = 1 + FlatInterestRate/12

// NewMonthIndex builds numMonths month-end dates starting with the end of start's month.
func NewMonthIndex(start time.Time, numMonths int) domain.MonthIndex {
	return domain.MonthIndex(dateutil.MonthEnds(start, numMonths))
}

// SimulatePath evolves one portfolio over months using the given monthly returns.
func SimulatePath(months domain.MonthIndex, params domain.SimulationParameters, returns []float64) (domain.PortfolioPath, error) {
	if len(months) == 0 {
		return domain.PortfolioPath{}, invalidParameter("month index is empty")
	}
	if len(returns) != len(months) {
		return domain.PortfolioPath{}, invalidParameter("return series has %d months, month index has %d", len(returns), len(months))
	}

	records := make([]domain.MonthRecord, len(months))
	balance := params.InitialInvestment
	start := months[0]

	for i, date := range months {
		elapsed := dateutil.YearsBetween(start, date)
		growth := math.Pow(1+params.InflationRate, elapsed)
		income := params.MonthlyIncome * growth
		expenses := params.MonthlyExpenses * growth
		net := income - expenses

		preValue := balance + net
		guard := preValue < 0
		if guard {
			balance = preValue * guardGrowthFactor
		} else {
			balance = preValue * (1 + returns[i])
		}

		records[i] = domain.MonthRecord{
			Month:           i,
			Date:            date,
			Age:             float64(params.StartingAge) + elapsed,
			MonthlyIncome:   income,
			MonthlyExpenses: expenses,
			NetContribution: net,
			PortfolioValue:  balance,
			Return:          returns[i],
			GuardApplied:    guard,
		}
	}

	return domain.PortfolioPath{Records: records}, nil
}
