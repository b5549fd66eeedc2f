package output

import (
	"fmt"

	"github.com/rpgo/portfolio-simulator/internal/calculation"
	"github.com/rpgo/portfolio-simulator/internal/domain"
	money "github.com/rpgo/portfolio-simulator/pkg/decimal"
)

// GenerateAssumptions creates the modeling assumptions list from the parameters of a batch.
func GenerateAssumptions(p domain.SimulationParameters) []string {
	window := p.TrailingWindow
	if window <= 0 {
		window = calculation.DefaultTrailingWindow
	}
	list := []string{
		fmt.Sprintf("Expected annual return: %s, volatility: %s (normal monthly draws)", FormatRate(p.AnnualReturnRate), FormatRate(p.AnnualVolatility)),
		fmt.Sprintf("Income and expenses grow with inflation at %s annually (first-year net saving %s)",
			FormatRate(p.InflationRate), money.NewMoney(p.MonthlyNetContribution()).Annual().Format()),
		fmt.Sprintf("Negative balances accrue flat interest at %s annually instead of market returns", FormatRate(calculation.FlatInterestRate)),
		fmt.Sprintf("Trailing returns annualized over %d months", window),
		fmt.Sprintf("Monthly income figures assume a %s annual safe withdrawal rate", FormatPercentage(calculation.SafeWithdrawalRate)),
	}
	if p.Crash != nil {
		list = append(list, fmt.Sprintf("Market crashes: %s monthly chance, %s shock, %d month recovery",
			FormatRate(p.Crash.Probability), FormatRate(p.Crash.Return), p.Crash.RecoveryMonths))
	} else {
		list = append(list, "Market crashes: disabled")
	}
	return list
}
