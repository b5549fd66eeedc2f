package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// milestoneMonths is the spacing of the value-band rows in the console summary.
const milestoneMonths = 60

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.BatchReport) ([]byte, error) {
	var buf bytes.Buffer
	stats := report.Statistics
	fmt.Fprintln(&buf, "RETIREMENT PORTFOLIO SIMULATION")
	fmt.Fprintln(&buf, "================================")
	if report.Batch != nil {
		p := report.Batch.Parameters
		fmt.Fprintf(&buf, "Ages %d → %d (%d months), %d simulations, seed %d\n",
			p.StartingAge, p.RetirementAge, stats.NumMonths, stats.NumSimulations, report.Batch.Seed)
		fmt.Fprintf(&buf, "Initial investment: %s  Monthly income: %s  Monthly expenses: %s\n",
			FormatCurrencyFloat(p.InitialInvestment), FormatCurrencyFloat(p.MonthlyIncome), FormatCurrencyFloat(p.MonthlyExpenses))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-18s %16s %16s\n", "Statistic", "Final Value", "Monthly Income")
	rows := []struct {
		label string
		v     domain.ValueStatistic
	}{
		{"Mean", stats.Mean},
		{"Median", stats.Median},
		{"10th Percentile", stats.P10},
		{"90th Percentile", stats.P90},
	}
	for _, r := range rows {
		fmt.Fprintf(&buf, "%-18s %16s %16s\n", r.label, FormatCurrency(r.v.FinalValue), FormatCurrency(r.v.MonthlyIncome))
	}
	fmt.Fprintf(&buf, "Range: %s to %s\n", FormatCurrency(stats.Min), FormatCurrency(stats.Max))
	fmt.Fprintf(&buf, "Total net contributions: %s\n", FormatCurrency(stats.TotalContributions))
	fmt.Fprintf(&buf, "Runs with a crash: %s  Runs hitting negative balance: %s\n",
		FormatPercentage(stats.CrashRate), FormatPercentage(stats.GuardRate))

	if len(stats.MonthlyBands) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "Portfolio value bands")
		fmt.Fprintf(&buf, "%-10s %6s %14s %14s %14s\n", "Date", "Age", "P10", "Median", "P90")
		for _, b := range milestoneBands(stats.MonthlyBands) {
			fmt.Fprintf(&buf, "%-10s %6.1f %14s %14s %14s\n", b.Date.Format("2006-01"), b.Age,
				FormatCurrencyFloat(b.P10), FormatCurrencyFloat(b.P50), FormatCurrencyFloat(b.P90))
		}
	}
	return buf.Bytes(), nil
}

// milestoneBands picks every milestoneMonths-th band plus the final month.
func milestoneBands(bands []domain.PercentileBand) []domain.PercentileBand {
	var picked []domain.PercentileBand
	for i := milestoneMonths - 1; i < len(bands); i += milestoneMonths {
		picked = append(picked, bands[i])
	}
	if len(picked) == 0 || picked[len(picked)-1].Month != bands[len(bands)-1].Month {
		picked = append(picked, bands[len(bands)-1])
	}
	return picked
}
