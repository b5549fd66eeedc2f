package domain

import (
	"math"
	"time"
)

// MonthIndex is the ordered sequence of month-end dates a path is simulated over.
// It is built once per batch and shared read-only by every run.
type MonthIndex []time.Time

// ReturnSeries holds the monthly fractional returns of one path.
type ReturnSeries struct {
	Monthly     []float64 `json:"monthly"`
	CrashMonths []int     `json:"crash_months,omitempty"` // indices whose return was set to the crash shock
}

// Len returns the number of months in the series
func (r ReturnSeries) Len() int { return len(r.Monthly) }

// MonthRecord is the state of a portfolio path at the end of one month.
type MonthRecord struct {
	Month           int       `json:"month"`
	Date            time.Time `json:"date"`
	Age             float64   `json:"age"`
	MonthlyIncome   float64   `json:"monthly_income"`
	MonthlyExpenses float64   `json:"monthly_expenses"`
	NetContribution float64   `json:"net_contribution"`
	PortfolioValue  float64   `json:"portfolio_value"`
	Return          float64   `json:"return"`
	GuardApplied    bool      `json:"guard_applied"` // flat interest used instead of the market return
}

// PortfolioPath is the month-by-month trajectory of one simulated portfolio.
type PortfolioPath struct {
	Records []MonthRecord `json:"records"`
}

// Len returns the number of months on the path
func (p PortfolioPath) Len() int { return len(p.Records) }

// Values returns the portfolio value series.
func (p PortfolioPath) Values() []float64 {
	values := make([]float64, len(p.Records))
	for i, r := range p.Records {
		values[i] = r.PortfolioValue
	}
	return values
}

// Final returns the last portfolio value, or 0 for an empty path.
func (p PortfolioPath) Final() float64 {
	if len(p.Records) == 0 {
		return 0
	}
	return p.Records[len(p.Records)-1].PortfolioValue
}

// GuardMonths counts the months where the negative-balance guard was applied.
func (p PortfolioPath) GuardMonths() int {
	n := 0
	for _, r := range p.Records {
		if r.GuardApplied {
			n++
		}
	}
	return n
}

// TrailingReturnSeries holds annualized trailing returns aligned with a ReturnSeries.
// Entries without a full window are NaN.
type TrailingReturnSeries []float64

// Defined reports whether entry i carries a value.
func (t TrailingReturnSeries) Defined(i int) bool {
	return i >= 0 && i < len(t) && !math.IsNaN(t[i])
}
