package output

import (
	"math"
	"strconv"

	money "github.com/rpgo/portfolio-simulator/pkg/decimal"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// FormatCurrency formats a decimal as whole US dollars with thousands separators.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatCurrencyFloat is FormatCurrency for float64 path values.
func FormatCurrencyFloat(amount float64) string {
	return money.NewMoney(amount).Format()
}

// FormatPercentage formats a fraction (0.07) as a percentage with 1 decimal ("7.0%").
func FormatPercentage(fraction decimal.Decimal) string {
	return fraction.Mul(decimalHundred).StringFixed(1) + "%"
}

// FormatRate is FormatPercentage for float64 rates.
func FormatRate(fraction float64) string {
	return FormatPercentage(decimal.NewFromFloat(fraction))
}

// formatFloat renders a float for CSV cells; NaN becomes an empty cell.
func formatFloat(v float64, prec int) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
