package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// CSVSummarizer implements the summary CSV output (one row per statistic).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.BatchReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Statistic", "FinalValue", "MonthlyIncome"}); err != nil {
		return nil, err
	}
	s := report.Statistics
	rows := [][]string{
		{"Mean", s.Mean.FinalValue.StringFixed(2), s.Mean.MonthlyIncome.StringFixed(2)},
		{"Median", s.Median.FinalValue.StringFixed(2), s.Median.MonthlyIncome.StringFixed(2)},
		{"P10", s.P10.FinalValue.StringFixed(2), s.P10.MonthlyIncome.StringFixed(2)},
		{"P90", s.P90.FinalValue.StringFixed(2), s.P90.MonthlyIncome.StringFixed(2)},
		{"Min", s.Min.StringFixed(2), ""},
		{"Max", s.Max.StringFixed(2), ""},
		{"TotalContributions", s.TotalContributions.StringFixed(2), ""},
		{"CrashRate", s.CrashRate.StringFixed(4), ""},
		{"GuardRate", s.GuardRate.StringFixed(4), ""},
		{"NumSimulations", intToString(s.NumSimulations), ""},
		{"NumMonths", intToString(s.NumMonths), ""},
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
