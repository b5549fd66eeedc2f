package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// CSVPathExporter provides raw month-by-month detail for every run of the batch.
type CSVPathExporter struct{}

func (c CSVPathExporter) Name() string      { return "paths-csv" }
func (c CSVPathExporter) Extension() string { return "paths.csv" }

func (c CSVPathExporter) Format(report *domain.BatchReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Run", "Month", "Date", "Age", "MonthlyIncome", "MonthlyExpenses", "NetContribution", "PortfolioValue", "Return", "TrailingReturn", "GuardApplied"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if report.Batch == nil {
		w.Flush()
		return buf.Bytes(), w.Error()
	}
	for _, run := range report.Batch.Runs {
		for i, rec := range run.Path.Records {
			trailing := ""
			if run.Trailing.Defined(i) {
				trailing = formatFloat(run.Trailing[i], 6)
			}
			row := []string{
				intToString(run.ID),
				intToString(rec.Month),
				rec.Date.Format("2006-01-02"),
				formatFloat(rec.Age, 4),
				formatFloat(rec.MonthlyIncome, 2),
				formatFloat(rec.MonthlyExpenses, 2),
				formatFloat(rec.NetContribution, 2),
				formatFloat(rec.PortfolioValue, 2),
				formatFloat(rec.Return, 6),
				trailing,
				boolToString(rec.GuardApplied),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
