package output

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/portfolio-simulator/internal/calculation"
	"github.com/rpgo/portfolio-simulator/internal/domain"
)

var testGeneratedAt = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func buildTestReport(t *testing.T, includePaths bool) *domain.BatchReport {
	t.Helper()
	params := domain.SimulationParameters{
		StartingAge:       30,
		RetirementAge:     33,
		MonthlyIncome:     5000,
		MonthlyExpenses:   3500,
		AnnualReturnRate:  0.07,
		AnnualVolatility:  0.15,
		InflationRate:     0.03,
		InitialInvestment: 50000,
		NumSimulations:    4,
		Crash:             &domain.CrashConfig{Probability: 0.02, Return: -0.20, RecoveryMonths: 12},
		Seed:              7,
	}
	batch, err := calculation.NewBatchRunner().Run(context.Background(), params)
	require.NoError(t, err)
	report := calculation.NewBatchReport(batch, includePaths)
	report.GeneratedAt = testGeneratedAt
	return report
}

func TestFormatterRegistry(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"console", "console"},
		{"text", "console"},
		{"VERBOSE", "console"},
		{"json", "json"},
		{"json-pretty", "json"},
		{"csv", "csv"},
		{"paths-csv", "paths-csv"},
		{"detailed-csv", "paths-csv"},
		{" html-report ", "html"},
		{"pdf", "pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.expected, f.Name())
		})
	}

	assert.Nil(t, GetFormatterByName("xml"))
	assert.Equal(t, []string{"console", "csv", "html", "json", "paths-csv", "pdf"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "detailed-csv")
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, "txt", ExtensionFor(ConsoleFormatter{}))
	assert.Equal(t, "paths.csv", ExtensionFor(CSVPathExporter{}))
	assert.Equal(t, "csv", ExtensionFor(CSVSummarizer{}))
	assert.Equal(t, "pdf", ExtensionFor(PDFFormatter{}))
	assert.Equal(t, "md", ExtensionFor(FormatterFunc{ID: "md"}))
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport(t, false))
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "RETIREMENT PORTFOLIO SIMULATION")
	assert.Contains(t, content, "Ages 30 → 33 (36 months), 4 simulations, seed 7")
	assert.Contains(t, content, "Median")
	assert.Contains(t, content, "Portfolio value bands")
	assert.Contains(t, content, "2027-12")
}

func TestMilestoneBands(t *testing.T) {
	bands := func(n int) []domain.PercentileBand {
		out := make([]domain.PercentileBand, n)
		for i := range out {
			out[i].Month = i
		}
		return out
	}

	short := milestoneBands(bands(36))
	require.Len(t, short, 1)
	assert.Equal(t, 35, short[0].Month)

	exact := milestoneBands(bands(120))
	require.Len(t, exact, 2)
	assert.Equal(t, 59, exact[0].Month)
	assert.Equal(t, 119, exact[1].Month)

	ragged := milestoneBands(bands(130))
	require.Len(t, ragged, 3)
	assert.Equal(t, 129, ragged[2].Month)
}

func TestCSVSummarizer(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReport(t, false))
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 12)
	assert.Equal(t, []string{"Statistic", "FinalValue", "MonthlyIncome"}, rows[0])
	assert.Equal(t, "Mean", rows[1][0])
	assert.Equal(t, []string{"NumSimulations", "4", ""}, rows[10])
	assert.Equal(t, []string{"NumMonths", "36", ""}, rows[11])
}

func TestCSVPathExporter(t *testing.T) {
	report := buildTestReport(t, true)
	out, err := CSVPathExporter{}.Format(report)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1+4*36)

	assert.Equal(t, "TrailingReturn", rows[0][9])
	first := rows[1]
	assert.Equal(t, []string{"0", "0", "2025-01-31"}, first[:3])
	assert.Equal(t, "", first[9], "trailing return undefined before a full window")
	assert.NotEmpty(t, rows[1+24][9], "trailing return defined once the window is full")
	assert.Equal(t, "1", rows[1+36][0])
}

func TestJSONFormatter(t *testing.T) {
	t.Run("statistics only", func(t *testing.T) {
		out, err := JSONFormatter{}.Format(buildTestReport(t, false))
		require.NoError(t, err)
		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal(out, &doc))
		assert.Contains(t, doc, "statistics")
		assert.Contains(t, doc, "assumptions")
		assert.NotContains(t, doc, "paths")
		assert.Equal(t, float64(7), doc["seed"])
	})

	t.Run("with paths", func(t *testing.T) {
		out, err := JSONFormatter{}.Format(buildTestReport(t, true))
		require.NoError(t, err)
		var doc ReportDocument
		require.NoError(t, json.Unmarshal(out, &doc))
		require.Len(t, doc.Paths, 4)
		path := doc.Paths[0]
		assert.Len(t, path.Records, 36)
		assert.Nil(t, path.Trailing[0])
		assert.NotNil(t, path.Trailing[24])
		assert.Equal(t, path.Records[35].PortfolioValue, path.FinalValue)
	})
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport(t, false))
	require.NoError(t, err)
	content := string(out)
	assert.True(t, strings.HasPrefix(content, "<!DOCTYPE html>"))
	assert.Contains(t, content, `<svg id="fan-chart"`)
	assert.Contains(t, content, "Retirement (Dec 2027)")
	assert.Contains(t, content, "Assumptions")
	assert.NotContains(t, content, "{{")
}

func TestHTMLFormatter_SingleMonth(t *testing.T) {
	report := &domain.BatchReport{
		GeneratedAt: testGeneratedAt,
		Statistics:  domain.BatchStatistics{MonthlyBands: []domain.PercentileBand{{Month: 0}}},
	}
	out, err := HTMLFormatter{}.Format(report)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<svg")
}

func TestPDFFormatter(t *testing.T) {
	out, err := PDFFormatter{}.Format(buildTestReport(t, false))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestWriteFormatted(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	name, err := WriteFormatted(ConsoleFormatter{}, buildTestReport(t, false), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "simulation_report_20250102_030405.txt"), name)

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(data), "RETIREMENT PORTFOLIO SIMULATION")
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	failing := FormatterFunc{ID: "broken", F: func(*domain.BatchReport) ([]byte, error) {
		return nil, assert.AnError
	}}
	_, err := WriteFormatted(failing, &domain.BatchReport{}, t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "format broken")
}

func TestGenerateAssumptions(t *testing.T) {
	params := domain.SimulationParameters{
		MonthlyIncome:    5000,
		MonthlyExpenses:  3500,
		AnnualReturnRate: 0.07,
		AnnualVolatility: 0.15,
		InflationRate:    0.03,
	}
	list := GenerateAssumptions(params)
	assert.Contains(t, list[0], "7.0%")
	assert.Contains(t, list[1], "first-year net saving $18,000")
	assert.Contains(t, list[3], "24 months")
	assert.Equal(t, "Market crashes: disabled", list[len(list)-1])

	params.Crash = &domain.CrashConfig{Probability: 0.02, Return: -0.2, RecoveryMonths: 12}
	params.TrailingWindow = 36
	list = GenerateAssumptions(params)
	assert.Contains(t, list[3], "36 months")
	assert.Equal(t, "Market crashes: 2.0% monthly chance, -20.0% shock, 12 month recovery", list[len(list)-1])
}
