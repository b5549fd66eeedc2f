package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// HTMLFormatter produces a self-contained HTML report with an inline SVG fan chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"currf":   FormatCurrencyFloat,
	"pct":     FormatPercentage,
	"rate":    FormatRate,
	"crash":   crashLabel,
	"datefmt": func(b domain.PercentileBand) string { return b.Date.Format("Jan 2006") },
}).Parse(htmlTemplateSource))

const (
	chartWidth   = 800.0
	chartHeight  = 320.0
	chartPadding = 40.0
)

// fanChart holds the precomputed SVG geometry of the value bands.
type fanChart struct {
	Width, Height   float64
	Band            string // p10..p90 area polygon
	Median          string
	Lower, Upper    string
	RetirementX     float64
	AxisTop         float64
	AxisBottom      float64
	MinLabel        string
	MaxLabel        string
	StartAgeLabel   string
	EndAgeLabel     string
	RetirementLabel string
}

func (h HTMLFormatter) Format(report *domain.BatchReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.BatchReport
		Parameters  *domain.SimulationParameters
		Assumptions []string
		Chart       *fanChart
		Milestones  []domain.PercentileBand
	}{BatchReport: report}
	if report.Batch != nil {
		data.Parameters = &report.Batch.Parameters
		data.Assumptions = GenerateAssumptions(report.Batch.Parameters)
	}
	if bands := report.Statistics.MonthlyBands; len(bands) >= 2 {
		data.Chart = buildFanChart(bands)
		data.Milestones = milestoneBands(bands)
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildFanChart(bands []domain.PercentileBand) *fanChart {
	lo, hi := bandRange(bands)
	plotW := chartWidth - 2*chartPadding
	plotH := chartHeight - 2*chartPadding
	x := func(i int) float64 { return chartPadding + plotW*float64(i)/float64(len(bands)-1) }
	y := func(v float64) float64 { return chartPadding + plotH - plotH*(v-lo)/(hi-lo) }
	points := func(pick func(domain.PercentileBand) float64) []string {
		out := make([]string, len(bands))
		for i, b := range bands {
			out[i] = fmt.Sprintf("%.1f,%.1f", x(i), y(pick(b)))
		}
		return out
	}

	lower := points(func(b domain.PercentileBand) float64 { return b.P10 })
	upper := points(func(b domain.PercentileBand) float64 { return b.P90 })
	median := points(func(b domain.PercentileBand) float64 { return b.P50 })
	area := append([]string(nil), upper...)
	for i := len(lower) - 1; i >= 0; i-- {
		area = append(area, lower[i])
	}

	last := bands[len(bands)-1]
	return &fanChart{
		Width:           chartWidth,
		Height:          chartHeight,
		Band:            strings.Join(area, " "),
		Median:          strings.Join(median, " "),
		Lower:           strings.Join(lower, " "),
		Upper:           strings.Join(upper, " "),
		RetirementX:     x(len(bands) - 1),
		AxisTop:         chartPadding,
		AxisBottom:      chartHeight - chartPadding,
		MinLabel:        FormatCurrencyFloat(lo),
		MaxLabel:        FormatCurrencyFloat(hi),
		StartAgeLabel:   fmt.Sprintf("Age %.1f", bands[0].Age),
		EndAgeLabel:     fmt.Sprintf("Age %.1f", last.Age),
		RetirementLabel: fmt.Sprintf("Retirement (%s)", last.Date.Format("Jan 2006")),
	}
}
