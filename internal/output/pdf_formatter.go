package output

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/rpgo/portfolio-simulator/internal/domain"
)

const (
	pdfPageWidth    = 210.0
	pdfMarginLeft   = 15.0
	pdfMarginRight  = 15.0
	pdfMarginTop    = 15.0
	pdfMarginBottom = 20.0
	pdfContentWidth = pdfPageWidth - pdfMarginLeft - pdfMarginRight
	pdfChartHeight  = 70.0
)

// PDFFormatter renders a one-page summary of the batch.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(report *domain.BatchReport) ([]byte, error) {
	doc := &pdfReport{pdf: fpdf.New("P", "mm", "A4", ""), report: report}
	doc.pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	doc.pdf.SetAutoPageBreak(true, pdfMarginBottom)
	if !report.GeneratedAt.IsZero() {
		doc.pdf.SetCreationDate(report.GeneratedAt)
	}
	doc.pdf.SetTitle("Retirement Portfolio Simulation", false)

	doc.pdf.AddPage()
	doc.addTitle()
	doc.addParameters()
	doc.addStatistics()
	doc.addChart()
	doc.addAssumptions()

	var buf bytes.Buffer
	if err := doc.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type pdfReport struct {
	pdf    *fpdf.Fpdf
	report *domain.BatchReport
}

func (r *pdfReport) addTitle() {
	r.pdf.SetFont("Arial", "B", 20)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWidth, 12, "Retirement Portfolio Simulation", "", 1, "C", false, 0, "")
	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.CellFormat(pdfContentWidth, 6, fmt.Sprintf("Generated: %s", r.report.GeneratedAt.Format("2 January 2006 15:04")), "", 1, "C", false, 0, "")
	r.pdf.Ln(4)
}

func (r *pdfReport) addParameters() {
	if r.report.Batch == nil {
		return
	}
	p := r.report.Batch.Parameters
	r.drawSectionHeader("Parameters")
	rows := [][]string{
		{"Ages", fmt.Sprintf("%d to %d", p.StartingAge, p.RetirementAge), "Simulations", intToString(p.NumSimulations)},
		{"Monthly income", FormatCurrencyFloat(p.MonthlyIncome), "Monthly expenses", FormatCurrencyFloat(p.MonthlyExpenses)},
		{"Initial investment", FormatCurrencyFloat(p.InitialInvestment), "Seed", fmt.Sprintf("%d", r.report.Batch.Seed)},
		{"Annual return", FormatRate(p.AnnualReturnRate), "Volatility", FormatRate(p.AnnualVolatility)},
		{"Inflation", FormatRate(p.InflationRate), "Crashes", crashLabel(p.Crash)},
	}
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	col := pdfContentWidth / 4
	for _, row := range rows {
		for i, cell := range row {
			ln := 0
			if i == len(row)-1 {
				ln = 1
			}
			r.pdf.CellFormat(col, 5, cell, "", ln, "L", false, 0, "")
		}
	}
	r.pdf.Ln(4)
}

func (r *pdfReport) addStatistics() {
	s := r.report.Statistics
	r.drawSectionHeader("Final Portfolio Value")
	widths := []float64{60, 60, 60}
	r.drawTableHeader([]string{"Statistic", "Final Value", "Monthly Income"}, widths)
	for _, row := range []struct {
		label string
		v     domain.ValueStatistic
	}{
		{"Mean", s.Mean},
		{"Median", s.Median},
		{"10th Percentile", s.P10},
		{"90th Percentile", s.P90},
	} {
		r.drawTableRow([]string{row.label, FormatCurrency(row.v.FinalValue), FormatCurrency(row.v.MonthlyIncome)}, widths)
	}
	r.pdf.Ln(4)
}

// addChart draws the p10/p50/p90 value bands as polylines.
func (r *pdfReport) addChart() {
	bands := r.report.Statistics.MonthlyBands
	if len(bands) < 2 {
		return
	}
	r.drawSectionHeader("Portfolio Value Bands")
	top := r.pdf.GetY()
	lo, hi := bandRange(bands)
	x := func(i int) float64 { return pdfMarginLeft + pdfContentWidth*float64(i)/float64(len(bands)-1) }
	y := func(v float64) float64 { return top + pdfChartHeight - pdfChartHeight*(v-lo)/(hi-lo) }

	r.pdf.SetDrawColor(200, 200, 200)
	r.pdf.Rect(pdfMarginLeft, top, pdfContentWidth, pdfChartHeight, "D")
	series := []struct {
		pick    func(domain.PercentileBand) float64
		r, g, b int
	}{
		{func(b domain.PercentileBand) float64 { return b.P10 }, 180, 60, 60},
		{func(b domain.PercentileBand) float64 { return b.P50 }, 0, 51, 102},
		{func(b domain.PercentileBand) float64 { return b.P90 }, 40, 140, 60},
	}
	r.pdf.SetLineWidth(0.4)
	for _, s := range series {
		r.pdf.SetDrawColor(s.r, s.g, s.b)
		for i := 1; i < len(bands); i++ {
			r.pdf.Line(x(i-1), y(s.pick(bands[i-1])), x(i), y(s.pick(bands[i])))
		}
	}
	r.pdf.SetLineWidth(0.2)
	r.pdf.SetY(top + pdfChartHeight + 2)
	r.pdf.SetFont("Arial", "", 8)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.CellFormat(pdfContentWidth/2, 4, fmt.Sprintf("Age %.1f", bands[0].Age), "", 0, "L", false, 0, "")
	r.pdf.CellFormat(pdfContentWidth/2, 4, fmt.Sprintf("Age %.1f", bands[len(bands)-1].Age), "", 1, "R", false, 0, "")
	r.pdf.CellFormat(pdfContentWidth, 4, fmt.Sprintf("Range %s to %s. Red: P10, Blue: median, Green: P90.", FormatCurrencyFloat(lo), FormatCurrencyFloat(hi)), "", 1, "C", false, 0, "")
	r.pdf.Ln(4)
}

func (r *pdfReport) addAssumptions() {
	if r.report.Batch == nil {
		return
	}
	r.drawSectionHeader("Assumptions")
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(50, 50, 50)
	for _, a := range GenerateAssumptions(r.report.Batch.Parameters) {
		r.pdf.MultiCell(pdfContentWidth, 4.5, "- "+a, "", "L", false)
	}
	r.pdf.Ln(4)
	r.pdf.SetFont("Arial", "I", 8)
	r.pdf.SetTextColor(128, 128, 128)
	r.pdf.MultiCell(pdfContentWidth, 4,
		"Projections are random draws from the stated assumptions and actual results may vary. "+
			"This is not financial advice.", "", "C", false)
}

func (r *pdfReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 13)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(pdfContentWidth, 8, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(pdfMarginLeft, r.pdf.GetY(), pdfMarginLeft+pdfContentWidth, r.pdf.GetY())
	r.pdf.Ln(3)
}

func (r *pdfReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)
	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) drawTableRow(cells []string, widths []float64) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.SetFont("Arial", "", 9)
	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, cell, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func crashLabel(c *domain.CrashConfig) string {
	if c == nil {
		return "disabled"
	}
	return fmt.Sprintf("%s / %s / %dm", FormatRate(c.Probability), FormatRate(c.Return), c.RecoveryMonths)
}

// bandRange returns the min and max over all bands, widened when flat.
func bandRange(bands []domain.PercentileBand) (float64, float64) {
	lo, hi := bands[0].P10, bands[0].P90
	for _, b := range bands {
		for _, v := range []float64{b.P10, b.P50, b.P90} {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}
