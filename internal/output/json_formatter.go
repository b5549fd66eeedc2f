package output

import (
	"encoding/json"
	"time"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// JSONFormatter serializes the batch report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.BatchReport) ([]byte, error) {
	return json.MarshalIndent(NewReportDocument(report), "", "  ")
}

// ReportDocument is the JSON shape of a batch report shared by the file and HTTP outputs.
type ReportDocument struct {
	GeneratedAt time.Time                   `json:"generated_at"`
	Seed        int64                       `json:"seed"`
	Parameters  domain.SimulationParameters `json:"parameters"`
	Assumptions []string                    `json:"assumptions"`
	Statistics  domain.BatchStatistics      `json:"statistics"`
	Paths       []PathDocument              `json:"paths,omitempty"`
}

// PathDocument is one run in a ReportDocument. Undefined trailing returns are null.
type PathDocument struct {
	ID          int                  `json:"id"`
	Seed        int64                `json:"seed"`
	FinalValue  float64              `json:"final_value"`
	CrashMonths []int                `json:"crash_months,omitempty"`
	Records     []domain.MonthRecord `json:"records"`
	Trailing    []*float64           `json:"trailing_returns"`
}

// NewReportDocument builds the serializable view of a report; paths are included
// only when the report asks for them.
func NewReportDocument(report *domain.BatchReport) ReportDocument {
	doc := ReportDocument{
		GeneratedAt: report.GeneratedAt,
		Statistics:  report.Statistics,
	}
	if report.Batch == nil {
		return doc
	}
	doc.Seed = report.Batch.Seed
	doc.Parameters = report.Batch.Parameters
	doc.Assumptions = GenerateAssumptions(report.Batch.Parameters)
	if !report.IncludePaths {
		return doc
	}
	doc.Paths = make([]PathDocument, 0, len(report.Batch.Runs))
	for _, run := range report.Batch.Runs {
		trailing := make([]*float64, len(run.Trailing))
		for i := range run.Trailing {
			if run.Trailing.Defined(i) {
				v := run.Trailing[i]
				trailing[i] = &v
			}
		}
		doc.Paths = append(doc.Paths, PathDocument{
			ID:          run.ID,
			Seed:        run.Seed,
			FinalValue:  run.Path.Final(),
			CrashMonths: run.Returns.CrashMonths,
			Records:     run.Path.Records,
			Trailing:    trailing,
		})
	}
	return doc
}
