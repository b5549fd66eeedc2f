package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

// ErrUnsupportedFormat is returned when no formatter matches a requested format name.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(report *domain.BatchReport) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FileFormatter is implemented by formatters whose file extension differs from their name.
type FileFormatter interface {
	Formatter
	Extension() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.BatchReport) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.BatchReport) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                 { return ff.ID }

// ExtensionFor returns the file extension used when writing a formatter's output.
func ExtensionFor(f Formatter) string {
	if ff, ok := f.(FileFormatter); ok {
		return ff.Extension()
	}
	return f.Name()
}

// WriteFormatted runs a formatter and writes output to a timestamped file in dir.
func WriteFormatted(f Formatter, report *domain.BatchReport, dir string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", fmt.Errorf("format %s: %w", f.Name(), err)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	stamp := report.GeneratedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	filename := filepath.Join(dir, fmt.Sprintf("simulation_report_%s.%s", stamp.Format("20060102_150405"), ExtensionFor(f)))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	JSONFormatter{},
	CSVSummarizer{},
	CSVPathExporter{},
	HTMLFormatter{},
	PDFFormatter{},
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":         "console",
	"verbose":      "console",
	"csv-summary":  "csv",
	"csv-detailed": "paths-csv",
	"detailed-csv": "paths-csv",
	"csv-paths":    "paths-csv",
	"html-report":  "html",
	"json-pretty":  "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
