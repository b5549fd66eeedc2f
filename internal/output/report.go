package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/rpgo/portfolio-simulator/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport writes the report in the named format into dir and returns the file path.
func GenerateReport(report *domain.BatchReport, format, dir string) (string, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return "", fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	return WriteFormatted(f, report, dir)
}

// GenerateReports writes every requested format, stopping at the first failure.
func GenerateReports(report *domain.BatchReport, formats []string, dir string) ([]string, error) {
	files := make([]string, 0, len(formats))
	for _, format := range formats {
		name, err := GenerateReport(report, format, dir)
		if err != nil {
			return files, err
		}
		files = append(files, name)
	}
	return files, nil
}

// SaveConfiguration writes a configuration as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
