package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rpgo/portfolio-simulator/internal/calculation"
	"github.com/rpgo/portfolio-simulator/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a configuration document.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := calculation.ValidateParameters(config.Simulation); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	if config.Simulation.MonthlyIncome < 0 {
		return fmt.Errorf("simulation: monthly income cannot be negative")
	}
	if config.Simulation.MonthlyExpenses < 0 {
		return fmt.Errorf("simulation: monthly expenses cannot be negative")
	}
	for i, f := range config.Output.Formats {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("output format %d is empty", i)
		}
	}
	return nil
}

// CreateExampleConfiguration returns a configuration with the default planning assumptions.
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Simulation: domain.SimulationParameters{
			StartingAge:       24,
			RetirementAge:     65,
			MonthlyIncome:     5000,
			MonthlyExpenses:   3500,
			AnnualReturnRate:  0.07,
			AnnualVolatility:  0.15,
			InflationRate:     0.03,
			InitialInvestment: 50000,
			NumSimulations:    100,
			TrailingWindow:    calculation.DefaultTrailingWindow,
		},
		Output: domain.OutputSettings{
			Formats:   []string{"console"},
			Directory: ".",
		},
	}
}

// DefaultCrashConfig returns the market crash assumptions used when crash injection is enabled without overrides.
func DefaultCrashConfig() *domain.CrashConfig {
	return &domain.CrashConfig{
		Probability:    0.02,
		Return:         -0.20,
		RecoveryMonths: 12,
	}
}
