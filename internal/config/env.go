package config

import "os"

// Environment holds settings read from environment variables.
type Environment struct {
	LogLevel  string
	Port      string
	OutputDir string
}

// LoadEnvironment reads environment overrides with defaults.
func LoadEnvironment() Environment {
	return Environment{
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		Port:      getEnv("PORT", "8080"),
		OutputDir: getEnv("RPSIM_OUTPUT_DIR", "."),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}
