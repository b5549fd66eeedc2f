package domain

// Configuration is the on-disk shape of a simulation run (YAML).
type Configuration struct {
	Simulation SimulationParameters `yaml:"simulation" json:"simulation"`
	Output     OutputSettings       `yaml:"output" json:"output"`
}

// OutputSettings selects which reports are written and where.
type OutputSettings struct {
	Formats      []string `yaml:"formats,omitempty" json:"formats,omitempty"`
	Directory    string   `yaml:"directory,omitempty" json:"directory,omitempty"`
	IncludePaths bool     `yaml:"include_paths,omitempty" json:"include_paths,omitempty"`
}
