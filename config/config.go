package config

import (
	"fmt"
	"os"

	"route-bench/chart"
	"route-bench/ssh"
	"route-bench/timings"

	"gopkg.in/yaml.v3"
)

const (
	defaultDataRoot        = "/home/lorran/Documentos/Projeto (1)"
	defaultGraphFile       = "grafo.txt"
	defaultReportFile      = "validation_results.txt"
	defaultVehicleCapacity = 15
	defaultMaxStops        = 5
	defaultSolver          = "exact"
	defaultEnvironmentFile = "cluster_environment.json"
)

// Config represents the configuration of both analysis pipelines
type Config struct {
	Times      TimesConfig      `yaml:"times"`
	Validation ValidationConfig `yaml:"validation"`
	Remote     *RemoteConfig    `yaml:"remote,omitempty"`
}

// TimesConfig configures the execution time analysis
type TimesConfig struct {
	RootDir        string                  `yaml:"root_dir"`
	ChartFile      string                  `yaml:"chart_file"`
	CSVFile        string                  `yaml:"csv_file,omitempty"`
	ExtensionCheck timings.ExtensionPolicy `yaml:"extension_check"`
	MissingTime    timings.MissingPolicy   `yaml:"missing_time"`
	Display        *bool                   `yaml:"display,omitempty"`
}

// ValidationConfig configures the route validation
type ValidationConfig struct {
	RootDir         string `yaml:"root_dir"`
	GraphFile       string `yaml:"graph_file"`
	ReportFile      string `yaml:"report_file"`
	VehicleCapacity int    `yaml:"vehicle_capacity"`
	MaxStops        int    `yaml:"max_stops"`
	Solver          string `yaml:"solver"`
}

// RemoteConfig describes the cluster the experiments ran on
type RemoteConfig struct {
	SSH             *ssh.Config `yaml:"ssh"`
	RemoteDir       string      `yaml:"remote_dir"`
	LocalDir        string      `yaml:"local_dir"`
	EnvironmentFile string      `yaml:"environment_file,omitempty"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	// Set defaults
	config.setDefaults()

	// Validate configuration
	validator := NewValidator()
	if err := validator.ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) setDefaults() {
	t := &c.Times
	if t.RootDir == "" {
		t.RootDir = defaultDataRoot
	}
	if t.ChartFile == "" {
		t.ChartFile = chart.DefaultFile
	}
	if t.ExtensionCheck == "" {
		t.ExtensionCheck = timings.ExtensionWarn
	}
	if t.MissingTime == "" {
		t.MissingTime = timings.MissingDrop
	}
	if t.Display == nil {
		display := true
		t.Display = &display
	}

	v := &c.Validation
	if v.RootDir == "" {
		v.RootDir = defaultDataRoot
	}
	if v.GraphFile == "" {
		v.GraphFile = defaultGraphFile
	}
	if v.ReportFile == "" {
		v.ReportFile = defaultReportFile
	}
	if v.VehicleCapacity == 0 {
		v.VehicleCapacity = defaultVehicleCapacity
	}
	if v.MaxStops == 0 {
		v.MaxStops = defaultMaxStops
	}
	if v.Solver == "" {
		v.Solver = defaultSolver
	}

	if c.Remote != nil && c.Remote.EnvironmentFile == "" {
		c.Remote.EnvironmentFile = defaultEnvironmentFile
	}
}

// ScannerOptions returns the directory scanner options
func (t *TimesConfig) ScannerOptions() timings.Options {
	return timings.Options{
		ExtensionCheck: t.ExtensionCheck,
		MissingTime:    t.MissingTime,
	}
}

// ShouldDisplay reports whether the chart is opened after rendering
func (t *TimesConfig) ShouldDisplay() bool {
	return t.Display == nil || *t.Display
}

// SaveConfig saves configuration to a YAML file
func (c *Config) SaveConfig(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", filename, err)
	}

	return nil
}
