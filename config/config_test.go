package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"route-bench/timings"
)

func TestLoadConfig(t *testing.T) {
	// Create temporary config file
	tmpDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configFile := filepath.Join(tmpDir, "route_bench.yaml")
	configContent := `
times:
  root_dir: "/data/experiments"
  chart_file: "times.png"
  csv_file: "times.csv"
  extension_check: "enforce"
  missing_time: "pad"
  display: false

validation:
  root_dir: "/data/graphs"
  vehicle_capacity: 20
  max_stops: 4
  solver: "savings"

remote:
  ssh:
    host: "cluster.example.org"
    user: "researcher"
    key_path: "~/.ssh/id_ed25519"
  remote_dir: "/scratch/researcher/vrp"
  local_dir: "/data/experiments"
`

	err = os.WriteFile(configFile, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Times section
	if config.Times.RootDir != "/data/experiments" {
		t.Errorf("Expected times root '/data/experiments', got %q", config.Times.RootDir)
	}
	if config.Times.ChartFile != "times.png" {
		t.Errorf("Expected chart file 'times.png', got %q", config.Times.ChartFile)
	}
	if config.Times.CSVFile != "times.csv" {
		t.Errorf("Expected csv file 'times.csv', got %q", config.Times.CSVFile)
	}
	if config.Times.ExtensionCheck != timings.ExtensionEnforce {
		t.Errorf("Expected extension check 'enforce', got %q", config.Times.ExtensionCheck)
	}
	if config.Times.MissingTime != timings.MissingPad {
		t.Errorf("Expected missing time 'pad', got %q", config.Times.MissingTime)
	}
	if config.Times.ShouldDisplay() {
		t.Error("Expected display to be disabled")
	}

	// Validation section, graph and report files fall back to defaults
	if config.Validation.RootDir != "/data/graphs" {
		t.Errorf("Expected validation root '/data/graphs', got %q", config.Validation.RootDir)
	}
	if config.Validation.GraphFile != "grafo.txt" {
		t.Errorf("Expected default graph file 'grafo.txt', got %q", config.Validation.GraphFile)
	}
	if config.Validation.ReportFile != "validation_results.txt" {
		t.Errorf("Expected default report file, got %q", config.Validation.ReportFile)
	}
	if config.Validation.VehicleCapacity != 20 {
		t.Errorf("Expected capacity 20, got %d", config.Validation.VehicleCapacity)
	}
	if config.Validation.MaxStops != 4 {
		t.Errorf("Expected max stops 4, got %d", config.Validation.MaxStops)
	}
	if config.Validation.Solver != "savings" {
		t.Errorf("Expected solver 'savings', got %q", config.Validation.Solver)
	}

	// Remote section
	if config.Remote == nil {
		t.Fatal("Expected remote configuration")
	}
	if config.Remote.SSH.Host != "cluster.example.org" {
		t.Errorf("Expected SSH host 'cluster.example.org', got %q", config.Remote.SSH.Host)
	}
	if config.Remote.EnvironmentFile != "cluster_environment.json" {
		t.Errorf("Expected default environment file, got %q", config.Remote.EnvironmentFile)
	}
}

func TestDefault(t *testing.T) {
	config := Default()

	if config.Times.RootDir != defaultDataRoot || config.Validation.RootDir != defaultDataRoot {
		t.Errorf("Expected both roots to default to %q", defaultDataRoot)
	}
	if config.Times.ChartFile != "execution_times_comparison.png" {
		t.Errorf("Expected default chart file, got %q", config.Times.ChartFile)
	}
	if config.Validation.VehicleCapacity != 15 {
		t.Errorf("Expected default capacity 15, got %d", config.Validation.VehicleCapacity)
	}
	if config.Validation.MaxStops != 5 {
		t.Errorf("Expected default max stops 5, got %d", config.Validation.MaxStops)
	}
	if config.Validation.Solver != "exact" {
		t.Errorf("Expected default solver 'exact', got %q", config.Validation.Solver)
	}
	if config.Times.ExtensionCheck != timings.ExtensionWarn {
		t.Errorf("Expected default extension check 'warn', got %q", config.Times.ExtensionCheck)
	}
	if config.Times.MissingTime != timings.MissingDrop {
		t.Errorf("Expected default missing time 'drop', got %q", config.Times.MissingTime)
	}
	if !config.Times.ShouldDisplay() {
		t.Error("Expected display to be enabled by default")
	}
	if config.Remote != nil {
		t.Error("Expected no remote configuration by default")
	}

	if err := NewValidator().ValidateConfig(config); err != nil {
		t.Errorf("Default configuration should be valid: %v", err)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		content  string
		errorMsg string
	}{
		{
			name:     "invalid yaml",
			content:  "times: [",
			errorMsg: "failed to parse config file",
		},
		{
			name: "unknown solver",
			content: `
validation:
  solver: "gurobi"
`,
			errorMsg: "unknown solver gurobi",
		},
		{
			name: "invalid missing time policy",
			content: `
times:
  missing_time: "zero"
`,
			errorMsg: "invalid missing_time zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := filepath.Join(tmpDir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			if err := os.WriteFile(configFile, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write config file: %v", err)
			}

			_, err := LoadConfig(configFile)
			if err == nil {
				t.Fatal("Expected error but got none")
			}
			if !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("Expected error containing %q, got %q", tt.errorMsg, err.Error())
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestSaveConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "saved.yaml")

	original := Default()
	original.Validation.MaxStops = 3
	original.Times.CSVFile = "table.csv"

	if err := original.SaveConfig(configFile); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	if loaded.Validation.MaxStops != 3 {
		t.Errorf("Expected max stops 3, got %d", loaded.Validation.MaxStops)
	}
	if loaded.Times.CSVFile != "table.csv" {
		t.Errorf("Expected csv file 'table.csv', got %q", loaded.Times.CSVFile)
	}
}
