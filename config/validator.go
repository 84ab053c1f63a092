package config

import (
	"fmt"
	"slices"

	"route-bench/timings"
	"route-bench/vrp"
)

// Validator handles configuration validation
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateConfig validates the entire configuration
func (v *Validator) ValidateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := v.validateTimes(&c.Times); err != nil {
		return err
	}

	if err := v.validateValidation(&c.Validation); err != nil {
		return err
	}

	// Remote access is optional
	if c.Remote != nil {
		if err := v.validateRemote(c.Remote); err != nil {
			return err
		}
	}

	return nil
}

// validateTimes validates the execution time analysis settings
func (v *Validator) validateTimes(t *TimesConfig) error {
	if t.RootDir == "" {
		return fmt.Errorf("times: root_dir is required")
	}

	if t.ChartFile == "" {
		return fmt.Errorf("times: chart_file is required")
	}

	switch t.ExtensionCheck {
	case timings.ExtensionWarn, timings.ExtensionEnforce:
	default:
		return fmt.Errorf("times: invalid extension_check %s, must be 'warn' or 'enforce'", t.ExtensionCheck)
	}

	switch t.MissingTime {
	case timings.MissingDrop, timings.MissingPad:
	default:
		return fmt.Errorf("times: invalid missing_time %s, must be 'drop' or 'pad'", t.MissingTime)
	}

	return nil
}

// validateValidation validates the route validation settings
func (v *Validator) validateValidation(c *ValidationConfig) error {
	if c.RootDir == "" {
		return fmt.Errorf("validation: root_dir is required")
	}

	if c.GraphFile == "" {
		return fmt.Errorf("validation: graph_file is required")
	}

	if c.ReportFile == "" {
		return fmt.Errorf("validation: report_file is required")
	}

	if c.VehicleCapacity <= 0 {
		return fmt.Errorf("validation: vehicle_capacity must be greater than 0")
	}

	if c.MaxStops <= 0 {
		return fmt.Errorf("validation: max_stops must be greater than 0")
	}

	if available := vrp.Registered(); !slices.Contains(available, c.Solver) {
		return fmt.Errorf("validation: unknown solver %s, available solvers: %v", c.Solver, available)
	}

	return nil
}

// validateRemote validates the cluster connection settings
func (v *Validator) validateRemote(r *RemoteConfig) error {
	if r.SSH == nil {
		return fmt.Errorf("remote: SSH configuration is required")
	}

	if r.SSH.Host == "" {
		return fmt.Errorf("remote: SSH host is required")
	}

	if r.SSH.User == "" {
		return fmt.Errorf("remote: SSH user is required")
	}

	if r.SSH.KeyPath == "" && r.SSH.Password == "" {
		return fmt.Errorf("remote: either SSH key path or password is required")
	}

	if r.RemoteDir == "" {
		return fmt.Errorf("remote: remote_dir is required")
	}

	if r.LocalDir == "" {
		return fmt.Errorf("remote: local_dir is required")
	}

	return nil
}
