package config

import (
	"strings"
	"testing"

	"route-bench/ssh"
)

func TestValidator_ValidateConfig(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name     string
		mutate   func(c *Config)
		errorMsg string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:     "empty times root",
			mutate:   func(c *Config) { c.Times.RootDir = "" },
			errorMsg: "times: root_dir is required",
		},
		{
			name:     "invalid extension check",
			mutate:   func(c *Config) { c.Times.ExtensionCheck = "strict" },
			errorMsg: "invalid extension_check strict",
		},
		{
			name:     "zero capacity",
			mutate:   func(c *Config) { c.Validation.VehicleCapacity = 0 },
			errorMsg: "vehicle_capacity must be greater than 0",
		},
		{
			name:     "negative max stops",
			mutate:   func(c *Config) { c.Validation.MaxStops = -1 },
			errorMsg: "max_stops must be greater than 0",
		},
		{
			name:     "remote without ssh",
			mutate:   func(c *Config) { c.Remote = &RemoteConfig{RemoteDir: "/r", LocalDir: "/l"} },
			errorMsg: "remote: SSH configuration is required",
		},
		{
			name: "remote without credentials",
			mutate: func(c *Config) {
				c.Remote = &RemoteConfig{
					SSH:       &ssh.Config{Host: "cluster", User: "me"},
					RemoteDir: "/r",
					LocalDir:  "/l",
				}
			},
			errorMsg: "either SSH key path or password is required",
		},
		{
			name: "remote without local dir",
			mutate: func(c *Config) {
				c.Remote = &RemoteConfig{
					SSH:       &ssh.Config{Host: "cluster", User: "me", Password: "secret"},
					RemoteDir: "/r",
				}
			},
			errorMsg: "remote: local_dir is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.mutate(config)

			err := validator.ValidateConfig(config)
			if tt.errorMsg == "" {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected error but got none")
			}
			if !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("Expected error containing %q, got %q", tt.errorMsg, err.Error())
			}
		})
	}

	if err := validator.ValidateConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}
