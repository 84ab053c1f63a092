package ssh

import (
	"context"
	"testing"
	"time"
)

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(&Config{Host: "cluster", User: "me"})
	cfg := client.Config()

	if cfg.Port != 22 {
		t.Errorf("Expected default port 22, got %d", cfg.Port)
	}
	if cfg.ConnectTimeout != 30*time.Second {
		t.Errorf("Expected default connect timeout 30s, got %v", cfg.ConnectTimeout)
	}
	if cfg.CommandTimeout != 300*time.Second {
		t.Errorf("Expected default command timeout 300s, got %v", cfg.CommandTimeout)
	}
	if client.IsConnected() {
		t.Error("New client should not be connected")
	}
}

func TestClient_NotConnected(t *testing.T) {
	client := NewClient(&Config{Host: "cluster", User: "me"})

	if _, err := client.Execute(context.Background(), "true"); err == nil {
		t.Error("Expected error when executing without a connection")
	}
	if _, err := client.ReadFile(context.Background(), "/etc/hostname"); err == nil {
		t.Error("Expected error when reading without a connection")
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close() on an unconnected client returned %v", err)
	}
}

func TestClient_ConnectWithoutAuth(t *testing.T) {
	client := NewClient(&Config{Host: "127.0.0.1", User: "me"})
	err := client.Connect(context.Background())
	if err == nil || err.Error() != "no authentication method provided" {
		t.Errorf("Expected missing authentication error, got %v", err)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/scratch/vrp/50nos/slurm-1.out", "'/scratch/vrp/50nos/slurm-1.out'"},
		{"/home/lorran/Projeto (1)", "'/home/lorran/Projeto (1)'"},
		{"it's", `'it'\''s'`},
		{"", "''"},
	}

	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q) = %s, expected %s", tt.in, got, tt.want)
		}
	}
}
