package envinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"route-bench/ssh"
)

// EnvironmentInfo describes the machine the experiments ran on
type EnvironmentInfo struct {
	Hostname      string    `json:"hostname"`
	OSInfo        string    `json:"os_info"`
	KernelVersion string    `json:"kernel_version"`
	Architecture  string    `json:"architecture"`
	CPU           CPUInfo   `json:"cpu_info"`
	MemoryGB      uint64    `json:"memory_gb"`
	Remote        bool      `json:"remote"`
	SSHHost       string    `json:"ssh_host,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// CPUInfo represents CPU information
type CPUInfo struct {
	Model   string `json:"model"`
	Cores   int    `json:"cores"`
	Threads int    `json:"threads"`
}

// CommandExecutor runs a shell command and returns its output
type CommandExecutor interface {
	Execute(ctx context.Context, command string) (string, error)
}

// Collector gathers environment information, locally through gopsutil or
// remotely through shell commands
type Collector struct {
	executor CommandExecutor
	sshHost  string
	logger   *log.Logger
}

// NewLocalCollector creates a collector for the machine running the analysis
func NewLocalCollector(logger *log.Logger) *Collector {
	return NewCollector(nil, "", logger)
}

// NewRemoteCollector creates a collector for the host behind an SSH client
func NewRemoteCollector(client *ssh.Client, logger *log.Logger) *Collector {
	return NewCollector(client, client.Config().Host, logger)
}

// NewCollector creates a collector running commands through executor.
// A nil executor collects the local machine.
func NewCollector(executor CommandExecutor, sshHost string, logger *log.Logger) *Collector {
	if logger == nil {
		logger = log.Default()
	}
	return &Collector{
		executor: executor,
		sshHost:  sshHost,
		logger:   logger,
	}
}

// Collect gathers the environment information
func (c *Collector) Collect(ctx context.Context) (*EnvironmentInfo, error) {
	env := &EnvironmentInfo{
		Timestamp: time.Now(),
	}

	if c.executor == nil {
		if err := collectLocal(ctx, env); err != nil {
			return nil, fmt.Errorf("failed to collect local environment: %w", err)
		}
		return env, nil
	}

	env.Remote = true
	env.SSHHost = c.sshHost
	if err := c.collectRemote(ctx, env); err != nil {
		return nil, fmt.Errorf("failed to collect environment of %s: %w", c.sshHost, err)
	}
	return env, nil
}

// ToJSON converts the environment info to indented JSON
func (env *EnvironmentInfo) ToJSON() ([]byte, error) {
	return json.MarshalIndent(env, "", "  ")
}
