package envinfo

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

func (c *Collector) collectRemote(ctx context.Context, env *EnvironmentInfo) error {
	commands := map[string]*string{
		"hostname": &env.Hostname,
		"uname -r": &env.KernelVersion,
		"uname -m": &env.Architecture,
	}
	for cmd, target := range commands {
		output, err := c.executor.Execute(ctx, cmd)
		if err != nil {
			return fmt.Errorf("%s: %w", cmd, err)
		}
		*target = strings.TrimSpace(output)
	}

	// The rest is best effort: minimal compute nodes lack some of these files
	if output, err := c.executor.Execute(ctx, "grep PRETTY_NAME /etc/os-release"); err == nil {
		env.OSInfo = strings.Trim(strings.TrimPrefix(strings.TrimSpace(output), "PRETTY_NAME="), `"`)
	} else {
		c.logger.Printf("Warning: could not read OS release of %s: %v", c.sshHost, err)
	}

	if output, err := c.executor.Execute(ctx, "grep 'model name' /proc/cpuinfo | head -1 | cut -d':' -f2"); err == nil {
		env.CPU.Model = strings.TrimSpace(output)
	}

	if output, err := c.executor.Execute(ctx, "nproc"); err == nil {
		if threads, err := strconv.Atoi(strings.TrimSpace(output)); err == nil {
			env.CPU.Threads = threads
			env.CPU.Cores = threads
		}
	}

	if output, err := c.executor.Execute(ctx, "grep 'cpu cores' /proc/cpuinfo | head -1 | cut -d':' -f2"); err == nil {
		if cores, err := strconv.Atoi(strings.TrimSpace(output)); err == nil && cores > 0 {
			env.CPU.Cores = cores
		}
	}

	if output, err := c.executor.Execute(ctx, "grep MemTotal /proc/meminfo"); err == nil {
		// MemTotal:       65843012 kB
		fields := strings.Fields(output)
		if len(fields) >= 2 {
			if kb, err := strconv.ParseUint(fields[1], 10, 64); err == nil {
				env.MemoryGB = kb / 1024 / 1024
			}
		}
	}

	return nil
}
