package envinfo

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

func collectLocal(ctx context.Context, env *EnvironmentInfo) error {
	hostStat, err := host.InfoWithContext(ctx)
	if err != nil {
		return err
	}
	env.Hostname = hostStat.Hostname
	env.OSInfo = strings.TrimSpace(hostStat.Platform + " " + hostStat.PlatformVersion)
	env.KernelVersion = hostStat.KernelVersion
	env.Architecture = hostStat.KernelArch

	// Some ARM kernels expose no model name
	if cpuStat, err := cpu.InfoWithContext(ctx); err == nil && len(cpuStat) > 0 {
		env.CPU.Model = cpuStat[0].ModelName
	}
	if cores, err := cpu.CountsWithContext(ctx, false); err == nil {
		env.CPU.Cores = cores
	}
	if threads, err := cpu.CountsWithContext(ctx, true); err == nil {
		env.CPU.Threads = threads
	}

	vmStat, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return err
	}
	env.MemoryGB = vmStat.Total / 1024 / 1024 / 1024
	return nil
}
