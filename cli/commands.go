package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	ucli "github.com/urfave/cli"

	"route-bench/chart"
	"route-bench/envinfo"
	"route-bench/fetch"
	"route-bench/output"
	"route-bench/ssh"
	"route-bench/timings"
	"route-bench/validation"
	"route-bench/vrp"
)

var errNoRemote = errors.New("no remote section in the configuration")

func (a *App) formatter(c *ucli.Context) *output.Formatter {
	return output.NewFormatterTo(a.stdout, c.GlobalBool("json"))
}

func (a *App) runTimes(c *ucli.Context) error {
	applyTimesFlags(c, &a.cfg.Times)
	if err := a.finishConfig(c); err != nil {
		return err
	}
	cfg := a.cfg.Times

	scanner := timings.NewScanner(cfg.ScannerOptions(), a.logger)
	collection, err := scanner.Scan(cfg.RootDir)
	if err != nil {
		return err
	}

	table, err := timings.BuildTable(collection)
	if err != nil {
		return fmt.Errorf("failed to build table: %w", err)
	}

	if err := a.formatter(c).OutputTable(table); err != nil {
		return fmt.Errorf("failed to output table: %w", err)
	}

	if cfg.CSVFile != "" {
		if err := writeCSV(table, cfg.CSVFile); err != nil {
			return err
		}
		a.logger.Printf("Table exported to %s", cfg.CSVFile)
	}

	if err := chart.NewRenderer(a.logger).Render(table, cfg.ChartFile); err != nil {
		return err
	}

	if cfg.ShouldDisplay() {
		if err := chart.Display(cfg.ChartFile); err != nil {
			a.logger.Printf("Could not display %s: %v", cfg.ChartFile, err)
		}
	}
	return nil
}

func writeCSV(table *timings.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := table.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func (a *App) runValidate(c *ucli.Context) error {
	applyValidateFlags(c, &a.cfg.Validation)
	if err := a.finishConfig(c); err != nil {
		return err
	}
	cfg := a.cfg.Validation

	solver, err := vrp.New(cfg.Solver)
	if err != nil {
		return fmt.Errorf("unsupported solver '%s'. Available solvers: %v", cfg.Solver, vrp.Registered())
	}
	a.logger.Printf("Using %s solver (capacity %d, max stops %d)", solver.Name(), cfg.VehicleCapacity, cfg.MaxStops)

	ctx, cancel := a.signalContext()
	defer cancel()

	report, err := validation.CreateReport(cfg.ReportFile)
	if err != nil {
		return err
	}

	startTime := time.Now()
	validator := validation.NewValidator(solver, cfg.VehicleCapacity, cfg.MaxStops)
	summary, runErr := validation.NewPipeline(validator, cfg.GraphFile, a.logger).Run(ctx, cfg.RootDir, report)
	if err := report.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to write report %s: %w", cfg.ReportFile, err)
	}
	if runErr != nil {
		return runErr
	}

	duration := time.Since(startTime)
	a.logger.Printf("Validation completed in %v", duration)
	return a.formatter(c).OutputSummary(summary, cfg.ReportFile, duration)
}

func (a *App) runFetch(c *ucli.Context) error {
	if a.cfg.Remote == nil {
		return errNoRemote
	}
	applyFetchFlags(c, a.cfg.Remote)
	if err := a.finishConfig(c); err != nil {
		return err
	}
	cfg := a.cfg.Remote

	ctx, cancel := a.signalContext()
	defer cancel()

	client, err := a.connect(ctx, cfg.SSH)
	if err != nil {
		return err
	}
	defer client.Close()

	fetcher := fetch.NewFetcher(client, a.logger)
	result, err := fetcher.Mirror(ctx, cfg.RemoteDir, cfg.LocalDir)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	if !c.Bool("skip-env") {
		collector := envinfo.NewRemoteCollector(client, a.logger)
		if _, err := fetcher.SaveEnvironment(ctx, collector, cfg.EnvironmentFile); err != nil {
			a.logger.Printf("Failed to record environment of %s: %v", cfg.SSH.Host, err)
		}
	}

	return a.formatter(c).OutputFetch(result)
}

func (a *App) runEnv(c *ucli.Context) error {
	if err := a.finishConfig(c); err != nil {
		return err
	}

	ctx, cancel := a.signalContext()
	defer cancel()

	collector := envinfo.NewLocalCollector(a.logger)
	if c.Bool("remote") {
		if a.cfg.Remote == nil {
			return errNoRemote
		}
		client, err := a.connect(ctx, a.cfg.Remote.SSH)
		if err != nil {
			return err
		}
		defer client.Close()
		collector = envinfo.NewRemoteCollector(client, a.logger)
	}

	env, err := collector.Collect(ctx)
	if err != nil {
		return err
	}
	return a.formatter(c).OutputEnvironment(env)
}

func (a *App) connect(ctx context.Context, cfg *ssh.Config) (*ssh.Client, error) {
	client := ssh.NewClient(cfg)
	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to host %s: %w", cfg.Host, err)
	}
	a.logger.Printf("Connected to host %s", cfg.Host)
	return client, nil
}
