package cli

import (
	ucli "github.com/urfave/cli"

	"route-bench/config"
	"route-bench/timings"
)

// globalFlags are accepted before any command
func globalFlags() []ucli.Flag {
	return []ucli.Flag{
		ucli.StringFlag{
			Name:  "config, c",
			Usage: "Path to configuration file (built-in defaults when empty)",
		},
		ucli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable verbose logging",
		},
		ucli.BoolFlag{
			Name:  "json",
			Usage: "Output results in JSON format",
		},
		ucli.StringFlag{
			Name:  "dump-config",
			Usage: "Write the effective configuration to `FILE`",
		},
	}
}

func timesFlags() []ucli.Flag {
	return []ucli.Flag{
		ucli.StringFlag{Name: "root", Usage: "Experiment tree to scan"},
		ucli.StringFlag{Name: "chart", Usage: "Chart output file"},
		ucli.StringFlag{Name: "csv", Usage: "Also export the table as CSV to `FILE`"},
		ucli.StringFlag{Name: "extension-check", Usage: "What a misnamed file does: warn or enforce"},
		ucli.StringFlag{Name: "missing-time", Usage: "What a run with an unreadable time does: drop or pad"},
		ucli.BoolFlag{Name: "no-display", Usage: "Do not open the chart after rendering"},
	}
}

func validateFlags() []ucli.Flag {
	return []ucli.Flag{
		ucli.StringFlag{Name: "root", Usage: "Tree of instance folders to validate"},
		ucli.StringFlag{Name: "graph-file", Usage: "Graph definition file name in each folder"},
		ucli.StringFlag{Name: "report", Usage: "Report output file"},
		ucli.IntFlag{Name: "capacity", Usage: "Vehicle capacity"},
		ucli.IntFlag{Name: "max-stops", Usage: "Maximum customers per route"},
		ucli.StringFlag{Name: "solver", Usage: "Solver used to recompute the optimum"},
	}
}

func fetchFlags() []ucli.Flag {
	return []ucli.Flag{
		ucli.StringFlag{Name: "remote-dir", Usage: "Directory on the head node to mirror"},
		ucli.StringFlag{Name: "local-dir", Usage: "Local destination directory"},
		ucli.StringFlag{Name: "env-file", Usage: "Where the head node environment is stored"},
		ucli.BoolFlag{Name: "skip-env", Usage: "Do not collect environment information"},
	}
}

func envFlags() []ucli.Flag {
	return []ucli.Flag{
		ucli.BoolFlag{Name: "remote", Usage: "Collect from the head node instead of this machine"},
	}
}

// applyTimesFlags overrides the times section with the flags that were set
func applyTimesFlags(c *ucli.Context, t *config.TimesConfig) {
	if c.IsSet("root") {
		t.RootDir = c.String("root")
	}
	if c.IsSet("chart") {
		t.ChartFile = c.String("chart")
	}
	if c.IsSet("csv") {
		t.CSVFile = c.String("csv")
	}
	if c.IsSet("extension-check") {
		t.ExtensionCheck = timings.ExtensionPolicy(c.String("extension-check"))
	}
	if c.IsSet("missing-time") {
		t.MissingTime = timings.MissingPolicy(c.String("missing-time"))
	}
	if c.Bool("no-display") {
		display := false
		t.Display = &display
	}
}

// applyValidateFlags overrides the validation section with the flags that were set
func applyValidateFlags(c *ucli.Context, v *config.ValidationConfig) {
	if c.IsSet("root") {
		v.RootDir = c.String("root")
	}
	if c.IsSet("graph-file") {
		v.GraphFile = c.String("graph-file")
	}
	if c.IsSet("report") {
		v.ReportFile = c.String("report")
	}
	if c.IsSet("capacity") {
		v.VehicleCapacity = c.Int("capacity")
	}
	if c.IsSet("max-stops") {
		v.MaxStops = c.Int("max-stops")
	}
	if c.IsSet("solver") {
		v.Solver = c.String("solver")
	}
}

// applyFetchFlags overrides the remote section with the flags that were set
func applyFetchFlags(c *ucli.Context, r *config.RemoteConfig) {
	if c.IsSet("remote-dir") {
		r.RemoteDir = c.String("remote-dir")
	}
	if c.IsSet("local-dir") {
		r.LocalDir = c.String("local-dir")
	}
	if c.IsSet("env-file") {
		r.EnvironmentFile = c.String("env-file")
	}
}
