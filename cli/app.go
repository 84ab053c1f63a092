package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	ucli "github.com/urfave/cli"

	"route-bench/config"
)

const appVersion = "1.0.0"

// App represents the main application
type App struct {
	app    *ucli.App
	cfg    *config.Config
	logger *log.Logger
	stdout io.Writer
	stderr io.Writer
}

// NewApp creates a new application instance
func NewApp() *App {
	return newApp(os.Stdout, os.Stderr)
}

func newApp(stdout, stderr io.Writer) *App {
	a := &App{
		logger: log.New(stderr, "[route-bench] ", log.LstdFlags),
		stdout: stdout,
		stderr: stderr,
	}

	app := ucli.NewApp()
	app.Name = "route-bench"
	app.Usage = "analyze VRP experiment runs: execution times and route validation"
	app.Version = appVersion
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = globalFlags()
	app.Before = a.setup
	app.Commands = []ucli.Command{
		{
			Name:   "times",
			Usage:  "Collect execution times, print the table and render the comparison chart",
			Flags:  timesFlags(),
			Action: a.runTimes,
		},
		{
			Name:   "validate",
			Usage:  "Recompute the optimal cost of every instance and check the claimed results",
			Flags:  validateFlags(),
			Action: a.runValidate,
		},
		{
			Name:   "fetch",
			Usage:  "Copy an experiment tree from the cluster head node",
			Flags:  fetchFlags(),
			Action: a.runFetch,
		},
		{
			Name:   "env",
			Usage:  "Print environment information as JSON",
			Flags:  envFlags(),
			Action: a.runEnv,
		},
	}

	a.app = app
	return a
}

// Run executes the main application logic
func (a *App) Run(args []string) error {
	return a.app.Run(args)
}

// setup configures logging and loads the configuration before any command runs
func (a *App) setup(c *ucli.Context) error {
	if c.Bool("verbose") {
		a.logger.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	if path := c.String("config"); path != "" {
		a.logger.Printf("Loading configuration from %s", path)
		cfg, err := config.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		a.cfg = cfg
	} else {
		a.cfg = config.Default()
	}

	return nil
}

// finishConfig validates the configuration after command flag overrides and
// honors --dump-config
func (a *App) finishConfig(c *ucli.Context) error {
	if err := config.NewValidator().ValidateConfig(a.cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if path := c.GlobalString("dump-config"); path != "" {
		if err := a.cfg.SaveConfig(path); err != nil {
			return err
		}
		a.logger.Printf("Effective configuration written to %s", path)
	}
	return nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM
func (a *App) signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			a.logger.Printf("Received signal %v, shutting down...", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
