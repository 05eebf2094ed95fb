// Command csrfd serves CSRF token issuance and validation over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"

	"github.com/JeanGrijp/csrfguard/csrf"
	"github.com/JeanGrijp/csrfguard/internal/config"
	"github.com/JeanGrijp/csrfguard/internal/logger"
	"github.com/JeanGrijp/csrfguard/internal/server"
	"github.com/JeanGrijp/csrfguard/internal/shutdown"
)

// Build information, set via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "csrfd",
		Usage:   "issue and validate short-lived CSRF tokens",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML configuration file",
				EnvVars: []string{"CSRFD_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address, overrides http.addr",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error; overrides log.level",
			},
			&cli.BoolFlag{
				Name:  "no-banner",
				Usage: "do not print the startup banner",
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "check-config",
				Usage:  "load and validate the configuration, then exit",
				Action: checkConfig,
			},
		},
	}
}

// loadConfig merges file, environment and flags.
func loadConfig(c *cli.Context) (*config.Config, error) {
	overrides := map[string]any{}
	if c.IsSet("addr") {
		overrides["http.addr"] = c.String("addr")
	}
	if c.IsSet("log-level") {
		overrides["log.level"] = c.String("log-level")
	}
	return config.Load(c.String("config"), overrides)
}

func checkConfig(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "configuration ok: addr=%s timeout=%s sweep_interval=%s\n",
		cfg.HTTP.Addr, cfg.CSRF.Timeout, cfg.CSRF.EffectiveSweepInterval())
	return nil
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})

	if !c.Bool("no-banner") {
		figure.NewFigure(c.App.Name, "", true).Print()
		fmt.Println()
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mgr := csrf.NewManager(csrf.ManagerConfig{
		Timeout:       cfg.CSRF.Timeout,
		SweepInterval: cfg.CSRF.EffectiveSweepInterval(),
		Logger:        &log,
		Metrics:       csrf.NewMetrics(reg),
	})

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		_ = mgr.Run(sweepCtx)
	}()

	httpServer := server.New(cfg, mgr, log, reg)

	// startup order; teardown runs in reverse
	sd := shutdown.NewHandler(cfg.HTTP.ShutdownTimeout)
	sd.OnShutdown(func(ctx context.Context) error {
		log.Info().Msg("stopping sweep loop")
		cancelSweep()
		select {
		case <-sweepDone:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	sd.OnShutdown(func(ctx context.Context) error {
		log.Info().Msg("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr).Str("version", version).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("listen: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case runErr = <-serveErr:
		log.Error().Err(runErr).Msg("HTTP server failed")
	}

	if err := sd.Shutdown(); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return errors.Join(runErr, err)
	}
	log.Info().Msg("csrfd stopped cleanly")
	return runErr
}
