package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"sheetport-hq/sheetport/pkg/cli"
	"sheetport-hq/sheetport/pkg/config"
	"sheetport-hq/sheetport/pkg/export/exporter"
	"sheetport-hq/sheetport/pkg/export/retention"
	"sheetport-hq/sheetport/pkg/export/schema"
	"sheetport-hq/sheetport/pkg/server"
	"sheetport-hq/sheetport/pkg/source"
	"sheetport-hq/sheetport/pkg/telemetry/health"
	"sheetport-hq/sheetport/pkg/telemetry/logging"
	"sheetport-hq/sheetport/pkg/telemetry/metrics"
	"sheetport-hq/sheetport/pkg/telemetry/tracing"
)

var serveFlags struct {
	listenAddress string
	dryRun        bool
	watch         bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve exports and artifact downloads over HTTP",
	Long: `Start the HTTP server.

The server triggers exports on the configured export path, serves produced
artifacts from the output directory and exposes health, readiness, version
and metrics endpoints. When retention is enabled, old artifacts are pruned
on the configured schedule.

Examples:
  # Start with default config
  sheetport serve

  # Start with custom config and reload it on change
  sheetport serve --config /etc/sheetport/config.yaml --watch

  # Override listen address
  sheetport serve --listen 0.0.0.0:9090

  # Validate config without starting the server
  sheetport serve --dry-run`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config without starting server")
	serveCmd.Flags().BoolVar(&serveFlags.watch, "watch", false, "reload logging settings when the config file changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, _, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	if serveFlags.listenAddress != "" {
		cfg.Server.ListenAddress = serveFlags.listenAddress
	}

	if serveFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "Configuration valid")
		return nil
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	registry := schema.NewRegistry()
	if err := source.Register(registry); err != nil {
		return cli.NewCommandError("serve", err)
	}

	provider, err := source.New(ctx, cfg.Source)
	if err != nil {
		return cli.NewCommandError("serve", err)
	}
	defer provider.Close()

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	}

	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		return cli.NewCommandError("serve", fmt.Errorf("failed to initialize tracing: %w", err))
	}
	defer shutdownTracer(tracer)

	checker := health.New(health.DefaultCheckTimeout)
	checker.Register("output_dir", health.WritableDirCheck(cfg.Export.OutputDir))
	if p, ok := provider.(health.Pinger); ok {
		checker.Register("source", health.PingCheck(p))
	}

	exp := exporter.New(registry, cfg.Export,
		exporter.WithLogger(logger),
		exporter.WithMetrics(collector),
		exporter.WithTracer(tracer),
	)

	if cfg.Export.Retention.Enabled {
		pruner := retention.NewPruner(cfg.Export.OutputDir, cfg.Export.Retention.MaxAge,
			retention.WithLogger(logger),
			retention.WithMetrics(collector),
		)
		scheduler := retention.NewScheduler(pruner, cfg.Export.Retention.Schedule)
		if err := scheduler.Start(ctx); err != nil {
			return cli.NewCommandError("serve", fmt.Errorf("failed to start retention: %w", err))
		}
		defer scheduler.Stop()
	}

	if serveFlags.watch && cfgFile != "" {
		if err := watchConfig(ctx, logger, cmd); err != nil {
			return cli.NewCommandError("serve", err)
		}
	}

	srv := server.NewServer(cfg, server.Deps{
		Exporter: exp,
		Source:   provider,
		Health:   checker,
		Metrics:  collector,
		Tracer:   tracer,
		Logger:   logger,
		Version:  versionInfo(),
	})

	printBanner(cmd, cfg, checker)
	return srv.Start(ctx)
}

// watchConfig reinstalls the default logger whenever the config file
// changes. Listener, source and export settings apply on restart.
func watchConfig(ctx context.Context, logger *slog.Logger, cmd *cobra.Command) error {
	watcher, err := config.NewWatcher(cfgFile, logger)
	if err != nil {
		return err
	}

	go func() {
		err := watcher.Watch(ctx, func(next *config.Config) {
			lc := logging.FromConfig(next.Telemetry.Logging)
			lc.Writer = cmd.ErrOrStderr()
			if _, err := logging.Setup(lc); err != nil {
				logger.Warn("ignoring reloaded logging config", "error", err)
				return
			}
			slog.Info("configuration reloaded", "path", cfgFile)
		})
		if err != nil {
			logger.Error("config watcher failed", "error", err)
		}
	}()
	return nil
}

func printBanner(cmd *cobra.Command, cfg *config.Config, checker *health.Checker) {
	w := cmd.ErrOrStderr()
	fmt.Fprintf(w, "Sheetport %s\n", Version)
	fmt.Fprintf(w, "  listen:     %s\n", cfg.Server.ListenAddress)
	fmt.Fprintf(w, "  output dir: %s\n", cfg.Export.OutputDir)
	fmt.Fprintf(w, "  source:     %s\n", cfg.Source.Driver)
	fmt.Fprintf(w, "  checks:     %v\n", checker.Names())
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Fprintf(w, "  metrics:    %s\n", cfg.Telemetry.Metrics.Path)
	}
}
