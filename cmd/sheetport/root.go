package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"sheetport-hq/sheetport/pkg/cli"
	"sheetport-hq/sheetport/pkg/config"
	"sheetport-hq/sheetport/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile      string
	verbose      bool
	logLevel     string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "sheetport",
	Short: "Sheetport - export registered object types to XLSX and CSV",
	Long: `Sheetport turns collections of registered objects into spreadsheet artifacts.

Members opt into an export with metadata describing their column name,
group membership, position and how related objects expand:
  - lines: one row per related object under the parent row
  - sheet: a separate sheet keyed by the parent row number
  - inline: every related value joined into one cell

Artifacts are written as XLSX workbooks or CSV files (zipped when an export
produces more than one sheet) and can be served over HTTP.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with a code derived from the
// returned error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults apply when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, json, csv")
}

// loadConfig loads and publishes the configuration, then applies the
// global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Initialize(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	switch {
	case logLevel != "":
		cfg.Telemetry.Logging.Level = logLevel
	case verbose:
		cfg.Telemetry.Logging.Level = "debug"
	}
	return cfg, nil
}

// setupLogger installs the configured logger as the slog default.
func setupLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	lc := logging.FromConfig(cfg.Telemetry.Logging)
	lc.Writer = w

	logger, err := logging.Setup(lc)
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	return logger, nil
}

func formatter() (cli.Formatter, error) {
	format, err := cli.ParseOutputFormat(outputFormat)
	if err != nil {
		return nil, err
	}
	return cli.NewFormatter(format), nil
}

// bootstrap is the common prologue of commands that run against the
// configured stack.
func bootstrap(cmd *cobra.Command) (*config.Config, *slog.Logger, cli.Formatter, error) {
	out, err := formatter()
	if err != nil {
		return nil, nil, nil, err
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := setupLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, out, nil
}
