package main

import (
	"time"

	"github.com/spf13/cobra"

	"sheetport-hq/sheetport/pkg/cli"
	"sheetport-hq/sheetport/pkg/export/retention"
)

var pruneFlags struct {
	maxAge time.Duration
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete expired artifacts from the output directory",
	Long: `Run the retention pruner once, regardless of the retention schedule.

Examples:
  # Prune with the configured max age
  sheetport prune

  # Delete artifacts older than two hours
  sheetport prune --max-age 2h`,
	RunE: runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().DurationVar(&pruneFlags.maxAge, "max-age", 0, "override retention max age")
}

type pruneResult struct {
	Dir        string   `json:"dir"`
	Removed    []string `json:"removed"`
	Bytes      int64    `json:"bytes"`
	DurationMS int64    `json:"duration_ms"`
}

func (r pruneResult) Header() []string {
	return []string{"REMOVED"}
}

func (r pruneResult) Records() [][]string {
	out := make([][]string, len(r.Removed))
	for i, path := range r.Removed {
		out[i] = []string{path}
	}
	return out
}

func runPrune(cmd *cobra.Command, args []string) error {
	cfg, logger, out, err := bootstrap(cmd)
	if err != nil {
		return err
	}

	maxAge := cfg.Export.Retention.MaxAge
	if pruneFlags.maxAge > 0 {
		maxAge = pruneFlags.maxAge
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	pruner := retention.NewPruner(cfg.Export.OutputDir, maxAge, retention.WithLogger(logger))
	report, err := pruner.Prune(ctx)
	if err != nil {
		return cli.NewCommandError("prune", err)
	}

	return out.FormatTo(cmd.OutOrStdout(), pruneResult{
		Dir:        pruner.Dir(),
		Removed:    report.Removed,
		Bytes:      report.Bytes,
		DurationMS: report.Duration.Milliseconds(),
	})
}
