package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sheetport-hq/sheetport/pkg/cli"
	"sheetport-hq/sheetport/pkg/export"
	"sheetport-hq/sheetport/pkg/export/exporter"
	"sheetport-hq/sheetport/pkg/export/schema"
	"sheetport-hq/sheetport/pkg/source"
	"sheetport-hq/sheetport/pkg/telemetry/tracing"
)

var exportFlags struct {
	types     []string
	all       bool
	format    string
	name      string
	group     string
	outputDir string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export registered types to spreadsheet files",
	Long: `Load every item of a registered type from the configured source and write
it to an XLSX workbook or CSV artifact.

Examples:
  # Export boards with the configured defaults
  sheetport export --type Board

  # Export the summary columns of every list as CSV
  sheetport export --type List --group summary --format csv

  # Export every exportable type into ./out
  sheetport export --all --out ./out`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringSliceVarP(&exportFlags.types, "type", "t", nil, "type to export (repeatable)")
	exportCmd.Flags().BoolVar(&exportFlags.all, "all", false, "export every exportable type")
	exportCmd.Flags().StringVarP(&exportFlags.format, "format", "f", "", "artifact format: xlsx, csv (uses config if not specified)")
	exportCmd.Flags().StringVarP(&exportFlags.name, "name", "n", "", "artifact base name (single type only, defaults to the type name)")
	exportCmd.Flags().StringVarP(&exportFlags.group, "group", "g", "", "export group (uses config if not specified)")
	exportCmd.Flags().StringVar(&exportFlags.outputDir, "out", "", "output directory (uses config if not specified)")
}

// exportRow is the outcome of one export.
type exportRow struct {
	Type       string   `json:"type"`
	Path       string   `json:"path"`
	Files      []string `json:"files"`
	Sheets     []string `json:"sheets"`
	Rows       int      `json:"rows"`
	DurationMS int64    `json:"duration_ms"`
}

type exportSummary []exportRow

func (s exportSummary) Header() []string {
	return []string{"TYPE", "ROWS", "SHEETS", "PATH"}
}

func (s exportSummary) Records() [][]string {
	out := make([][]string, len(s))
	for i, r := range s {
		out[i] = []string{r.Type, strconv.Itoa(r.Rows), strings.Join(r.Sheets, ","), r.Path}
	}
	return out
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, logger, out, err := bootstrap(cmd)
	if err != nil {
		return err
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	registry := schema.NewRegistry()
	if err := source.Register(registry); err != nil {
		return cli.NewCommandError("export", err)
	}

	names, err := exportTypeNames(registry)
	if err != nil {
		return err
	}

	provider, err := source.New(ctx, cfg.Source)
	if err != nil {
		return cli.NewCommandError("export", err)
	}
	defer provider.Close()

	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		return cli.NewCommandError("export", fmt.Errorf("failed to initialize tracing: %w", err))
	}
	defer shutdownTracer(tracer)

	exp := exporter.New(registry, cfg.Export,
		exporter.WithLogger(logger),
		exporter.WithTracer(tracer),
	)

	var progress cli.ProgressReporter
	if len(names) > 1 {
		progress = cli.NewProgressReporter(cmd.ErrOrStderr())
		progress.Start(len(names))
	}

	summary := make(exportSummary, 0, len(names))
	for _, name := range names {
		items, err := provider.Load(ctx, name)
		if err != nil {
			return cli.NewCommandError("export", err)
		}

		req := exporter.Request{
			Type:      name,
			Format:    export.Format(exportFlags.format),
			BaseName:  exportBaseName(name),
			OutputDir: exportFlags.outputDir,
			Items:     items,
		}
		if cmd.Flags().Changed("group") {
			req.Group = export.Group(exportFlags.group)
		}

		res, err := exp.Export(ctx, req)
		if err != nil {
			return cli.NewCommandError("export", err)
		}

		summary = append(summary, exportRow{
			Type:       name,
			Path:       res.Path,
			Files:      res.Files,
			Sheets:     res.Sheets,
			Rows:       res.Rows,
			DurationMS: res.Duration.Milliseconds(),
		})
		if progress != nil {
			progress.Step(name)
		}
	}
	if progress != nil {
		progress.Finish()
	}

	return out.FormatTo(cmd.OutOrStdout(), summary)
}

// exportTypeNames returns the requested types, or every exportable type
// when --all is set.
func exportTypeNames(registry *schema.Registry) ([]string, error) {
	if exportFlags.all {
		var names []string
		for _, name := range registry.Names() {
			if t, err := registry.Lookup(name); err == nil && t.IsExportable() {
				names = append(names, name)
			}
		}
		if exportFlags.name != "" && len(names) > 1 {
			return nil, export.NewValidationError("name", "cannot be combined with --all")
		}
		return names, nil
	}

	if len(exportFlags.types) == 0 {
		return nil, export.NewValidationError("type", "at least one --type or --all is required")
	}
	if exportFlags.name != "" && len(exportFlags.types) > 1 {
		return nil, export.NewValidationError("name", "only valid with a single --type")
	}
	return exportFlags.types, nil
}

func exportBaseName(typeName string) string {
	if exportFlags.name != "" {
		return exportFlags.name
	}
	return strings.ToLower(typeName)
}

func shutdownTracer(t *tracing.Tracer) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = t.Shutdown(ctx)
}
