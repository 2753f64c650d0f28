// Package exporter runs the export pipeline: it validates a request,
// resolves field descriptors for the requested type, builds the cell
// matrix and writes the artifact.
//
// XLSX exports produce a single workbook. CSV exports produce one file per
// sheet; when more than one sheet results, the files are packed into a zip
// archive and removed.
//
//	exp := exporter.New(registry, cfg.Export,
//	    exporter.WithMetrics(collector),
//	    exporter.WithTracer(tracer),
//	)
//	res, err := exp.Export(ctx, exporter.Request{
//	    Type:     "Board",
//	    Format:   export.FormatCSV,
//	    BaseName: "boards",
//	    Items:    items,
//	})
//
// Validation happens before anything touches the filesystem: an unsupported
// format, an unknown or non-exportable type and an invalid base name are
// rejected without creating files.
package exporter
