package exporter

import (
	"strings"
	"time"

	"sheetport-hq/sheetport/pkg/export"
)

// Request describes one export.
type Request struct {
	// Type is the registered type name of every item.
	Type string

	// Group restricts the exported members. Nil selects the configured
	// default group, or every member when none is configured.
	Group *string

	// Format is the output format. Empty selects the configured default.
	Format export.Format

	// BaseName is the artifact file name without extension.
	BaseName string

	// OutputDir overrides the configured output directory.
	OutputDir string

	// Items are the objects to export, in row order.
	Items []any
}

// Result describes a produced artifact.
type Result struct {
	// Path is the artifact location: the workbook, the single CSV file or
	// the zip archive.
	Path string

	// Files lists the file names contained in the artifact.
	Files []string

	// Sheets lists the sheet names in output order, main sheet first.
	Sheets []string

	// Rows is the number of data rows on the main sheet.
	Rows int

	// Duration is the wall time of the export.
	Duration time.Duration
}

// ValidateBaseName rejects names that are empty or would escape the
// output directory.
func ValidateBaseName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return export.NewValidationError("base_name", "must not be empty")
	case name == "." || name == "..":
		return export.NewValidationError("base_name", "must not be a relative directory reference")
	case strings.ContainsAny(name, `/\`):
		return export.NewValidationError("base_name", "must not contain path separators")
	case strings.ContainsRune(name, 0):
		return export.NewValidationError("base_name", "must not contain NUL bytes")
	}
	return nil
}
