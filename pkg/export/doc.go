// Package export defines the vocabulary shared by the sheetport export
// pipeline: output formats, relation expansion modes, per-member export
// metadata and the error taxonomy.
//
// # Architecture
//
// An export runs through four stages, each in its own sub-package:
//
//  1. schema    - registry of exportable Go types and their members
//  2. resolver  - turns a type plus an optional group into ordered field descriptors
//  3. matrix    - lays items out as header, body and auxiliary sheet cells
//  4. writer    - realizes a matrix as an xlsx workbook or a set of csv files
//
// The exporter package ties the stages together, decides file names and
// packages multi-sheet csv output into a zip archive.
//
// # Export Metadata
//
// Each member of an exportable type may carry a Tag:
//
//	schema.Property("email", func(u *User) any { return u.Email }).
//	    Export(export.Tag{Name: "Email", Groups: []string{"default"}})
//
// Relations choose how their elements are flattened with Tag.Mode:
//
//   - ModeNone:   the raw value (or its sub-fields) in one set of columns
//   - ModeLines:  one physical row per related element
//   - ModeSheet:  one auxiliary sheet, one row per element, keyed by item row
//   - ModeInline: elements joined with a newline in a single cell
//
// # Error Handling
//
// Configuration, format and validation errors abort an export before any
// file is written. IO errors abort after best-effort cleanup. ResolutionError
// is soft: the resolver logs it and exports the raw value instead.
package export
