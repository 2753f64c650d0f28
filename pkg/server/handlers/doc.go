// Package handlers implements the sheetport HTTP endpoints.
//
//   - Download serves a produced artifact confined to the output directory.
//   - Export runs an export for the configured data source and redirects to
//     the download endpoint.
//
// Errors are written as JSON:
//
//	{"error": {"message": "...", "type": "validation", "param": "base_name"}}
package handlers
