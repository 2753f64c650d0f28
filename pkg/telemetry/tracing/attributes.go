package tracing

import (
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys used on sheetport spans.
const (
	AttrExportType   = "sheetport.export.type"
	AttrExportFormat = "sheetport.export.format"
	AttrExportGroup  = "sheetport.export.group"
	AttrExportBase   = "sheetport.export.base_name"
	AttrExportItems  = "sheetport.export.items"
	AttrExportFields = "sheetport.export.fields"
	AttrExportRows   = "sheetport.export.rows"
	AttrExportSheets = "sheetport.export.sheets"
	AttrExportPath   = "sheetport.export.path"
	AttrRequestID    = "sheetport.request_id"
)

// ExportAttributes returns the attributes describing an export request.
// A nil group is recorded as "*".
func ExportAttributes(typeName, format string, group *string, items int) []attribute.KeyValue {
	g := "*"
	if group != nil {
		g = *group
	}
	return []attribute.KeyValue{
		attribute.String(AttrExportType, typeName),
		attribute.String(AttrExportFormat, format),
		attribute.String(AttrExportGroup, g),
		attribute.Int(AttrExportItems, items),
	}
}
