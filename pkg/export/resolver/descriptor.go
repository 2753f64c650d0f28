package resolver

import (
	"sheetport-hq/sheetport/pkg/export"
	"sheetport-hq/sheetport/pkg/export/schema"
)

// FieldDescriptor describes one exportable field. Descriptors are values;
// callers must not mutate the slices they carry.
type FieldDescriptor struct {
	// ExportName is the header name (tag name or member name).
	ExportName string

	// Member is the declared member name.
	Member string

	// Kind is property or method.
	Kind schema.MemberKind

	// Get reads the raw member value from an item.
	Get func(item any) any

	// SubFields flattens a related value into several columns.
	// Nil means the raw value is exported as one column.
	SubFields []SubField

	// Mode is the relation expansion mode.
	Mode export.ExpansionMode

	// Groups are the group tags the member was selected with.
	Groups []string

	// Position is the declared ordinal, if any.
	Position *int
}

// SubField is one column extracted from a related value.
type SubField struct {
	Name string
	Get  func(related any) any
}

// HasSubFields reports whether the descriptor expands into sub-field columns.
func (d FieldDescriptor) HasSubFields() bool {
	return d.SubFields != nil
}

// SubFieldNames returns the sub-field names in order.
func (d FieldDescriptor) SubFieldNames() []string {
	if d.SubFields == nil {
		return nil
	}
	names := make([]string, len(d.SubFields))
	for i, sf := range d.SubFields {
		names[i] = sf.Name
	}
	return names
}

// Extract returns one value per sub-field of related, or related itself
// when the descriptor has no sub-fields. A nil related value yields nils.
func (d FieldDescriptor) Extract(related any) []any {
	if d.SubFields == nil {
		return []any{related}
	}
	out := make([]any, len(d.SubFields))
	if schema.IsNil(related) {
		return out
	}
	for i, sf := range d.SubFields {
		out[i] = sf.Get(related)
	}
	return out
}

// Width returns the number of columns the descriptor occupies on the main
// sheet.
func (d FieldDescriptor) Width() int {
	switch {
	case d.Mode == export.ModeSheet:
		return 0
	case d.Mode == export.ModeInline:
		return 1
	case d.SubFields != nil:
		return len(d.SubFields)
	}
	return 1
}

// FieldGetter lets dynamic values expose named sub-fields when their type
// is not registered.
type FieldGetter interface {
	ExportField(name string) (any, bool)
}
