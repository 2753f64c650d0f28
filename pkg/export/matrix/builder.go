package matrix

import (
	"strings"

	"sheetport-hq/sheetport/pkg/export"
	"sheetport-hq/sheetport/pkg/export/resolver"
	"sheetport-hq/sheetport/pkg/export/schema"
)

const (
	// AuxRowHeader heads the column holding the owning item's index.
	AuxRowHeader = "row"
	// AuxValueHeader heads the value column of relations without sub-fields.
	AuxValueHeader = "value"
)

// Build lays out items on a main sheet and one auxiliary sheet per
// sheet-mode descriptor.
func Build(items []any, descs []resolver.FieldDescriptor) *Matrix {
	main := NewSheet(DefaultSheetName)
	for col, name := range BuildHeader(descs) {
		main.Set(1, col+1, name)
	}
	BuildBody(main, items, descs)

	return &Matrix{
		Main: main,
		Aux:  BuildAux(items, descs),
	}
}

// BuildHeader returns the main sheet header. Sheet-mode descriptors are
// skipped and descriptors with sub-fields yield one "name_sub" column per
// sub-field.
func BuildHeader(descs []resolver.FieldDescriptor) []string {
	var header []string
	for _, d := range descs {
		switch {
		case d.Mode == export.ModeSheet:
			continue
		case d.Mode == export.ModeInline || d.SubFields == nil:
			header = append(header, d.ExportName)
		default:
			for _, sf := range d.SubFields {
				header = append(header, d.ExportName+"_"+sf.Name)
			}
		}
	}
	return header
}

// BuildBody writes the data rows for items onto sheet, starting at row 2,
// and returns the number of rows written.
func BuildBody(sheet *Sheet, items []any, descs []resolver.FieldDescriptor) int {
	row := 2
	for _, item := range items {
		for _, cells := range itemRows(item, descs) {
			for col, v := range cells {
				sheet.Set(row, col+1, v)
			}
			row++
		}
	}
	return row - 2
}

// itemRows returns the main sheet rows of a single item.
func itemRows(item any, descs []resolver.FieldDescriptor) [][]any {
	values := make([]any, len(descs))
	lines := 1
	for i, d := range descs {
		values[i] = d.Get(item)
		if d.Mode == export.ModeLines {
			if n := len(elementsOf(values[i])); n > lines {
				lines = n
			}
		}
	}

	rows := make([][]any, lines)
	for line := range rows {
		var cells []any
		for i, d := range descs {
			v := values[i]
			switch d.Mode {
			case export.ModeSheet:
				continue
			case export.ModeLines:
				var el any
				if elems := elementsOf(v); line < len(elems) {
					el = elems[line]
				}
				cells = append(cells, d.Extract(el)...)
			case export.ModeInline:
				cells = append(cells, inline(d, v))
			default:
				cells = append(cells, plain(d, v)...)
			}
		}
		rows[line] = cells
	}
	return rows
}

// BuildAux builds one auxiliary sheet per sheet-mode export name. Each row
// holds the 1-based index of the owning item followed by the element's
// values. Descriptors sharing an export name reuse the same sheet: their
// rows are appended and columns are matched by header name, unknown
// headers being added on the right.
func BuildAux(items []any, descs []resolver.FieldDescriptor) []*Sheet {
	type aux struct {
		sheet   *Sheet
		columns map[string]int
		next    int
	}

	var sheets []*Sheet
	byName := map[string]*aux{}
	for _, d := range descs {
		if d.Mode != export.ModeSheet {
			continue
		}

		a, ok := byName[d.ExportName]
		if !ok {
			a = &aux{sheet: NewSheet(d.ExportName), columns: map[string]int{}, next: 2}
			a.sheet.Set(1, 1, AuxRowHeader)
			byName[d.ExportName] = a
			sheets = append(sheets, a.sheet)
		}

		headers := d.SubFieldNames()
		if d.SubFields == nil {
			headers = []string{AuxValueHeader}
		}
		cols := make([]int, len(headers))
		for i, name := range headers {
			col, ok := a.columns[name]
			if !ok {
				col = len(a.columns) + 2
				a.columns[name] = col
				a.sheet.Set(1, col, name)
			}
			cols[i] = col
		}

		for idx, item := range items {
			for _, el := range elementsOf(d.Get(item)) {
				a.sheet.Set(a.next, 1, idx+1)
				for i, v := range d.Extract(el) {
					if i < len(cols) {
						a.sheet.Set(a.next, cols[i], v)
					}
				}
				a.next++
			}
		}
	}
	return sheets
}

// plain renders a descriptor without expansion. A collection value with
// sub-fields yields, per sub-field, the element values joined by newlines.
func plain(d resolver.FieldDescriptor, v any) []any {
	if d.SubFields == nil {
		return []any{v}
	}
	elems, iterable := schema.Elements(v)
	if !iterable {
		return d.Extract(v)
	}

	out := make([]any, len(d.SubFields))
	for i := range d.SubFields {
		parts := make([]string, 0, len(elems))
		for _, el := range elems {
			parts = append(parts, Text(d.Extract(el)[i]))
		}
		out[i] = strings.Join(parts, "\n")
	}
	return out
}

// inline joins the elements of v with newlines. An element with sub-fields
// is rendered as its sub-field values separated by spaces.
func inline(d resolver.FieldDescriptor, v any) string {
	elems := elementsOf(v)
	parts := make([]string, 0, len(elems))
	for _, el := range elems {
		if d.SubFields == nil {
			parts = append(parts, Text(el))
			continue
		}
		vals := d.Extract(el)
		fields := make([]string, len(vals))
		for i, fv := range vals {
			fields[i] = Text(fv)
		}
		parts = append(parts, strings.Join(fields, " "))
	}
	return strings.Join(parts, "\n")
}

// elementsOf returns the elements of a relation value. Nil has none and a
// single non-collection value counts as one element.
func elementsOf(v any) []any {
	if schema.IsNil(v) {
		return nil
	}
	if elems, ok := schema.Elements(v); ok {
		return elems
	}
	return []any{v}
}
