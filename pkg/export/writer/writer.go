package writer

import (
	"fmt"

	"sheetport-hq/sheetport/pkg/export"
	"sheetport-hq/sheetport/pkg/export/matrix"
)

// Writer receives cell assignments and persists them.
type Writer interface {
	// AddSheet creates a sheet and returns its index. The first sheet
	// added becomes the main sheet.
	AddSheet(name string) (int, error)

	// SetCell assigns v to the 1-based row and col of sheet.
	SetCell(sheet, row, col int, v any) error

	// Save persists the writer's output to path.
	Save(path string) error

	// Close releases resources held by the writer.
	Close() error
}

// New returns a writer for format.
func New(format export.Format) (Writer, error) {
	switch format {
	case export.FormatXLSX:
		return NewXLSX(), nil
	case export.FormatCSV:
		return NewCSV(), nil
	}
	return nil, export.NewUnsupportedFormatError(string(format))
}

// Realize copies every sheet of m into w, main sheet first, and returns
// the sheet indexes in the same order.
func Realize(w Writer, m *matrix.Matrix) ([]int, error) {
	sheets := m.Sheets()
	indexes := make([]int, 0, len(sheets))
	for _, s := range sheets {
		idx, err := w.AddSheet(s.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to add sheet %q: %w", s.Name, err)
		}
		for _, c := range s.Assignments() {
			if err := w.SetCell(idx, c.Row, c.Col, c.Value); err != nil {
				return nil, fmt.Errorf("failed to set cell (%d,%d) on sheet %q: %w", c.Row, c.Col, s.Name, err)
			}
		}
		indexes = append(indexes, idx)
	}
	return indexes, nil
}
