package writer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// MaxSheetNameLength is Excel's limit on worksheet names, in characters.
const MaxSheetNameLength = 31

const defaultWorkbookSheet = "Sheet1"

// XLSXWriter writes all sheets into a single workbook.
type XLSXWriter struct {
	file  *excelize.File
	names []string
}

// NewXLSX creates an empty workbook writer.
func NewXLSX() *XLSXWriter {
	return &XLSXWriter{file: excelize.NewFile()}
}

// AddSheet creates a worksheet. Names are sanitized for Excel and made
// unique; the first sheet replaces the workbook's default sheet.
func (w *XLSXWriter) AddSheet(name string) (int, error) {
	name = w.uniqueName(SanitizeSheetName(name, len(w.names)+1))

	if len(w.names) == 0 {
		if err := w.file.SetSheetName(defaultWorkbookSheet, name); err != nil {
			return 0, err
		}
	} else if _, err := w.file.NewSheet(name); err != nil {
		return 0, err
	}

	w.names = append(w.names, name)
	return len(w.names) - 1, nil
}

// SetCell assigns v to a cell of the sheet at index sheet.
func (w *XLSXWriter) SetCell(sheet, row, col int, v any) error {
	if sheet < 0 || sheet >= len(w.names) {
		return fmt.Errorf("sheet index %d out of range", sheet)
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return w.file.SetCellValue(w.names[sheet], cell, v)
}

// Save writes the workbook to path.
func (w *XLSXWriter) Save(path string) error {
	if len(w.names) > 0 {
		w.file.SetActiveSheet(0)
	}
	return w.file.SaveAs(path)
}

// Close releases the workbook.
func (w *XLSXWriter) Close() error {
	return w.file.Close()
}

// SheetNames returns the worksheet names in creation order.
func (w *XLSXWriter) SheetNames() []string {
	return append([]string(nil), w.names...)
}

func (w *XLSXWriter) uniqueName(name string) string {
	taken := func(candidate string) bool {
		for _, n := range w.names {
			if strings.EqualFold(n, candidate) {
				return true
			}
		}
		return false
	}

	if !taken(name) {
		return name
	}
	for i := 2; ; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		candidate := truncate(name, MaxSheetNameLength-len(suffix)) + suffix
		if !taken(candidate) {
			return candidate
		}
	}
}

// SanitizeSheetName makes name a valid Excel worksheet name: forbidden
// characters become underscores, leading and trailing apostrophes are
// removed and the result is cut to MaxSheetNameLength characters. An
// empty result falls back to "Sheet<n>".
func SanitizeSheetName(name string, n int) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(strings.TrimSpace(name), "'")
	name = truncate(name, MaxSheetNameLength)
	if name == "" {
		return fmt.Sprintf("Sheet%d", n)
	}
	return name
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
