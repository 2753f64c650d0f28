package writer

import (
	"encoding/csv"
	"fmt"
	"os"

	"sheetport-hq/sheetport/pkg/export/matrix"
)

// CSVWriter holds sheets in memory and saves one sheet per file.
type CSVWriter struct {
	sheets []*matrix.Sheet
	active int
}

// NewCSV creates an empty csv writer.
func NewCSV() *CSVWriter {
	return &CSVWriter{}
}

// AddSheet creates a sheet.
func (w *CSVWriter) AddSheet(name string) (int, error) {
	w.sheets = append(w.sheets, matrix.NewSheet(name))
	return len(w.sheets) - 1, nil
}

// SetCell assigns v to a cell of the sheet at index sheet.
func (w *CSVWriter) SetCell(sheet, row, col int, v any) error {
	if sheet < 0 || sheet >= len(w.sheets) {
		return fmt.Errorf("sheet index %d out of range", sheet)
	}
	if row < 1 || col < 1 {
		return fmt.Errorf("invalid cell coordinates (%d,%d)", row, col)
	}
	w.sheets[sheet].Set(row, col, v)
	return nil
}

// SetActive selects the sheet written by Save.
func (w *CSVWriter) SetActive(sheet int) error {
	if sheet < 0 || sheet >= len(w.sheets) {
		return fmt.Errorf("sheet index %d out of range", sheet)
	}
	w.active = sheet
	return nil
}

// Save writes the active sheet to path.
func (w *CSVWriter) Save(path string) error {
	return w.SaveSheet(w.active, path)
}

// SaveSheet writes the sheet at index sheet to path.
func (w *CSVWriter) SaveSheet(sheet int, path string) error {
	if sheet < 0 || sheet >= len(w.sheets) {
		return fmt.Errorf("sheet index %d out of range", sheet)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := writeRecords(file, w.sheets[sheet]); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// SheetCount returns the number of sheets.
func (w *CSVWriter) SheetCount() int {
	return len(w.sheets)
}

// SheetName returns the name of the sheet at index sheet.
func (w *CSVWriter) SheetName(sheet int) string {
	if sheet < 0 || sheet >= len(w.sheets) {
		return ""
	}
	return w.sheets[sheet].Name
}

// Close is a no-op; sheets are released with the writer.
func (w *CSVWriter) Close() error {
	return nil
}

func writeRecords(file *os.File, sheet *matrix.Sheet) error {
	cw := csv.NewWriter(file)
	for _, row := range sheet.Rows() {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = matrix.Text(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
