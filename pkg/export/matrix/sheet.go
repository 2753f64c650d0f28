package matrix

import "sort"

// DefaultSheetName names the main sheet until the caller renames it.
const DefaultSheetName = "Sheet1"

// Cell is one assignment on a sheet.
type Cell struct {
	Row   int
	Col   int
	Value any
}

// Sheet is a sparse grid of normalized cell values.
type Sheet struct {
	Name   string
	cells  map[[2]int]any
	maxRow int
	maxCol int
}

// NewSheet creates an empty sheet.
func NewSheet(name string) *Sheet {
	return &Sheet{
		Name:  name,
		cells: make(map[[2]int]any),
	}
}

// Set assigns the normalized value v to the cell at row and col.
// Coordinates below 1 are ignored.
func (s *Sheet) Set(row, col int, v any) {
	if row < 1 || col < 1 {
		return
	}
	s.cells[[2]int{row, col}] = Normalize(v)
	if row > s.maxRow {
		s.maxRow = row
	}
	if col > s.maxCol {
		s.maxCol = col
	}
}

// Get returns the value at row and col, or nil when unassigned.
func (s *Sheet) Get(row, col int) any {
	return s.cells[[2]int{row, col}]
}

// Dimensions returns the highest assigned row and column.
func (s *Sheet) Dimensions() (rows, cols int) {
	return s.maxRow, s.maxCol
}

// DataRows returns the number of rows below the header.
func (s *Sheet) DataRows() int {
	if s.maxRow <= 1 {
		return 0
	}
	return s.maxRow - 1
}

// Rows returns the sheet as a dense grid. Index [0][0] holds cell (1, 1);
// unassigned cells are empty strings.
func (s *Sheet) Rows() [][]any {
	rows := make([][]any, s.maxRow)
	for r := range rows {
		row := make([]any, s.maxCol)
		for c := range row {
			if v, ok := s.cells[[2]int{r + 1, c + 1}]; ok {
				row[c] = v
			} else {
				row[c] = ""
			}
		}
		rows[r] = row
	}
	return rows
}

// Column returns the values of column col from row 1 down.
func (s *Sheet) Column(col int) []any {
	out := make([]any, s.maxRow)
	for r := range out {
		out[r] = s.cells[[2]int{r + 1, col}]
	}
	return out
}

// Assignments returns every assigned cell in row-major order.
func (s *Sheet) Assignments() []Cell {
	out := make([]Cell, 0, len(s.cells))
	for pos, v := range s.cells {
		out = append(out, Cell{Row: pos[0], Col: pos[1], Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Matrix is the layout of one export.
type Matrix struct {
	Main *Sheet
	Aux  []*Sheet
}

// Sheets returns the main sheet followed by the auxiliary sheets.
func (m *Matrix) Sheets() []*Sheet {
	return append([]*Sheet{m.Main}, m.Aux...)
}
