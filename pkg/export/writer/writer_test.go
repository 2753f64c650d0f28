package writer

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"sheetport-hq/sheetport/pkg/export"
	"sheetport-hq/sheetport/pkg/export/matrix"
)

func sampleMatrix() *matrix.Matrix {
	main := matrix.NewSheet("users")
	main.Set(1, 1, "name")
	main.Set(1, 2, "age")
	main.Set(2, 1, "Ada")
	main.Set(2, 2, 36)
	main.Set(3, 1, "Alan, Jr.")

	aux := matrix.NewSheet("roles")
	aux.Set(1, 1, "row")
	aux.Set(1, 2, "value")
	aux.Set(2, 1, 1)
	aux.Set(2, 2, "admin")

	return &matrix.Matrix{Main: main, Aux: []*matrix.Sheet{aux}}
}

func TestNew(t *testing.T) {
	tests := []struct {
		format  export.Format
		want    string
		wantErr bool
	}{
		{format: export.FormatXLSX, want: "*writer.XLSXWriter"},
		{format: export.FormatCSV, want: "*writer.CSVWriter"},
		{format: export.Format("pdf"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			w, err := New(tt.format)
			if tt.wantErr {
				var fmtErr *export.UnsupportedFormatError
				if !errors.As(err, &fmtErr) {
					t.Fatalf("New() error = %v, want UnsupportedFormatError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer w.Close()
			if got := reflect.TypeOf(w).String(); got != tt.want {
				t.Errorf("New() type = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestXLSXWriter_RealizeAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	w := NewXLSX()
	if _, err := Realize(w, sampleMatrix()); err != nil {
		t.Fatalf("Realize() error = %v", err)
	}
	if err := w.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()

	if got, want := f.GetSheetList(), []string{"users", "roles"}; !reflect.DeepEqual(got, want) {
		t.Errorf("GetSheetList() = %v, want %v", got, want)
	}

	rows, err := f.GetRows("users")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	want := [][]string{{"name", "age"}, {"Ada", "36"}, {"Alan, Jr."}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("GetRows(users) = %v, want %v", rows, want)
	}

	aux, err := f.GetRows("roles")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if want := [][]string{{"row", "value"}, {"1", "admin"}}; !reflect.DeepEqual(aux, want) {
		t.Errorf("GetRows(roles) = %v, want %v", aux, want)
	}
}

func TestXLSXWriter_DuplicateSheetNames(t *testing.T) {
	w := NewXLSX()
	defer w.Close()

	for _, name := range []string{"Data", "data", "Data"} {
		if _, err := w.AddSheet(name); err != nil {
			t.Fatalf("AddSheet(%q) error = %v", name, err)
		}
	}
	if got, want := w.SheetNames(), []string{"Data", "data (2)", "Data (3)"}; !reflect.DeepEqual(got, want) {
		t.Errorf("SheetNames() = %v, want %v", got, want)
	}
}

func TestXLSXWriter_SetCellOutOfRange(t *testing.T) {
	w := NewXLSX()
	defer w.Close()

	if err := w.SetCell(0, 1, 1, "x"); err == nil {
		t.Error("SetCell() on missing sheet error = nil, want error")
	}
}

func TestSanitizeSheetName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "roles", want: "roles"},
		{name: "forbidden characters", in: "a/b\\c?d*e[f]g:h", want: "a_b_c_d_e_f_g_h"},
		{name: "apostrophes", in: "'quoted'", want: "quoted"},
		{name: "too long", in: strings.Repeat("x", 40), want: strings.Repeat("x", 31)},
		{name: "multibyte", in: strings.Repeat("é", 35), want: strings.Repeat("é", 31)},
		{name: "empty", in: "", want: "Sheet3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeSheetName(tt.in, 3); got != tt.want {
				t.Errorf("SanitizeSheetName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCSVWriter_SaveSheet(t *testing.T) {
	dir := t.TempDir()

	w := NewCSV()
	indexes, err := Realize(w, sampleMatrix())
	if err != nil {
		t.Fatalf("Realize() error = %v", err)
	}
	if got, want := indexes, []int{0, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("Realize() indexes = %v, want %v", got, want)
	}

	mainPath := filepath.Join(dir, "main.csv")
	if err := w.Save(mainPath); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	auxPath := filepath.Join(dir, "aux.csv")
	if err := w.SetActive(1); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if err := w.Save(auxPath); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	tests := []struct {
		path string
		want string
	}{
		{path: mainPath, want: "name,age\nAda,36\n\"Alan, Jr.\",\n"},
		{path: auxPath, want: "row,value\n1,admin\n"},
	}
	for _, tt := range tests {
		data, err := os.ReadFile(tt.path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if got := string(data); got != tt.want {
			t.Errorf("%s content = %q, want %q", filepath.Base(tt.path), got, tt.want)
		}
	}

	if got := w.SheetName(1); got != "roles" {
		t.Errorf("SheetName(1) = %q, want %q", got, "roles")
	}
}

func TestCSVWriter_InvalidIndexes(t *testing.T) {
	w := NewCSV()
	if _, err := w.AddSheet("only"); err != nil {
		t.Fatalf("AddSheet() error = %v", err)
	}

	if err := w.SetCell(1, 1, 1, "x"); err == nil {
		t.Error("SetCell() on missing sheet error = nil, want error")
	}
	if err := w.SetCell(0, 0, 1, "x"); err == nil {
		t.Error("SetCell() at row 0 error = nil, want error")
	}
	if err := w.SetActive(2); err == nil {
		t.Error("SetActive() out of range error = nil, want error")
	}
	if err := w.SaveSheet(0, filepath.Join(t.TempDir(), "missing", "x.csv")); err == nil {
		t.Error("SaveSheet() into missing directory error = nil, want error")
	}
}
