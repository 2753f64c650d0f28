package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"sheetport-hq/sheetport/pkg/export/writer"
)

// csvFileNames returns the file name of every sheet: base.csv for the main
// sheet and base_<sheet>.csv for the others. Clashing names get a numeric
// suffix.
func csvFileNames(w *writer.CSVWriter, base string) []string {
	names := make([]string, w.SheetCount())
	seen := make(map[string]bool, len(names))
	for i := range names {
		name := base + ".csv"
		if i > 0 {
			name = base + "_" + sanitizeFileComponent(w.SheetName(i), i) + ".csv"
		}
		for n := 2; seen[strings.ToLower(name)]; n++ {
			name = fmt.Sprintf("%s_%s_%d.csv", base, sanitizeFileComponent(w.SheetName(i), i), n)
		}
		seen[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

// sanitizeFileComponent keeps the sheet name as written, spaces and
// Unicode included, replacing only path separators, control characters and
// characters common filesystems reject.
func sanitizeFileComponent(s string, index int) string {
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(`/\:*?"<>|`, r) {
			return '_'
		}
		return r
	}, s)
	if strings.Trim(s, "_. ") == "" {
		return fmt.Sprintf("sheet%d", index+1)
	}
	return s
}

// pack writes paths into a new zip archive at zipPath, one entry per file
// named by its base name.
func pack(zipPath string, paths []string) error {
	f, err := os.Create(zipPath)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(f)
	for _, p := range paths {
		if err := addFile(zw, p); err != nil {
			_ = zw.Close()
			_ = f.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func addFile(zw *zip.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = filepath.Base(path)
	hdr.Method = zip.Deflate

	dst, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	return err
}
