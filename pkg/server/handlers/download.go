package handlers

import (
	"errors"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// PathParam is the query parameter naming the file to download.
const PathParam = "path"

var contentTypes = map[string]string{
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".csv":  "text/csv; charset=utf-8",
	".zip":  "application/zip",
}

// Download serves files from a root directory.
type Download struct {
	root   string
	logger *slog.Logger
}

// NewDownload creates a download handler confined to root.
func NewDownload(root string, logger *slog.Logger) *Download {
	if logger == nil {
		logger = slog.Default()
	}
	return &Download{root: root, logger: logger.With("component", "server.download")}
}

// ServeHTTP streams the file named by the path query parameter. Paths
// outside the root are rejected with 403 and missing files with 404.
func (h *Download) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeStatus(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	requested := r.URL.Query().Get(PathParam)
	if requested == "" {
		writeStatus(w, http.StatusBadRequest, "validation", "missing path parameter")
		return
	}

	path, err := h.Resolve(requested)
	if err != nil {
		h.logger.WarnContext(r.Context(), "download rejected", "path", requested, "error", err)
		switch {
		case errors.Is(err, fs.ErrPermission):
			writeStatus(w, http.StatusForbidden, "forbidden", "path is outside the download directory")
		case errors.Is(err, fs.ErrNotExist):
			writeStatus(w, http.StatusNotFound, "not_found", "file not found")
		default:
			writeStatus(w, http.StatusInternalServerError, "internal", "An internal error occurred.")
		}
		return
	}

	f, err := os.Open(path)
	if err != nil {
		writeStatus(w, http.StatusNotFound, "not_found", "file not found")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		writeStatus(w, http.StatusNotFound, "not_found", "file not found")
		return
	}

	name := filepath.Base(path)
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	http.ServeContent(w, r, name, info.ModTime(), f)
}

// Resolve returns the absolute location of requested. Relative paths are
// resolved against the working directory, the way export results report
// them. The result must lie inside the root once symlinks are followed;
// otherwise an error wrapping fs.ErrPermission is returned.
func (h *Download) Resolve(requested string) (string, error) {
	root, err := realPath(h.root)
	if err != nil {
		return "", err
	}
	path, err := realPath(requested)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &fs.PathError{Op: "download", Path: requested, Err: fs.ErrPermission}
	}
	return path, nil
}

// realPath makes p absolute and follows symlinks. A missing file keeps its
// cleaned absolute path so confinement is still checked before the 404.
func realPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if errors.Is(err, fs.ErrNotExist) {
		if dir, derr := filepath.EvalSymlinks(filepath.Dir(abs)); derr == nil {
			return filepath.Join(dir, filepath.Base(abs)), nil
		}
		return abs, nil
	}
	return resolved, err
}
