package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"sheetport-hq/sheetport/pkg/export"
	"sheetport-hq/sheetport/pkg/export/exporter"
)

// Query parameters of the export endpoint.
const (
	FormatParam = "exportType"
	NameParam   = "exportFileName"
	GroupParam  = "exportGroup"
	TypeParam   = "class"
)

// DefaultBaseName names artifacts when the request does not.
const DefaultBaseName = "export"

// Loader loads export items by type name.
type Loader interface {
	Load(ctx context.Context, typeName string) ([]any, error)
}

// Runner runs exports.
type Runner interface {
	Export(ctx context.Context, req exporter.Request) (*exporter.Result, error)
}

// Export triggers exports over HTTP.
type Export struct {
	runner       Runner
	loader       Loader
	downloadPath string
	logger       *slog.Logger
}

// NewExport creates the export handler. Successful exports redirect to
// downloadPath.
func NewExport(runner Runner, loader Loader, downloadPath string, logger *slog.Logger) *Export {
	if logger == nil {
		logger = slog.Default()
	}
	return &Export{
		runner:       runner,
		loader:       loader,
		downloadPath: downloadPath,
		logger:       logger.With("component", "server.export"),
	}
}

// ServeHTTP parses the export parameters from the query string or a posted
// form, runs the export and answers 303 See Other to the download URL.
func (h *Export) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		writeStatus(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeStatus(w, http.StatusBadRequest, "validation", "malformed form body")
		return
	}

	req, err := parseRequest(r.Form)
	if err != nil {
		WriteError(w, err)
		return
	}

	items, err := h.loader.Load(r.Context(), req.Type)
	if err != nil {
		WriteError(w, err)
		return
	}
	req.Items = items

	res, err := h.runner.Export(r.Context(), req)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "export ready", "path", res.Path, "rows", res.Rows)

	target := h.downloadPath + "?" + url.Values{PathParam: {res.Path}}.Encode()
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func parseRequest(form url.Values) (exporter.Request, error) {
	req := exporter.Request{
		Type:     form.Get(TypeParam),
		Format:   export.Format(form.Get(FormatParam)),
		BaseName: form.Get(NameParam),
	}
	if req.Type == "" {
		return req, export.NewValidationError(TypeParam, "must name the type to export")
	}
	if req.BaseName == "" {
		req.BaseName = DefaultBaseName
	}
	if g := form.Get(GroupParam); g != "" {
		req.Group = export.Group(g)
	}
	if req.Format != "" {
		f, err := export.ParseFormat(string(req.Format))
		if err != nil {
			return req, err
		}
		req.Format = f
	}
	if err := exporter.ValidateBaseName(req.BaseName); err != nil {
		return req, err
	}
	return req, nil
}
