package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"sheetport-hq/sheetport/pkg/export"
	"sheetport-hq/sheetport/pkg/export/exporter"
)

// ErrorResponse is the JSON body of every error.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes an error.
type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param,omitempty"`
}

// StatusFor maps an export error to an HTTP status: 400 for unsupported
// formats and invalid input, 422 for types that cannot be exported and 500
// for everything else.
func StatusFor(err error) int {
	switch exporter.ErrorKind(err) {
	case "unsupported_format", "validation":
		return http.StatusBadRequest
	case "configuration":
		return http.StatusUnprocessableEntity
	case "canceled":
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// WriteError writes err with the status from StatusFor. Internal error
// details are not exposed.
func WriteError(w http.ResponseWriter, err error) {
	code := StatusFor(err)
	detail := ErrorDetail{Message: err.Error(), Type: exporter.ErrorKind(err)}

	var valErr *export.ValidationError
	if errors.As(err, &valErr) {
		detail.Param = valErr.Field
	}
	if code == http.StatusInternalServerError {
		detail.Message = "An internal error occurred."
	}
	writeJSON(w, code, ErrorResponse{Error: detail})
}

func writeStatus(w http.ResponseWriter, code int, kind, message string) {
	writeJSON(w, code, ErrorResponse{Error: ErrorDetail{Message: message, Type: kind}})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
