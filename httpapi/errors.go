package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/One-com/gone/log"

	"github.com/jovermann/pvview/tsdberr"
)

// errorResponse is the JSON body written for any non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps a tsdberr sentinel to the HTTP status §7 assigns it.
// Errors the engine never wraps in a recognized sentinel default to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, tsdberr.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, tsdberr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, tsdberr.ErrFormatMismatch):
		return http.StatusConflict
	case errors.Is(err, tsdberr.ErrMixedSeries):
		return http.StatusConflict
	case errors.Is(err, tsdberr.ErrTsdbParse):
		return http.StatusUnprocessableEntity
	case errors.Is(err, tsdberr.ErrIO):
		return http.StatusInternalServerError
	case errors.Is(err, tsdberr.ErrCannotEncode):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	status := statusFor(err)
	if status >= 500 {
		logger.ERROR("request failed", "error", err.Error(), "status", status)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
