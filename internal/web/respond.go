package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/vbonduro/officepantry/internal/auth"
	"github.com/vbonduro/officepantry/internal/consumption"
	"github.com/vbonduro/officepantry/internal/filestore"
	"github.com/vbonduro/officepantry/internal/pricing"
	"github.com/vbonduro/officepantry/internal/service"
	"github.com/vbonduro/officepantry/internal/validate"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeAttachment sends a fully rendered file download.
func writeAttachment(w http.ResponseWriter, contentType, filename string, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return n, nil
}

// fail maps a service error to a response. Unexpected errors are logged and
// reported as 500 without detail.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var fe validate.Errors
	switch {
	case errors.As(err, &fe):
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": fe})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, filestore.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, pricing.ErrZeroValue),
		errors.Is(err, pricing.ErrUnknownMethod),
		errors.Is(err, pricing.ErrEmptySelection),
		errors.Is(err, pricing.ErrUnknownCategory),
		errors.Is(err, pricing.ErrUnknownReason),
		errors.Is(err, consumption.ErrNoBulkRows):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrRoleMismatch):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
