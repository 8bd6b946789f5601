package delivery

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Vovarama1992/ambiance/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
	json "github.com/goccy/go-json"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid json: %w", ports.ErrValidation, err)
	}
	return nil
}

// writeError maps the core taxonomy onto HTTP. Storage failures are logged and
// never echoed to the client.
func writeError(w http.ResponseWriter, log *logger.ZapLogger, err error) {
	status, code, msg := http.StatusInternalServerError, "storage_error", "internal error"

	switch {
	case errors.Is(err, ports.ErrValidation):
		status, code, msg = http.StatusBadRequest, "validation_error", err.Error()
	case errors.Is(err, ports.ErrNotFound):
		status, code, msg = http.StatusNotFound, "not_found", err.Error()
	case errors.Is(err, ports.ErrConflict):
		status, code, msg = http.StatusConflict, "conflict", "media already evaluated"
	case errors.Is(err, ports.ErrForbidden):
		status, code, msg = http.StatusForbidden, "forbidden", "not allowed"
	case errors.Is(err, ports.ErrExpired):
		status, code, msg = http.StatusForbidden, "expired", "evaluation can no longer be modified"
	case errors.Is(err, ports.ErrExhausted):
		status, code, msg = http.StatusNotFound, "exhausted", "no media left to evaluate"
	}

	if status == http.StatusInternalServerError {
		log.Log(logger.LogEntry{
			Level:   "error",
			Message: "request failed",
			Error:   err,
		})
	}

	writeJSON(w, status, errorBody{Error: code, Message: msg})
}
