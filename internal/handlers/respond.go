package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/crucial707/task-api/internal/apperror"
	"github.com/crucial707/task-api/internal/dto"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "Internal server error"

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// JSONError sends the standard failure body.
func JSONError(w http.ResponseWriter, message string, status int) {
	JSON(w, status, dto.ErrorResponse{Success: false, Message: message})
}

// JSONValidationError sends a failure body with field-level details.
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	JSON(w, status, dto.ErrorResponse{Success: false, Message: message, Fields: fields})
}

// writeError maps err to a response. Anything that is not a client error is
// logged with the request id and answered with a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.HTTPStatus(err)
	var ae *apperror.Error
	if status == http.StatusInternalServerError || !errors.As(err, &ae) {
		slog.Error("request failed",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	JSONValidationError(w, ae.Message, ae.Fields, status)
}

// decodeJSON reads the request body into v. It writes the error response itself
// and reports false when the body is missing, too large or not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig):
		JSONError(w, "Request body too large", http.StatusRequestEntityTooLarge)
	case errors.Is(err, io.EOF):
		JSONError(w, "Request body is required", http.StatusBadRequest)
	default:
		JSONError(w, "Invalid JSON", http.StatusBadRequest)
	}
	return false
}
