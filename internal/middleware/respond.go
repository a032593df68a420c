package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/crucial707/task-api/internal/dto"
)

// writeError sends the standard failure body and stops the chain.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{Success: false, Message: message})
}
