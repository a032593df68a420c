package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/crucial707/task-api/internal/dto"
)

// HealthHandler serves the unauthenticated operational routes.
type HealthHandler struct {
	DB *sql.DB
}

func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, dto.MessageResponse{Success: true, Message: "Task Manager API is running!"})
}

// Live reports that the process is serving.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether the database answers a ping within two seconds.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": "unreachable"})
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "ok", "database": "ok"})
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	JSONError(w, "Route not found", http.StatusNotFound)
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
}
