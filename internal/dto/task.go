package dto

import "github.com/crucial707/task-api/internal/models"

// CreateTaskRequest: title and dueDate presence is checked after trimming by the task service.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=pending in-progress done"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     string `json:"dueDate"`
}

// UpdateTaskRequest is a partial update; absent fields stay unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in-progress done"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"dueDate"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

type TaskEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Task    *models.Task `json:"task"`
}

type TaskListResponse struct {
	Success bool          `json:"success"`
	Count   int           `json:"count"`
	Tasks   []models.Task `json:"tasks"`
}

type BulkDeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Deleted int    `json:"deleted"`
}
