package handlers

import (
	"fmt"
	"net/http"

	"github.com/crucial707/task-api/internal/dto"
	"github.com/crucial707/task-api/internal/metrics"
	"github.com/crucial707/task-api/internal/middleware"
	"github.com/crucial707/task-api/internal/service"
	"github.com/go-chi/chi/v5"
)

// TaskHandler serves the owner-scoped task routes. The owner is always the authenticated caller.
type TaskHandler struct {
	Tasks *service.TaskService
}

//
// ==========================
// List Tasks
// ==========================
//

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Tasks.ListByOwner(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, dto.TaskListResponse{Success: true, Count: len(tasks), Tasks: tasks})
}

//
// ==========================
// Get Task
// ==========================
//

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.Tasks.GetByID(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, dto.TaskEnvelope{Success: true, Task: task})
}

//
// ==========================
// Create Task
// ==========================
//

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := dto.Validate(req, "Title and due date are required"); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.Tasks.Create(r.Context(), middleware.GetUserID(r.Context()), service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	metrics.AddTaskMutations("create", 1)
	JSON(w, http.StatusCreated, dto.TaskEnvelope{Success: true, Message: "Task created successfully", Task: task})
}

//
// ==========================
// Update Task
// ==========================
//

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := dto.Validate(req, "Invalid task fields"); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.Tasks.Update(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"), service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	metrics.AddTaskMutations("update", 1)
	JSON(w, http.StatusOK, dto.TaskEnvelope{Success: true, Message: "Task updated successfully", Task: task})
}

//
// ==========================
// Delete Task
// ==========================
//

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.Tasks.Delete(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	metrics.AddTaskMutations("delete", 1)
	JSON(w, http.StatusOK, dto.MessageResponse{Success: true, Message: "Task deleted successfully"})
}

//
// ==========================
// Bulk Delete
// ==========================
//

func (h *TaskHandler) BulkDeleteTasks(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkDeleteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := dto.Validate(req, "Please provide task ids to delete"); err != nil {
		writeError(w, r, err)
		return
	}

	n, err := h.Tasks.DeleteBulk(r.Context(), middleware.GetUserID(r.Context()), req.IDs)
	if err != nil {
		writeError(w, r, err)
		return
	}

	metrics.AddTaskMutations("delete", n)
	JSON(w, http.StatusOK, dto.BulkDeleteResponse{
		Success: true,
		Message: fmt.Sprintf("%d task(s) deleted", n),
		Deleted: n,
	})
}
