package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crucial707/task-api/internal/apperror"
	"github.com/crucial707/task-api/internal/models"
	"github.com/crucial707/task-api/internal/repo"
)

// DateOnly is the short dueDate layout accepted alongside RFC 3339.
const DateOnly = "2006-01-02"

const (
	msgTitleAndDueRequired = "Title and due date are required"
	msgTitleEmpty          = "Title cannot be empty"
	msgInvalidDueDate      = "Due date must be a valid date (YYYY-MM-DD or RFC 3339)"
	msgInvalidStatus       = "Status must be one of: pending, in-progress, done"
	msgInvalidPriority     = "Priority must be one of: low, medium, high"
	msgTaskNotFoundView    = "Task not found or you do not have permission to view it"
	msgTaskNotFoundUpdate  = "Task not found or you do not have permission to update it"
	msgTaskNotFoundDelete  = "Task not found or you do not have permission to delete it"
)

// TaskStore is the persistence the task rules need. *repo.TaskRepo satisfies it.
type TaskStore interface {
	Create(ctx context.Context, t models.Task) (*models.Task, error)
	ListByOwner(ctx context.Context, userID string) ([]models.Task, error)
	GetByID(ctx context.Context, userID, id string) (*models.Task, error)
	Update(ctx context.Context, t models.Task) (*models.Task, error)
	Delete(ctx context.Context, userID, id string) error
	DeleteBulk(ctx context.Context, userID string, ids []string) (int, error)
}

type TaskService struct {
	tasks TaskStore
}

func NewTaskService(tasks TaskStore) *TaskService {
	return &TaskService{tasks: tasks}
}

// TaskInput is a new task as submitted. Empty Status and Priority take the defaults.
type TaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     string
}

// TaskPatch carries the fields to change. Nil means unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *string
}

// ParseDueDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates (as UTC midnight).
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(DateOnly, s)
}

func (s *TaskService) Create(ctx context.Context, ownerID string, in TaskInput) (*models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || strings.TrimSpace(in.DueDate) == "" {
		return nil, apperror.Validation(msgTitleAndDueRequired)
	}
	due, err := ParseDueDate(in.DueDate)
	if err != nil {
		return nil, apperror.ValidationFields(msgInvalidDueDate, map[string]string{"dueDate": "format"})
	}

	t := models.Task{
		UserID:      ownerID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      models.StatusPending,
		Priority:    models.PriorityMedium,
		DueDate:     due,
	}
	if in.Status != "" {
		t.Status = in.Status
	}
	if in.Priority != "" {
		t.Priority = in.Priority
	}
	if err := validateEnums(t); err != nil {
		return nil, err
	}

	created, err := s.tasks.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListByOwner returns the owner's tasks newest first, never nil.
func (s *TaskService) ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error) {
	tasks, err := s.tasks.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

func (s *TaskService) GetByID(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	t, err := s.tasks.GetByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, taskNotFound(err, msgTaskNotFoundView)
	}
	return t, nil
}

// Update loads the owner's task, applies the non-nil fields of p and stores the result.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, p TaskPatch) (*models.Task, error) {
	t, err := s.tasks.GetByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, taskNotFound(err, msgTaskNotFoundUpdate)
	}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return nil, apperror.ValidationFields(msgTitleEmpty, map[string]string{"title": "required"})
		}
		t.Title = title
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		due, err := ParseDueDate(*p.DueDate)
		if err != nil {
			return nil, apperror.ValidationFields(msgInvalidDueDate, map[string]string{"dueDate": "format"})
		}
		t.DueDate = due
	}
	if err := validateEnums(*t); err != nil {
		return nil, err
	}

	updated, err := s.tasks.Update(ctx, *t)
	if err != nil {
		return nil, taskNotFound(err, msgTaskNotFoundUpdate)
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	if err := s.tasks.Delete(ctx, ownerID, taskID); err != nil {
		return taskNotFound(err, msgTaskNotFoundDelete)
	}
	return nil
}

// DeleteBulk removes those of ids the owner holds and reports how many went.
func (s *TaskService) DeleteBulk(ctx context.Context, ownerID string, ids []string) (int, error) {
	n, err := s.tasks.DeleteBulk(ctx, ownerID, ids)
	if err != nil {
		return 0, fmt.Errorf("bulk delete: %w", err)
	}
	return n, nil
}

func validateEnums(t models.Task) error {
	if !models.ValidStatus(t.Status) {
		return apperror.ValidationFields(msgInvalidStatus, map[string]string{"status": "oneof"})
	}
	if !models.ValidPriority(t.Priority) {
		return apperror.ValidationFields(msgInvalidPriority, map[string]string{"priority": "oneof"})
	}
	return nil
}

func taskNotFound(err error, msg string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return apperror.NotFound(msg)
	}
	return err
}
