package models

import (
	"slices"
	"time"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// TaskStatuses lists every accepted status value.
var TaskStatuses = []string{StatusPending, StatusInProgress, StatusDone}

// TaskPriorities lists every accepted priority value.
var TaskPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

// Task is a to-do item owned by exactly one user. UserID never changes after creation.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	DueDate     time.Time `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ValidStatus reports whether s is one of TaskStatuses.
func ValidStatus(s string) bool {
	return slices.Contains(TaskStatuses, s)
}

// ValidPriority reports whether p is one of TaskPriorities.
func ValidPriority(p string) bool {
	return slices.Contains(TaskPriorities, p)
}
