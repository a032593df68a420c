package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/crucial707/task-api/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ========================
// REPOSITORY STRUCT
// ========================

// TaskRepo stores tasks. Every read and write other than Create is scoped by owner id,
// so a task belonging to someone else is indistinguishable from a missing one.
type TaskRepo struct {
	DB *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{DB: db}
}

const taskColumns = `id, user_id, title, description, status, priority, due_date, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	t := &models.Task{}
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.DueDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// ========================
// CREATE TASK
// ========================

// Create inserts t under t.UserID with a fresh id and returns the stored row.
func (r *TaskRepo) Create(ctx context.Context, t models.Task) (*models.Task, error) {
	query := `
		INSERT INTO tasks (id, user_id, title, description, status, priority, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + taskColumns

	created, err := scanTask(r.DB.QueryRowContext(ctx, query,
		uuid.NewString(), t.UserID, t.Title, t.Description, t.Status, t.Priority, t.DueDate))
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return created, nil
}

// ========================
// LIST TASKS BY OWNER
// ========================

// ListByOwner returns the owner's tasks newest first. The result is never nil.
func (r *TaskRepo) ListByOwner(ctx context.Context, userID string) ([]models.Task, error) {
	tasks := []models.Task{}
	if !validID(userID) {
		return tasks, nil
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY created_at DESC, id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// ========================
// GET TASK BY ID
// ========================
func (r *TaskRepo) GetByID(ctx context.Context, userID, id string) (*models.Task, error) {
	if !validID(id) || !validID(userID) {
		return nil, ErrNotFound
	}

	t, err := scanTask(r.DB.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`,
		id, userID))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, err
}

// ========================
// UPDATE TASK
// ========================

// Update overwrites the mutable fields of the owner's task t.ID and bumps updated_at.
func (r *TaskRepo) Update(ctx context.Context, t models.Task) (*models.Task, error) {
	if !validID(t.ID) || !validID(t.UserID) {
		return nil, ErrNotFound
	}
	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, priority = $4, due_date = $5, updated_at = now()
		WHERE id = $6 AND user_id = $7
		RETURNING ` + taskColumns

	updated, err := scanTask(r.DB.QueryRowContext(ctx, query,
		t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.ID, t.UserID))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return updated, err
}

// ========================
// DELETE TASK
// ========================
func (r *TaskRepo) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) || !validID(userID) {
		return ErrNotFound
	}

	var deleted string
	err := r.DB.QueryRowContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2 RETURNING id`,
		id, userID).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// ========================
// BULK DELETE
// ========================

// DeleteBulk removes the owner's tasks among ids and returns how many were removed.
// Malformed ids and ids owned by other users are skipped.
func (r *TaskRepo) DeleteBulk(ctx context.Context, userID string, ids []string) (int, error) {
	if !validID(userID) {
		return 0, nil
	}
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return 0, nil
	}

	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM tasks WHERE user_id = $1 AND id = ANY($2)`,
		userID, pq.Array(valid))
	if err != nil {
		return 0, fmt.Errorf("bulk delete tasks: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bulk delete tasks: %w", err)
	}
	return int(n), nil
}
