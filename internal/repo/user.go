package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/crucial707/task-api/internal/models"
	"github.com/google/uuid"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userColumns = `id, name, email, password_hash, avatar_id, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.AvatarID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// ==========================
// Create User
// ==========================

// Create inserts a user with a fresh id. Email is stored lower-cased.
func (r *UserRepo) Create(ctx context.Context, name, email, passwordHash string, avatarID int) (*models.User, error) {
	query := `
		INSERT INTO users (id, name, email, password_hash, avatar_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	u, err := scanUser(r.DB.QueryRowContext(ctx, query,
		uuid.NewString(), name, strings.ToLower(email), passwordHash, avatarID))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.DB.QueryRowContext(ctx, query, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, err
}

// ==========================
// Get By Email
// ==========================

// GetByEmail matches case-insensitively.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

	u, err := scanUser(r.DB.QueryRowContext(ctx, query, strings.TrimSpace(email)))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, err
}

// ==========================
// Update Profile
// ==========================

// UpdateProfile writes name and avatar and bumps updated_at.
func (r *UserRepo) UpdateProfile(ctx context.Context, id, name string, avatarID int) (*models.User, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	query := `
		UPDATE users
		SET name = $1, avatar_id = $2, updated_at = now()
		WHERE id = $3
		RETURNING ` + userColumns

	u, err := scanUser(r.DB.QueryRowContext(ctx, query, name, avatarID, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, err
}

// ==========================
// Update Password
// ==========================
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if !validID(id) {
		return ErrNotFound
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`,
		passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
