// Package service holds the account and task rules that sit between the HTTP
// handlers and the SQL repositories.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/crucial707/task-api/internal/apperror"
	"github.com/crucial707/task-api/internal/auth"
	"github.com/crucial707/task-api/internal/models"
	"github.com/crucial707/task-api/internal/repo"
)

const (
	MinNameLength     = 2
	MaxNameLength     = 50
	MinPasswordLength = 6
)

const (
	msgMissingRegisterFields = "Please provide name, email and password"
	msgMissingLoginFields    = "Please provide email and password"
	msgEmailExists           = "Email already exists"
	msgInvalidCredentials    = "Invalid email or password"
	msgUserNotFound          = "User not found"
	msgNameRequired          = "Name is required"
	msgNameLength            = "Name must be between 2 and 50 characters"
	msgAvatarRange           = "Avatar ID must be between 1 and 10"
	msgPasswordTooShort      = "New password must be at least 6 characters"
	msgWrongPassword         = "Current password is incorrect"
)

// UserStore is the persistence the user rules need. *repo.UserRepo satisfies it.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string, avatarID int) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id, name string, avatarID int) (*models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type UserService struct {
	users      UserStore
	bcryptCost int
}

func NewUserService(users UserStore, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// ProfileUpdate carries the optional profile fields. Nil means unchanged.
type ProfileUpdate struct {
	Name     *string
	AvatarID *int
}

// NormalizeEmail trims and lower-cases an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create registers a user with a hashed password and the default avatar.
func (s *UserService) Create(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, apperror.Validation(msgMissingRegisterFields)
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperror.Conflict(msgEmailExists)
	case !errors.Is(err, repo.ErrNotFound):
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.Create(ctx, name, email, hash, models.DefaultAvatarID)
	if err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, apperror.Conflict(msgEmailExists)
		}
		return nil, err
	}
	return u, nil
}

// FindByEmail looks a user up case-insensitively.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, userNotFound(err)
	}
	return u, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, userNotFound(err)
	}
	return u, nil
}

// VerifyCredentials returns the user when password matches. Unknown email and
// wrong password produce the same Unauthorized error.
func (s *UserService) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperror.Validation(msgMissingLoginFields)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	ok, err := auth.CheckPassword(u.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("check password: %w", err)
	}
	if !ok {
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}
	return u, nil
}

// UpdateProfile applies the supplied fields. The name is trimmed and must be
// 2 to 50 characters; the avatar must be within the models range.
func (s *UserService) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, userNotFound(err)
	}

	name, avatarID := u.Name, u.AvatarID
	if upd.Name != nil {
		n := strings.TrimSpace(*upd.Name)
		if n == "" {
			return nil, apperror.ValidationFields(msgNameRequired, map[string]string{"name": "required"})
		}
		if l := utf8.RuneCountInString(n); l < MinNameLength || l > MaxNameLength {
			return nil, apperror.ValidationFields(msgNameLength, map[string]string{"name": "length"})
		}
		name = n
	}
	if upd.AvatarID != nil {
		if *upd.AvatarID < models.MinAvatarID || *upd.AvatarID > models.MaxAvatarID {
			return nil, apperror.ValidationFields(msgAvatarRange, map[string]string{"avatarId": "range"})
		}
		avatarID = *upd.AvatarID
	}

	updated, err := s.users.UpdateProfile(ctx, id, name, avatarID)
	if err != nil {
		return nil, userNotFound(err)
	}
	return updated, nil
}

// ChangePassword replaces the password hash after checking the current password.
// The new password length is checked first.
func (s *UserService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	if utf8.RuneCountInString(newPassword) < MinPasswordLength {
		return apperror.ValidationFields(msgPasswordTooShort, map[string]string{"newPassword": "min"})
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return userNotFound(err)
	}

	ok, err := auth.CheckPassword(u.PasswordHash, oldPassword)
	if err != nil {
		return fmt.Errorf("check password: %w", err)
	}
	if !ok {
		return apperror.Unauthorized(msgWrongPassword)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return userNotFound(err)
	}
	return nil
}

func userNotFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return apperror.NotFound(msgUserNotFound)
	}
	return err
}
