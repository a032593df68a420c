package dto

import (
	"time"

	"github.com/crucial707/task-api/internal/models"
)

// ==========================
// Requests
// ==========================

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest requires name; avatarId is optional.
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	AvatarID *int    `json:"avatarId" validate:"omitempty,min=1,max=10"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// ==========================
// Responses
// ==========================

// UserResponse is the public view of a user. It never carries the password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarID  int       `json:"avatarId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		AvatarID:  u.AvatarID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// AuthResponse answers register and login.
type AuthResponse struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message,omitempty"`
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
}

type UserEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    UserResponse `json:"user"`
}
