package handlers

import (
	"errors"
	"net/http"

	"github.com/crucial707/task-api/internal/apperror"
	"github.com/crucial707/task-api/internal/auth"
	"github.com/crucial707/task-api/internal/dto"
	"github.com/crucial707/task-api/internal/metrics"
	"github.com/crucial707/task-api/internal/middleware"
	"github.com/crucial707/task-api/internal/service"
)

// ==========================
// Account Handler
// ==========================
type AccountHandler struct {
	Users  *service.UserService
	Tokens *auth.TokenIssuer
}

// ==========================
// Register
// ==========================
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := dto.Validate(req, "Please provide name, email and password"); err != nil {
		metrics.IncAuthAttempt("register", "invalid")
		writeError(w, r, err)
		return
	}

	user, err := h.Users.Create(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		metrics.IncAuthAttempt("register", authResult(err))
		writeError(w, r, err)
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		metrics.IncAuthAttempt("register", "error")
		writeError(w, r, err)
		return
	}

	metrics.IncAuthAttempt("register", "success")
	JSON(w, http.StatusCreated, dto.AuthResponse{
		Success:     true,
		Message:     "User registered successfully",
		User:        dto.NewUserResponse(user),
		AccessToken: token,
	})
}

// ==========================
// Login
// ==========================
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := dto.Validate(req, "Please provide email and password"); err != nil {
		metrics.IncAuthAttempt("login", "invalid")
		writeError(w, r, err)
		return
	}

	user, err := h.Users.VerifyCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		metrics.IncAuthAttempt("login", authResult(err))
		writeError(w, r, err)
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		metrics.IncAuthAttempt("login", "error")
		writeError(w, r, err)
		return
	}

	metrics.IncAuthAttempt("login", "success")
	JSON(w, http.StatusOK, dto.AuthResponse{
		Success:     true,
		Message:     "Login successful",
		User:        dto.NewUserResponse(user),
		AccessToken: token,
	})
}

// ==========================
// Get Profile
// ==========================
func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.GetByID(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, dto.UserEnvelope{Success: true, User: dto.NewUserResponse(user)})
}

// ==========================
// Update Profile
// ==========================
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == nil {
		JSONValidationError(w, "Name is required", map[string]string{"name": "required"}, http.StatusBadRequest)
		return
	}
	if err := dto.Validate(req, "Name is required"); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.Users.UpdateProfile(r.Context(), middleware.GetUserID(r.Context()), service.ProfileUpdate{
		Name:     req.Name,
		AvatarID: req.AvatarID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, dto.UserEnvelope{
		Success: true,
		Message: "Profile updated successfully",
		User:    dto.NewUserResponse(user),
	})
}

// ==========================
// Change Password
// ==========================
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := dto.Validate(req, "Please provide old and new password"); err != nil {
		writeError(w, r, err)
		return
	}

	err := h.Users.ChangePassword(r.Context(), middleware.GetUserID(r.Context()), req.OldPassword, req.NewPassword)
	if err != nil {
		// a wrong current password is a bad request here, not a session problem
		var ae *apperror.Error
		if errors.As(err, &ae) && ae.Kind == apperror.KindUnauthorized {
			JSONError(w, ae.Message, http.StatusBadRequest)
			return
		}
		writeError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, dto.MessageResponse{Success: true, Message: "Password changed successfully"})
}

func authResult(err error) string {
	switch apperror.KindOf(err) {
	case apperror.KindValidation, apperror.KindUnauthorized:
		return "invalid"
	case apperror.KindConflict:
		return "conflict"
	default:
		return "error"
	}
}
