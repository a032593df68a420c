package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/crucial707/task-api/internal/apperror"
	"github.com/crucial707/task-api/internal/auth"
	"github.com/crucial707/task-api/internal/metrics"
	"github.com/crucial707/task-api/internal/models"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	MsgNoToken      = "Access denied. No token provided."
	MsgTokenExpired = "Token expired. Please login again."
	MsgInvalidToken = "Invalid token."
	MsgUserGone     = "Invalid token. User not found."
)

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

type ctxKey int

const identityKey ctxKey = iota

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity returns the caller set by Authenticate.
func GetIdentity(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// GetUserID returns the authenticated user id, or "" outside an authenticated route.
func GetUserID(ctx context.Context) string {
	id, _ := GetIdentity(ctx)
	return id.UserID
}

// TokenVerifier turns a bearer token into a user id. *auth.TokenIssuer satisfies it.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserLookup resolves a token subject. *service.UserService satisfies it.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Authenticate requires "Authorization: Bearer <token>", verifies the token and
// loads its user. Any failure ends the request with 401 (or 500 when the user
// lookup itself fails).
func Authenticate(tokens TokenVerifier, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				metrics.IncTokenRejection("missing")
				writeError(w, http.StatusUnauthorized, MsgNoToken)
				return
			}

			userID, err := tokens.Verify(raw)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					metrics.IncTokenRejection("expired")
					writeError(w, http.StatusUnauthorized, MsgTokenExpired)
					return
				}
				metrics.IncTokenRejection("invalid")
				writeError(w, http.StatusUnauthorized, MsgInvalidToken)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if apperror.Is(err, apperror.KindNotFound) {
					metrics.IncTokenRejection("user_not_found")
					writeError(w, http.StatusUnauthorized, MsgUserGone)
					return
				}
				slog.Error("auth: user lookup failed",
					"request_id", chimw.GetReqID(r.Context()),
					"user_id", userID,
					"error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			setLogUser(r.Context(), user.ID)
			ctx := WithIdentity(r.Context(), Identity{UserID: user.ID, Email: user.Email, Name: user.Name})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from a header of the exact form "Bearer <token>".
func bearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
