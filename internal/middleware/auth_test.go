package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crucial707/task-api/internal/apperror"
	"github.com/crucial707/task-api/internal/auth"
	"github.com/crucial707/task-api/internal/models"
)

type stubUsers struct {
	users map[string]*models.User
	err   error
}

func (s stubUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	return u, nil
}

func newAuthChain(t *testing.T, users stubUsers) (http.Handler, *auth.TokenIssuer, *Identity) {
	t.Helper()
	issuer := auth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	var seen Identity
	h := Authenticate(issuer, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetIdentity(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	return h, issuer, &seen
}

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success {
		t.Errorf("failure body has success=true")
	}
	return body.Message
}

func TestAuthenticate_Valid(t *testing.T) {
	users := stubUsers{users: map[string]*models.User{
		"u1": {ID: "u1", Email: "ann@x.com", Name: "Ann"},
	}}
	h, issuer, seen := newAuthChain(t, users)

	tok, err := issuer.Issue("u1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/v1/api/account", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rr.Code)
	}
	want := Identity{UserID: "u1", Email: "ann@x.com", Name: "Ann"}
	if *seen != want {
		t.Errorf("identity = %+v, want %+v", *seen, want)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	users := stubUsers{users: map[string]*models.User{"u1": {ID: "u1"}}}
	h, issuer, _ := newAuthChain(t, users)

	good, _ := issuer.Issue("u1")
	ghost, _ := issuer.Issue("deleted-user")
	expired, _ := auth.NewTokenIssuer([]byte("test-secret"), -time.Minute).Issue("u1")
	foreign, _ := auth.NewTokenIssuer([]byte("other-secret"), time.Hour).Issue("u1")

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", MsgNoToken},
		{"wrong scheme", "Basic " + good, MsgNoToken},
		{"bare token", good, MsgNoToken},
		{"empty bearer", "Bearer ", MsgNoToken},
		{"lowercase scheme", "bearer " + good, MsgNoToken},
		{"expired", "Bearer " + expired, MsgTokenExpired},
		{"wrong secret", "Bearer " + foreign, MsgInvalidToken},
		{"garbage", "Bearer abc.def.ghi", MsgInvalidToken},
		{"user gone", "Bearer " + ghost, MsgUserGone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/api/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rr.Code)
			}
			if got := decodeMessage(t, rr); got != tt.want {
				t.Errorf("message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuthenticate_LookupFailureIs500(t *testing.T) {
	h, issuer, _ := newAuthChain(t, stubUsers{err: errors.New("db down")})

	tok, _ := issuer.Issue("u1")
	req := httptest.NewRequest(http.MethodGet, "/v1/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
}

func TestGetUserID_Unauthenticated(t *testing.T) {
	if got := GetUserID(context.Background()); got != "" {
		t.Errorf("GetUserID = %q, want empty", got)
	}
	ctx := WithIdentity(context.Background(), Identity{UserID: "u9"})
	if got := GetUserID(ctx); got != "u9" {
		t.Errorf("GetUserID = %q, want u9", got)
	}
}
