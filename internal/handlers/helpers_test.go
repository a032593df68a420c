package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/task-api/internal/auth"
	"github.com/crucial707/task-api/internal/middleware"
	"github.com/crucial707/task-api/internal/repo"
	"github.com/crucial707/task-api/internal/service"
	"github.com/go-chi/chi/v5"
)

const (
	testUserID = "6f1c2a4e-8b1d-4c55-9a0e-3b7f2d9c1a11"
	testTaskID = "0b8e6d52-7f0a-4b8e-9d1c-5a2f3e4d6c70"
)

var (
	userCols = []string{"id", "name", "email", "password_hash", "avatar_id", "created_at", "updated_at"}
	taskCols = []string{"id", "user_id", "title", "description", "status", "priority", "due_date", "created_at", "updated_at"}
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newAccountHandler(db *sql.DB) *AccountHandler {
	return &AccountHandler{
		Users:  service.NewUserService(repo.NewUserRepo(db), auth.MinCost),
		Tokens: auth.NewTokenIssuer([]byte("test-secret"), time.Hour),
	}
}

func newTaskHandler(db *sql.DB) *TaskHandler {
	return &TaskHandler{Tasks: service.NewTaskService(repo.NewTaskRepo(db))}
}

// jsonRequest builds a request as the authenticated test user.
func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	ctx := middleware.WithIdentity(req.Context(), middleware.Identity{UserID: testUserID, Email: "ann@x.com", Name: "Ann"})
	return req.WithContext(ctx)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

type envelope struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message"`
	Fields      map[string]string `json:"fields"`
	AccessToken string            `json:"accessToken"`
	Deleted     int               `json:"deleted"`
	Count       int               `json:"count"`
	User        map[string]any    `json:"user"`
	Task        map[string]any    `json:"task"`
	Tasks       []map[string]any  `json:"tasks"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var out envelope
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func mustHash(t *testing.T, pw string) string {
	t.Helper()
	h, err := auth.HashPassword(pw, auth.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return h
}
