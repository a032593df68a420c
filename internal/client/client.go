// Package client is a typed HTTP client for the task API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/crucial707/task-api/internal/dto"
	"github.com/crucial707/task-api/internal/models"
)

const apiPrefix = "/v1/api"

// APIError is a non-2xx answer. Message is the server's "message" field when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// WithToken returns a copy of c that sends token as a bearer credential.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// ==========================
// Account
// ==========================

func (c *Client) Register(ctx context.Context, name, email, password string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	err := c.do(ctx, http.MethodPost, "/register", dto.RegisterRequest{Name: name, Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	err := c.do(ctx, http.MethodPost, "/login", dto.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Account(ctx context.Context) (*dto.UserResponse, error) {
	var out dto.UserEnvelope
	if err := c.do(ctx, http.MethodGet, "/account", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) UpdateAccount(ctx context.Context, name string, avatarID *int) (*dto.UserResponse, error) {
	var out dto.UserEnvelope
	if err := c.do(ctx, http.MethodPut, "/account", dto.UpdateProfileRequest{Name: &name, AvatarID: avatarID}, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	req := dto.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	return c.do(ctx, http.MethodPut, "/account/password", req, nil)
}

// ==========================
// Tasks
// ==========================

func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var out dto.TaskListResponse
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*models.Task, error) {
	var out dto.TaskEnvelope
	if err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return out.Task, nil
}

func (c *Client) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*models.Task, error) {
	var out dto.TaskEnvelope
	if err := c.do(ctx, http.MethodPost, "/tasks", req, &out); err != nil {
		return nil, err
	}
	return out.Task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, req dto.UpdateTaskRequest) (*models.Task, error) {
	var out dto.TaskEnvelope
	if err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return out.Task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

// BulkDeleteTasks returns how many of ids were deleted.
func (c *Client) BulkDeleteTasks(ctx context.Context, ids []string) (int, error) {
	var out dto.BulkDeleteResponse
	if err := c.do(ctx, http.MethodDelete, "/tasks/bulk", dto.BulkDeleteRequest{IDs: ids}, &out); err != nil {
		return 0, err
	}
	return out.Deleted, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var e dto.ErrorResponse
		if json.Unmarshal(data, &e) != nil || e.Message == "" {
			e.Message = strings.TrimSpace(string(data))
		}
		return &APIError{StatusCode: resp.StatusCode, Message: e.Message}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
