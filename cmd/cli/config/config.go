package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/crucial707/task-api/internal/client"
)

const (
	defaultAPIURL = "http://localhost:8080"
	tokenFileName = ".taskctl_token"
)

// ErrNotLoggedIn is returned when no token has been saved.
var ErrNotLoggedIn = errors.New("not logged in: run 'taskctl login' first")

// APIURL returns the base URL for the Task Manager API.
// It can be overridden with the TASKCTL_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("TASKCTL_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// Client returns an API client, carrying the saved token when there is one.
func Client() *client.Client {
	c := client.New(APIURL())
	if token, err := LoadToken(); err == nil {
		return c.WithToken(token)
	}
	return c
}

// AuthedClient is Client but fails when nobody is logged in.
func AuthedClient() (*client.Client, error) {
	token, err := LoadToken()
	if err != nil {
		return nil, err
	}
	return client.New(APIURL()).WithToken(token), nil
}

// ==========================
// Token Storage
// ==========================

func SaveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0600)
}

func LoadToken() (string, error) {
	path, err := tokenPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotLoggedIn
	}
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNotLoggedIn
	}
	return token, nil
}

// ClearToken removes the saved token. It reports false when there was none.
func ClearToken() (bool, error) {
	path, err := tokenPath()
	if err != nil {
		return false, err
	}
	err = os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

func tokenPath() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(dir, tokenFileName), nil
}
