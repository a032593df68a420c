package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/crucial707/task-api/internal/models"
	"github.com/crucial707/task-api/internal/repo"
	"github.com/google/uuid"
)

// memUsers is an in-memory UserStore with the same email uniqueness rule as the table.
type memUsers struct {
	mu   sync.Mutex
	byID map[string]*models.User
	err  error
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*models.User{}}
}

func (m *memUsers) Create(_ context.Context, name, email, hash string, avatarID int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if strings.EqualFold(u.Email, email) {
			return nil, repo.ErrDuplicateEmail
		}
	}
	now := time.Now()
	u := &models.User{ID: uuid.NewString(), Name: name, Email: strings.ToLower(email),
		PasswordHash: hash, AvatarID: avatarID, CreatedAt: now, UpdatedAt: now}
	m.byID[u.ID] = u
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) UpdateProfile(_ context.Context, id, name string, avatarID int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	u.Name, u.AvatarID, u.UpdatedAt = name, avatarID, time.Now()
	cp := *u
	return &cp, nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.PasswordHash, u.UpdatedAt = hash, time.Now()
	return nil
}

func (m *memUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

// memTasks is an in-memory TaskStore scoped by owner like the SQL repo.
type memTasks struct {
	mu    sync.Mutex
	tasks []models.Task
	clock time.Time
	err   error
}

func newMemTasks() *memTasks {
	return &memTasks{clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memTasks) Create(_ context.Context, t models.Task) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.clock = m.clock.Add(time.Second)
	t.ID = uuid.NewString()
	t.CreatedAt, t.UpdatedAt = m.clock, m.clock
	m.tasks = append(m.tasks, t)
	return &t, nil
}

func (m *memTasks) ListByOwner(_ context.Context, userID string) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Task
	for _, t := range m.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	slices.Reverse(out)
	return out, nil
}

func (m *memTasks) GetByID(_ context.Context, userID, id string) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, t := range m.tasks {
		if t.ID == id && t.UserID == userID {
			return &t, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memTasks) Update(_ context.Context, t models.Task) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == t.ID && m.tasks[i].UserID == t.UserID {
			m.clock = m.clock.Add(time.Second)
			t.UpdatedAt = m.clock
			m.tasks[i] = t
			return &t, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memTasks) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.tasks {
		if t.ID == id && t.UserID == userID {
			m.tasks = slices.Delete(m.tasks, i, i+1)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (m *memTasks) DeleteBulk(_ context.Context, userID string, ids []string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	before := len(m.tasks)
	m.tasks = slices.DeleteFunc(m.tasks, func(t models.Task) bool {
		return t.UserID == userID && slices.Contains(ids, t.ID)
	})
	return before - len(m.tasks), nil
}

var errStoreDown = errors.New("store down")
