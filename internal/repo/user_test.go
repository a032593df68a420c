package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

const testUserID = "6f1c2a4e-8b1d-4c55-9a0e-3b7f2d9c1a11"

var userCols = []string{"id", "name", "email", "password_hash", "avatar_id", "created_at", "updated_at"}

func userRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(userCols).AddRow(testUserID, "Alice", "alice@example.com", "$2a$hash", 1, now, now)
}

func TestUserRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users \(id, name, email, password_hash, avatar_id\)`).
		WithArgs(sqlmock.AnyArg(), "Alice", "alice@example.com", "$2a$hash", 1).
		WillReturnRows(userRow(now))

	repo := NewUserRepo(db)
	user, err := repo.Create(context.Background(), "Alice", "Alice@Example.com", "$2a$hash", 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID != testUserID || user.Email != "alice@example.com" || user.AvatarID != 1 {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	repo := NewUserRepo(db)
	_, err = repo.Create(context.Background(), "Alice", "alice@example.com", "h", 1)
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserRepo_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email, password_hash, avatar_id, created_at, updated_at FROM users WHERE id = \$1`).
		WithArgs(testUserID).
		WillReturnRows(userRow(time.Now()))

	repo := NewUserRepo(db)
	user, err := repo.GetByID(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.Name != "Alice" || user.PasswordHash != "$2a$hash" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows(userCols))

	repo := NewUserRepo(db)
	if _, err := repo.GetByID(context.Background(), testUserID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByID_MalformedID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewUserRepo(db)
	if _, err := repo.GetByID(context.Background(), "42"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	// no query should reach the database
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM users WHERE lower\(email\) = lower\(\$1\)`).
		WithArgs("ALICE@example.com").
		WillReturnRows(userRow(time.Now()))

	repo := NewUserRepo(db)
	user, err := repo.GetByEmail(context.Background(), "  ALICE@example.com ")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if user.ID != testUserID {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByEmail_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery(`FROM users WHERE lower\(email\)`).WillReturnError(boom)

	repo := NewUserRepo(db)
	_, err = repo.GetByEmail(context.Background(), "a@b.co")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("db failure must not look like not found")
	}
}

func TestUserRepo_UpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`UPDATE users\s+SET name = \$1, avatar_id = \$2, updated_at = now\(\)\s+WHERE id = \$3`).
		WithArgs("Alicia", 4, testUserID).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(testUserID, "Alicia", "alice@example.com", "h", 4, now, now))

	repo := NewUserRepo(db)
	user, err := repo.UpdateProfile(context.Background(), testUserID, "Alicia", 4)
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if user.Name != "Alicia" || user.AvatarID != 4 {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_UpdatePassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET password_hash = \$1, updated_at = now\(\) WHERE id = \$2`).
		WithArgs("newhash", testUserID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewUserRepo(db)
	if err := repo.UpdatePassword(context.Background(), testUserID, "newhash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_UpdatePassword_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET password_hash`).
		WithArgs("newhash", testUserID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewUserRepo(db)
	if err := repo.UpdatePassword(context.Background(), testUserID, "newhash"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
