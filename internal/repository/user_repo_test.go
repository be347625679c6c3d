package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"todoapp/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockUserRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewUserRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		hash       string
		mockExpect func(sqlmock.Sqlmock)
		wantID     int64
		wantErr    error
		anyErr     bool
	}{
		{
			name:  "success",
			email: "alice@example.com",
			hash:  "h123",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("alice@example.com", "h123").
					WillReturnResult(sqlmock.NewResult(42, 1))
			},
			wantID: 42,
		},
		{
			name:  "duplicate email",
			email: "taken@example.com",
			hash:  "h456",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("taken@example.com", "h456").
					WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: users.email"))
			},
			wantErr: ErrDuplicateEmail,
		},
		{
			name:  "exec error",
			email: "bob@example.com",
			hash:  "h789",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("bob@example.com", "h789").
					WillReturnError(errors.New("db exec failed"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			id, err := repo.Create(context.Background(), tt.email, tt.hash)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if tt.anyErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.wantID {
				t.Fatalf("unexpected id: want %d, got %d", tt.wantID, id)
			}
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		mockExpect func(sqlmock.Sqlmock)
		wantUser   *models.User
		wantErr    bool
	}{
		{
			name:  "found",
			email: "alice@example.com",
			mockExpect: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "email", "password_hash"}).
					AddRow(7, "alice@example.com", "h123")
				m.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
					WithArgs("alice@example.com").
					WillReturnRows(rows)
			},
			wantUser: &models.User{ID: 7, Email: "alice@example.com", PasswordHash: "h123"},
		},
		{
			name:  "not found (ErrNoRows)",
			email: "missing@example.com",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
					WithArgs("missing@example.com").
					WillReturnError(sql.ErrNoRows)
			},
			wantUser: nil,
		},
		{
			name:  "query error",
			email: "bob@example.com",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
					WithArgs("bob@example.com").
					WillReturnError(errors.New("db query failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			u, err := repo.GetByEmail(context.Background(), tt.email)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantUser == nil {
				if u != nil {
					t.Fatalf("expected nil user, got %+v", u)
				}
				return
			}
			if u == nil {
				t.Fatalf("expected user, got nil")
			}
			if u.ID != tt.wantUser.ID || u.Email != tt.wantUser.Email || u.PasswordHash != tt.wantUser.PasswordHash {
				t.Fatalf("unexpected user: want %+v, got %+v", tt.wantUser, u)
			}
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	repo, mock, cleanup := newMockUserRepo(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash"}).
		AddRow(9, "carol@example.com", "h000")
	mock.ExpectQuery(regexp.QuoteMeta(selectUserByIDSQL)).
		WithArgs(int64(9)).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(selectUserByIDSQL)).
		WithArgs(int64(10)).
		WillReturnError(sql.ErrNoRows)

	u, err := repo.GetByID(context.Background(), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u == nil || u.Email != "carol@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}

	u, err = repo.GetByID(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil user for missing id, got %+v", u)
	}
}

func TestUserRepository_Tokens(t *testing.T) {
	rec := models.TokenRecord{UserID: 3, Access: models.AccessAuth, Token: "tok-abc"}

	t.Run("add", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(insertTokenSQL)).
			WithArgs(rec.UserID, rec.Access, rec.Token).
			WillReturnResult(sqlmock.NewResult(1, 1))

		if err := repo.AddToken(context.Background(), rec); err != nil {
			t.Fatalf("AddToken returned error: %v", err)
		}
	})

	t.Run("has token present", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(countTokenSQL)).
			WithArgs(rec.UserID, rec.Access, rec.Token).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		ok, err := repo.HasToken(context.Background(), rec)
		if err != nil {
			t.Fatalf("HasToken returned error: %v", err)
		}
		if !ok {
			t.Fatalf("expected token to be present")
		}
	})

	t.Run("has token absent", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(countTokenSQL)).
			WithArgs(rec.UserID, rec.Access, rec.Token).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		ok, err := repo.HasToken(context.Background(), rec)
		if err != nil {
			t.Fatalf("HasToken returned error: %v", err)
		}
		if ok {
			t.Fatalf("expected token to be absent")
		}
	})

	t.Run("remove", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(deleteTokenSQL)).
			WithArgs(rec.UserID, rec.Token).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.RemoveToken(context.Background(), rec.UserID, rec.Token); err != nil {
			t.Fatalf("RemoveToken returned error: %v", err)
		}
	})

	t.Run("remove absent is not an error", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(deleteTokenSQL)).
			WithArgs(rec.UserID, "gone").
			WillReturnResult(sqlmock.NewResult(0, 0))

		if err := repo.RemoveToken(context.Background(), rec.UserID, "gone"); err != nil {
			t.Fatalf("RemoveToken returned error: %v", err)
		}
	})

	t.Run("remove persistence failure", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(deleteTokenSQL)).
			WithArgs(rec.UserID, rec.Token).
			WillReturnError(errors.New("db down"))

		if err := repo.RemoveToken(context.Background(), rec.UserID, rec.Token); err == nil {
			t.Fatalf("expected error, got nil")
		}
	})
}
