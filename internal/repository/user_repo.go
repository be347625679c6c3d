package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"todoapp/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL        = `INSERT INTO users (email, password_hash) VALUES (?, ?)`
	selectUserByEmailSQL = `SELECT id, email, password_hash FROM users WHERE email = ?`
	selectUserByIDSQL    = `SELECT id, email, password_hash FROM users WHERE id = ?`
	insertTokenSQL       = `INSERT INTO user_tokens (user_id, access, token) VALUES (?, ?, ?)`
	countTokenSQL        = `SELECT COUNT(1) FROM user_tokens WHERE user_id = ? AND access = ? AND token = ?`
	deleteTokenSQL       = `DELETE FROM user_tokens WHERE user_id = ? AND token = ?`
)

// Create inserts a new user and returns its ID. A unique-constraint violation
// on the email column maps to ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, email, passwordHash)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert user %q: %w", email, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", email, err)
	}
	return lastID, nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByEmailSQL, email).Scan(&u.ID, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", email, err)
	}
	return &u, nil
}

// GetByID fetches a user by ID. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByIDSQL, id).Scan(&u.ID, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user id=%d: %w", id, err)
	}
	return &u, nil
}

// AddToken appends a token record to the user's active-token set.
func (r *UserRepository) AddToken(ctx context.Context, rec models.TokenRecord) error {
	if _, err := r.db.ExecContext(ctx, insertTokenSQL, rec.UserID, rec.Access, rec.Token); err != nil {
		return fmt.Errorf("insert token for user id=%d: %w", rec.UserID, err)
	}
	return nil
}

// HasToken reports whether the exact token record is currently active.
func (r *UserRepository) HasToken(ctx context.Context, rec models.TokenRecord) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, countTokenSQL, rec.UserID, rec.Access, rec.Token).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count token for user id=%d: %w", rec.UserID, err)
	}
	return n > 0, nil
}

// RemoveToken deletes the matching token record. Deleting a token that is
// already gone is not an error.
func (r *UserRepository) RemoveToken(ctx context.Context, userID int64, token string) error {
	if _, err := r.db.ExecContext(ctx, deleteTokenSQL, userID, token); err != nil {
		return fmt.Errorf("delete token for user id=%d: %w", userID, err)
	}
	return nil
}
