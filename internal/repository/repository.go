package repository

import (
	"context"
	"database/sql"
	"errors"

	"todoapp/internal/models"
)

// ErrDuplicateEmail is returned by Users.Create when the email is already taken.
var ErrDuplicateEmail = errors.New("email already registered")

// Users persists accounts and their active-token sets.
type Users interface {
	Create(ctx context.Context, email, passwordHash string) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	AddToken(ctx context.Context, rec models.TokenRecord) error
	HasToken(ctx context.Context, rec models.TokenRecord) (bool, error)
	RemoveToken(ctx context.Context, userID int64, token string) error
}

// Todos persists tasks. Every lookup and mutation is scoped by creator so a
// record owned by someone else is indistinguishable from a missing one.
type Todos interface {
	Insert(ctx context.Context, t models.Todo) error
	ListByCreator(ctx context.Context, creatorID int64) ([]models.Todo, error)
	GetByCreator(ctx context.Context, creatorID int64, id string) (*models.Todo, error)
	UpdateByCreator(ctx context.Context, t models.Todo) (int64, error)
	DeleteByCreator(ctx context.Context, creatorID int64, id string) (int64, error)
}

type Repository struct {
	Users Users
	Todos Todos
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
		Todos: NewTodoRepository(db),
	}
}
