package service

import (
	"context"

	"todoapp/internal/models"
	"todoapp/internal/repository"
)

// Authorization owns user identity: registration, credential checks, and the
// issue/validate/revoke lifecycle of auth tokens.
type Authorization interface {
	Register(ctx context.Context, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(ctx context.Context, token string) (*models.User, error)
	RevokeToken(ctx context.Context, userID int64, token string) error
}

// Todos owns tasks scoped to their creator. Every operation takes the
// authenticated caller's user id; records owned by anyone else behave as if
// they do not exist.
type Todos interface {
	Create(ctx context.Context, creatorID int64, text string) (*models.Todo, error)
	List(ctx context.Context, creatorID int64) ([]models.Todo, error)
	Get(ctx context.Context, creatorID int64, id string) (*models.Todo, error)
	Update(ctx context.Context, creatorID int64, id string, patch TodoPatch) (*models.Todo, error)
	Delete(ctx context.Context, creatorID int64, id string) (*models.Todo, error)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Todos
}

// NewService wires the repository layer into concrete services. signingKey is
// the process-wide token signing secret from configuration.
func NewService(repos *repository.Repository, signingKey string) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, signingKey),
		Todos:         NewTodoService(repos.Todos),
	}
}
