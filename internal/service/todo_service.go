package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"todoapp/internal/models"
	"todoapp/internal/repository"

	"github.com/google/uuid"
)

// Domain errors for todo flows.
var (
	// ErrEmptyText rejects todos whose text is empty after trimming.
	ErrEmptyText = errors.New("todo text must not be empty")
	// ErrTodoNotFound covers missing ids, malformed ids, and records owned
	// by another user. The three cases are deliberately indistinguishable.
	ErrTodoNotFound = errors.New("todo not found")
)

// TodoPatch carries the mutable fields of an update. Nil means "not sent".
type TodoPatch struct {
	Text      *string
	Completed *bool
}

// TodoService handles task logic scoped to an owning user.
type TodoService struct {
	todos repository.Todos
	now   func() time.Time
}

func NewTodoService(todos repository.Todos) *TodoService {
	return &TodoService{todos: todos, now: time.Now}
}

// Create stores a new incomplete todo owned by creatorID.
func (s *TodoService) Create(ctx context.Context, creatorID int64, text string) (*models.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	t := models.Todo{
		ID:        uuid.NewString(),
		Text:      text,
		Completed: false,
		CreatorID: creatorID,
	}
	if err := s.todos.Insert(ctx, t); err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns all todos owned by creatorID.
func (s *TodoService) List(ctx context.Context, creatorID int64) ([]models.Todo, error) {
	return s.todos.ListByCreator(ctx, creatorID)
}

// Get returns the owned todo with the given id.
func (s *TodoService) Get(ctx context.Context, creatorID int64, id string) (*models.Todo, error) {
	if !validTodoID(id) {
		return nil, ErrTodoNotFound
	}
	t, err := s.todos.GetByCreator(ctx, creatorID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTodoNotFound
	}
	return t, nil
}

// Update applies the patch to an owned todo and returns the updated record.
// Completion state is recomputed from the patch alone: completed:true stamps
// the completion time, anything else clears both fields, text-only patches
// included.
func (s *TodoService) Update(ctx context.Context, creatorID int64, id string, patch TodoPatch) (*models.Todo, error) {
	t, err := s.Get(ctx, creatorID, id)
	if err != nil {
		return nil, err
	}

	if patch.Text != nil {
		t.Text = *patch.Text
	}
	if patch.Completed != nil && *patch.Completed {
		t.Completed = true
		at := s.now().UnixMilli()
		t.CompletedAt = &at
	} else {
		t.Completed = false
		t.CompletedAt = nil
	}

	n, err := s.todos.UpdateByCreator(ctx, *t)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrTodoNotFound
	}
	return t, nil
}

// Delete removes an owned todo and returns the removed record.
func (s *TodoService) Delete(ctx context.Context, creatorID int64, id string) (*models.Todo, error) {
	t, err := s.Get(ctx, creatorID, id)
	if err != nil {
		return nil, err
	}
	n, err := s.todos.DeleteByCreator(ctx, creatorID, id)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrTodoNotFound
	}
	return t, nil
}

// validTodoID checks the id against the persistence layer's identifier
// format before any lookup.
func validTodoID(id string) bool {
	return uuid.Validate(id) == nil
}
