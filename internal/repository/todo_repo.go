package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"todoapp/internal/models"
)

type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// Ensure implementation of Todos interface at compile time.
var _ Todos = (*TodoRepository)(nil)

const (
	insertTodoSQL          = `INSERT INTO todos (id, text, completed, completed_at, creator_id) VALUES (?, ?, ?, ?, ?)`
	selectTodosByCreator   = `SELECT id, text, completed, completed_at, creator_id FROM todos WHERE creator_id = ?`
	selectTodoByCreatorSQL = `SELECT id, text, completed, completed_at, creator_id FROM todos WHERE id = ? AND creator_id = ?`
	updateTodoByCreatorSQL = `UPDATE todos SET text = ?, completed = ?, completed_at = ? WHERE id = ? AND creator_id = ?`
	deleteTodoByCreatorSQL = `DELETE FROM todos WHERE id = ? AND creator_id = ?`
)

// Insert stores a new todo. The caller supplies the ID.
func (r *TodoRepository) Insert(ctx context.Context, t models.Todo) error {
	_, err := r.db.ExecContext(ctx, insertTodoSQL, t.ID, t.Text, t.Completed, t.CompletedAt, t.CreatorID)
	if err != nil {
		return fmt.Errorf("insert todo %q: %w", t.ID, err)
	}
	return nil
}

// ListByCreator returns every todo owned by creatorID, in no particular order.
func (r *TodoRepository) ListByCreator(ctx context.Context, creatorID int64) ([]models.Todo, error) {
	rows, err := r.db.QueryContext(ctx, selectTodosByCreator, creatorID)
	if err != nil {
		return nil, fmt.Errorf("select todos for user id=%d: %w", creatorID, err)
	}
	defer rows.Close()

	out := make([]models.Todo, 0, 16)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos for user id=%d: %w", creatorID, err)
	}
	return out, nil
}

// GetByCreator fetches one todo scoped by owner. Returns (nil, nil) when no
// row matches, whether the todo is missing or owned by someone else.
func (r *TodoRepository) GetByCreator(ctx context.Context, creatorID int64, id string) (*models.Todo, error) {
	row := r.db.QueryRowContext(ctx, selectTodoByCreatorSQL, id, creatorID)
	t, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select todo %q: %w", id, err)
	}
	return &t, nil
}

// UpdateByCreator writes text/completed/completed_at for an owned todo and
// returns the number of rows that matched.
func (r *TodoRepository) UpdateByCreator(ctx context.Context, t models.Todo) (int64, error) {
	res, err := r.db.ExecContext(ctx, updateTodoByCreatorSQL, t.Text, t.Completed, t.CompletedAt, t.ID, t.CreatorID)
	if err != nil {
		return 0, fmt.Errorf("update todo %q: %w", t.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for todo %q: %w", t.ID, err)
	}
	return n, nil
}

// DeleteByCreator removes an owned todo and returns the number of rows deleted.
func (r *TodoRepository) DeleteByCreator(ctx context.Context, creatorID int64, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteTodoByCreatorSQL, id, creatorID)
	if err != nil {
		return 0, fmt.Errorf("delete todo %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected deleting todo %q: %w", id, err)
	}
	return n, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (models.Todo, error) {
	var (
		t           models.Todo
		completedAt sql.NullInt64
	)
	if err := s.Scan(&t.ID, &t.Text, &t.Completed, &completedAt, &t.CreatorID); err != nil {
		return models.Todo{}, err
	}
	if completedAt.Valid {
		v := completedAt.Int64
		t.CompletedAt = &v
	}
	return t, nil
}
