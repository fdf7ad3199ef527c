package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bccfilkom-fe/server-workshop-2025/internal/apperrors"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/models"
)

type WebTodoRepo struct {
	DB DBTX
}

const createWebTodo = `-- name: CreateWebTodo
INSERT INTO web_todos (id, text)
VALUES ($1, $2)
RETURNING id, text, created_at, updated_at
`

func (r *WebTodoRepo) Create(ctx context.Context, text string) (models.WebTodo, error) {
	rows, _ := r.DB.Query(ctx, createWebTodo, uuid.New(), text)
	todo, err := pgx.CollectOneRow(rows, rowToWebTodo)
	if err != nil {
		return todo, fmt.Errorf("db error: %w", err)
	}
	return todo, nil
}

const listWebTodos = `-- name: ListWebTodos
SELECT id, text, created_at, updated_at
FROM web_todos
ORDER BY created_at
`

func (r *WebTodoRepo) List(ctx context.Context) ([]models.WebTodo, error) {
	rows, _ := r.DB.Query(ctx, listWebTodos)
	todos, err := pgx.CollectRows(rows, rowToWebTodo)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return todos, nil
}

const getWebTodo = `-- name: GetWebTodo
SELECT id, text, created_at, updated_at
FROM web_todos
WHERE id = $1
`

func (r *WebTodoRepo) Get(ctx context.Context, id uuid.UUID) (models.WebTodo, error) {
	rows, _ := r.DB.Query(ctx, getWebTodo, id)
	todo, err := pgx.CollectOneRow(rows, rowToWebTodo)

	switch {
	case err == nil:
		return todo, nil
	case errors.Is(err, pgx.ErrNoRows):
		return todo, fmt.Errorf("repo error: %w", apperrors.ErrTodoNotFound)
	default:
		return todo, fmt.Errorf("db error: %w", err)
	}
}

const updateWebTodo = `-- name: UpdateWebTodo
UPDATE web_todos
SET text = $2, updated_at = now()
WHERE id = $1
RETURNING id, text, created_at, updated_at
`

func (r *WebTodoRepo) Update(ctx context.Context, id uuid.UUID, text string) (models.WebTodo, error) {
	rows, _ := r.DB.Query(ctx, updateWebTodo, id, text)
	todo, err := pgx.CollectOneRow(rows, rowToWebTodo)

	switch {
	case err == nil:
		return todo, nil
	case errors.Is(err, pgx.ErrNoRows):
		return todo, fmt.Errorf("repo error: %w", apperrors.ErrTodoNotFound)
	default:
		return todo, fmt.Errorf("db error: %w", err)
	}
}

const deleteWebTodo = `-- name: DeleteWebTodo
DELETE FROM web_todos
WHERE id = $1
`

func (r *WebTodoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.DB.Exec(ctx, deleteWebTodo, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo error: %w", apperrors.ErrTodoNotFound)
	}

	return nil
}

func rowToWebTodo(row pgx.CollectableRow) (models.WebTodo, error) {
	var t models.WebTodo
	err := row.Scan(&t.ID, &t.Text, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}
