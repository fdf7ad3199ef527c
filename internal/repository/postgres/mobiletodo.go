package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bccfilkom-fe/server-workshop-2025/internal/apperrors"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/models"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/repository"
)

type MobileTodoRepo struct {
	DB DBTX
}

const createMobileTodo = `-- name: CreateMobileTodo
INSERT INTO mobile_todos (id, user_id, title, description)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, title, description, is_completed, created_at, updated_at
`

func (r *MobileTodoRepo) Create(ctx context.Context, userID uuid.UUID, title string, desc *string) (models.MobileTodo, error) {
	rows, _ := r.DB.Query(ctx, createMobileTodo, uuid.New(), userID, title, desc)
	todo, err := pgx.CollectOneRow(rows, rowToMobileTodo)
	if err != nil {
		return todo, fmt.Errorf("db error: %w", err)
	}
	return todo, nil
}

const listMobileTodos = `-- name: ListMobileTodos
SELECT id, user_id, title, description, is_completed, created_at, updated_at
FROM mobile_todos
WHERE user_id = $1
ORDER BY created_at
`

func (r *MobileTodoRepo) List(ctx context.Context, userID uuid.UUID) ([]models.MobileTodo, error) {
	rows, _ := r.DB.Query(ctx, listMobileTodos, userID)
	todos, err := pgx.CollectRows(rows, rowToMobileTodo)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return todos, nil
}

const getMobileTodo = `-- name: GetMobileTodo
SELECT id, user_id, title, description, is_completed, created_at, updated_at
FROM mobile_todos
WHERE id = $1 AND user_id = $2
`

// Get todo scoped by owner
// Someone else's todo looks exactly like a missing one
func (r *MobileTodoRepo) Get(ctx context.Context, id uuid.UUID, userID uuid.UUID) (models.MobileTodo, error) {
	rows, _ := r.DB.Query(ctx, getMobileTodo, id, userID)
	todo, err := pgx.CollectOneRow(rows, rowToMobileTodo)

	switch {
	case err == nil:
		return todo, nil
	case errors.Is(err, pgx.ErrNoRows):
		return todo, fmt.Errorf("repo error: %w", apperrors.ErrTodoNotFound)
	default:
		return todo, fmt.Errorf("db error: %w", err)
	}
}

const updateMobileTodo = `-- name: UpdateMobileTodo
UPDATE mobile_todos
SET title = COALESCE($3, title),
    description = COALESCE($4, description),
    is_completed = COALESCE($5, is_completed),
    updated_at = now()
WHERE id = $1 AND user_id = $2
RETURNING id, user_id, title, description, is_completed, created_at, updated_at
`

// Partial update: nil fields keep the stored values
func (r *MobileTodoRepo) Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, update repository.MobileTodoUpdate) (models.MobileTodo, error) {
	rows, _ := r.DB.Query(ctx, updateMobileTodo, id, userID, update.Title, update.Desc, update.IsCompleted)
	todo, err := pgx.CollectOneRow(rows, rowToMobileTodo)

	switch {
	case err == nil:
		return todo, nil
	case errors.Is(err, pgx.ErrNoRows):
		return todo, fmt.Errorf("repo error: %w", apperrors.ErrTodoNotFound)
	default:
		return todo, fmt.Errorf("db error: %w", err)
	}
}

const deleteMobileTodo = `-- name: DeleteMobileTodo
DELETE FROM mobile_todos
WHERE id = $1 AND user_id = $2
`

func (r *MobileTodoRepo) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	tag, err := r.DB.Exec(ctx, deleteMobileTodo, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo error: %w", apperrors.ErrTodoNotFound)
	}

	return nil
}

func rowToMobileTodo(row pgx.CollectableRow) (models.MobileTodo, error) {
	var t models.MobileTodo
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Desc, &t.IsCompleted, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}
