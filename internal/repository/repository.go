package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bccfilkom-fe/server-workshop-2025/internal/models"
)

// User repository interface
type UserRepo interface {
	// Create user
	// If user with email exists already has to return error apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, email string, hashedPassword string) (models.User, error)

	// Get user by it's id or email
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

// RefreshToken repository interface
type RefreshTokenRepo interface {
	// Save token in repository
	Save(ctx context.Context, token models.RefreshToken) (models.RefreshToken, error)

	// Return a not expired token matching both the token string and its owner
	// Unknown, rotated, expired or foreign tokens are indistinguishable:
	// all must return apperrors.ErrRefreshTokenNotFound
	GetValid(ctx context.Context, tokenString string, userID uuid.UUID, now time.Time) (models.RefreshToken, error)

	// Delete token by id
	// If token not found must return apperrors.ErrRefreshTokenNotFound
	Delete(ctx context.Context, id uuid.UUID) error

	// Delete tokens that expired before now, return number of deleted rows
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Web todo repository interface
// Web todos are anonymous so no user scoping here
type WebTodoRepo interface {
	Create(ctx context.Context, text string) (models.WebTodo, error)
	List(ctx context.Context) ([]models.WebTodo, error)

	// Get, Update and Delete must return apperrors.ErrTodoNotFound for unknown ids
	Get(ctx context.Context, id uuid.UUID) (models.WebTodo, error)
	Update(ctx context.Context, id uuid.UUID, text string) (models.WebTodo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Fields to change on mobile todo update
// Nil field means "keep the stored value"
type MobileTodoUpdate struct {
	Title       *string
	Desc        *string
	IsCompleted *bool
}

// Mobile todo repository interface
// Every row access is scoped by owner: a todo of another user
// must be indistinguishable from a missing one (apperrors.ErrTodoNotFound)
type MobileTodoRepo interface {
	Create(ctx context.Context, userID uuid.UUID, title string, desc *string) (models.MobileTodo, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.MobileTodo, error)
	Get(ctx context.Context, id uuid.UUID, userID uuid.UUID) (models.MobileTodo, error)
	Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, update MobileTodoUpdate) (models.MobileTodo, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

// Storage combines repositories and allows to run them in single transaction
type Storage interface {
	User() UserRepo
	Refresh() RefreshTokenRepo
	WebTodo() WebTodoRepo
	MobileTodo() MobileTodoRepo

	// Run fn within single db transaction
	// If fn returns error the transaction is rolled back
	InTx(ctx context.Context, fn func(Storage) error) error
}
