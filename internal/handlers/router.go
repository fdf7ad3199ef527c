package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/bccfilkom-fe/server-workshop-2025/internal/handlers/middleware"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/handlers/render"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/logger"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/models"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/repository"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	authService authService,
	webService webTodoService,
	mobileService mobileTodoService,
	logger logger.Logger,
) http.Handler {
	authMiddleware := middleware.AuthMiddleware(authService)
	withAuth := func(h http.Handler) http.Handler {
		return authMiddleware(h)
	}

	mux := http.NewServeMux()

	mux.Handle("POST /auth/register", handleRegister(authService, logger))
	mux.Handle("POST /auth/login", handleLogin(authService, logger))
	mux.Handle("POST /token/refresh", handleTokenRefresh(authService, logger))

	mux.Handle("GET /users/me", withAuth(handleUserMe()))

	mux.Handle("GET /web/todo", handleWebTodoList(webService, logger))
	mux.Handle("POST /web/todo", handleWebTodoCreate(webService, logger))
	mux.Handle("GET /web/todo/{id}", handleWebTodoGet(webService, logger))
	mux.Handle("PUT /web/todo/{id}", handleWebTodoUpdate(webService, logger))
	mux.Handle("DELETE /web/todo/{id}", handleWebTodoDelete(webService, logger))

	mux.Handle("GET /mobile/todo", withAuth(handleMobileTodoList(mobileService, logger)))
	mux.Handle("POST /mobile/todo", withAuth(handleMobileTodoCreate(mobileService, logger)))
	mux.Handle("GET /mobile/todo/{id}", withAuth(handleMobileTodoGet(mobileService, logger)))
	mux.Handle("PUT /mobile/todo/{id}", withAuth(handleMobileTodoUpdate(mobileService, logger)))
	mux.Handle("DELETE /mobile/todo/{id}", withAuth(handleMobileTodoDelete(mobileService, logger)))

	return chain(mux,
		middleware.LoggerMiddleware(logger),
	)
}

type authService interface {
	// Register user with email and password
	// Has to return apperrors.ErrUserAlreadyExists if email is taken
	Register(ctx context.Context, email string, password string) (models.User, error)

	// Login user with email and password
	// Has to return apperrors.ErrInvalidCredentials for unknown email
	// and wrong password alike
	Login(ctx context.Context, email string, password string) (models.User, models.TokenPair, error)

	// Refresh tokens using refresh token
	// Any rejection reason has to surface as apperrors.ErrRefreshTokenNotFound
	Refresh(ctx context.Context, refresh string) (models.TokenPair, error)

	// Get request and return user if it authenticated or error
	GetUserFromRequest(ctx context.Context, r *http.Request) (models.User, error)
}

type webTodoService interface {
	Create(ctx context.Context, text string) (models.WebTodo, error)
	List(ctx context.Context) ([]models.WebTodo, error)
	Get(ctx context.Context, id uuid.UUID) (models.WebTodo, error)
	Update(ctx context.Context, id uuid.UUID, text string) (models.WebTodo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type mobileTodoService interface {
	Create(ctx context.Context, userID uuid.UUID, title string, desc *string) (models.MobileTodo, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.MobileTodo, error)
	Get(ctx context.Context, id uuid.UUID, userID uuid.UUID) (models.MobileTodo, error)
	Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, update repository.MobileTodoUpdate) (models.MobileTodo, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

// pathID parses the {id} path segment as UUID
// Malformed ids are rejected before any storage access
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		render.Error(w, render.CodeValidationError, "Invalid UUID format", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
