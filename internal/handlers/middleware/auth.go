package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/bccfilkom-fe/server-workshop-2025/internal/apperrors"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/handlers/render"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/handlers/userctx"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/models"
)

type authService interface {
	GetUserFromRequest(ctx context.Context, r *http.Request) (models.User, error)
}

// AuthMiddleware gates protected handlers behind a bearer access token
// Each failure step answers 401 with its own code: missing header, bad
// signature, expired token and a vanished user are all distinguishable
func AuthMiddleware(as authService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := as.GetUserFromRequest(r.Context(), r)
			if err != nil {
				switch {
				case errors.Is(err, apperrors.ErrTokenMissing):
					render.Error(w, render.CodeMissingToken, "Authentication required", http.StatusUnauthorized)
				case errors.Is(err, apperrors.ErrTokenExpired):
					render.Error(w, render.CodeTokenExpired, "Token has expired", http.StatusUnauthorized)
				case errors.Is(err, apperrors.ErrTokenInvalid):
					render.Error(w, render.CodeInvalidToken, "Invalid access token", http.StatusUnauthorized)
				case errors.Is(err, apperrors.ErrUserNotFound):
					render.Error(w, render.CodeUserNotFound, "User not found", http.StatusUnauthorized)
				default:
					render.Error(w, render.CodeAuthError, "Authentication failed", http.StatusUnauthorized)
				}
				return
			}

			ctx := userctx.New(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
