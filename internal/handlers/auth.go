package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bccfilkom-fe/server-workshop-2025/internal/apperrors"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/handlers/render"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/logger"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/models"
)

type tokensResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func toTokensResponse(pair models.TokenPair) tokensResponse {
	return tokensResponse{
		AccessToken:  pair.Access.Value,
		RefreshToken: pair.Refresh.Value,
	}
}

func handleRegister(auth authService, l logger.Logger) http.Handler {
	type request struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}
	type response struct {
		ID        uuid.UUID `json:"id"`
		Email     string    `json:"email"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, err := auth.Register(r.Context(), data.Email, data.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserAlreadyExists):
				render.Error(w, render.CodeConflict, "Email already registered", http.StatusConflict)
			default:
				l.Error("register failed", "error", err.Error())
				render.Error(w, render.CodeInternal, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.Success(w, response{
			ID:        user.ID,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		}, http.StatusCreated)
	})
}

func handleLogin(auth authService, l logger.Logger) http.Handler {
	type request struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	type userResponse struct {
		ID    uuid.UUID `json:"id"`
		Email string    `json:"email"`
	}
	type response struct {
		User   userResponse   `json:"user"`
		Tokens tokensResponse `json:"tokens"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, pair, err := auth.Login(r.Context(), data.Email, data.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrInvalidCredentials):
				render.Error(w, render.CodeUnauthorized, "Invalid email or password", http.StatusUnauthorized)
			default:
				l.Error("login failed", "error", err.Error())
				render.Error(w, render.CodeInternal, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.Success(w, response{
			User:   userResponse{ID: user.ID, Email: user.Email},
			Tokens: toTokensResponse(pair),
		}, http.StatusOK)
	})
}

func handleTokenRefresh(auth authService, l logger.Logger) http.Handler {
	type request struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}
	type response struct {
		Tokens tokensResponse `json:"tokens"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		pair, err := auth.Refresh(r.Context(), data.RefreshToken)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrRefreshTokenNotFound):
				render.Error(w, render.CodeUnauthorized, "Invalid or expired refresh token", http.StatusUnauthorized)
			default:
				l.Error("token refresh failed", "error", err.Error())
				render.Error(w, render.CodeInternal, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.Success(w, response{Tokens: toTokensResponse(pair)}, http.StatusOK)
	})
}
