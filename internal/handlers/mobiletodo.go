package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bccfilkom-fe/server-workshop-2025/internal/apperrors"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/handlers/render"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/handlers/userctx"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/logger"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/models"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/repository"
)

type mobileTodoResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Title       string    `json:"title"`
	Desc        *string   `json:"desc"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toMobileTodoResponse(t models.MobileTodo) mobileTodoResponse {
	return mobileTodoResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Desc:        t.Desc,
		IsCompleted: t.IsCompleted,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// renderMobileTodoError translates service failures to the error envelope
// Foreign todos surface as not found, same as missing ones
func renderMobileTodoError(w http.ResponseWriter, l logger.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrTodoNotFound):
		render.Error(w, render.CodeNotFound, "Todo not found", http.StatusNotFound)
	default:
		l.Error("mobile todo request failed", "error", err.Error())
		render.Error(w, render.CodeInternal, "Internal server error", http.StatusInternalServerError)
	}
}

func handleMobileTodoCreate(todos mobileTodoService, l logger.Logger) http.Handler {
	type request struct {
		Title string  `json:"title" validate:"required,min=1,max=256"`
		Desc  *string `json:"desc" validate:"omitempty,max=1000"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := userctx.FromContext(r.Context())

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		todo, err := todos.Create(r.Context(), user.ID, data.Title, data.Desc)
		if err != nil {
			renderMobileTodoError(w, l, err)
			return
		}

		render.Success(w, toMobileTodoResponse(todo), http.StatusCreated)
	})
}

func handleMobileTodoList(todos mobileTodoService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := userctx.FromContext(r.Context())

		list, err := todos.List(r.Context(), user.ID)
		if err != nil {
			renderMobileTodoError(w, l, err)
			return
		}

		response := make([]mobileTodoResponse, 0, len(list))
		for _, todo := range list {
			response = append(response, toMobileTodoResponse(todo))
		}

		render.Success(w, response, http.StatusOK)
	})
}

func handleMobileTodoGet(todos mobileTodoService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := userctx.FromContext(r.Context())

		id, ok := pathID(w, r)
		if !ok {
			return
		}

		todo, err := todos.Get(r.Context(), id, user.ID)
		if err != nil {
			renderMobileTodoError(w, l, err)
			return
		}

		render.Success(w, toMobileTodoResponse(todo), http.StatusOK)
	})
}

func handleMobileTodoUpdate(todos mobileTodoService, l logger.Logger) http.Handler {
	type request struct {
		Title       *string `json:"title" validate:"omitempty,min=1,max=256"`
		Desc        *string `json:"desc" validate:"omitempty,max=1000"`
		IsCompleted *bool   `json:"isCompleted"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := userctx.FromContext(r.Context())

		id, ok := pathID(w, r)
		if !ok {
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		todo, err := todos.Update(r.Context(), id, user.ID, repository.MobileTodoUpdate{
			Title:       data.Title,
			Desc:        data.Desc,
			IsCompleted: data.IsCompleted,
		})
		if err != nil {
			renderMobileTodoError(w, l, err)
			return
		}

		render.Success(w, toMobileTodoResponse(todo), http.StatusOK)
	})
}

func handleMobileTodoDelete(todos mobileTodoService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := userctx.FromContext(r.Context())

		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := todos.Delete(r.Context(), id, user.ID); err != nil {
			renderMobileTodoError(w, l, err)
			return
		}

		render.Success(w, nil, http.StatusNoContent)
	})
}
