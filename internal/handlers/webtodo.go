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

type webTodoResponse struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toWebTodoResponse(t models.WebTodo) webTodoResponse {
	return webTodoResponse{
		ID:        t.ID,
		Text:      t.Text,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// renderWebTodoError translates service failures to the error envelope
func renderWebTodoError(w http.ResponseWriter, l logger.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrTodoNotFound):
		render.Error(w, render.CodeNotFound, "Todo not found", http.StatusNotFound)
	default:
		l.Error("web todo request failed", "error", err.Error())
		render.Error(w, render.CodeInternal, "Internal server error", http.StatusInternalServerError)
	}
}

func handleWebTodoCreate(todos webTodoService, l logger.Logger) http.Handler {
	type request struct {
		Text string `json:"text" validate:"required,min=1,max=256"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		todo, err := todos.Create(r.Context(), data.Text)
		if err != nil {
			renderWebTodoError(w, l, err)
			return
		}

		render.Success(w, toWebTodoResponse(todo), http.StatusCreated)
	})
}

func handleWebTodoList(todos webTodoService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		list, err := todos.List(r.Context())
		if err != nil {
			renderWebTodoError(w, l, err)
			return
		}

		response := make([]webTodoResponse, 0, len(list))
		for _, todo := range list {
			response = append(response, toWebTodoResponse(todo))
		}

		render.Success(w, response, http.StatusOK)
	})
}

func handleWebTodoGet(todos webTodoService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		todo, err := todos.Get(r.Context(), id)
		if err != nil {
			renderWebTodoError(w, l, err)
			return
		}

		render.Success(w, toWebTodoResponse(todo), http.StatusOK)
	})
}

func handleWebTodoUpdate(todos webTodoService, l logger.Logger) http.Handler {
	type request struct {
		Text string `json:"text" validate:"required,min=1,max=256"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		todo, err := todos.Update(r.Context(), id, data.Text)
		if err != nil {
			renderWebTodoError(w, l, err)
			return
		}

		render.Success(w, toWebTodoResponse(todo), http.StatusOK)
	})
}

func handleWebTodoDelete(todos webTodoService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := todos.Delete(r.Context(), id); err != nil {
			renderWebTodoError(w, l, err)
			return
		}

		render.Success(w, nil, http.StatusNoContent)
	})
}
