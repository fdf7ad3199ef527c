package todo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bccfilkom-fe/server-workshop-2025/internal/models"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/repository"
)

// Service for anonymous web todos
type WebService struct {
	storage repository.Storage
}

func NewWebService(storage repository.Storage) *WebService {
	return &WebService{storage: storage}
}

func (s *WebService) Create(ctx context.Context, text string) (models.WebTodo, error) {
	todo, err := s.storage.WebTodo().Create(ctx, text)
	if err != nil {
		return todo, fmt.Errorf("can't create todo. Err: %w", err)
	}
	return todo, nil
}

func (s *WebService) List(ctx context.Context) ([]models.WebTodo, error) {
	todos, err := s.storage.WebTodo().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't list todos. Err: %w", err)
	}
	return todos, nil
}

func (s *WebService) Get(ctx context.Context, id uuid.UUID) (models.WebTodo, error) {
	return s.storage.WebTodo().Get(ctx, id)
}

func (s *WebService) Update(ctx context.Context, id uuid.UUID, text string) (models.WebTodo, error) {
	return s.storage.WebTodo().Update(ctx, id, text)
}

func (s *WebService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.storage.WebTodo().Delete(ctx, id)
}
