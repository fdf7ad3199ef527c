package todo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bccfilkom-fe/server-workshop-2025/internal/models"
	"github.com/bccfilkom-fe/server-workshop-2025/internal/repository"
)

// Service for per-user mobile todos
// Every operation is scoped to the calling user: foreign todos are
// reported as not found
type MobileService struct {
	storage repository.Storage
}

func NewMobileService(storage repository.Storage) *MobileService {
	return &MobileService{storage: storage}
}

func (s *MobileService) Create(ctx context.Context, userID uuid.UUID, title string, desc *string) (models.MobileTodo, error) {
	todo, err := s.storage.MobileTodo().Create(ctx, userID, title, desc)
	if err != nil {
		return todo, fmt.Errorf("can't create todo. Err: %w", err)
	}
	return todo, nil
}

func (s *MobileService) List(ctx context.Context, userID uuid.UUID) ([]models.MobileTodo, error) {
	todos, err := s.storage.MobileTodo().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("can't list todos. Err: %w", err)
	}
	return todos, nil
}

func (s *MobileService) Get(ctx context.Context, id uuid.UUID, userID uuid.UUID) (models.MobileTodo, error) {
	return s.storage.MobileTodo().Get(ctx, id, userID)
}

func (s *MobileService) Update(ctx context.Context, id uuid.UUID, userID uuid.UUID, update repository.MobileTodoUpdate) (models.MobileTodo, error) {
	return s.storage.MobileTodo().Update(ctx, id, userID, update)
}

func (s *MobileService) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	return s.storage.MobileTodo().Delete(ctx, id, userID)
}
