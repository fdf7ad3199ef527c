package models

import (
	"time"

	"github.com/google/uuid"
)

// Web todo: anonymous, not bound to any user
type WebTodo struct {
	ID        uuid.UUID
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Mobile todo: always owned by a user
type MobileTodo struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Desc        *string // nil if not provided
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
