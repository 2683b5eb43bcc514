package domain

import (
	"context"
	"time"
)

// Category status enum.
const (
	CategoryStatusActive   = "active"
	CategoryStatusInactive = "inactive"
)

// Category groups items for browsing and filtering.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (Category, error)
	GetByName(ctx context.Context, name string) (Category, error)
	Fetch(ctx context.Context) ([]Category, error)
	Store(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id int64) error
}

type CategoryUsecase interface {
	// Create returns ErrConflict on a duplicate name.
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id int64) (Category, error)
	Fetch(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id int64) error
}
