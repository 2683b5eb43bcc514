package domain

import (
	"context"
	"time"
)

// Batch status enum.
const (
	BatchStatusActive    = "active"
	BatchStatusCompleted = "completed"
	BatchStatusCancelled = "cancelled"
)

// Batch is an admin-managed student intake (e.g. "Batch 2025").
type Batch struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type BatchRepository interface {
	GetByID(ctx context.Context, id int64) (Batch, error)
	GetByName(ctx context.Context, name string) (Batch, error)
	Fetch(ctx context.Context) ([]Batch, error)
	Store(ctx context.Context, b *Batch) error
	Update(ctx context.Context, b *Batch) error
	Delete(ctx context.Context, id int64) error
}

type BatchUsecase interface {
	// Create returns ErrConflict on a duplicate name.
	Create(ctx context.Context, b *Batch) error
	GetByID(ctx context.Context, id int64) (Batch, error)
	Fetch(ctx context.Context) ([]Batch, error)
	Update(ctx context.Context, b *Batch) error
	Delete(ctx context.Context, id int64) error
}
