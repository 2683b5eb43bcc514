package domain

import (
	"context"
	"time"
)

// Item type enum.
const (
	ItemTypeLost  = "lost"
	ItemTypeFound = "found"
)

// Item status enum.
const (
	ItemStatusAvailable = "available"
	ItemStatusClaimed   = "claimed"
	ItemStatusResolved  = "resolved"
)

// Media type enum.
const (
	MediaTypePhoto = "photo"
	MediaTypeVideo = "video"
)

// Item is a reported lost or found item.
type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        string    `json:"type"` // lost | found
	CategoryID  int64     `json:"category_id"`
	Location    string    `json:"location"`
	Media       string    `json:"media"` // uploaded photo/video URL
	MediaType   string    `json:"media_type"`
	ReporterID  int64     `json:"reporter_id"`
	ClaimerID   int64     `json:"claimer_id"` // 0 while unclaimed
	IsClaimed   bool      `json:"is_claimed"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Reporter *Student `json:"reporter,omitempty"`
	Claimer  *Student `json:"claimer,omitempty"`
}

// ItemFilter narrows an item listing.
type ItemFilter struct {
	Type       string
	Status     string
	CategoryID int64
}

// ItemPage is one page of an item listing.
type ItemPage struct {
	Items []Item
	Total int64
	Page  int64
	Pages int64
}

// ItemRepository defines the contract for item data persistence.
type ItemRepository interface {
	// GetByID returns ErrNotFound if the item doesn't exist.
	GetByID(ctx context.Context, id int64) (Item, error)

	// Exists reports whether the item row is present.
	Exists(ctx context.Context, id int64) (bool, error)

	// Store creates a new item and backfills its ID.
	Store(ctx context.Context, it *Item) error

	Update(ctx context.Context, it *Item) error
	Delete(ctx context.Context, id int64) error

	Fetch(ctx context.Context, filter ItemFilter, offset, limit int64) ([]Item, error)
	Count(ctx context.Context, filter ItemFilter) (int64, error)

	// FetchIDs pages through all item IDs, used to seed the bloom filter.
	FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error)
}

// ItemUsecase defines the business logic contract for items.
type ItemUsecase interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id int64) (Item, error)
	Fetch(ctx context.Context, filter ItemFilter, page, limit int64) (*ItemPage, error)

	// Claim marks an available item as claimed by the student.
	// Returns ErrConflict if the item is already claimed.
	Claim(ctx context.Context, itemID, studentID int64) (Item, error)

	// Update edits item fields. Only the reporter may update.
	Update(ctx context.Context, it *Item, requesterID int64) error

	// Delete removes the item and its comment thread. Only the reporter
	// may delete.
	Delete(ctx context.Context, id int64, requesterID int64) error

	// Exists is the existence check consumed by the comment service.
	Exists(ctx context.Context, id int64) (bool, error)

	// InitBloomFilter seeds the item-ID bloom filter from the repository.
	InitBloomFilter(ctx context.Context) error
}
