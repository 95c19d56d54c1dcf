package fanfic

import (
	"context"
	"time"

	"fanfic/internal/domain/models/fanfic"
)

// StoryRepository defines data access operations for stories.
// Every read and write is scoped by owner: a story owned by someone else
// is reported as domain.ErrNotFound, exactly like a missing one.
type StoryRepository interface {
	// Create inserts a story whose ID and timestamps are already set
	Create(ctx context.Context, story *fanfic.Story) error

	// GetOwned retrieves a story by ID only if it belongs to userID
	GetOwned(ctx context.Context, id, userID string) (*fanfic.Story, error)

	// ListByUser retrieves all stories of userID, most recently updated first
	ListByUser(ctx context.Context, userID string) ([]fanfic.Story, error)

	// UpdateOwned applies the present patch fields and updatedAt to a story owned by userID
	UpdateOwned(ctx context.Context, id, userID string, patch *fanfic.StoryPatch, updatedAt time.Time) (*fanfic.Story, error)
}
