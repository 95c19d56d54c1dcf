package fanfic

import (
	"context"
	"time"

	"fanfic/internal/domain/models/fanfic"
)

// ChapterRepository defines data access operations for chapters.
// Chapters carry no owner; callers verify the parent story first.
type ChapterRepository interface {
	// Create inserts a chapter whose ID, order index and timestamps are already set
	Create(ctx context.Context, chapter *fanfic.Chapter) error

	// GetInStory retrieves a chapter by ID only if it belongs to storyID
	GetInStory(ctx context.Context, id, storyID string) (*fanfic.Chapter, error)

	// ListByStory retrieves the chapters of a story ordered by order index, then creation time
	ListByStory(ctx context.Context, storyID string) ([]fanfic.Chapter, error)

	// UpdateInStory applies the present patch fields and updatedAt to a chapter of storyID
	UpdateInStory(ctx context.Context, id, storyID string, patch *fanfic.ChapterPatch, updatedAt time.Time) (*fanfic.Chapter, error)

	// Delete removes a chapter by ID; returns domain.ErrNotFound when no row was affected
	Delete(ctx context.Context, id string) error
}
