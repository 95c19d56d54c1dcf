package fanfic

import (
	"context"

	"fanfic/internal/domain/models/fanfic"
)

// CreateChapterRequest represents a request to create a chapter
type CreateChapterRequest struct {
	UserID     string  `json:"-"` // Set by handler from auth context
	StoryID    string  `json:"-"` // Set by handler from the route
	OrderIndex *int    `json:"orderIndex,omitempty"`
	Title      *string `json:"title,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	Content    string  `json:"content"`
}

// UpdateChapterRequest represents a partial chapter update
type UpdateChapterRequest struct {
	Patch fanfic.ChapterPatch
}

// ChapterService defines business logic operations for chapters.
// All operations first verify the caller owns the parent story.
type ChapterService interface {
	// ListChapters returns the chapters of an owned story in reading order
	ListChapters(ctx context.Context, storyID, userID string) (*fanfic.ListResult[fanfic.Chapter], error)

	// CreateChapter adds a chapter to an owned story
	CreateChapter(ctx context.Context, req *CreateChapterRequest) (*fanfic.Chapter, error)

	// UpdateChapter applies a partial update to a chapter of an owned story
	UpdateChapter(ctx context.Context, id, storyID, userID string, req *UpdateChapterRequest) (*fanfic.Chapter, error)

	// DeleteChapter removes a chapter of an owned story
	DeleteChapter(ctx context.Context, id, storyID, userID string) error
}
