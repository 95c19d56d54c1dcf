package fanfic

import (
	"context"

	"fanfic/internal/domain/models/fanfic"
)

// CreateStoryRequest represents a request to create a story
type CreateStoryRequest struct {
	UserID   string  `json:"-"` // Set by handler from auth context, not from request body
	FandomID *string `json:"fandomId,omitempty"`
	Title    string  `json:"title"`
	Summary  *string `json:"summary,omitempty"`
	Rating   *string `json:"rating,omitempty"`
	Pairing  *string `json:"pairing,omitempty"`
	Tags     *string `json:"tags,omitempty"`
	Status   *string `json:"status,omitempty"`
	Language *string `json:"language,omitempty"`
}

// UpdateStoryRequest represents a partial story update
type UpdateStoryRequest struct {
	Patch fanfic.StoryPatch
}

// StoryService defines business logic operations for stories
type StoryService interface {
	// ListStories returns all stories owned by the caller
	ListStories(ctx context.Context, userID string) (*fanfic.ListResult[fanfic.Story], error)

	// CreateStory creates a story, checking the fandom (if any) is accessible
	CreateStory(ctx context.Context, req *CreateStoryRequest) (*fanfic.Story, error)

	// UpdateStory applies a partial update to a story owned by the caller
	UpdateStory(ctx context.Context, id, userID string, req *UpdateStoryRequest) (*fanfic.Story, error)
}
