package fanfic

import (
	"context"

	"fanfic/internal/domain/models/fanfic"
)

// CreateFandomRequest represents a request to create a fandom
type CreateFandomRequest struct {
	UserID      string  `json:"-"` // Set by handler from auth context, not from request body
	Name        string  `json:"name"`
	CanonType   *string `json:"canonType,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UpdateFandomRequest represents a partial fandom update
type UpdateFandomRequest struct {
	Patch fanfic.FandomPatch
}

// FandomService defines business logic operations for fandoms
type FandomService interface {
	// ListFandoms returns the caller's fandoms plus every ownerless fandom
	ListFandoms(ctx context.Context, userID string) (*fanfic.ListResult[fanfic.Fandom], error)

	// CreateFandom creates a private, non-system fandom owned by the caller
	CreateFandom(ctx context.Context, req *CreateFandomRequest) (*fanfic.Fandom, error)

	// UpdateFandom applies a partial update to a fandom the caller may modify
	UpdateFandom(ctx context.Context, id, userID string, req *UpdateFandomRequest) (*fanfic.Fandom, error)
}
