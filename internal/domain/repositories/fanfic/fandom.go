package fanfic

import (
	"context"
	"time"

	"fanfic/internal/domain/models/fanfic"
)

// FandomRepository defines data access operations for fandoms
type FandomRepository interface {
	// Create inserts a fandom whose ID and timestamps are already set
	Create(ctx context.Context, fandom *fanfic.Fandom) error

	// GetByID retrieves a fandom by ID regardless of owner
	// Visibility rules are applied by the authorizer, not here
	GetByID(ctx context.Context, id string) (*fanfic.Fandom, error)

	// ListVisible retrieves fandoms owned by userID plus every ownerless fandom, ordered by name
	ListVisible(ctx context.Context, userID string) ([]fanfic.Fandom, error)

	// Update applies the present patch fields and updatedAt, returning the updated row
	Update(ctx context.Context, id string, patch *fanfic.FandomPatch, updatedAt time.Time) (*fanfic.Fandom, error)

	// UpsertSystem inserts or refreshes an ownerless system fandom (catalog seeding)
	UpsertSystem(ctx context.Context, fandom *fanfic.Fandom) error
}
