package auth

import (
	"context"

	"fanfic/internal/domain"
	"fanfic/internal/domain/models"
)

type identityKey struct{}

// WithIdentity attaches the authenticated caller to ctx.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// CurrentUser returns the caller attached by the auth middleware.
// Fails with domain.ErrUnauthorized when the request carries no identity.
func CurrentUser(ctx context.Context) (models.Identity, error) {
	identity, ok := ctx.Value(identityKey{}).(models.Identity)
	if !ok || identity.UserID == "" {
		return models.Identity{}, &domain.UnauthorizedError{Message: "authentication required"}
	}
	return identity, nil
}
