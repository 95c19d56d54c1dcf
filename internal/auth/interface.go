package auth

import "fanfic/internal/domain/models"

// JWTVerifier defines the interface for JWT token verification.
// The middleware depends only on this, so JWKS and shared-secret
// verification are interchangeable.
type JWTVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed claims.
	// Returns domain.ErrUnauthorized if the token is invalid, expired, or has an invalid signature.
	VerifyToken(tokenString string) (*models.SupabaseClaims, error)

	// Close releases any resources held by the verifier (e.g., HTTP connections for JWKS).
	Close() error
}

// authenticatedRole is the Supabase role carried by signed-in (non-anonymous) users.
const authenticatedRole = "authenticated"
