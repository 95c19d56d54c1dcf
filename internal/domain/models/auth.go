package models

import "github.com/golang-jwt/jwt/v5"

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID string
	Email  string
}

// SupabaseClaims represents the JWT claims structure from Supabase Auth.
// See: https://supabase.com/docs/guides/auth/jwts
type SupabaseClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	Role                 string `json:"role"` // "authenticated" or "anon"
	SessionID            string `json:"session_id"`
	IsAnonymous          bool   `json:"is_anonymous"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *SupabaseClaims) GetUserID() string {
	return c.Subject
}

// Identity converts verified claims into the caller identity.
func (c *SupabaseClaims) Identity() Identity {
	return Identity{
		UserID: c.Subject,
		Email:  c.Email,
	}
}
