package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"fanfic/internal/domain"
	"fanfic/internal/domain/models"
)

// SecretJWTVerifier implements JWTVerifier for HS256 tokens signed with a shared secret
// (Supabase's legacy JWT secret, or tokens minted locally by fanficctl).
type SecretJWTVerifier struct {
	secret []byte
	logger *slog.Logger
}

// NewSecretVerifier creates a verifier for HS256 tokens.
func NewSecretVerifier(secret string, logger *slog.Logger) (JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}
	return &SecretJWTVerifier{secret: []byte(secret), logger: logger}, nil
}

// VerifyToken validates an HS256 token and extracts Supabase claims.
func (v *SecretJWTVerifier) VerifyToken(tokenString string) (*models.SupabaseClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SupabaseClaims{},
		func(*jwt.Token) (interface{}, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		v.logger.Debug("token parse failed", "error", err)
		return nil, domain.ErrUnauthorized
	}

	return checkClaims(token, v.logger)
}

// Close is a no-op; the verifier holds no resources.
func (v *SecretJWTVerifier) Close() error {
	return nil
}

// IssueToken mints an HS256 access token for identity that SecretJWTVerifier accepts.
func IssueToken(secret string, identity models.Identity, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("JWT secret cannot be empty")
	}

	now := time.Now()
	claims := &models.SupabaseClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:     identity.Email,
		Role:      authenticatedRole,
		SessionID: uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
