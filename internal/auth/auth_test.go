package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fanfic/internal/domain"
	"fanfic/internal/domain/models"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims *models.SupabaseClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims() *models.SupabaseClaims {
	return &models.SupabaseClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: "writer@example.com",
		Role:  "authenticated",
	}
}

func TestSecretVerifier(t *testing.T) {
	verifier, err := NewSecretVerifier(testSecret, testLogger())
	require.NoError(t, err)

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	anon := validClaims()
	anon.Role = "anon"
	noSubject := validClaims()
	noSubject.Subject = ""

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid token", sign(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims()), false},
		{"wrong secret", sign(t, jwt.SigningMethodHS256, []byte("other-secret"), validClaims()), true},
		{"expired", sign(t, jwt.SigningMethodHS256, []byte(testSecret), expired), true},
		{"anonymous role", sign(t, jwt.SigningMethodHS256, []byte(testSecret), anon), true},
		{"missing subject", sign(t, jwt.SigningMethodHS256, []byte(testSecret), noSubject), true},
		{"HS512 rejected", sign(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims()), true},
		{"garbage", "not-a-jwt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := verifier.VerifyToken(tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnauthorized)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "user-123", claims.GetUserID())
			assert.Equal(t, models.Identity{UserID: "user-123", Email: "writer@example.com"}, claims.Identity())
		})
	}
}

func TestNewSecretVerifier_EmptySecret(t *testing.T) {
	_, err := NewSecretVerifier("", testLogger())
	assert.Error(t, err)
}

func TestIssueToken_RoundTrip(t *testing.T) {
	token, err := IssueToken(testSecret, models.Identity{UserID: "alice", Email: "alice@example.com"}, time.Hour)
	require.NoError(t, err)

	verifier, err := NewSecretVerifier(testSecret, testLogger())
	require.NoError(t, err)

	claims, err := verifier.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.NotEmpty(t, claims.SessionID)
}

func TestCurrentUser(t *testing.T) {
	_, err := CurrentUser(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, domain.CodeUnauthorized, domain.CodeOf(err))

	ctx := WithIdentity(context.Background(), models.Identity{UserID: "alice"})
	identity, err := CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.UserID)

	_, err = CurrentUser(WithIdentity(context.Background(), models.Identity{}))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
