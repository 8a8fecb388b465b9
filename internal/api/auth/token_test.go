package auth

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakeryhq/bakery-admin/config"
	"github.com/bakeryhq/bakery-admin/internal/types"
)

const testSecret = "test-signing-secret"

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService(config.JWTConfig{
		SecretKey:     testSecret,
		Issuer:        "bakery-admin",
		TokenLifetime: 24 * time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := NewTokenService(config.JWTConfig{})
	require.Error(t, err)
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), subject)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc := newTestTokenService(t)

	// Correctly signed but past its expiry.
	now := time.Now().Add(-25 * time.Hour)
	claims := &types.Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(42, 10),
			Issuer:    "bakery-admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidToken))
}

func TestTokenService_Verify_WrongSignature(t *testing.T) {
	svc := newTestTokenService(t)

	other, err := NewTokenService(config.JWTConfig{
		SecretKey:     "a-different-secret",
		Issuer:        "bakery-admin",
		TokenLifetime: 24 * time.Hour,
	})
	require.NoError(t, err)

	token, err := other.Issue(42)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidToken))
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	svc := newTestTokenService(t)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(tok)
		require.Error(t, err, "token %q should not verify", tok)
		assert.True(t, errors.Is(err, types.ErrInvalidToken))
	}
}

func TestTokenService_Verify_IssuerMismatch(t *testing.T) {
	svc := newTestTokenService(t)

	other, err := NewTokenService(config.JWTConfig{
		SecretKey:     testSecret,
		Issuer:        "someone-else",
		TokenLifetime: 24 * time.Hour,
	})
	require.NoError(t, err)

	token, err := other.Issue(42)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidToken))
}
