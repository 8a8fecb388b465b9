package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bakeryhq/bakery-admin/config"
	"github.com/bakeryhq/bakery-admin/internal/types"
)

// TokenService issues and verifies signed, time-limited bearer tokens.
// Tokens are stateless: validity is recomputed from the signature and expiry
// on every request, and there is no revocation list.
type TokenService struct {
	secretKey []byte
	issuer    string
	lifetime  time.Duration
}

// NewTokenService builds a TokenService from the process-wide JWT config.
func NewTokenService(cfg config.JWTConfig) (*TokenService, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("JWT secret key cannot be empty")
	}
	lifetime := cfg.TokenLifetime
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &TokenService{
		secretKey: []byte(cfg.SecretKey),
		issuer:    cfg.Issuer,
		lifetime:  lifetime,
	}, nil
}

// Issue creates a signed token bound to the user id, expiring lifetime from
// now.
func (t *TokenService) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := &types.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    t.issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token and returns the embedded subject id.
// Bad signature, expiry, and malformed tokens all collapse into
// types.ErrInvalidToken; callers must not leak which check failed.
func (t *TokenService) Verify(tokenString string) (int64, error) {
	claims := &types.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secretKey, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", types.ErrInvalidToken, err)
	}
	if !token.Valid {
		return 0, types.ErrInvalidToken
	}

	if claims.ExpiresAt == nil || !time.Now().Before(claims.ExpiresAt.Time) {
		return 0, types.ErrInvalidToken
	}
	if t.issuer != "" && claims.Issuer != t.issuer {
		return 0, types.ErrInvalidToken
	}

	if claims.UserID != 0 {
		return claims.UserID, nil
	}
	// Fall back to the registered subject claim.
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, types.ErrInvalidToken
	}
	return userID, nil
}
