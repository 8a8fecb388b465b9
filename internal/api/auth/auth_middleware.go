package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bakeryhq/bakery-admin/internal/api"
	"github.com/bakeryhq/bakery-admin/internal/types"
)

// Define typed context keys
type contextKey string

const userContextKey contextKey = "authenticatedUser"

// UserResolver re-resolves a token subject to a live user record. The gate
// runs this on every request: tokens carry no revocation state, so this is
// where deactivation or deletion after issuance gets caught.
type UserResolver interface {
	GetUserByID(ctx context.Context, id int64) (*types.User, error)
}

// Authenticate is middleware to validate bearer tokens on protected
// endpoints. On success the resolved user is attached to the request
// context.
func Authenticate(logger *slog.Logger, tokens *TokenService, users UserResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			l := logger.With(slog.String("middleware", "Authenticate"))

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				l.WarnContext(ctx, "Missing Authorization header")
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Token missing")
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				l.WarnContext(ctx, "Invalid Authorization header format")
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Token missing")
				return
			}
			tokenString := headerParts[1]

			userID, err := tokens.Verify(tokenString)
			if err != nil {
				l.WarnContext(ctx, "Token verification failed", slog.Any("error", err))
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid token")
				return
			}

			user, err := users.GetUserByID(ctx, userID)
			if err != nil {
				// A valid signature over a vanished subject is still an
				// invalid token as far as the caller can tell.
				if errors.Is(err, types.ErrNotFound) {
					l.WarnContext(ctx, "Token subject no longer exists", slog.Int64("user_id", userID))
					api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid token")
					return
				}
				l.ErrorContext(ctx, "Failed to resolve token subject", slog.Any("error", err))
				api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to authenticate request")
				return
			}

			ctx = context.WithValue(ctx, userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireActiveUser gates deactivated accounts. Runs AFTER Authenticate: a
// token can be cryptographically valid yet belong to an account that has
// since been switched off.
func RequireActiveUser(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			user, ok := GetUserFromContext(ctx)
			if !ok {
				// Defensive: only reachable if the middleware chain is miswired.
				logger.ErrorContext(ctx, "No authenticated user in context")
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
				return
			}

			if !user.IsActive {
				logger.WarnContext(ctx, "Inactive account rejected", slog.Int64("user_id", user.ID))
				api.ErrorResponse(w, r, http.StatusForbidden, "Account is inactive")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext returns the user attached by Authenticate.
func GetUserFromContext(ctx context.Context) (*types.User, bool) {
	user, ok := ctx.Value(userContextKey).(*types.User)
	return user, ok
}

// ContextWithUser attaches a user to the context. Exposed for tests.
func ContextWithUser(ctx context.Context, user *types.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}
