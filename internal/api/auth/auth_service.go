package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/crypto/bcrypt"

	"github.com/bakeryhq/bakery-admin/app/observability/metrics"
	"github.com/bakeryhq/bakery-admin/internal/types"
)

// AuditRecorder is the slice of the audit sink the auth service needs.
type AuditRecorder interface {
	Record(ctx context.Context, entry *types.AuditLogEntry) error
}

// Ensure implementation satisfies the interface
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService defines the business logic contract for authentication.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (types.PublicUser, error)
	Login(ctx context.Context, email, password string, client types.ClientContext) (*types.LoginResponse, error)
	GetUserByID(ctx context.Context, id int64) (*types.User, error)
}

// AuthServiceImpl provides the implementation for AuthService.
type AuthServiceImpl struct {
	logger     *slog.Logger
	repo       AuthRepo
	audit      AuditRecorder
	tokens     *TokenService
	bcryptCost int
}

// NewAuthService creates a new auth service instance.
func NewAuthService(repo AuthRepo, audit AuditRecorder, tokens *TokenService, bcryptCost int, logger *slog.Logger) *AuthServiceImpl {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthServiceImpl{
		logger:     logger,
		repo:       repo,
		audit:      audit,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user. The password hash never leaves this layer.
func (s *AuthServiceImpl) Register(ctx context.Context, name, email, password string) (types.PublicUser, error) {
	l := s.logger.With(slog.String("method", "Register"), slog.String("email", email))
	ctx, span := otel.Tracer("auth").Start(ctx, "AuthService.Register")
	defer span.End()

	_, err := s.repo.FindUserByEmail(ctx, email)
	if err == nil {
		l.WarnContext(ctx, "Registration attempt with existing email")
		return types.PublicUser{}, types.ErrAlreadyRegistered
	}
	if !errors.Is(err, types.ErrNotFound) {
		l.ErrorContext(ctx, "Failed to check existing email", slog.Any("error", err))
		span.SetStatus(codes.Error, "email lookup failed")
		return types.PublicUser{}, fmt.Errorf("error checking existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		l.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		return types.PublicUser{}, fmt.Errorf("error hashing password: %w", err)
	}

	id, err := s.repo.CreateUser(ctx, name, email, string(hash))
	if err != nil {
		// A concurrent registration can still hit the unique index.
		if errors.Is(err, types.ErrDuplicateKey) {
			return types.PublicUser{}, types.ErrAlreadyRegistered
		}
		l.ErrorContext(ctx, "Failed to create user", slog.Any("error", err))
		span.SetStatus(codes.Error, "insert failed")
		return types.PublicUser{}, fmt.Errorf("error creating user: %w", err)
	}

	metrics.Get().RegisterRequestsTotal.Add(ctx, 1)
	l.InfoContext(ctx, "User registered", slog.Int64("user_id", id))
	return types.PublicUser{ID: id, Name: name, Email: email}, nil
}

// Login authenticates a user and returns a bearer token. Every attempt,
// whatever its outcome, produces exactly one audit entry before this method
// returns; the two failure causes share one user-visible error so callers
// cannot tell which part of the credentials was wrong.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string, client types.ClientContext) (*types.LoginResponse, error) {
	l := s.logger.With(slog.String("method", "Login"))
	ctx, span := otel.Tracer("auth").Start(ctx, "AuthService.Login")
	defer span.End()

	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			l.WarnContext(ctx, "Login attempt with unknown email")
			s.recordLoginAudit(ctx, nil, types.AuditStatusFail, map[string]string{"email": email}, client)
			s.countLogin(ctx, "fail")
			return nil, types.ErrInvalidCredentials
		}
		l.ErrorContext(ctx, "Failed to look up user", slog.Any("error", err))
		span.SetStatus(codes.Error, "user lookup failed")
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	// bcrypt compares against the salted hash in constant time.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		l.WarnContext(ctx, "Login attempt with wrong password", slog.Int64("user_id", user.ID))
		s.recordLoginAudit(ctx, &user.ID, types.AuditStatusFail, nil, client)
		s.countLogin(ctx, "fail")
		return nil, types.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to issue token", slog.Any("error", err))
		span.SetStatus(codes.Error, "token issuance failed")
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	s.recordLoginAudit(ctx, &user.ID, types.AuditStatusSuccess, map[string]string{"email": email}, client)
	s.countLogin(ctx, "success")
	l.InfoContext(ctx, "Login successful", slog.Int64("user_id", user.ID))

	return &types.LoginResponse{
		Token: token,
		User:  user.Public(),
	}, nil
}

// GetUserByID resolves a token subject to a live user record.
func (s *AuthServiceImpl) GetUserByID(ctx context.Context, id int64) (*types.User, error) {
	return s.repo.FindUserByID(ctx, id)
}

// recordLoginAudit appends the audit entry for one login attempt. A failed
// append is reported to operators (log + counter) but never changes the
// authentication outcome.
func (s *AuthServiceImpl) recordLoginAudit(ctx context.Context, userID *int64, status string, newValue any, client types.ClientContext) {
	entry := &types.AuditLogEntry{
		UserID:    userID,
		Action:    types.AuditActionLogin,
		Target:    types.AuditTargetUser,
		Status:    status,
		IPAddress: client.IPAddress,
		UserAgent: client.UserAgent,
	}
	if newValue != nil {
		b, err := json.Marshal(newValue)
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to serialize audit snapshot", slog.Any("error", err))
		} else {
			entry.NewValue = b
		}
	}

	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "Audit log write failed",
			slog.Any("error", err),
			slog.String("status", status),
		)
		metrics.Get().AuditWriteFailuresTotal.Add(ctx, 1)
	}
}

func (s *AuthServiceImpl) countLogin(ctx context.Context, outcome string) {
	metrics.Get().LoginAttemptsTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("outcome", outcome)))
}
