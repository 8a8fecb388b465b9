package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bakeryhq/bakery-admin/app/observability/metrics"
	"github.com/bakeryhq/bakery-admin/internal/types"
)

// PgxPool is the subset of pgxpool.Pool the repositories use. Declared here
// so tests can swap in a pgxmock pool.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ AuthRepo = (*PostgresAuthRepo)(nil)

// AuthRepo is the credential store contract. Email lookups are
// case-sensitive exact matches on the stored value; no normalization happens
// at this layer.
type AuthRepo interface {
	FindUserByEmail(ctx context.Context, email string) (*types.User, error)
	FindUserByID(ctx context.Context, id int64) (*types.User, error)
	CreateUser(ctx context.Context, name, email, passwordHash string) (int64, error)
}

type PostgresAuthRepo struct {
	logger *slog.Logger
	pool   PgxPool
}

func NewPostgresAuthRepo(pool PgxPool, logger *slog.Logger) *PostgresAuthRepo {
	return &PostgresAuthRepo{
		logger: logger,
		pool:   pool,
	}
}

const userColumns = "id, name, email, password_hash, is_active, created_at, updated_at"

func (r *PostgresAuthRepo) scanUser(row pgx.Row) (*types.User, error) {
	var user types.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}

// FindUserByEmail returns the user stored under exactly this email.
func (r *PostgresAuthRepo) FindUserByEmail(ctx context.Context, email string) (*types.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email)
	user, err := r.scanUser(row)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
	}
	return user, err
}

func (r *PostgresAuthRepo) FindUserByID(ctx context.Context, id int64) (*types.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id)
	user, err := r.scanUser(row)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
	}
	return user, err
}

// CreateUser inserts a new user and returns its id. A duplicate email
// surfaces as types.ErrDuplicateKey via the unique index on users.email.
func (r *PostgresAuthRepo) CreateUser(ctx context.Context, name, email, passwordHash string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash)
         VALUES ($1, $2, $3)
         RETURNING id`,
		name, email, passwordHash).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, types.ErrDuplicateKey
		}
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}
