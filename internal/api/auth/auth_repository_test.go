package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakeryhq/bakery-admin/app/observability/metrics"
	"github.com/bakeryhq/bakery-admin/internal/types"
)

func newRepoWithMock(t *testing.T) (*PostgresAuthRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	metrics.InitAppMetrics()

	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPostgresAuthRepo(mockPool, logger), mockPool
}

func userRows(id int64, name, email, hash string, active bool) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "is_active", "created_at", "updated_at"}).
		AddRow(id, name, email, hash, active, now, now)
}

func TestPostgresAuthRepo_FindUserByEmail(t *testing.T) {
	repo, mockPool := newRepoWithMock(t)
	ctx := context.Background()

	mockPool.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("ana@bakery.com").
		WillReturnRows(userRows(3, "Ana", "ana@bakery.com", "$2a$10$hash", true))

	user, err := repo.FindUserByEmail(ctx, "ana@bakery.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, "ana@bakery.com", user.Email)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
	assert.True(t, user.IsActive)
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresAuthRepo_FindUserByEmail_NotFound(t *testing.T) {
	repo, mockPool := newRepoWithMock(t)
	ctx := context.Background()

	mockPool.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("missing@bakery.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "is_active", "created_at", "updated_at"}))

	user, err := repo.FindUserByEmail(ctx, "missing@bakery.com")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, types.ErrNotFound)
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresAuthRepo_FindUserByID(t *testing.T) {
	repo, mockPool := newRepoWithMock(t)
	ctx := context.Background()

	mockPool.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(userRows(7, "Bruno", "bruno@bakery.com", "hash", false))

	user, err := repo.FindUserByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.False(t, user.IsActive)
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresAuthRepo_CreateUser(t *testing.T) {
	repo, mockPool := newRepoWithMock(t)
	ctx := context.Background()

	mockPool.ExpectQuery(`INSERT INTO users`).
		WithArgs("Ana", "ana@bakery.com", "$2a$10$hash").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(12)))

	id, err := repo.CreateUser(ctx, "Ana", "ana@bakery.com", "$2a$10$hash")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresAuthRepo_CreateUser_DuplicateEmail(t *testing.T) {
	repo, mockPool := newRepoWithMock(t)
	ctx := context.Background()

	mockPool.ExpectQuery(`INSERT INTO users`).
		WithArgs("Ana", "ana@bakery.com", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	id, err := repo.CreateUser(ctx, "Ana", "ana@bakery.com", "hash")
	assert.Zero(t, id)
	assert.ErrorIs(t, err, types.ErrDuplicateKey)
	require.NoError(t, mockPool.ExpectationsWereMet())
}
