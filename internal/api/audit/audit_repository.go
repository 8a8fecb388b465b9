package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bakeryhq/bakery-admin/internal/types"
)

// PgxPool is the subset of pgxpool.Pool this repository uses.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ AuditRepo = (*PostgresAuditRepo)(nil)

// AuditRepo is the audit sink contract: a durable append plus a recent-first
// listing. Entries are never mutated or deleted.
type AuditRepo interface {
	Record(ctx context.Context, entry *types.AuditLogEntry) error
	ListRecent(ctx context.Context, limit int) ([]types.AuditLogEntry, error)
}

type PostgresAuditRepo struct {
	logger *slog.Logger
	pool   PgxPool
}

func NewPostgresAuditRepo(pool PgxPool, logger *slog.Logger) *PostgresAuditRepo {
	return &PostgresAuditRepo{
		logger: logger,
		pool:   pool,
	}
}

// Record appends a single audit entry.
func (r *PostgresAuditRepo) Record(ctx context.Context, entry *types.AuditLogEntry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_logs (user_id, action, target, status, ip_address, user_agent, old_value, new_value)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.UserID, entry.Action, entry.Target, entry.Status,
		entry.IPAddress, entry.UserAgent, entry.OldValue, entry.NewValue)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrAuditWrite, err)
	}
	return nil
}

// ListRecent returns up to limit entries, newest first, joined with the
// acting user's name and email when the user still exists.
func (r *PostgresAuditRepo) ListRecent(ctx context.Context, limit int) ([]types.AuditLogEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.user_id, a.action, a.target, a.status,
                a.ip_address, a.user_agent, a.old_value, a.new_value, a.created_at,
                u.name, u.email
         FROM audit_logs a
         LEFT JOIN users u ON u.id = a.user_id
         ORDER BY a.created_at DESC
         LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	var entries []types.AuditLogEntry
	for rows.Next() {
		var e types.AuditLogEntry
		err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Target, &e.Status,
			&e.IPAddress, &e.UserAgent, &e.OldValue, &e.NewValue, &e.CreatedAt,
			&e.UserName, &e.UserEmail)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading audit log rows: %w", err)
	}

	return entries, nil
}
