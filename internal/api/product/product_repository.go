package product

import (
	"context"
	"errors"
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

var _ ProductRepo = (*PostgresProductRepo)(nil)

type ProductRepo interface {
	Create(ctx context.Context, p *types.Product) (int64, error)
	GetAll(ctx context.Context) ([]types.Product, error)
	GetByID(ctx context.Context, id int64) (*types.Product, error)
	Update(ctx context.Context, p *types.Product) error
	SoftDelete(ctx context.Context, id int64) error
}

type PostgresProductRepo struct {
	logger *slog.Logger
	pool   PgxPool
}

func NewPostgresProductRepo(pool PgxPool, logger *slog.Logger) *PostgresProductRepo {
	return &PostgresProductRepo{
		logger: logger,
		pool:   pool,
	}
}

const productColumns = "id, name, description, price, stock, is_active, created_by, created_at, updated_at"

func scanProduct(row pgx.Row) (*types.Product, error) {
	var p types.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.IsActive, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	return &p, nil
}

func (r *PostgresProductRepo) Create(ctx context.Context, p *types.Product) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO products (name, description, price, stock, is_active, created_by)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING id`,
		p.Name, p.Description, p.Price, p.Stock, p.IsActive, p.CreatedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}
	return id, nil
}

func (r *PostgresProductRepo) GetAll(ctx context.Context) ([]types.Product, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+productColumns+" FROM products ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []types.Product
	for rows.Next() {
		var p types.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.IsActive, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading product rows: %w", err)
	}

	return products, nil
}

func (r *PostgresProductRepo) GetByID(ctx context.Context, id int64) (*types.Product, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", id)
	return scanProduct(row)
}

func (r *PostgresProductRepo) Update(ctx context.Context, p *types.Product) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products
         SET name = $1, description = $2, price = $3, stock = $4, is_active = $5, updated_at = now()
         WHERE id = $6`,
		p.Name, p.Description, p.Price, p.Stock, p.IsActive, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

// SoftDelete marks the product inactive; the row stays.
func (r *PostgresProductRepo) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE products SET is_active = FALSE, updated_at = now() WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to soft delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
