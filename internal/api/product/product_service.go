package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/bakeryhq/bakery-admin/internal/types"
)

var (
	ErrNameRequired  = errors.New("product name is required")
	ErrNegativePrice = errors.New("price cannot be negative")
	ErrNegativeStock = errors.New("stock cannot be negative")
)

const listCacheKey = "products:all"

// Ensure implementation satisfies the interface
var _ ProductService = (*ProductServiceImpl)(nil)

type ProductService interface {
	Create(ctx context.Context, params types.CreateProductParams, createdBy int64) (int64, error)
	GetAll(ctx context.Context) ([]types.Product, error)
	GetByID(ctx context.Context, id int64) (*types.Product, error)
	Update(ctx context.Context, id int64, params types.UpdateProductParams) error
	Delete(ctx context.Context, id int64) error
}

// ProductServiceImpl holds the business rules for the product catalogue.
// The list endpoint is fronted by a short-TTL cache; every mutation drops
// it. Users are never cached anywhere - the request gate must observe
// deactivation immediately.
type ProductServiceImpl struct {
	logger *slog.Logger
	repo   ProductRepo
	cache  *cache.Cache
}

func NewProductService(repo ProductRepo, logger *slog.Logger) *ProductServiceImpl {
	return &ProductServiceImpl{
		logger: logger,
		repo:   repo,
		cache:  cache.New(30*time.Second, time.Minute),
	}
}

func (s *ProductServiceImpl) Create(ctx context.Context, params types.CreateProductParams, createdBy int64) (int64, error) {
	l := s.logger.With(slog.String("method", "Create"))

	if params.Name == "" {
		return 0, ErrNameRequired
	}
	if params.Price < 0 {
		return 0, ErrNegativePrice
	}
	if params.Stock < 0 {
		return 0, ErrNegativeStock
	}

	p := &types.Product{
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		Stock:       params.Stock,
		IsActive:    true,
		CreatedBy:   &createdBy,
	}

	id, err := s.repo.Create(ctx, p)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create product", slog.Any("error", err))
		return 0, fmt.Errorf("error creating product: %w", err)
	}

	s.cache.Delete(listCacheKey)
	l.InfoContext(ctx, "Product created", slog.Int64("product_id", id), slog.Int64("created_by", createdBy))
	return id, nil
}

func (s *ProductServiceImpl) GetAll(ctx context.Context) ([]types.Product, error) {
	if cached, found := s.cache.Get(listCacheKey); found {
		return cached.([]types.Product), nil
	}

	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching products: %w", err)
	}

	s.cache.Set(listCacheKey, products, cache.DefaultExpiration)
	return products, nil
}

func (s *ProductServiceImpl) GetByID(ctx context.Context, id int64) (*types.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("error fetching product: %w", err)
	}
	return p, nil
}

// Update applies a partial update; absent fields keep their stored value.
func (s *ProductServiceImpl) Update(ctx context.Context, id int64, params types.UpdateProductParams) error {
	l := s.logger.With(slog.String("method", "Update"), slog.Int64("product_id", id))

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if params.Price != nil && *params.Price < 0 {
		return ErrNegativePrice
	}
	if params.Stock != nil && *params.Stock < 0 {
		return ErrNegativeStock
	}

	if params.Name != nil {
		current.Name = *params.Name
	}
	if params.Description != nil {
		current.Description = *params.Description
	}
	if params.Price != nil {
		current.Price = *params.Price
	}
	if params.Stock != nil {
		current.Stock = *params.Stock
	}
	if params.IsActive != nil {
		current.IsActive = *params.IsActive
	}

	if err := s.repo.Update(ctx, current); err != nil {
		l.ErrorContext(ctx, "Failed to update product", slog.Any("error", err))
		return fmt.Errorf("error updating product: %w", err)
	}

	s.cache.Delete(listCacheKey)
	l.InfoContext(ctx, "Product updated")
	return nil
}

// Delete soft deletes: the product is marked inactive, never removed.
func (s *ProductServiceImpl) Delete(ctx context.Context, id int64) error {
	l := s.logger.With(slog.String("method", "Delete"), slog.Int64("product_id", id))

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		l.ErrorContext(ctx, "Failed to delete product", slog.Any("error", err))
		return fmt.Errorf("error deleting product: %w", err)
	}

	s.cache.Delete(listCacheKey)
	l.InfoContext(ctx, "Product soft deleted")
	return nil
}
