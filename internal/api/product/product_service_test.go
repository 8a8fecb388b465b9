package product

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bakeryhq/bakery-admin/internal/types"
)

type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, p *types.Product) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepo) GetAll(ctx context.Context) ([]types.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Product), args.Error(1)
}

func (m *MockProductRepo) GetByID(ctx context.Context, id int64) (*types.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Product), args.Error(1)
}

func (m *MockProductRepo) Update(ctx context.Context, p *types.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepo) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(t *testing.T) (*ProductServiceImpl, *MockProductRepo) {
	t.Helper()
	repo := new(MockProductRepo)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewProductService(repo, logger), repo
}

func TestProductService_Create_Validation(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, types.CreateProductParams{Price: 2.5}, 1)
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Create(ctx, types.CreateProductParams{Name: "Croissant", Price: -1}, 1)
	assert.ErrorIs(t, err, ErrNegativePrice)

	_, err = svc.Create(ctx, types.CreateProductParams{Name: "Croissant", Price: 2.5, Stock: -3}, 1)
	assert.ErrorIs(t, err, ErrNegativeStock)

	repo.AssertNotCalled(t, "Create")
}

func TestProductService_Create(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(p *types.Product) bool {
		return p.Name == "Croissant" && p.IsActive && p.CreatedBy != nil && *p.CreatedBy == int64(7)
	})).Return(int64(11), nil).Once()

	id, err := svc.Create(ctx, types.CreateProductParams{
		Name:        "Croissant",
		Description: "Butter croissant",
		Price:       2.5,
		Stock:       40,
	}, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	repo.AssertExpectations(t)
}

// Back-to-back list calls hit the store once; the second is served from the
// cache.
func TestProductService_GetAll_Cached(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	products := []types.Product{{ID: 1, Name: "Croissant", Price: 2.5, IsActive: true}}
	repo.On("GetAll", ctx).Return(products, nil).Once()

	first, err := svc.GetAll(ctx)
	require.NoError(t, err)
	second, err := svc.GetAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, products, first)
	assert.Equal(t, products, second)
	repo.AssertNumberOfCalls(t, "GetAll", 1)
}

func TestProductService_MutationInvalidatesListCache(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	stale := []types.Product{{ID: 1, Name: "Croissant"}}
	fresh := []types.Product{{ID: 1, Name: "Croissant"}, {ID: 2, Name: "Baguette"}}
	repo.On("GetAll", ctx).Return(stale, nil).Once()
	repo.On("GetAll", ctx).Return(fresh, nil).Once()
	repo.On("Create", ctx, mock.Anything).Return(int64(2), nil).Once()

	_, err := svc.GetAll(ctx)
	require.NoError(t, err)

	_, err = svc.Create(ctx, types.CreateProductParams{Name: "Baguette", Price: 3}, 7)
	require.NoError(t, err)

	got, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh, got)
	repo.AssertNumberOfCalls(t, "GetAll", 2)
}

func TestProductService_GetByID_NotFound(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(99)).Return(nil, types.ErrNotFound).Once()

	p, err := svc.GetByID(ctx, 99)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestProductService_Update_Partial(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	current := &types.Product{
		ID:          1,
		Name:        "Croissant",
		Description: "Butter croissant",
		Price:       2.5,
		Stock:       40,
		IsActive:    true,
	}
	repo.On("GetByID", ctx, int64(1)).Return(current, nil).Once()
	repo.On("Update", ctx, mock.MatchedBy(func(p *types.Product) bool {
		// Only the price changes; everything else keeps its stored value.
		return p.ID == 1 && p.Name == "Croissant" && p.Price == 2.75 && p.Stock == 40 && p.IsActive
	})).Return(nil).Once()

	price := 2.75
	require.NoError(t, svc.Update(ctx, 1, types.UpdateProductParams{Price: &price}))
	repo.AssertExpectations(t)
}

func TestProductService_Update_Validation(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	current := &types.Product{ID: 1, Name: "Croissant", Price: 2.5, IsActive: true}
	repo.On("GetByID", ctx, int64(1)).Return(current, nil)

	price := -1.0
	assert.ErrorIs(t, svc.Update(ctx, 1, types.UpdateProductParams{Price: &price}), ErrNegativePrice)

	stock := -5
	assert.ErrorIs(t, svc.Update(ctx, 1, types.UpdateProductParams{Stock: &stock}), ErrNegativeStock)

	repo.AssertNotCalled(t, "Update")
}

func TestProductService_Update_NotFound(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(99)).Return(nil, types.ErrNotFound).Once()

	price := 3.0
	assert.ErrorIs(t, svc.Update(ctx, 99, types.UpdateProductParams{Price: &price}), types.ErrNotFound)
	repo.AssertNotCalled(t, "Update")
}

func TestProductService_Delete_Soft(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(1)).
		Return(&types.Product{ID: 1, Name: "Croissant", IsActive: true}, nil).Once()
	repo.On("SoftDelete", ctx, int64(1)).Return(nil).Once()

	require.NoError(t, svc.Delete(ctx, 1))
	repo.AssertExpectations(t)
}

func TestProductService_Delete_NotFound(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(99)).Return(nil, types.ErrNotFound).Once()

	assert.ErrorIs(t, svc.Delete(ctx, 99), types.ErrNotFound)
	repo.AssertNotCalled(t, "SoftDelete")
}
