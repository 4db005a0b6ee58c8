package design

import (
	"context"
	"testing"

	"github.com/casecraft/backend/internal/domain/catalog"
	"github.com/casecraft/backend/internal/domain/design"
	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDesignRepository is a mock implementation of CustomDesignRepository
type MockDesignRepository struct {
	mock.Mock
}

func (m *MockDesignRepository) FindByID(ctx context.Context, id uuid.UUID) (*design.CustomDesign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*design.CustomDesign), args.Error(1)
}

func (m *MockDesignRepository) FindAll(ctx context.Context, filter shared.Filter) ([]design.CustomDesign, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]design.CustomDesign), args.Error(1)
}

func (m *MockDesignRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]design.CustomDesign, error) {
	args := m.Called(ctx, productID, filter)
	return args.Get(0).([]design.CustomDesign), args.Error(1)
}

func (m *MockDesignRepository) Save(ctx context.Context, d *design.CustomDesign) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDesignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDesignRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryIDs []uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryIDs, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

// MockOptionGroupRepository is a mock implementation of catalog.OptionGroupRepository
type MockOptionGroupRepository struct {
	mock.Mock
}

func (m *MockOptionGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.OptionGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.OptionGroup), args.Error(1)
}

func (m *MockOptionGroupRepository) FindByCode(ctx context.Context, code string) (*catalog.OptionGroup, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.OptionGroup), args.Error(1)
}

func (m *MockOptionGroupRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.OptionGroup, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.OptionGroup), args.Error(1)
}

func (m *MockOptionGroupRepository) Save(ctx context.Context, group *catalog.OptionGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockOptionGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOptionGroupRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOptionGroupRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func TestDesignService_Save(t *testing.T) {
	t.Run("freezes the computed quote on the row", func(t *testing.T) {
		product, err := catalog.NewProduct("iPhone 15 case", "Apple", decimal.NewFromInt(990))
		require.NoError(t, err)

		group, err := catalog.NewOptionGroup("CASE-TYPE", "Case Type", catalog.UIConfig{Step: 1})
		require.NoError(t, err)
		premium, err := catalog.NewOptionItem(group.ID, "Premium", decimal.NewFromInt(300))
		require.NoError(t, err)
		group.Items = append(group.Items, *premium)

		productRepo := new(MockProductRepository)
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		groupRepo := new(MockOptionGroupRepository)
		groupRepo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).
			Return([]catalog.OptionGroup{*group}, nil)

		var saved *design.CustomDesign
		designRepo := new(MockDesignRepository)
		designRepo.On("Save", mock.Anything, mock.AnythingOfType("*design.CustomDesign")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*design.CustomDesign) }).
			Return(nil)

		svc := NewDesignService(designRepo, productRepo, groupRepo, nil)

		resp, err := svc.Save(context.Background(), SaveDesignRequest{
			Name:       "My case",
			ProductID:  product.ID,
			Selections: map[uuid.UUID]uuid.UUID{group.ID: premium.ID},
		})

		require.NoError(t, err)
		assert.True(t, resp.QuotedPrice.Equal(decimal.NewFromInt(1290)), "got %s", resp.QuotedPrice)
		require.NotNil(t, saved)
		assert.Equal(t, premium.ID, saved.Selections[group.ID])
	})

	t.Run("fails when the product does not exist", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		productRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		svc := NewDesignService(new(MockDesignRepository), productRepo, new(MockOptionGroupRepository), nil)

		_, err := svc.Save(context.Background(), SaveDesignRequest{
			Name:      "My case",
			ProductID: uuid.New(),
		})

		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestDesignService_Rename(t *testing.T) {
	d, err := design.NewCustomDesign("Old", uuid.New(), nil, nil, "", decimal.Zero)
	require.NoError(t, err)

	designRepo := new(MockDesignRepository)
	designRepo.On("FindByID", mock.Anything, d.ID).Return(d, nil)
	designRepo.On("Save", mock.Anything, d).Return(nil)

	svc := NewDesignService(designRepo, new(MockProductRepository), new(MockOptionGroupRepository), nil)

	resp, err := svc.Rename(context.Background(), d.ID, RenameDesignRequest{Name: "New"})

	require.NoError(t, err)
	assert.Equal(t, "New", resp.Name)
}
