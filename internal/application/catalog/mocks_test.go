package catalog

import (
	"context"

	"github.com/casecraft/backend/internal/domain/catalog"
	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]catalog.Category, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindRoots(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteSubtree(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) ReorderSiblings(ctx context.Context, orderedIDs []uuid.UUID) error {
	args := m.Called(ctx, orderedIDs)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository
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

// MockOptionGroupRepository is a mock implementation of OptionGroupRepository
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

// MockOptionItemRepository is a mock implementation of OptionItemRepository
type MockOptionItemRepository struct {
	mock.Mock
}

func (m *MockOptionItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.OptionItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.OptionItem), args.Error(1)
}

func (m *MockOptionItemRepository) FindByGroup(ctx context.Context, groupID uuid.UUID) ([]catalog.OptionItem, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).([]catalog.OptionItem), args.Error(1)
}

func (m *MockOptionItemRepository) Save(ctx context.Context, item *catalog.OptionItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockOptionItemRepository) SaveBatch(ctx context.Context, items []catalog.OptionItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockOptionItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
