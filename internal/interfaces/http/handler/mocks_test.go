package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/casecraft/backend/internal/domain/catalog"
	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/casecraft/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
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

// MockOptionItemRepository is a mock implementation of catalog.OptionItemRepository
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

// apiEnvelope mirrors dto.Response but keeps the data raw so each test can
// decode it into the shape it expects
type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    json.RawMessage `json:"meta"`
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var resp apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// newHandlerTestGroup builds an option group with priced items for route tests
func newHandlerTestGroup(t *testing.T, code string, itemNames ...string) *catalog.OptionGroup {
	t.Helper()
	group, err := catalog.NewOptionGroup(code, code, catalog.UIConfig{Step: 1})
	require.NoError(t, err)
	for _, name := range itemNames {
		item, err := catalog.NewOptionItem(group.ID, name, decimal.NewFromInt(100))
		require.NoError(t, err)
		group.Items = append(group.Items, *item)
	}
	group.ClearDomainEvents()
	return group
}
