package catalog

import (
	"context"
	"testing"

	"github.com/casecraft/backend/internal/domain/catalog"
	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_Create(t *testing.T) {
	t.Run("creates root category", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		categoryRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Category")).Return(nil)

		svc := NewCategoryService(categoryRepo, new(MockProductRepository), nil)

		resp, err := svc.Create(context.Background(), CreateCategoryRequest{Name: "Cases"})

		require.NoError(t, err)
		assert.Equal(t, "Cases", resp.Name)
		assert.Equal(t, 1, resp.LayerLevel)
		assert.Nil(t, resp.ParentID)
		categoryRepo.AssertExpectations(t)
	})

	t.Run("creates child under existing parent", func(t *testing.T) {
		parent, err := catalog.NewCategory("Cases")
		require.NoError(t, err)

		categoryRepo := new(MockCategoryRepository)
		categoryRepo.On("FindByID", mock.Anything, parent.ID).Return(parent, nil)
		categoryRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Category")).Return(nil)

		svc := NewCategoryService(categoryRepo, new(MockProductRepository), nil)

		resp, err := svc.Create(context.Background(), CreateCategoryRequest{Name: "iPhone", ParentID: &parent.ID})

		require.NoError(t, err)
		assert.Equal(t, 2, resp.LayerLevel)
		assert.Equal(t, parent.ID, *resp.ParentID)
	})

	t.Run("rejects unknown parent", func(t *testing.T) {
		parentID := uuid.New()
		categoryRepo := new(MockCategoryRepository)
		categoryRepo.On("FindByID", mock.Anything, parentID).Return(nil, shared.ErrNotFound)

		svc := NewCategoryService(categoryRepo, new(MockProductRepository), nil)

		_, err := svc.Create(context.Background(), CreateCategoryRequest{Name: "iPhone", ParentID: &parentID})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PARENT", domainErr.Code)
	})

	t.Run("rejects fourth level", func(t *testing.T) {
		l1, err := catalog.NewCategory("L1")
		require.NoError(t, err)
		l2, err := catalog.NewChildCategory("L2", l1)
		require.NoError(t, err)
		l3, err := catalog.NewChildCategory("L3", l2)
		require.NoError(t, err)

		categoryRepo := new(MockCategoryRepository)
		categoryRepo.On("FindByID", mock.Anything, l3.ID).Return(l3, nil)

		svc := NewCategoryService(categoryRepo, new(MockProductRepository), nil)

		_, err = svc.Create(context.Background(), CreateCategoryRequest{Name: "L4", ParentID: &l3.ID})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "MAX_DEPTH_EXCEEDED", domainErr.Code)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	t.Run("cascades over the subtree and detaches products", func(t *testing.T) {
		root, err := catalog.NewCategory("Cases")
		require.NoError(t, err)
		child, err := catalog.NewChildCategory("iPhone", root)
		require.NoError(t, err)
		sibling, err := catalog.NewCategory("Accessories")
		require.NoError(t, err)

		categoryRepo := new(MockCategoryRepository)
		categoryRepo.On("FindByID", mock.Anything, root.ID).Return(root, nil)
		categoryRepo.On("FindAll", mock.Anything).Return([]catalog.Category{*root, *child, *sibling}, nil)
		categoryRepo.On("DeleteSubtree", mock.Anything, root).Return(nil)

		productRepo := new(MockProductRepository)
		productRepo.On("CountByCategory", mock.Anything, root.ID).Return(int64(2), nil)
		productRepo.On("CountByCategory", mock.Anything, child.ID).Return(int64(1), nil)

		svc := NewCategoryService(categoryRepo, productRepo, nil)

		result, err := svc.Delete(context.Background(), root.ID)

		require.NoError(t, err)
		assert.Equal(t, 2, result.DeletedCategories)
		assert.Equal(t, int64(3), result.DetachedProducts)
		categoryRepo.AssertExpectations(t)
	})
}

func TestCategoryService_Reorder(t *testing.T) {
	root, err := catalog.NewCategory("Cases")
	require.NoError(t, err)
	a, err := catalog.NewChildCategory("A", root)
	require.NoError(t, err)
	b, err := catalog.NewChildCategory("B", root)
	require.NoError(t, err)

	t.Run("rewrites sibling order", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		categoryRepo.On("FindChildren", mock.Anything, root.ID).Return([]catalog.Category{*a, *b}, nil)
		categoryRepo.On("ReorderSiblings", mock.Anything, []uuid.UUID{b.ID, a.ID}).Return(nil)

		svc := NewCategoryService(categoryRepo, new(MockProductRepository), nil)

		err := svc.Reorder(context.Background(), ReorderCategoriesRequest{
			ParentID:   &root.ID,
			OrderedIDs: []uuid.UUID{b.ID, a.ID},
		})

		require.NoError(t, err)
		categoryRepo.AssertExpectations(t)
	})

	t.Run("rejects incomplete sibling list", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		categoryRepo.On("FindChildren", mock.Anything, root.ID).Return([]catalog.Category{*a, *b}, nil)

		svc := NewCategoryService(categoryRepo, new(MockProductRepository), nil)

		err := svc.Reorder(context.Background(), ReorderCategoriesRequest{
			ParentID:   &root.ID,
			OrderedIDs: []uuid.UUID{a.ID},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ORDER", domainErr.Code)
	})

	t.Run("rejects foreign category in the list", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		categoryRepo.On("FindChildren", mock.Anything, root.ID).Return([]catalog.Category{*a, *b}, nil)

		svc := NewCategoryService(categoryRepo, new(MockProductRepository), nil)

		err := svc.Reorder(context.Background(), ReorderCategoriesRequest{
			ParentID:   &root.ID,
			OrderedIDs: []uuid.UUID{a.ID, uuid.New()},
		})

		require.Error(t, err)
	})
}
