package catalog

import (
	"context"
	"errors"

	"github.com/casecraft/backend/internal/domain/catalog"
	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
	eventBus     shared.EventBus
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
	eventBus shared.EventBus,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		eventBus:     eventBus,
	}
}

// Create creates a new category, as a root or under a parent
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	var category *catalog.Category
	var err error

	if req.ParentID != nil {
		parent, err := s.categoryRepo.FindByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}

		category, err = catalog.NewChildCategory(req.Name, parent)
		if err != nil {
			return nil, err
		}
	} else {
		category, err = catalog.NewCategory(req.Name)
		if err != nil {
			return nil, err
		}
	}

	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	s.publish(ctx, category)

	return ToCategoryResponse(category), nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// GetTree retrieves all categories as a nested tree
func (s *CategoryService) GetTree(ctx context.Context) ([]CategoryTreeNode, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToCategoryTree(catalog.BuildCategoryTree(categories)), nil
}

// GetChildren retrieves direct children of a category, in sibling order
func (s *CategoryService) GetChildren(ctx context.Context, parentID uuid.UUID) ([]CategoryResponse, error) {
	children, err := s.categoryRepo.FindChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(children), nil
}

// GetRoots retrieves all root categories, in sibling order
func (s *CategoryService) GetRoots(ctx context.Context) ([]CategoryResponse, error) {
	roots, err := s.categoryRepo.FindRoots(ctx)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(roots), nil
}

// Update updates a category's name and/or sort order
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := category.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	s.publish(ctx, category)

	return ToCategoryResponse(category), nil
}

// Reorder rewrites the sort order of one sibling list. Every sibling of the
// given parent must appear in the ordered list exactly once.
func (s *CategoryService) Reorder(ctx context.Context, req ReorderCategoriesRequest) error {
	var siblings []catalog.Category
	var err error
	if req.ParentID != nil {
		siblings, err = s.categoryRepo.FindChildren(ctx, *req.ParentID)
	} else {
		siblings, err = s.categoryRepo.FindRoots(ctx)
	}
	if err != nil {
		return err
	}

	if len(req.OrderedIDs) != len(siblings) {
		return shared.NewDomainError("INVALID_ORDER", "Ordered ids must cover every sibling exactly once")
	}
	known := make(map[uuid.UUID]struct{}, len(siblings))
	for _, c := range siblings {
		known[c.ID] = struct{}{}
	}
	for _, id := range req.OrderedIDs {
		if _, ok := known[id]; !ok {
			return shared.NewDomainError("INVALID_ORDER", "Ordered ids contain a category that is not a sibling")
		}
		delete(known, id)
	}

	return s.categoryRepo.ReorderSiblings(ctx, req.OrderedIDs)
}

// Delete deletes a category together with all of its descendants. Products
// referencing any deleted category are detached, not deleted.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) (*DeleteCategoryResult, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	all, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	subtree := collectSubtreeIDs(category, all)

	var detached int64
	for _, cid := range subtree {
		n, err := s.productRepo.CountByCategory(ctx, cid)
		if err != nil {
			return nil, err
		}
		detached += n
	}

	if err := s.categoryRepo.DeleteSubtree(ctx, category); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		event := &catalog.CategoryEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(catalog.EventTypeCategoryDeleted, "Category", category.ID),
			Name:            category.Name,
		}
		_ = s.eventBus.Publish(ctx, event)
	}

	return &DeleteCategoryResult{
		DeletedCategories: len(subtree),
		DetachedProducts:  detached,
	}, nil
}

// collectSubtreeIDs returns the category's id plus all descendant ids,
// resolved via the materialized path.
func collectSubtreeIDs(root *catalog.Category, all []catalog.Category) []uuid.UUID {
	ids := []uuid.UUID{root.ID}
	for i := range all {
		if all[i].ID == root.ID {
			continue
		}
		if root.IsAncestorOf(&all[i]) {
			ids = append(ids, all[i].ID)
		}
	}
	return ids
}

func (s *CategoryService) publish(ctx context.Context, category *catalog.Category) {
	if s.eventBus == nil {
		return
	}
	_ = s.eventBus.Publish(ctx, category.PullDomainEvents()...)
}
