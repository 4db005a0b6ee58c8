package catalog

import (
	"context"
	"errors"

	"github.com/casecraft/backend/internal/domain/catalog"
	"github.com/casecraft/backend/internal/domain/media"
	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ObjectRemover deletes stored objects. The full storage interface lives in
// the media application package; product deletion only needs this slice of it.
type ObjectRemover interface {
	DeleteObject(ctx context.Context, bucket, key string) error
}

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	remover      ObjectRemover
	modelBucket  string
	eventBus     shared.EventBus
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	remover ObjectRemover,
	modelBucket string,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		remover:      remover,
		modelBucket:  modelBucket,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	price := decimal.Zero
	if req.BasePrice != nil {
		price = *req.BasePrice
	}

	product, err := catalog.NewProduct(req.Name, req.Brand, price)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}
	if req.BaseImage != "" || req.MaskImage != "" {
		product.SetImages(req.BaseImage, req.MaskImage)
	}
	if req.Specs != nil {
		product.Specs = req.Specs
	}
	if req.Tags != nil {
		product.Tags = append(catalog.TagList{}, req.Tags...)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, product)

	return ToProductResponse(product), nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List retrieves products matching the filter. When a category is given the
// whole subtree under it matches, not just direct members.
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Brand != "" {
		domainFilter.Filters["brand"] = filter.Brand
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
		if filter.OrderDir != "" {
			domainFilter.OrderDir = filter.OrderDir
		}
	}

	if filter.CategoryID != nil {
		categoryIDs, err := s.subtreeIDs(ctx, *filter.CategoryID)
		if err != nil {
			return nil, 0, err
		}
		products, err := s.productRepo.FindByCategory(ctx, categoryIDs, domainFilter)
		if err != nil {
			return nil, 0, err
		}
		return ToProductResponses(products), int64(len(products)), nil
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToProductResponses(products), total, nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	brand := product.Brand
	if req.Brand != nil {
		brand = *req.Brand
	}
	price := product.BasePrice
	if req.BasePrice != nil {
		price = *req.BasePrice
	}

	if err := product.Update(name, brand, price, req.Specs, req.Tags); err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if err := s.checkCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}
	if req.BaseImage != nil || req.MaskImage != nil {
		base := product.BaseImage
		if req.BaseImage != nil {
			base = *req.BaseImage
		}
		mask := product.MaskImage
		if req.MaskImage != nil {
			mask = *req.MaskImage
		}
		product.SetImages(base, mask)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, product)

	return ToProductResponse(product), nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.eventBus != nil {
		_ = s.eventBus.Publish(ctx, catalog.NewProductChangedEvent(product, catalog.EventTypeProductDeleted))
	}
	return nil
}

// DeleteImage clears the requested image columns and removes the underlying
// objects from storage. A failed object delete is logged, not surfaced: the
// row is already updated and the janitor will collect the stray file.
func (s *ProductService) DeleteImage(ctx context.Context, id uuid.UUID, req DeleteProductImageRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cleared, err := product.ClearImages(req.Target)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	for _, url := range cleared {
		key := media.FilenameFromURL(url)
		if key == "" {
			continue
		}
		if err := s.remover.DeleteObject(ctx, s.modelBucket, key); err != nil {
			s.logger.Warn("failed to delete product image object",
				zap.String("product_id", id.String()),
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
	s.publish(ctx, product)

	return ToProductResponse(product), nil
}

func (s *ProductService) checkCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		return err
	}
	return nil
}

// subtreeIDs resolves a category id to itself plus all descendant ids
func (s *ProductService) subtreeIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	root, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	all, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return collectSubtreeIDs(root, all), nil
}

func (s *ProductService) publish(ctx context.Context, product *catalog.Product) {
	if s.eventBus == nil {
		return
	}
	_ = s.eventBus.Publish(ctx, product.PullDomainEvents()...)
}
