package design

import (
	"context"

	"github.com/casecraft/backend/internal/domain/catalog"
	"github.com/casecraft/backend/internal/domain/design"
	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DesignService handles saved customizations. The quoted price is computed
// server-side at save time from the current catalog, then frozen on the row.
type DesignService struct {
	designRepo  design.CustomDesignRepository
	productRepo catalog.ProductRepository
	groupRepo   catalog.OptionGroupRepository
	eventBus    shared.EventBus
}

// NewDesignService creates a new DesignService
func NewDesignService(
	designRepo design.CustomDesignRepository,
	productRepo catalog.ProductRepository,
	groupRepo catalog.OptionGroupRepository,
	eventBus shared.EventBus,
) *DesignService {
	return &DesignService{
		designRepo:  designRepo,
		productRepo: productRepo,
		groupRepo:   groupRepo,
		eventBus:    eventBus,
	}
}

// Save snapshots a customization
func (s *DesignService) Save(ctx context.Context, req SaveDesignRequest) (*DesignResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	groups, err := s.groupRepo.FindAll(ctx, shared.Filter{OrderBy: "created_at", OrderDir: "asc"})
	if err != nil {
		return nil, err
	}

	total := catalog.QuoteTotal(product.BasePrice, groups,
		catalog.Selection(req.Selections), catalog.SubSelection(req.SubSelections))

	d, err := design.NewCustomDesign(
		req.Name,
		product.ID,
		design.SelectionSnapshot(req.Selections),
		req.Canvas,
		req.PreviewImage,
		total,
	)
	if err != nil {
		return nil, err
	}
	d.CustomerEmail = req.CustomerEmail

	if err := s.designRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	if s.eventBus != nil {
		_ = s.eventBus.Publish(ctx, d.PullDomainEvents()...)
	}

	return ToDesignResponse(d), nil
}

// GetByID retrieves a saved design
func (s *DesignService) GetByID(ctx context.Context, id uuid.UUID) (*DesignResponse, error) {
	d, err := s.designRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDesignResponse(d), nil
}

// List retrieves saved designs, optionally scoped to one product
func (s *DesignService) List(ctx context.Context, filter DesignListFilter) ([]DesignResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}

	var designs []design.CustomDesign
	var err error
	if filter.ProductID != nil {
		designs, err = s.designRepo.FindByProduct(ctx, *filter.ProductID, domainFilter)
	} else {
		designs, err = s.designRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.designRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]DesignResponse, len(designs))
	for i := range designs {
		responses[i] = *ToDesignResponse(&designs[i])
	}
	return responses, total, nil
}

// Rename renames a saved design; everything else on the row is frozen
func (s *DesignService) Rename(ctx context.Context, id uuid.UUID, req RenameDesignRequest) (*DesignResponse, error) {
	d, err := s.designRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := d.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.designRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	return ToDesignResponse(d), nil
}

// Delete deletes a saved design. The preview object stays in the bucket;
// the janitor collects it once nothing references it.
func (s *DesignService) Delete(ctx context.Context, id uuid.UUID) error {
	d, err := s.designRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.designRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.eventBus != nil {
		event := &design.DesignEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(design.EventTypeDesignDeleted, "CustomDesign", d.ID),
			ProductID:       d.ProductID,
		}
		_ = s.eventBus.Publish(ctx, event)
	}
	return nil
}
