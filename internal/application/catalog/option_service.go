package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/casecraft/backend/internal/domain/catalog"
	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OptionService handles the option catalog: groups, items, duplication and
// the storefront-facing visibility and quote evaluations.
type OptionService struct {
	groupRepo   catalog.OptionGroupRepository
	itemRepo    catalog.OptionItemRepository
	productRepo catalog.ProductRepository
	eventBus    shared.EventBus
}

// NewOptionService creates a new OptionService
func NewOptionService(
	groupRepo catalog.OptionGroupRepository,
	itemRepo catalog.OptionItemRepository,
	productRepo catalog.ProductRepository,
	eventBus shared.EventBus,
) *OptionService {
	return &OptionService{
		groupRepo:   groupRepo,
		itemRepo:    itemRepo,
		productRepo: productRepo,
		eventBus:    eventBus,
	}
}

// CreateGroup creates an option group, optionally with initial items
func (s *OptionService) CreateGroup(ctx context.Context, req CreateOptionGroupRequest) (*OptionGroupResponse, error) {
	exists, err := s.groupRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Option group with this code already exists")
	}

	group, err := catalog.NewOptionGroup(req.Code, req.Name, req.UIConfig.ToUIConfig())
	if err != nil {
		return nil, err
	}
	group.Thumbnail = req.Thumbnail
	if req.PriceModifier != nil {
		group.PriceModifier = *req.PriceModifier
	}
	if len(req.SubAttributes) > 0 {
		if err := group.ReplaceSubAttributes(req.SubAttributes); err != nil {
			return nil, err
		}
	}

	items, err := buildItems(group, req.Items)
	if err != nil {
		return nil, err
	}

	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := s.itemRepo.SaveBatch(ctx, items); err != nil {
			return nil, err
		}
		group.Items = items
	}
	s.publish(ctx, group)

	return ToOptionGroupResponse(group), nil
}

// GetGroup retrieves an option group with its items
func (s *OptionService) GetGroup(ctx context.Context, id uuid.UUID) (*OptionGroupResponse, error) {
	group, err := s.groupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOptionGroupResponse(group), nil
}

// ListGroups retrieves option groups matching the filter
func (s *OptionService) ListGroups(ctx context.Context, filter OptionGroupListFilter) ([]OptionGroupResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}

	groups, err := s.groupRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.groupRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OptionGroupResponse, len(groups))
	for i := range groups {
		responses[i] = *ToOptionGroupResponse(&groups[i])
	}
	return responses, total, nil
}

// UpdateGroup updates an option group's metadata and sub-attributes
func (s *OptionService) UpdateGroup(ctx context.Context, id uuid.UUID, req UpdateOptionGroupRequest) (*OptionGroupResponse, error) {
	group, err := s.groupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	price := group.PriceModifier
	if req.PriceModifier != nil {
		price = *req.PriceModifier
	}
	if err := group.Update(req.Name, req.Thumbnail, price, req.UIConfig.ToUIConfig()); err != nil {
		return nil, err
	}
	if req.SubAttributes != nil {
		if err := group.ReplaceSubAttributes(req.SubAttributes); err != nil {
			return nil, err
		}
	}

	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, err
	}
	s.publish(ctx, group)

	return ToOptionGroupResponse(group), nil
}

// ReplaceSubAttributes replaces a group's sub-attribute set wholesale
func (s *OptionService) ReplaceSubAttributes(ctx context.Context, id uuid.UUID, attrs catalog.SubAttributes) (*OptionGroupResponse, error) {
	group, err := s.groupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := group.ReplaceSubAttributes(attrs); err != nil {
		return nil, err
	}

	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, err
	}
	s.publish(ctx, group)

	return ToOptionGroupResponse(group), nil
}

// DeleteGroup deletes an option group and its items. Groups whose dependency
// points at the deleted group are left untouched; the dangling reference
// hides them until it is repointed.
func (s *OptionService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	group, err := s.groupRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.groupRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.eventBus != nil {
		event := &catalog.OptionGroupEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(catalog.EventTypeOptionGroupDeleted, "OptionGroup", group.ID),
			Code:            group.Code,
		}
		_ = s.eventBus.Publish(ctx, event)
	}
	return nil
}

// Duplicate deep-copies a group and its items under a new code. The group and
// its items are inserted in two steps without a shared transaction: when the
// item insert fails the new group is left behind and DUPLICATE_PARTIAL is
// returned so the operator can retry or clean up.
func (s *OptionService) Duplicate(ctx context.Context, id uuid.UUID, req DuplicateOptionGroupRequest) (*OptionGroupResponse, error) {
	source, err := s.groupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.groupRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Option group with this code already exists")
	}

	clone, items, err := source.Clone(req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.groupRepo.Save(ctx, clone); err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := s.itemRepo.SaveBatch(ctx, items); err != nil {
			return nil, shared.NewDomainError("DUPLICATE_PARTIAL",
				fmt.Sprintf("Group %s was created but its items were not copied: %v", clone.Code, err))
		}
	}
	clone.Items = items
	s.publish(ctx, clone)

	return ToOptionGroupResponse(clone), nil
}

// AddItem adds an item to a group. Names are unique within the group,
// compared case- and whitespace-insensitively.
func (s *OptionService) AddItem(ctx context.Context, groupID uuid.UUID, req CreateOptionItemRequest) (*OptionItemResponse, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PARENT", "Option group not found")
		}
		return nil, err
	}

	if err := s.checkItemName(ctx, group.ID, uuid.Nil, req.Name); err != nil {
		return nil, err
	}

	item, err := newItem(group.ID, req)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	if s.eventBus != nil {
		_ = s.eventBus.Publish(ctx, catalog.NewOptionGroupUpdatedEvent(group))
	}

	resp := ToOptionItemResponse(item)
	return &resp, nil
}

// UpdateItem updates an option item
func (s *OptionService) UpdateItem(ctx context.Context, itemID uuid.UUID, req UpdateOptionItemRequest) (*OptionItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := s.checkItemName(ctx, item.ParentID, item.ID, *req.Name); err != nil {
			return nil, err
		}
		item.Name = *req.Name
	}
	if req.PriceModifier != nil {
		item.PriceModifier = *req.PriceModifier
	}
	if req.ColorHex != nil {
		if err := item.SetColor(*req.ColorHex); err != nil {
			return nil, err
		}
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.RequiredTags != nil {
		item.SetRequiredTags(req.RequiredTags)
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	resp := ToOptionItemResponse(item)
	return &resp, nil
}

// DeleteItem deletes an option item
func (s *OptionService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	if _, err := s.itemRepo.FindByID(ctx, itemID); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, itemID)
}

// VisibleOptions evaluates which option groups and items the design tool
// should show for a product, given the customer's current selections.
func (s *OptionService) VisibleOptions(ctx context.Context, productID uuid.UUID, req VisibleOptionsRequest) ([]OptionBucketResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	groups, err := s.allGroups(ctx)
	if err != nil {
		return nil, err
	}

	buckets := catalog.EvaluateVisibility(groups, product.Tags, catalog.Selection(req.Selections))
	return ToOptionBucketResponses(buckets), nil
}

// Quote computes the price of a selection set over a product's base price
func (s *OptionService) Quote(ctx context.Context, productID uuid.UUID, req QuoteRequest) (*QuoteResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	groups, err := s.allGroups(ctx)
	if err != nil {
		return nil, err
	}

	total := catalog.QuoteTotal(product.BasePrice, groups,
		catalog.Selection(req.Selections), catalog.SubSelection(req.SubSelections))

	return &QuoteResponse{
		ProductID: product.ID,
		BasePrice: product.BasePrice,
		Total:     total,
	}, nil
}

func (s *OptionService) allGroups(ctx context.Context) ([]catalog.OptionGroup, error) {
	filter := shared.Filter{OrderBy: "created_at", OrderDir: "asc"}
	return s.groupRepo.FindAll(ctx, filter)
}

// checkItemName enforces per-group item name uniqueness; excludeID skips the
// item being renamed.
func (s *OptionService) checkItemName(ctx context.Context, groupID, excludeID uuid.UUID, name string) error {
	siblings, err := s.itemRepo.FindByGroup(ctx, groupID)
	if err != nil {
		return err
	}
	normalized := catalog.NormalizeItemName(name)
	for i := range siblings {
		if siblings[i].ID == excludeID {
			continue
		}
		if catalog.NormalizeItemName(siblings[i].Name) == normalized {
			return shared.NewDomainError("DUPLICATE_ITEM_NAME", fmt.Sprintf("Item %q already exists in this group", name))
		}
	}
	return nil
}

func buildItems(group *catalog.OptionGroup, reqs []CreateOptionItemRequest) ([]catalog.OptionItem, error) {
	items := make([]catalog.OptionItem, 0, len(reqs))
	seen := make(map[string]struct{}, len(reqs))
	for _, r := range reqs {
		normalized := catalog.NormalizeItemName(r.Name)
		if _, dup := seen[normalized]; dup {
			return nil, shared.NewDomainError("DUPLICATE_ITEM_NAME", fmt.Sprintf("Item %q already exists in this group", r.Name))
		}
		seen[normalized] = struct{}{}

		item, err := newItem(group.ID, r)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

func newItem(groupID uuid.UUID, req CreateOptionItemRequest) (*catalog.OptionItem, error) {
	price := decimal.Zero
	if req.PriceModifier != nil {
		price = *req.PriceModifier
	}
	item, err := catalog.NewOptionItem(groupID, req.Name, price)
	if err != nil {
		return nil, err
	}
	if err := item.SetColor(req.ColorHex); err != nil {
		return nil, err
	}
	item.ImageURL = req.ImageURL
	if len(req.RequiredTags) > 0 {
		item.SetRequiredTags(req.RequiredTags)
	}
	return item, nil
}

func (s *OptionService) publish(ctx context.Context, group *catalog.OptionGroup) {
	if s.eventBus == nil {
		return
	}
	_ = s.eventBus.Publish(ctx, group.PullDomainEvents()...)
}
