package catalog

import (
	"github.com/casecraft/backend/internal/domain/shared"
)

// Event types emitted by the catalog domain
const (
	EventTypeCategoryCreated    = "catalog.category.created"
	EventTypeCategoryUpdated    = "catalog.category.updated"
	EventTypeCategoryDeleted    = "catalog.category.deleted"
	EventTypeOptionGroupCreated = "catalog.option_group.created"
	EventTypeOptionGroupUpdated = "catalog.option_group.updated"
	EventTypeOptionGroupDeleted = "catalog.option_group.deleted"
	EventTypeProductCreated     = "catalog.product.created"
	EventTypeProductUpdated     = "catalog.product.updated"
	EventTypeProductDeleted     = "catalog.product.deleted"
)

// CategoryEvent is emitted when a category changes
type CategoryEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewCategoryCreatedEvent creates a CategoryCreated event
func NewCategoryCreatedEvent(c *Category) *CategoryEvent {
	return &CategoryEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoryCreated, "Category", c.ID),
		Name:            c.Name,
	}
}

// NewCategoryUpdatedEvent creates a CategoryUpdated event
func NewCategoryUpdatedEvent(c *Category) *CategoryEvent {
	return &CategoryEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCategoryUpdated, "Category", c.ID),
		Name:            c.Name,
	}
}

// OptionGroupEvent is emitted when an option group changes
type OptionGroupEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
}

// NewOptionGroupCreatedEvent creates an OptionGroupCreated event
func NewOptionGroupCreatedEvent(g *OptionGroup) *OptionGroupEvent {
	return &OptionGroupEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOptionGroupCreated, "OptionGroup", g.ID),
		Code:            g.Code,
	}
}

// NewOptionGroupUpdatedEvent creates an OptionGroupUpdated event
func NewOptionGroupUpdatedEvent(g *OptionGroup) *OptionGroupEvent {
	return &OptionGroupEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOptionGroupUpdated, "OptionGroup", g.ID),
		Code:            g.Code,
	}
}

// ProductEvent is emitted when a product changes; the live catalog cache
// subscribes to these to trigger a full reload.
type ProductEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewProductChangedEvent creates a product change event of the given type
func NewProductChangedEvent(p *Product, eventType string) *ProductEvent {
	return &ProductEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Product", p.ID),
		Name:            p.Name,
	}
}
