package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UIConfigSchemaVersion is the current ui_config schema version. Bump when
// the stored shape changes so old rows can be migrated explicitly instead of
// drifting silently.
const UIConfigSchemaVersion = 1

// Display types supported by the design tool for an option group
const (
	DisplayTypeSwatch    = "swatch"
	DisplayTypeThumbnail = "thumbnail"
	DisplayTypeDropdown  = "dropdown"
)

// UIConfig holds presentation and dependency metadata for an option group.
// It is persisted as a JSONB column.
type UIConfig struct {
	SchemaVersion     int        `json:"schema_version"`
	Step              int        `json:"step"`
	DisplayType       string     `json:"display_type"`
	Category          string     `json:"category"`
	Description       string     `json:"description"`
	DependsOnGroupID  *uuid.UUID `json:"depends_on_group_id,omitempty"`
	DependsOnOptionID *uuid.UUID `json:"depends_on_option_id,omitempty"`
	SortOrder         int        `json:"sort_order"`
	CategorySortOrder int        `json:"category_sort_order"`
}

// Value implements driver.Valuer for JSONB storage
func (c UIConfig) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB storage
func (c *UIConfig) Scan(value interface{}) error {
	if value == nil {
		*c = UIConfig{SchemaVersion: UIConfigSchemaVersion, Step: 1}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return errors.New("unsupported type for UIConfig")
	}
}

// SubAttributeOption is a priced value of a sub-attribute
type SubAttributeOption struct {
	Name          string          `json:"name"`
	PriceModifier decimal.Decimal `json:"price_modifier"`
	Image         string          `json:"image,omitempty"`
}

// Sub-attribute input kinds
const (
	SubAttributeTypeSelect = "select"
	SubAttributeTypeText   = "text"
)

// SubAttribute is a secondary, group-scoped configurable dimension
// (e.g. a magnetic variant) with its own priced options.
type SubAttribute struct {
	ID      uuid.UUID            `json:"id"`
	Name    string               `json:"name"`
	Type    string               `json:"type"`
	Options []SubAttributeOption `json:"options"`
}

// SubAttributes is the JSONB-persisted list of sub-attributes
type SubAttributes []SubAttribute

// Value implements driver.Valuer for JSONB storage
func (s SubAttributes) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal(SubAttributes{})
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB storage
func (s *SubAttributes) Scan(value interface{}) error {
	if value == nil {
		*s = SubAttributes{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for SubAttributes")
	}
}

// OptionGroup is a top-level configurable attribute of a product
// (e.g. case type). It is the aggregate root for the option catalog;
// its items are loaded alongside it for evaluation.
type OptionGroup struct {
	shared.BaseAggregateRoot
	Code          string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string          `gorm:"type:varchar(100);not null"`
	PriceModifier decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Thumbnail     string          `gorm:"type:text"`
	UIConfig      UIConfig        `gorm:"type:jsonb"`
	SubAttributes SubAttributes   `gorm:"type:jsonb"`
	Items         []OptionItem    `gorm:"foreignKey:ParentID"`
}

// TableName returns the table name for GORM
func (OptionGroup) TableName() string {
	return "option_groups"
}

// NewOptionGroup creates a new option group
func NewOptionGroup(code, name string, cfg UIConfig) (*OptionGroup, error) {
	if err := validateGroupCode(code); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Option group name cannot be empty")
	}
	if err := validateUIConfig(cfg); err != nil {
		return nil, err
	}
	cfg.SchemaVersion = UIConfigSchemaVersion

	group := &OptionGroup{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		PriceModifier:     decimal.Zero,
		UIConfig:          cfg,
		SubAttributes:     SubAttributes{},
	}

	group.AddDomainEvent(NewOptionGroupCreatedEvent(group))

	return group, nil
}

// Update updates the group's basic information and UI configuration
func (g *OptionGroup) Update(name, thumbnail string, priceModifier decimal.Decimal, cfg UIConfig) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Option group name cannot be empty")
	}
	if err := validateUIConfig(cfg); err != nil {
		return err
	}
	cfg.SchemaVersion = UIConfigSchemaVersion

	g.Name = name
	g.Thumbnail = thumbnail
	g.PriceModifier = priceModifier
	g.UIConfig = cfg
	g.UpdatedAt = time.Now()
	g.IncrementVersion()

	g.AddDomainEvent(NewOptionGroupUpdatedEvent(g))

	return nil
}

// ReplaceSubAttributes replaces the group's sub-attribute set. Option names
// must be unique within each attribute.
func (g *OptionGroup) ReplaceSubAttributes(attrs SubAttributes) error {
	for i := range attrs {
		if attrs[i].Name == "" {
			return shared.NewDomainError("INVALID_SUB_ATTRIBUTE", "Sub-attribute name cannot be empty")
		}
		if attrs[i].Type != SubAttributeTypeSelect && attrs[i].Type != SubAttributeTypeText {
			return shared.NewDomainError("INVALID_SUB_ATTRIBUTE", fmt.Sprintf("Unknown sub-attribute type %q", attrs[i].Type))
		}
		if attrs[i].ID == uuid.Nil {
			attrs[i].ID = uuid.New()
		}
		seen := make(map[string]struct{}, len(attrs[i].Options))
		for _, opt := range attrs[i].Options {
			if opt.Name == "" {
				return shared.NewDomainError("INVALID_SUB_ATTRIBUTE", "Sub-attribute option name cannot be empty")
			}
			if _, dup := seen[opt.Name]; dup {
				return shared.NewDomainError("DUPLICATE_OPTION_NAME", fmt.Sprintf("Option %q appears more than once in sub-attribute %q", opt.Name, attrs[i].Name))
			}
			seen[opt.Name] = struct{}{}
		}
	}

	g.SubAttributes = attrs
	g.UpdatedAt = time.Now()
	g.IncrementVersion()

	g.AddDomainEvent(NewOptionGroupUpdatedEvent(g))

	return nil
}

// Clone deep-copies the group and its items under fresh identifiers.
// The returned items carry the new group's id as their parent. Persisting
// the pair is the caller's concern; there is no transactional guarantee.
func (g *OptionGroup) Clone(code, name string) (*OptionGroup, []OptionItem, error) {
	if err := validateGroupCode(code); err != nil {
		return nil, nil, err
	}
	if name == "" {
		name = g.Name
	}

	cfg := g.UIConfig
	if cfg.DependsOnGroupID != nil {
		id := *cfg.DependsOnGroupID
		cfg.DependsOnGroupID = &id
	}
	if cfg.DependsOnOptionID != nil {
		id := *cfg.DependsOnOptionID
		cfg.DependsOnOptionID = &id
	}

	clone := &OptionGroup{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		PriceModifier:     g.PriceModifier,
		Thumbnail:         g.Thumbnail,
		UIConfig:          cfg,
		SubAttributes:     make(SubAttributes, len(g.SubAttributes)),
	}

	for i, attr := range g.SubAttributes {
		copied := SubAttribute{
			ID:      uuid.New(),
			Name:    attr.Name,
			Type:    attr.Type,
			Options: make([]SubAttributeOption, len(attr.Options)),
		}
		copy(copied.Options, attr.Options)
		clone.SubAttributes[i] = copied
	}

	items := make([]OptionItem, len(g.Items))
	for i := range g.Items {
		items[i] = g.Items[i].cloneFor(clone.ID)
	}

	clone.AddDomainEvent(NewOptionGroupCreatedEvent(clone))

	return clone, items, nil
}

// validateUIConfig validates presentation metadata
func validateUIConfig(cfg UIConfig) error {
	if cfg.Step < 1 {
		return shared.NewDomainError("INVALID_STEP", "Option group step must be at least 1")
	}
	switch cfg.DisplayType {
	case "", DisplayTypeSwatch, DisplayTypeThumbnail, DisplayTypeDropdown:
	default:
		return shared.NewDomainError("INVALID_DISPLAY_TYPE", fmt.Sprintf("Unknown display type %q", cfg.DisplayType))
	}
	if cfg.DependsOnOptionID != nil && cfg.DependsOnGroupID == nil {
		return shared.NewDomainError("INVALID_DEPENDENCY", "depends_on_option_id requires depends_on_group_id")
	}
	return nil
}

// validateGroupCode validates the option group code
func validateGroupCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Option group code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Option group code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Option group code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
