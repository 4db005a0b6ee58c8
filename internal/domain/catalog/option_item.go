package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TagList is a JSONB-persisted list of tag strings
type TagList []string

// Value implements driver.Valuer for JSONB storage
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		return json.Marshal(TagList{})
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner for JSONB storage
func (t *TagList) Scan(value interface{}) error {
	if value == nil {
		*t = TagList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return errors.New("unsupported type for TagList")
	}
}

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// OptionItem is a selectable value within an option group
// (e.g. a specific color). Item names are unique within their group,
// compared case- and whitespace-insensitively.
type OptionItem struct {
	shared.BaseEntity
	ParentID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"type:varchar(100);not null"`
	PriceModifier decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ColorHex      string          `gorm:"type:varchar(7)"`
	ImageURL      string          `gorm:"type:text"`
	// RequiredTags gates visibility per product; the item is shown only when
	// every tag is present on the product (ALL-match). CompatibilityTags is
	// the legacy column honored when RequiredTags is empty.
	RequiredTags      TagList `gorm:"type:jsonb"`
	CompatibilityTags TagList `gorm:"type:jsonb;column:compatibility_tags"`
}

// TableName returns the table name for GORM
func (OptionItem) TableName() string {
	return "option_items"
}

// NewOptionItem creates a new option item under the given group
func NewOptionItem(parentID uuid.UUID, name string, priceModifier decimal.Decimal) (*OptionItem, error) {
	if parentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Option item requires a parent group")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Option item name cannot be empty")
	}

	return &OptionItem{
		BaseEntity:    shared.NewBaseEntity(),
		ParentID:      parentID,
		Name:          name,
		PriceModifier: priceModifier,
		RequiredTags:  TagList{},
	}, nil
}

// SetColor sets the swatch color; accepts #RGB or #RRGGBB
func (i *OptionItem) SetColor(hex string) error {
	if hex != "" && !hexColorPattern.MatchString(hex) {
		return shared.NewDomainError("INVALID_COLOR", "Color must be a #RGB or #RRGGBB hex value")
	}
	i.ColorHex = hex
	i.UpdatedAt = time.Now()
	return nil
}

// SetRequiredTags replaces the item's required tag set
func (i *OptionItem) SetRequiredTags(tags []string) {
	i.RequiredTags = append(TagList{}, tags...)
	i.UpdatedAt = time.Now()
}

// EffectiveTags returns the tag set that gates this item: required_tags when
// present, else the legacy compatibility_tags.
func (i *OptionItem) EffectiveTags() []string {
	if len(i.RequiredTags) > 0 {
		return i.RequiredTags
	}
	return i.CompatibilityTags
}

// cloneFor copies the item under a fresh id for the given parent group
func (i *OptionItem) cloneFor(parentID uuid.UUID) OptionItem {
	clone := OptionItem{
		BaseEntity:        shared.NewBaseEntity(),
		ParentID:          parentID,
		Name:              i.Name,
		PriceModifier:     i.PriceModifier,
		ColorHex:          i.ColorHex,
		ImageURL:          i.ImageURL,
		RequiredTags:      append(TagList{}, i.RequiredTags...),
		CompatibilityTags: append(TagList{}, i.CompatibilityTags...),
	}
	return clone
}

// NormalizeItemName canonicalizes an item name for uniqueness checks:
// lowercased with runs of whitespace collapsed to single spaces.
func NormalizeItemName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
