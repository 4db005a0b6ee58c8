package design

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types emitted by the design domain
const (
	EventTypeDesignSaved   = "design.custom_design.saved"
	EventTypeDesignDeleted = "design.custom_design.deleted"
)

// SelectionSnapshot captures the option choices a customer made, keyed by
// option group id. Values are the chosen option item ids.
type SelectionSnapshot map[uuid.UUID]uuid.UUID

// Value implements driver.Valuer for JSONB storage
func (s SelectionSnapshot) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal(SelectionSnapshot{})
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB storage
func (s *SelectionSnapshot) Scan(value interface{}) error {
	if value == nil {
		*s = SelectionSnapshot{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for SelectionSnapshot")
	}
}

// CanvasState holds the free-form serialized editor state (layers, transforms,
// uploaded artwork placements). The back office never interprets it.
type CanvasState map[string]interface{}

// Value implements driver.Valuer for JSONB storage
func (c CanvasState) Value() (driver.Value, error) {
	if c == nil {
		return json.Marshal(CanvasState{})
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB storage
func (c *CanvasState) Scan(value interface{}) error {
	if value == nil {
		*c = CanvasState{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return errors.New("unsupported type for CanvasState")
	}
}

// CustomDesign is a saved customization. It snapshots the selections, canvas
// state and quoted price at save time, so later catalog edits never change
// what the customer saw. Designs are immutable after creation.
type CustomDesign struct {
	shared.BaseAggregateRoot
	Name          string            `gorm:"type:varchar(200);not null"`
	ProductID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	Selections    SelectionSnapshot `gorm:"type:jsonb"`
	Canvas        CanvasState       `gorm:"type:jsonb"`
	PreviewImage  string            `gorm:"type:text"`
	QuotedPrice   decimal.Decimal   `gorm:"type:decimal(12,2);not null;default:0"`
	CustomerEmail string            `gorm:"type:varchar(254);index"`
}

// TableName returns the table name for GORM
func (CustomDesign) TableName() string {
	return "custom_designs"
}

// DesignEvent is emitted when a design is saved or deleted
type DesignEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
}

// NewCustomDesign creates an immutable design snapshot
func NewCustomDesign(name string, productID uuid.UUID, selections SelectionSnapshot, canvas CanvasState, previewImage string, quotedPrice decimal.Decimal) (*CustomDesign, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Design name cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Design must reference a product")
	}
	if quotedPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Quoted price cannot be negative")
	}

	d := &CustomDesign{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		ProductID:         productID,
		Selections:        selections,
		Canvas:            canvas,
		PreviewImage:      previewImage,
		QuotedPrice:       quotedPrice,
	}
	if d.Selections == nil {
		d.Selections = SelectionSnapshot{}
	}
	if d.Canvas == nil {
		d.Canvas = CanvasState{}
	}

	d.AddDomainEvent(&DesignEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDesignSaved, "CustomDesign", d.ID),
		ProductID:       productID,
	})

	return d, nil
}

// Rename is the only mutation a saved design allows
func (d *CustomDesign) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Design name cannot be empty")
	}
	d.Name = name
	d.IncrementVersion()
	return nil
}
