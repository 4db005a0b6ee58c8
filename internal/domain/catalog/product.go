package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Specs holds free-form product specifications persisted as JSONB
type Specs map[string]interface{}

// Value implements driver.Valuer for JSONB storage
func (s Specs) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal(Specs{})
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB storage
func (s *Specs) Scan(value interface{}) error {
	if value == nil {
		*s = Specs{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for Specs")
	}
}

// Image deletion targets for the delete-image operation
const (
	ImageTargetBase = "base"
	ImageTargetMask = "mask"
	ImageTargetAll  = "all"
)

// Product represents a sellable phone-case model. Its tag set gates which
// option items are offered in the design tool.
type Product struct {
	shared.BaseAggregateRoot
	Name       string          `gorm:"type:varchar(200);not null"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index"`
	Brand      string          `gorm:"type:varchar(100);index"`
	BasePrice  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	BaseImage  string          `gorm:"type:text"`
	MaskImage  string          `gorm:"type:text"`
	Specs      Specs           `gorm:"type:jsonb"`
	Tags       TagList         `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, brand string, basePrice decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product base price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Brand:             brand,
		BasePrice:         basePrice,
		Specs:             Specs{},
		Tags:              TagList{},
	}

	product.AddDomainEvent(NewProductChangedEvent(product, EventTypeProductCreated))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, brand string, basePrice decimal.Decimal, specs Specs, tags []string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if basePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product base price cannot be negative")
	}

	p.Name = name
	p.Brand = brand
	p.BasePrice = basePrice
	if specs != nil {
		p.Specs = specs
	}
	if tags != nil {
		p.Tags = append(TagList{}, tags...)
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductChangedEvent(p, EventTypeProductUpdated))

	return nil
}

// SetCategory assigns the product to a category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	p.AddDomainEvent(NewProductChangedEvent(p, EventTypeProductUpdated))
}

// SetImages sets the product's base and mask images
func (p *Product) SetImages(baseImage, maskImage string) {
	p.BaseImage = baseImage
	p.MaskImage = maskImage
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	p.AddDomainEvent(NewProductChangedEvent(p, EventTypeProductUpdated))
}

// ClearImages clears the requested image columns and returns the URLs that
// were cleared, so the caller can delete the underlying objects.
func (p *Product) ClearImages(target string) ([]string, error) {
	var cleared []string
	switch target {
	case ImageTargetBase:
		if p.BaseImage != "" {
			cleared = append(cleared, p.BaseImage)
		}
		p.BaseImage = ""
	case ImageTargetMask:
		if p.MaskImage != "" {
			cleared = append(cleared, p.MaskImage)
		}
		p.MaskImage = ""
	case ImageTargetAll:
		if p.BaseImage != "" {
			cleared = append(cleared, p.BaseImage)
		}
		if p.MaskImage != "" {
			cleared = append(cleared, p.MaskImage)
		}
		p.BaseImage = ""
		p.MaskImage = ""
	default:
		return nil, shared.NewDomainError("INVALID_TARGET", "Image target must be base, mask or all")
	}

	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	p.AddDomainEvent(NewProductChangedEvent(p, EventTypeProductUpdated))

	return cleared, nil
}
