package media

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/casecraft/backend/internal/domain/shared"
)

// Event types emitted by the media domain
const (
	EventTypeAssetUploaded = "media.asset.uploaded"
	EventTypeAssetDeleted  = "media.asset.deleted"
)

// Asset kinds offered in the design tool library
const (
	AssetTypeSticker    = "sticker"
	AssetTypeBackground = "background"
	AssetTypeFrame      = "frame"
)

// StringList is a JSONB-persisted list of strings
type StringList []string

// Value implements driver.Valuer for JSONB storage
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(StringList{})
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB storage
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

// Asset is an uploaded file tracked by the back office: product photography,
// mask images, design-tool artwork and generated previews all pass through
// here so the janitor can tell referenced objects from strays.
type Asset struct {
	shared.BaseAggregateRoot
	Type         string     `gorm:"type:varchar(30);not null;index"`
	Category     string     `gorm:"type:varchar(100);index"`
	Tags         StringList `gorm:"type:jsonb"`
	FileName     string     `gorm:"type:varchar(300);not null;index"`
	OriginalName string     `gorm:"type:varchar(300)"`
	Bucket       string     `gorm:"type:varchar(100);not null;index"`
	URL          string     `gorm:"type:text;not null"`
	ContentType  string     `gorm:"type:varchar(120)"`
	SizeBytes    int64      `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Asset) TableName() string {
	return "assets"
}

// AssetEvent is emitted when an asset is uploaded or deleted
type AssetEvent struct {
	shared.BaseDomainEvent
	Bucket   string `json:"bucket"`
	FileName string `json:"file_name"`
}

// NewAsset records an uploaded object
func NewAsset(assetType, fileName, originalName, bucket, url, contentType string, sizeBytes int64) (*Asset, error) {
	switch assetType {
	case AssetTypeSticker, AssetTypeBackground, AssetTypeFrame:
	default:
		return nil, shared.NewDomainError("INVALID_TYPE", "Asset type must be sticker, background or frame")
	}
	if fileName == "" {
		return nil, shared.NewDomainError("INVALID_FILENAME", "Asset file name cannot be empty")
	}
	if bucket == "" {
		return nil, shared.NewDomainError("INVALID_BUCKET", "Asset bucket cannot be empty")
	}
	if url == "" {
		return nil, shared.NewDomainError("INVALID_URL", "Asset URL cannot be empty")
	}
	if sizeBytes < 0 {
		return nil, shared.NewDomainError("INVALID_SIZE", "Asset size cannot be negative")
	}

	a := &Asset{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Type:              assetType,
		Tags:              StringList{},
		FileName:          fileName,
		OriginalName:      originalName,
		Bucket:            bucket,
		URL:               url,
		ContentType:       contentType,
		SizeBytes:         sizeBytes,
	}

	a.AddDomainEvent(&AssetEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAssetUploaded, "Asset", a.ID),
		Bucket:          bucket,
		FileName:        fileName,
	})

	return a, nil
}
