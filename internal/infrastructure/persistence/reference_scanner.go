package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/casecraft/backend/internal/domain/catalog"
	"github.com/casecraft/backend/internal/domain/media"
	"gorm.io/gorm"
)

// Ensure GormReferenceScanner implements ReferenceScanner
var _ media.ReferenceScanner = (*GormReferenceScanner)(nil)

// ReferenceSource declares one place in the schema that can hold object URLs:
// the table and columns to select, and the extractor that feeds each row's
// URLs into the reference set. New URL-bearing columns register a source
// instead of touching the scan loop.
type ReferenceSource struct {
	Table   string
	Columns []string
	Extract func(row map[string]interface{}, refs media.ReferenceSet) error
}

// GormReferenceScanner runs every registered source and collects the
// referenced filenames. The janitor compares this set against bucket
// listings, so a source missed here makes live files look orphaned.
type GormReferenceScanner struct {
	db      *gorm.DB
	sources []ReferenceSource
}

// NewGormReferenceScanner creates a scanner pre-registered with every
// URL-bearing table in the catalog, design and asset schemas.
func NewGormReferenceScanner(db *gorm.DB) *GormReferenceScanner {
	return &GormReferenceScanner{
		db: db,
		sources: []ReferenceSource{
			{
				Table:   catalog.Product{}.TableName(),
				Columns: []string{"base_image", "mask_image"},
				Extract: urlColumns("base_image", "mask_image"),
			},
			{
				// Thumbnail plus the images embedded in sub-attribute
				// options, which live inside the JSONB column
				Table:   catalog.OptionGroup{}.TableName(),
				Columns: []string{"thumbnail", "sub_attributes"},
				Extract: extractOptionGroupImages,
			},
			{
				Table:   catalog.OptionItem{}.TableName(),
				Columns: []string{"image_url"},
				Extract: urlColumns("image_url"),
			},
			{
				Table:   "custom_designs",
				Columns: []string{"preview_image"},
				Extract: urlColumns("preview_image"),
			},
			{
				Table:   "assets",
				Columns: []string{"url"},
				Extract: urlColumns("url"),
			},
		},
	}
}

// Register adds a reference source to the scan
func (s *GormReferenceScanner) Register(src ReferenceSource) {
	s.sources = append(s.sources, src)
}

// CollectReferences returns the set of filenames the database still points at
func (s *GormReferenceScanner) CollectReferences(ctx context.Context) (media.ReferenceSet, error) {
	refs := media.ReferenceSet{}

	for _, src := range s.sources {
		var rows []map[string]interface{}
		if err := s.db.WithContext(ctx).
			Table(src.Table).
			Select(src.Columns).
			Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("scan %s: %w", src.Table, err)
		}
		for _, row := range rows {
			if err := src.Extract(row, refs); err != nil {
				return nil, fmt.Errorf("scan %s: %w", src.Table, err)
			}
		}
	}

	return refs, nil
}

// urlColumns builds an extractor for the common case of plain URL columns
func urlColumns(columns ...string) func(map[string]interface{}, media.ReferenceSet) error {
	return func(row map[string]interface{}, refs media.ReferenceSet) error {
		for _, col := range columns {
			refs.AddURL(columnString(row, col))
		}
		return nil
	}
}

func extractOptionGroupImages(row map[string]interface{}, refs media.ReferenceSet) error {
	refs.AddURL(columnString(row, "thumbnail"))

	raw := columnString(row, "sub_attributes")
	if raw == "" {
		return nil
	}
	var attrs []catalog.SubAttribute
	if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
		return fmt.Errorf("decode sub_attributes: %w", err)
	}
	for _, attr := range attrs {
		for _, opt := range attr.Options {
			refs.AddURL(opt.Image)
		}
	}
	return nil
}

// columnString reads a selected column as text; drivers hand JSONB and text
// back as either string or []byte depending on the connection
func columnString(row map[string]interface{}, col string) string {
	switch v := row[col].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}
