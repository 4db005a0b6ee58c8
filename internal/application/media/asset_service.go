package media

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/casecraft/backend/internal/domain/media"
	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AllowedImageTypes is the whitelist of content types accepted for uploads.
// SVG is excluded: it can carry scripts and the files are served back to
// storefront browsers.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadAssetRequest represents a design-library upload
type UploadAssetRequest struct {
	Type         string
	Category     string
	Tags         []string
	OriginalName string
	ContentType  string
	Size         int64
	Body         io.Reader
}

// AssetListFilter represents filter options for asset list
type AssetListFilter struct {
	Type     string `form:"type" binding:"omitempty,oneof=sticker background frame"`
	Category string `form:"category"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AssetResponse represents an asset in API responses
type AssetResponse struct {
	ID           uuid.UUID `json:"id"`
	Type         string    `json:"type"`
	Category     string    `json:"category,omitempty"`
	Tags         []string  `json:"tags"`
	URL          string    `json:"url"`
	OriginalName string    `json:"original_name,omitempty"`
	ContentType  string    `json:"content_type,omitempty"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
}

// AssetService manages the design-tool asset library: stickers, backgrounds
// and frames uploaded by operators.
type AssetService struct {
	assetRepo      media.AssetRepository
	storage        ObjectStorage
	bucket         string
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewAssetService creates a new AssetService
func NewAssetService(
	assetRepo media.AssetRepository,
	storage ObjectStorage,
	bucket string,
	maxUploadBytes int64,
	logger *zap.Logger,
) *AssetService {
	return &AssetService{
		assetRepo:      assetRepo,
		storage:        storage,
		bucket:         bucket,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Upload validates, stores and records an asset
func (s *AssetService) Upload(ctx context.Context, req UploadAssetRequest) (*AssetResponse, error) {
	if req.Body == nil {
		return nil, shared.NewDomainError("MISSING_FILE", "No file provided")
	}
	if s.maxUploadBytes > 0 && req.Size > s.maxUploadBytes {
		return nil, shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("File exceeds the %d byte upload limit", s.maxUploadBytes))
	}
	if !AllowedImageTypes[req.ContentType] {
		return nil, shared.NewDomainError("UNSUPPORTED_MEDIA_TYPE",
			fmt.Sprintf("Content type %q is not allowed", req.ContentType))
	}

	key := storedFileName(req.OriginalName)
	url, err := s.storage.Upload(ctx, s.bucket, key, req.ContentType, req.Body, req.Size)
	if err != nil {
		return nil, err
	}

	asset, err := media.NewAsset(req.Type, key, req.OriginalName, s.bucket, url, req.ContentType, req.Size)
	if err != nil {
		return nil, err
	}
	asset.Category = req.Category
	if len(req.Tags) > 0 {
		asset.Tags = append(media.StringList{}, req.Tags...)
	}

	if err := s.assetRepo.Save(ctx, asset); err != nil {
		// Row insert failed after the object landed; the janitor collects it.
		s.logger.Warn("asset row insert failed after upload",
			zap.String("bucket", s.bucket),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, err
	}

	return toAssetResponse(asset), nil
}

// List retrieves assets matching the filter
func (s *AssetService) List(ctx context.Context, filter AssetListFilter) ([]AssetResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}

	assets, err := s.assetRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.assetRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AssetResponse, len(assets))
	for i := range assets {
		responses[i] = *toAssetResponse(&assets[i])
	}
	return responses, total, nil
}

// Delete removes the asset row and its stored object. Object deletion is
// best-effort; a stray object is the janitor's problem.
func (s *AssetService) Delete(ctx context.Context, id uuid.UUID) error {
	asset, err := s.assetRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.assetRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.storage.DeleteObject(ctx, asset.Bucket, asset.FileName); err != nil {
		s.logger.Warn("failed to delete asset object",
			zap.String("bucket", asset.Bucket),
			zap.String("key", asset.FileName),
			zap.Error(err),
		)
	}
	return nil
}

// storedFileName builds a collision-free object key, keeping the original
// extension so content sniffing stays consistent.
func storedFileName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.New().String() + ext
}

func toAssetResponse(a *media.Asset) *AssetResponse {
	return &AssetResponse{
		ID:           a.ID,
		Type:         a.Type,
		Category:     a.Category,
		Tags:         a.Tags,
		URL:          a.URL,
		OriginalName: a.OriginalName,
		ContentType:  a.ContentType,
		SizeBytes:    a.SizeBytes,
		CreatedAt:    a.CreatedAt,
	}
}
