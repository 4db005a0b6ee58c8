package media

import (
	"context"
	"fmt"
	"io"

	"github.com/casecraft/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InferenceClient runs one image-to-image model version to completion.
// Implemented by the predictions API client in infrastructure/ai; a call is
// a single attempt with no retry.
type InferenceClient interface {
	// Run creates a prediction and polls it to a terminal state, returning
	// the output image URL.
	Run(ctx context.Context, modelVersion string, input map[string]interface{}) (string, error)
}

// AIImageRequest carries either an uploaded file or an already-hosted URL
type AIImageRequest struct {
	ImageURL    string
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// AIServiceConfig holds the model versions and upload limit
type AIServiceConfig struct {
	CartoonVersion  string
	RemoveBgVersion string
	MaxUploadBytes  int64
}

// AIService proxies design-tool image effects to the inference provider.
// Uploaded files are staged in the assets bucket first so the provider can
// fetch them by URL.
type AIService struct {
	client  InferenceClient
	storage ObjectStorage
	bucket  string
	cfg     AIServiceConfig
	logger  *zap.Logger
}

// NewAIService creates a new AIService
func NewAIService(
	client InferenceClient,
	storage ObjectStorage,
	bucket string,
	cfg AIServiceConfig,
	logger *zap.Logger,
) *AIService {
	return &AIService{
		client:  client,
		storage: storage,
		bucket:  bucket,
		cfg:     cfg,
		logger:  logger,
	}
}

// Cartoonize runs the cartoon-style model over the image
func (s *AIService) Cartoonize(ctx context.Context, req AIImageRequest) (string, error) {
	return s.run(ctx, s.cfg.CartoonVersion, req)
}

// RemoveBackground runs the background-removal model over the image
func (s *AIService) RemoveBackground(ctx context.Context, req AIImageRequest) (string, error) {
	return s.run(ctx, s.cfg.RemoveBgVersion, req)
}

func (s *AIService) run(ctx context.Context, modelVersion string, req AIImageRequest) (string, error) {
	sourceURL, err := s.resolveSource(ctx, req)
	if err != nil {
		return "", err
	}

	output, err := s.client.Run(ctx, modelVersion, map[string]interface{}{
		"image": sourceURL,
	})
	if err != nil {
		s.logger.Warn("inference call failed",
			zap.String("model_version", modelVersion),
			zap.Error(err),
		)
		return "", shared.NewDomainError("AI_UPSTREAM_FAILED", "Image processing failed")
	}
	return output, nil
}

// resolveSource returns a URL the provider can fetch: the given one, or the
// staged location of an uploaded file.
func (s *AIService) resolveSource(ctx context.Context, req AIImageRequest) (string, error) {
	if req.Body == nil {
		if req.ImageURL == "" {
			return "", shared.NewDomainError("MISSING_IMAGE", "Provide a file or an imageUrl")
		}
		return req.ImageURL, nil
	}

	if s.cfg.MaxUploadBytes > 0 && req.Size > s.cfg.MaxUploadBytes {
		return "", shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("File exceeds the %d byte upload limit", s.cfg.MaxUploadBytes))
	}
	if !AllowedImageTypes[req.ContentType] {
		return "", shared.NewDomainError("UNSUPPORTED_MEDIA_TYPE",
			fmt.Sprintf("Content type %q is not allowed", req.ContentType))
	}

	key := "ai-input/" + storedFileName(req.FileName)
	return s.storage.Upload(ctx, s.bucket, key, req.ContentType, req.Body, req.Size)
}
