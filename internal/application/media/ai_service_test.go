package media

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAIService(client *MockInferenceClient, storage *MockObjectStorage) *AIService {
	return NewAIService(client, storage, "assets", AIServiceConfig{
		CartoonVersion:  "cartoon-v1",
		RemoveBgVersion: "rembg-v1",
		MaxUploadBytes:  1024,
	}, zap.NewNop())
}

func TestAIService_Cartoonize(t *testing.T) {
	t.Run("passes a hosted url straight through", func(t *testing.T) {
		client := new(MockInferenceClient)
		client.On("Run", mock.Anything, "cartoon-v1", map[string]interface{}{
			"image": "https://cdn.example.com/input.png",
		}).Return("https://replicate.delivery/out.png", nil)

		svc := newAIService(client, new(MockObjectStorage))

		url, err := svc.Cartoonize(context.Background(), AIImageRequest{
			ImageURL: "https://cdn.example.com/input.png",
		})

		require.NoError(t, err)
		assert.Equal(t, "https://replicate.delivery/out.png", url)
	})

	t.Run("stages an uploaded file before inference", func(t *testing.T) {
		storage := new(MockObjectStorage)
		storage.On("Upload", mock.Anything, "assets", mock.AnythingOfType("string"), "image/png", mock.Anything, int64(10)).
			Return("https://cdn.example.com/assets/staged.png", nil)

		client := new(MockInferenceClient)
		client.On("Run", mock.Anything, "cartoon-v1", map[string]interface{}{
			"image": "https://cdn.example.com/assets/staged.png",
		}).Return("https://replicate.delivery/out.png", nil)

		svc := newAIService(client, storage)

		url, err := svc.Cartoonize(context.Background(), AIImageRequest{
			FileName:    "photo.png",
			ContentType: "image/png",
			Size:        10,
			Body:        strings.NewReader("0123456789"),
		})

		require.NoError(t, err)
		assert.Equal(t, "https://replicate.delivery/out.png", url)
		storage.AssertExpectations(t)
	})

	t.Run("rejects oversized uploads", func(t *testing.T) {
		svc := newAIService(new(MockInferenceClient), new(MockObjectStorage))

		_, err := svc.Cartoonize(context.Background(), AIImageRequest{
			FileName:    "big.png",
			ContentType: "image/png",
			Size:        2048,
			Body:        strings.NewReader("x"),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FILE_TOO_LARGE", domainErr.Code)
	})

	t.Run("rejects request with neither file nor url", func(t *testing.T) {
		svc := newAIService(new(MockInferenceClient), new(MockObjectStorage))

		_, err := svc.Cartoonize(context.Background(), AIImageRequest{})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "MISSING_IMAGE", domainErr.Code)
	})

	t.Run("maps upstream failure to AI_UPSTREAM_FAILED", func(t *testing.T) {
		client := new(MockInferenceClient)
		client.On("Run", mock.Anything, "cartoon-v1", mock.Anything).
			Return("", errors.New("prediction failed"))

		svc := newAIService(client, new(MockObjectStorage))

		_, err := svc.Cartoonize(context.Background(), AIImageRequest{ImageURL: "https://x/y.png"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "AI_UPSTREAM_FAILED", domainErr.Code)
	})
}

func TestAIService_RemoveBackground(t *testing.T) {
	client := new(MockInferenceClient)
	client.On("Run", mock.Anything, "rembg-v1", mock.Anything).
		Return("https://replicate.delivery/cut.png", nil)

	svc := newAIService(client, new(MockObjectStorage))

	url, err := svc.RemoveBackground(context.Background(), AIImageRequest{ImageURL: "https://x/y.png"})

	require.NoError(t, err)
	assert.Equal(t, "https://replicate.delivery/cut.png", url)
	client.AssertCalled(t, "Run", mock.Anything, "rembg-v1", mock.Anything)
}
