package storage

import (
	"testing"

	"github.com/casecraft/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3ObjectStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing access key returns error", func(t *testing.T) {
		cfg := &config.StorageConfig{
			SecretAccessKey: "test-secret",
		}
		_, err := NewS3ObjectStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		cfg := &config.StorageConfig{
			AccessKeyID: "test-key",
		}
		_, err := NewS3ObjectStorage(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("valid config creates storage", func(t *testing.T) {
		cfg := &config.StorageConfig{
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
			Region:          "us-east-1",
			Endpoint:        "http://localhost:9000",
			UsePathStyle:    true,
		}
		storage, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		require.NotNil(t, storage)
	})

	t.Run("adds https prefix when endpoint has no protocol", func(t *testing.T) {
		cfg := &config.StorageConfig{
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
			Endpoint:        "storage.example.com",
		}
		storage, err := NewS3ObjectStorage(cfg)
		require.NoError(t, err)
		assert.Equal(t, "https://storage.example.com", storage.endpoint)
	})

	t.Run("WithLogger sets custom logger", func(t *testing.T) {
		cfg := &config.StorageConfig{
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
			Endpoint:        "http://localhost:9000",
		}
		storage, err := NewS3ObjectStorage(cfg, WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assert.NotNil(t, storage.logger)
	})
}

func TestS3ObjectStorage_ObjectURL(t *testing.T) {
	t.Run("uses endpoint when no public base url", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(&config.StorageConfig{
			AccessKeyID:     "k",
			SecretAccessKey: "s",
			Endpoint:        "http://localhost:9000",
		})
		require.NoError(t, err)

		assert.Equal(t, "http://localhost:9000/models/iphone15-base.png",
			storage.ObjectURL("models", "iphone15-base.png"))
	})

	t.Run("public base url takes precedence and is normalized", func(t *testing.T) {
		storage, err := NewS3ObjectStorage(&config.StorageConfig{
			AccessKeyID:     "k",
			SecretAccessKey: "s",
			Endpoint:        "http://localhost:9000",
			PublicBaseURL:   "https://cdn.example.com/",
		})
		require.NoError(t, err)

		assert.Equal(t, "https://cdn.example.com/assets/sticker.png",
			storage.ObjectURL("assets", "sticker.png"))
	})
}
