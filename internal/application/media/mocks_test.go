package media

import (
	"context"
	"io"

	"github.com/casecraft/backend/internal/domain/media"
	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockObjectStorage is a mock implementation of ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) (string, error) {
	args := m.Called(ctx, bucket, key, contentType, body, size)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}

func (m *MockObjectStorage) ListObjects(ctx context.Context, bucket string) ([]media.ObjectInfo, error) {
	args := m.Called(ctx, bucket)
	return args.Get(0).([]media.ObjectInfo), args.Error(1)
}

func (m *MockObjectStorage) ObjectURL(bucket, key string) string {
	args := m.Called(bucket, key)
	return args.String(0)
}

// MockReferenceScanner is a mock implementation of media.ReferenceScanner
type MockReferenceScanner struct {
	mock.Mock
}

func (m *MockReferenceScanner) CollectReferences(ctx context.Context) (media.ReferenceSet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(media.ReferenceSet), args.Error(1)
}

// MockInferenceClient is a mock implementation of InferenceClient
type MockInferenceClient struct {
	mock.Mock
}

func (m *MockInferenceClient) Run(ctx context.Context, modelVersion string, input map[string]interface{}) (string, error) {
	args := m.Called(ctx, modelVersion, input)
	return args.String(0), args.Error(1)
}

// MockAssetRepository is a mock implementation of media.AssetRepository
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*media.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindAll(ctx context.Context, filter shared.Filter) ([]media.Asset, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]media.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindByFileName(ctx context.Context, bucket, fileName string) (*media.Asset, error) {
	args := m.Called(ctx, bucket, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.Asset), args.Error(1)
}

func (m *MockAssetRepository) Save(ctx context.Context, asset *media.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssetRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
