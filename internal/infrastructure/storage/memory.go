package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	mediaapp "github.com/casecraft/backend/internal/application/media"
	"github.com/casecraft/backend/internal/domain/media"
)

// Ensure MemoryObjectStorage implements ObjectStorage
var _ mediaapp.ObjectStorage = (*MemoryObjectStorage)(nil)

// MemoryObjectStorage keeps objects in process memory. It backs local
// development without an S3 endpoint and gives handler tests a real
// storage implementation instead of a mock.
type MemoryObjectStorage struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]map[string]memoryObject // bucket -> key -> object
	now     func() time.Time
}

type memoryObject struct {
	data         []byte
	contentType  string
	lastModified time.Time
}

// NewMemoryObjectStorage creates an empty in-memory storage. baseURL is used
// to build object URLs; it defaults to "https://storage.local".
func NewMemoryObjectStorage(baseURL string) *MemoryObjectStorage {
	if baseURL == "" {
		baseURL = "https://storage.local"
	}
	return &MemoryObjectStorage{
		baseURL: baseURL,
		objects: make(map[string]map[string]memoryObject),
		now:     time.Now,
	}
}

// Upload stores the object and returns its URL.
func (m *MemoryObjectStorage) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) (string, error) {
	if bucket == "" {
		return "", errors.New("bucket is required")
	}
	if key == "" {
		return "", errors.New("storage key is required")
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects[bucket] == nil {
		m.objects[bucket] = make(map[string]memoryObject)
	}
	m.objects[bucket][key] = memoryObject{
		data:         buf.Bytes(),
		contentType:  contentType,
		lastModified: m.now(),
	}

	return m.ObjectURL(bucket, key), nil
}

// DeleteObject removes the object. Deleting a missing key is not an error,
// matching S3 semantics.
func (m *MemoryObjectStorage) DeleteObject(ctx context.Context, bucket, key string) error {
	if bucket == "" {
		return errors.New("bucket is required")
	}
	if key == "" {
		return errors.New("storage key is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if keys, ok := m.objects[bucket]; ok {
		delete(keys, key)
	}
	return nil
}

// ListObjects returns all objects in the bucket sorted by key.
func (m *MemoryObjectStorage) ListObjects(ctx context.Context, bucket string) ([]media.ObjectInfo, error) {
	if bucket == "" {
		return nil, errors.New("bucket is required")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var objects []media.ObjectInfo
	for key, obj := range m.objects[bucket] {
		objects = append(objects, media.ObjectInfo{
			Bucket:       bucket,
			Key:          key,
			SizeBytes:    int64(len(obj.data)),
			LastModified: obj.lastModified,
		})
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

// ObjectURL returns the URL an object would be served from.
func (m *MemoryObjectStorage) ObjectURL(bucket, key string) string {
	return m.baseURL + "/" + bucket + "/" + key
}

// Object returns the stored bytes and content type for inspection in tests.
func (m *MemoryObjectStorage) Object(bucket, key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[bucket][key]
	if !ok {
		return nil, "", false
	}
	return obj.data, obj.contentType, true
}
