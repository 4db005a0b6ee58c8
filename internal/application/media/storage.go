package media

import (
	"context"
	"io"

	"github.com/casecraft/backend/internal/domain/media"
)

// ObjectStorage is the interface the application layer needs from object
// storage. Implemented by the S3 client in infrastructure/storage.
type ObjectStorage interface {
	// Upload stores an object and returns its public URL
	Upload(ctx context.Context, bucket, key, contentType string, body io.Reader, size int64) (string, error)

	// DeleteObject deletes an object
	DeleteObject(ctx context.Context, bucket, key string) error

	// ListObjects lists all objects in a bucket
	ListObjects(ctx context.Context, bucket string) ([]media.ObjectInfo, error)

	// ObjectURL returns the public URL of an object without touching storage
	ObjectURL(bucket, key string) string
}
