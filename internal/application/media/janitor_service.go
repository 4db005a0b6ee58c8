package media

import (
	"context"
	"time"

	"github.com/casecraft/backend/internal/domain/media"
	"go.uber.org/zap"
)

// ScanResult is the full orphan report across all managed buckets
type ScanResult struct {
	ScannedAt       time.Time            `json:"scanned_at"`
	ReferencedFiles int                  `json:"referenced_files"`
	Buckets         []media.OrphanReport `json:"buckets"`
	TotalOrphans    int                  `json:"total_orphans"`
	TotalSizeBytes  int64                `json:"total_size_bytes"`
}

// PurgeRequest names the objects to delete, per bucket. Purge never infers
// targets itself: the operator confirms an explicit list from a prior scan.
type PurgeRequest struct {
	Buckets []PurgeBucketRequest `json:"buckets" binding:"required,min=1,dive"`
}

// PurgeBucketRequest lists keys to delete in one bucket
type PurgeBucketRequest struct {
	Bucket string   `json:"bucket" binding:"required"`
	Keys   []string `json:"keys" binding:"required,min=1"`
}

// PurgeResult reports what a purge actually deleted
type PurgeResult struct {
	Deleted int           `json:"deleted"`
	Failed  []FailedPurge `json:"failed"`
}

// FailedPurge records one object that could not be deleted
type FailedPurge struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	Error  string `json:"error"`
}

// JanitorService finds and deletes stored objects that no database row
// references anymore. Scanning is read-only; purging is a separate,
// explicitly confirmed, best-effort and irreversible call.
type JanitorService struct {
	scanner media.ReferenceScanner
	storage ObjectStorage
	buckets []string
	minAge  time.Duration
	logger  *zap.Logger
}

// NewJanitorService creates a new JanitorService. buckets is the list of
// managed bucket names; minAge spares objects uploaded more recently than
// that from being reported.
func NewJanitorService(
	scanner media.ReferenceScanner,
	storage ObjectStorage,
	buckets []string,
	minAge time.Duration,
	logger *zap.Logger,
) *JanitorService {
	return &JanitorService{
		scanner: scanner,
		storage: storage,
		buckets: buckets,
		minAge:  minAge,
		logger:  logger,
	}
}

// Scan lists every managed bucket and reports objects whose filename no
// database row references.
func (s *JanitorService) Scan(ctx context.Context) (*ScanResult, error) {
	refs, err := s.scanner.CollectReferences(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := &ScanResult{
		ScannedAt:       now,
		ReferencedFiles: len(refs),
		Buckets:         make([]media.OrphanReport, 0, len(s.buckets)),
	}

	for _, bucket := range s.buckets {
		objects, err := s.storage.ListObjects(ctx, bucket)
		if err != nil {
			return nil, err
		}
		report := media.FindOrphans(bucket, objects, refs, s.minAge, now)
		result.Buckets = append(result.Buckets, report)
		result.TotalOrphans += len(report.Objects)
		result.TotalSizeBytes += report.TotalSizeBytes
	}

	s.logger.Info("janitor scan complete",
		zap.Int("referenced_files", result.ReferencedFiles),
		zap.Int("orphans", result.TotalOrphans),
		zap.Int64("orphan_bytes", result.TotalSizeBytes),
	)

	return result, nil
}

// Purge deletes the listed objects. Each delete is independent; failures are
// collected and reported, not rolled back.
func (s *JanitorService) Purge(ctx context.Context, req PurgeRequest) (*PurgeResult, error) {
	result := &PurgeResult{Failed: make([]FailedPurge, 0)}

	for _, b := range req.Buckets {
		for _, key := range b.Keys {
			if err := s.storage.DeleteObject(ctx, b.Bucket, key); err != nil {
				result.Failed = append(result.Failed, FailedPurge{
					Bucket: b.Bucket,
					Key:    key,
					Error:  err.Error(),
				})
				continue
			}
			result.Deleted++
		}
	}

	s.logger.Info("janitor purge complete",
		zap.Int("deleted", result.Deleted),
		zap.Int("failed", len(result.Failed)),
	)

	return result, nil
}
