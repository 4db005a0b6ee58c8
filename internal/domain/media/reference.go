package media

import (
	"net/url"
	"sort"
	"strings"
	"time"
)

// FilenameFromURL extracts the trailing path segment of a stored-file URL,
// ignoring query string and fragment. Rows keep full URLs while bucket
// listings return bare object keys, so comparisons happen on the filename.
func FilenameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		raw = u.Path
	} else {
		if i := strings.IndexAny(raw, "?#"); i >= 0 {
			raw = raw[:i]
		}
	}
	raw = strings.TrimRight(raw, "/")
	if i := strings.LastIndex(raw, "/"); i >= 0 {
		raw = raw[i+1:]
	}
	return raw
}

// ReferenceSet is the set of filenames the database still points at
type ReferenceSet map[string]struct{}

// AddURL extracts the filename from a URL and records it; empty and
// unparseable values are skipped.
func (r ReferenceSet) AddURL(raw string) {
	if name := FilenameFromURL(raw); name != "" {
		r[name] = struct{}{}
	}
}

// Contains reports whether the filename is referenced
func (r ReferenceSet) Contains(filename string) bool {
	_, ok := r[filename]
	return ok
}

// ObjectInfo describes a stored object as returned by a bucket listing
type ObjectInfo struct {
	Bucket       string    `json:"bucket"`
	Key          string    `json:"key"`
	SizeBytes    int64     `json:"size_bytes"`
	LastModified time.Time `json:"last_modified"`
}

// OrphanReport lists the objects in one bucket that no database row references
type OrphanReport struct {
	Bucket         string       `json:"bucket"`
	Objects        []ObjectInfo `json:"objects"`
	TotalSizeBytes int64        `json:"total_size_bytes"`
}

// FindOrphans returns the stored objects whose trailing filename does not
// appear in the reference set. Objects newer than minAge are kept: an upload
// may land in the bucket before the row referencing it commits.
func FindOrphans(bucket string, objects []ObjectInfo, refs ReferenceSet, minAge time.Duration, now time.Time) OrphanReport {
	report := OrphanReport{Bucket: bucket, Objects: make([]ObjectInfo, 0)}
	for _, obj := range objects {
		if refs.Contains(FilenameFromURL(obj.Key)) {
			continue
		}
		if minAge > 0 && now.Sub(obj.LastModified) < minAge {
			continue
		}
		report.Objects = append(report.Objects, obj)
		report.TotalSizeBytes += obj.SizeBytes
	}
	sort.Slice(report.Objects, func(i, j int) bool {
		return report.Objects[i].Key < report.Objects[j].Key
	})
	return report
}
