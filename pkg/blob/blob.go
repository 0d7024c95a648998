// Package blob abstracts where uploaded photos live: Google Cloud Storage
// in production, the local filesystem in development. The switch follows
// the same environment indicators the deployment platform sets.
package blob

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/deanmccauley/electrician-job-book/config"
)

// Store is the blob storage collaborator: store bytes under a path and get
// back a public URL, or delete a previously stored object.
type Store interface {
	Put(ctx context.Context, path string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, path string) error
}

// FromConfig picks the backend for this environment.
func FromConfig(cfg config.Config) (Store, error) {
	if cfg.UseGCS {
		if cfg.GCSBucket == "" {
			return nil, fmt.Errorf("blob: GCS selected but GCS_BUCKET is empty")
		}
		return NewGCSStore(cfg.GCSBucket)
	}
	return NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL), nil
}

// ObjectPathFromURL recovers the storage path from a stored public URL.
// Photo objects are keyed "jobID/filename", so the last two URL segments
// are the path.
func ObjectPathFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 {
		return ""
	}
	return segments[len(segments)-2] + "/" + segments[len(segments)-1]
}
