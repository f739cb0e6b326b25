package storage

import (
	"context"
	"io"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// MediaStorage defines the interface for the exercise media cache: gif
// previews copied from the vendor CDN into our own bucket so clients
// never hotlink the vendor.
type MediaStorage interface {
	// ObjectExists reports whether the key already holds an object.
	ObjectExists(ctx context.Context, objectKey string) (bool, error)

	// UploadObject writes the body under the key, overwriting any prior
	// object.
	UploadObject(ctx context.Context, objectKey string, contentType string, body io.Reader) error

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET
	// requests for an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}
