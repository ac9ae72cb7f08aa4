package content

import (
	"context"
	"time"
)

// MediaStorage abstracts the object storage backend used for media
// uploads. Implementations live in infrastructure/storage.
type MediaStorage interface {
	// GenerateUploadURL returns a presigned URL the client can PUT the
	// file to, along with the URL expiration time
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL returns a presigned URL for reading an object
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject removes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks whether an object has been uploaded
	ObjectExists(ctx context.Context, storageKey string) (bool, error)

	// Upload writes data directly to storage, used for server-side uploads
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error

	// ObjectURL returns the stable public URL of an object
	ObjectURL(storageKey string) string
}
