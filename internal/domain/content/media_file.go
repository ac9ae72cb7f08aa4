package content

import (
	"strings"

	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MediaFile is an uploaded binary stored in object storage and referenced
// by courses (thumbnails) and articles (covers)
type MediaFile struct {
	shared.OwnedAggregateRoot
	URL        string `gorm:"type:varchar(2048);not null"`
	StorageKey string `gorm:"type:varchar(512);not null;uniqueIndex"`
	MimeType   string `gorm:"type:varchar(100);not null"`
	SizeBytes  int64  `gorm:"not null;default:0"`
	FileName   string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (MediaFile) TableName() string {
	return "media_file"
}

// NewMediaFile records an uploaded file
func NewMediaFile(uploaderID uuid.UUID, url, storageKey, mimeType, fileName string, sizeBytes int64) (*MediaFile, error) {
	if strings.TrimSpace(url) == "" {
		return nil, shared.NewDomainError("INVALID_URL", "Media file URL cannot be empty")
	}
	if strings.TrimSpace(storageKey) == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Media file storage key cannot be empty")
	}
	if sizeBytes < 0 {
		return nil, shared.NewDomainError("INVALID_SIZE", "Media file size cannot be negative")
	}

	return &MediaFile{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(uploaderID),
		URL:                url,
		StorageKey:         storageKey,
		MimeType:           mimeType,
		SizeBytes:          sizeBytes,
		FileName:           fileName,
	}, nil
}
