package content

import (
	"context"

	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ArticleRepository defines the interface for article persistence
type ArticleRepository interface {
	// FindByID finds an article by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Article, error)

	// FindBySlug finds an article by its slug
	FindBySlug(ctx context.Context, slug string) (*Article, error)

	// FindPublished finds published articles ordered by publish date
	FindPublished(ctx context.Context, filter shared.Filter) ([]Article, error)

	// FindAll finds all articles, including unpublished ones
	FindAll(ctx context.Context, filter shared.Filter) ([]Article, error)

	// Save creates or updates an article
	Save(ctx context.Context, article *Article) error

	// Delete deletes an article
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsBySlug checks if an article with the given slug exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// CountPublished counts published articles
	CountPublished(ctx context.Context, filter shared.Filter) (int64, error)
}

// MediaRepository defines the interface for media file persistence
type MediaRepository interface {
	// FindByID finds a media file by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*MediaFile, error)

	// FindByUploader finds all media files uploaded by a user
	FindByUploader(ctx context.Context, uploaderID uuid.UUID, filter shared.Filter) ([]MediaFile, error)

	// Save creates or updates a media file record
	Save(ctx context.Context, file *MediaFile) error

	// Delete deletes a media file record
	Delete(ctx context.Context, id uuid.UUID) error
}
