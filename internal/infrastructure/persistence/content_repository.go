package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/content"
	"github.com/mindsacademy/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormArticleRepository implements content.ArticleRepository using GORM
type GormArticleRepository struct {
	db *gorm.DB
}

// NewGormArticleRepository creates a new GormArticleRepository
func NewGormArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: db}
}

// FindByID finds an article by its ID
func (r *GormArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Article, error) {
	var article content.Article
	if err := r.db.WithContext(ctx).First(&article, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

// FindBySlug finds an article by its slug
func (r *GormArticleRepository) FindBySlug(ctx context.Context, slug string) (*content.Article, error) {
	var article content.Article
	if err := r.db.WithContext(ctx).First(&article, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

// FindPublished finds published articles ordered by publish date
func (r *GormArticleRepository) FindPublished(ctx context.Context, filter shared.Filter) ([]content.Article, error) {
	var articles []content.Article
	query := r.db.WithContext(ctx).Model(&content.Article{}).Where("published_at IS NOT NULL")
	query = applyEqualityFilters(query, filter, ArticleSortFields)
	query = query.Order("published_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// FindAll finds all articles, including unpublished ones
func (r *GormArticleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]content.Article, error) {
	var articles []content.Article
	query := applyFilter(r.db.WithContext(ctx).Model(&content.Article{}), filter, ArticleSortFields, "created_at")

	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// Save creates or updates an article
func (r *GormArticleRepository) Save(ctx context.Context, article *content.Article) error {
	return r.db.WithContext(ctx).Save(article).Error
}

// Delete deletes an article
func (r *GormArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&content.Article{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsBySlug checks if an article with the given slug exists
func (r *GormArticleRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&content.Article{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountPublished counts published articles
func (r *GormArticleRepository) CountPublished(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&content.Article{}).Where("published_at IS NOT NULL")
	query = applyEqualityFilters(query, filter, ArticleSortFields)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormMediaRepository implements content.MediaRepository using GORM
type GormMediaRepository struct {
	db *gorm.DB
}

// NewGormMediaRepository creates a new GormMediaRepository
func NewGormMediaRepository(db *gorm.DB) *GormMediaRepository {
	return &GormMediaRepository{db: db}
}

// FindByID finds a media file by its ID
func (r *GormMediaRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.MediaFile, error) {
	var file content.MediaFile
	if err := r.db.WithContext(ctx).First(&file, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &file, nil
}

// FindByUploader finds all media files uploaded by a user
func (r *GormMediaRepository) FindByUploader(ctx context.Context, uploaderID uuid.UUID, filter shared.Filter) ([]content.MediaFile, error) {
	var files []content.MediaFile
	query := r.db.WithContext(ctx).Model(&content.MediaFile{}).Where("created_by = ?", uploaderID)
	query = applyFilter(query, filter, MediaSortFields, "created_at")

	if err := query.Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// Save creates or updates a media file record
func (r *GormMediaRepository) Save(ctx context.Context, file *content.MediaFile) error {
	return r.db.WithContext(ctx).Save(file).Error
}

// Delete deletes a media file record
func (r *GormMediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&content.MediaFile{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Interface guards
var (
	_ content.ArticleRepository = (*GormArticleRepository)(nil)
	_ content.MediaRepository   = (*GormMediaRepository)(nil)
)
