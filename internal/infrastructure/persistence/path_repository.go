package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/curriculum"
	"github.com/mindsacademy/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPathRepository implements curriculum.PathRepository using GORM
type GormPathRepository struct {
	db *gorm.DB
}

// NewGormPathRepository creates a new GormPathRepository
func NewGormPathRepository(db *gorm.DB) *GormPathRepository {
	return &GormPathRepository{db: db}
}

// FindByID finds a learning path by its ID
func (r *GormPathRepository) FindByID(ctx context.Context, id uuid.UUID) (*curriculum.LearningPath, error) {
	var path curriculum.LearningPath
	if err := r.db.WithContext(ctx).First(&path, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &path, nil
}

// FindAll finds all learning paths matching the filter
func (r *GormPathRepository) FindAll(ctx context.Context, filter shared.Filter) ([]curriculum.LearningPath, error) {
	var paths []curriculum.LearningPath
	query := applyFilter(r.db.WithContext(ctx).Model(&curriculum.LearningPath{}), filter, LearningPathSortFields, "created_at")

	if err := query.Find(&paths).Error; err != nil {
		return nil, err
	}
	return paths, nil
}

// Save creates or updates a learning path
func (r *GormPathRepository) Save(ctx context.Context, path *curriculum.LearningPath) error {
	return r.db.WithContext(ctx).Save(path).Error
}

// Delete deletes a learning path and its course links
func (r *GormPathRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&curriculum.PathCourse{}, "path_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&curriculum.LearningPath{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts learning paths matching the filter
func (r *GormPathRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyEqualityFilters(r.db.WithContext(ctx).Model(&curriculum.LearningPath{}), filter, LearningPathSortFields)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindCourses finds the course links of a path ordered by position
func (r *GormPathRepository) FindCourses(ctx context.Context, pathID uuid.UUID) ([]curriculum.PathCourse, error) {
	var links []curriculum.PathCourse
	if err := r.db.WithContext(ctx).
		Where("path_id = ?", pathID).
		Order("position ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// AddCourse links a course into a path
func (r *GormPathRepository) AddCourse(ctx context.Context, link *curriculum.PathCourse) error {
	return r.db.WithContext(ctx).Create(link).Error
}

// RemoveCourse unlinks a course from a path
func (r *GormPathRepository) RemoveCourse(ctx context.Context, pathID, courseID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&curriculum.PathCourse{}, "path_id = ? AND course_id = ?", pathID, courseID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SaveCourses persists a batch of course links in a single transaction
func (r *GormPathRepository) SaveCourses(ctx context.Context, links []curriculum.PathCourse) error {
	if len(links) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range links {
			if err := tx.Save(&links[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Interface guard
var _ curriculum.PathRepository = (*GormPathRepository)(nil)
