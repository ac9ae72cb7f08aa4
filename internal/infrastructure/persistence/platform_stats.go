package persistence

import (
	"context"

	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/domain/learning"
	"gorm.io/gorm"
)

// GormPlatformStats provides platform-wide counts for periodic metrics
// collection. It implements telemetry.PlatformMetricsProvider.
type GormPlatformStats struct {
	db *gorm.DB
}

// NewGormPlatformStats creates a new GormPlatformStats
func NewGormPlatformStats(db *gorm.DB) *GormPlatformStats {
	return &GormPlatformStats{db: db}
}

// GetActiveEnrollmentCount returns the number of active enrollments
func (s *GormPlatformStats) GetActiveEnrollmentCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&learning.Enrollment{}).
		Where("status = ?", learning.EnrollmentStatusActive).
		Count(&count).Error
	return count, err
}

// GetPublishedCourseCount returns the number of published courses
func (s *GormPlatformStats) GetPublishedCourseCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&catalog.Course{}).
		Where("status = ?", catalog.CourseStatusActive).
		Count(&count).Error
	return count, err
}
