package curriculum

import (
	"context"

	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PathRepository defines the interface for learning path persistence
type PathRepository interface {
	// FindByID finds a learning path by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*LearningPath, error)

	// FindAll finds all learning paths matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]LearningPath, error)

	// Save creates or updates a learning path
	Save(ctx context.Context, path *LearningPath) error

	// Delete deletes a learning path and its course links
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts learning paths matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// FindCourses finds the course links of a path ordered by position
	FindCourses(ctx context.Context, pathID uuid.UUID) ([]PathCourse, error)

	// AddCourse links a course into a path
	AddCourse(ctx context.Context, link *PathCourse) error

	// RemoveCourse unlinks a course from a path
	RemoveCourse(ctx context.Context, pathID, courseID uuid.UUID) error

	// SaveCourses persists a batch of course links in a single
	// transaction, used when replacing positions after a reorder
	SaveCourses(ctx context.Context, links []PathCourse) error
}
