package catalog

import (
	"context"

	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CourseRepository defines the interface for course persistence
type CourseRepository interface {
	// FindByID finds a course by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Course, error)

	// FindAll finds all courses matching the filter, regardless of
	// status or audience. Admin/authoring use only.
	FindAll(ctx context.Context, filter shared.Filter) ([]Course, error)

	// FindVisible finds active courses visible to the viewer, applying
	// the audience matrix in the query itself
	FindVisible(ctx context.Context, viewer Viewer, filter shared.Filter) ([]Course, error)

	// FindByOwner finds all courses created by the given user,
	// including drafts
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Course, error)

	// Save creates or updates a course
	Save(ctx context.Context, course *Course) error

	// Delete deletes a course
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts courses matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountVisible counts active courses visible to the viewer
	CountVisible(ctx context.Context, viewer Viewer, filter shared.Filter) (int64, error)
}

// ModuleRepository defines the interface for course module persistence
type ModuleRepository interface {
	// FindByID finds a module by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*CourseModule, error)

	// FindByCourse finds all modules of a course ordered by position
	FindByCourse(ctx context.Context, courseID uuid.UUID) ([]CourseModule, error)

	// Save creates or updates a module
	Save(ctx context.Context, module *CourseModule) error

	// SaveAll persists a batch of modules in a single transaction,
	// used when replacing positions after a reorder
	SaveAll(ctx context.Context, modules []CourseModule) error

	// Delete deletes a module
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByCourse counts the modules of a course
	CountByCourse(ctx context.Context, courseID uuid.UUID) (int64, error)
}

// LessonRepository defines the interface for lesson persistence
type LessonRepository interface {
	// FindByID finds a lesson by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Lesson, error)

	// FindByModule finds all lessons of a module ordered by position
	FindByModule(ctx context.Context, moduleID uuid.UUID) ([]Lesson, error)

	// FindByCourse finds all lessons of a course across its modules,
	// ordered by module position then lesson position
	FindByCourse(ctx context.Context, courseID uuid.UUID) ([]Lesson, error)

	// Save creates or updates a lesson
	Save(ctx context.Context, lesson *Lesson) error

	// SaveAll persists a batch of lessons in a single transaction
	SaveAll(ctx context.Context, lessons []Lesson) error

	// Delete deletes a lesson
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByModule counts the lessons of a module
	CountByModule(ctx context.Context, moduleID uuid.UUID) (int64, error)

	// CountByCourse counts the lessons of a course across its modules
	CountByCourse(ctx context.Context, courseID uuid.UUID) (int64, error)
}
