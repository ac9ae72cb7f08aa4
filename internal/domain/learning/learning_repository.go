package learning

import (
	"context"

	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EnrollmentRepository defines the interface for enrollment persistence
type EnrollmentRepository interface {
	// FindByID finds an enrollment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Enrollment, error)

	// FindByUser finds all enrollments of a user
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Enrollment, error)

	// FindByUserAndCourse finds the enrollment linking a user to a course
	FindByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*Enrollment, error)

	// FindByCourse finds all enrollments of a course
	FindByCourse(ctx context.Context, courseID uuid.UUID, filter shared.Filter) ([]Enrollment, error)

	// Save creates or updates an enrollment
	Save(ctx context.Context, enrollment *Enrollment) error

	// Delete deletes an enrollment and its progress records
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByCourse counts the enrollments of a course
	CountByCourse(ctx context.Context, courseID uuid.UUID) (int64, error)
}

// ProgressRepository defines the interface for lesson progress persistence
type ProgressRepository interface {
	// FindByEnrollment finds all progress records of an enrollment
	FindByEnrollment(ctx context.Context, enrollmentID uuid.UUID) ([]LessonProgress, error)

	// FindByEnrollmentAndLesson finds the progress record for one lesson
	FindByEnrollmentAndLesson(ctx context.Context, enrollmentID, lessonID uuid.UUID) (*LessonProgress, error)

	// CountCompleted counts completed lessons for an enrollment
	CountCompleted(ctx context.Context, enrollmentID uuid.UUID) (int64, error)

	// Save creates or updates a progress record
	Save(ctx context.Context, progress *LessonProgress) error

	// DeleteByEnrollment removes all progress records of an enrollment
	DeleteByEnrollment(ctx context.Context, enrollmentID uuid.UUID) error
}

// AssignmentRepository defines the interface for assignment persistence
type AssignmentRepository interface {
	// FindByID finds an assignment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Assignment, error)

	// FindByLesson finds all assignments of a lesson
	FindByLesson(ctx context.Context, lessonID uuid.UUID) ([]Assignment, error)

	// Save creates or updates an assignment
	Save(ctx context.Context, assignment *Assignment) error

	// Delete deletes an assignment
	Delete(ctx context.Context, id uuid.UUID) error
}

// SubmissionRepository defines the interface for submission persistence
type SubmissionRepository interface {
	// FindByID finds a submission by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Submission, error)

	// FindByAssignmentAndUser finds the current submission of a user for
	// an assignment
	FindByAssignmentAndUser(ctx context.Context, assignmentID, userID uuid.UUID) (*Submission, error)

	// FindByAssignment finds all submissions for an assignment
	FindByAssignment(ctx context.Context, assignmentID uuid.UUID, filter shared.Filter) ([]Submission, error)

	// FindByUser finds all submissions of a user
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Submission, error)

	// Save creates or updates a submission
	Save(ctx context.Context, submission *Submission) error

	// Delete deletes a submission
	Delete(ctx context.Context, id uuid.UUID) error
}
