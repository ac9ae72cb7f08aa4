package learning

import (
	"time"

	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EnrollmentStatus represents the lifecycle state of an enrollment
type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
	EnrollmentStatusDropped   EnrollmentStatus = "dropped"
)

// Enrollment links a user to a course and anchors per-lesson progress
type Enrollment struct {
	shared.BaseAggregateRoot
	UserID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course,priority:1"`
	CourseID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course,priority:2"`
	Status   EnrollmentStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Enrollment) TableName() string {
	return "enrollment"
}

// NewEnrollment enrolls a user in a course
func NewEnrollment(userID, courseID uuid.UUID) *Enrollment {
	enrollment := &Enrollment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		CourseID:          courseID,
		Status:            EnrollmentStatusActive,
	}

	enrollment.AddDomainEvent(NewEnrollmentCreatedEvent(enrollment))

	return enrollment
}

// Complete marks the enrollment as completed
func (e *Enrollment) Complete() error {
	if e.Status != EnrollmentStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active enrollments can be completed")
	}

	e.Status = EnrollmentStatusCompleted
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewEnrollmentCompletedEvent(e))

	return nil
}

// Drop marks the enrollment as dropped
func (e *Enrollment) Drop() error {
	if e.Status == EnrollmentStatusDropped {
		return shared.NewDomainError("INVALID_STATE", "Enrollment is already dropped")
	}

	e.Status = EnrollmentStatusDropped
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// IsActive returns true if the enrollment is active
func (e *Enrollment) IsActive() bool {
	return e.Status == EnrollmentStatusActive
}

// LessonProgress records a single lesson's completion within an enrollment
type LessonProgress struct {
	shared.BaseEntity
	EnrollmentID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_progress_enrollment_lesson,priority:1"`
	LessonID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_progress_enrollment_lesson,priority:2"`
	Completed    bool       `gorm:"not null;default:false"`
	CompletedAt  *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (LessonProgress) TableName() string {
	return "lesson_progress"
}

// NewLessonProgress creates a progress record for a lesson within an enrollment
func NewLessonProgress(enrollmentID, lessonID uuid.UUID) *LessonProgress {
	return &LessonProgress{
		BaseEntity:   shared.NewBaseEntity(),
		EnrollmentID: enrollmentID,
		LessonID:     lessonID,
	}
}

// MarkCompleted flags the lesson as completed. Marking an already
// completed lesson keeps the original completion timestamp.
func (p *LessonProgress) MarkCompleted() {
	if p.Completed {
		return
	}
	now := time.Now()
	p.Completed = true
	p.CompletedAt = &now
	p.UpdatedAt = now
}

// MarkIncomplete clears the completion flag
func (p *LessonProgress) MarkIncomplete() {
	p.Completed = false
	p.CompletedAt = nil
	p.UpdatedAt = time.Now()
}

// Progress is the aggregated completion state of one enrollment.
// Percent is rounded to the nearest integer and is 0 when the course has
// no lessons.
type Progress struct {
	TotalLessons     int `json:"total_lessons"`
	CompletedLessons int `json:"completed_lessons"`
	Percent          int `json:"percent"`
}

// ComputeProgress derives the progress percentage from lesson counts
func ComputeProgress(totalLessons, completedLessons int) Progress {
	if totalLessons < 0 {
		totalLessons = 0
	}
	if completedLessons < 0 {
		completedLessons = 0
	}
	if completedLessons > totalLessons {
		completedLessons = totalLessons
	}

	percent := 0
	if totalLessons > 0 {
		// round(100 * completed / total) with integer arithmetic
		percent = (100*completedLessons + totalLessons/2) / totalLessons
	}

	return Progress{
		TotalLessons:     totalLessons,
		CompletedLessons: completedLessons,
		Percent:          percent,
	}
}
