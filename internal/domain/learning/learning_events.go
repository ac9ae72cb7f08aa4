package learning

import (
	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeEnrollment = "Enrollment"
	AggregateTypeAssignment = "Assignment"
	AggregateTypeSubmission = "Submission"
)

// Event type constants
const (
	EventTypeEnrollmentCreated   = "EnrollmentCreated"
	EventTypeEnrollmentCompleted = "EnrollmentCompleted"
	EventTypeAssignmentCreated   = "AssignmentCreated"
	EventTypeSubmissionReceived  = "SubmissionReceived"
	EventTypeSubmissionGraded    = "SubmissionGraded"
)

// EnrollmentCreatedEvent is published when a user enrolls in a course
type EnrollmentCreatedEvent struct {
	shared.BaseDomainEvent
	EnrollmentID uuid.UUID `json:"enrollment_id"`
	UserID       uuid.UUID `json:"user_id"`
	CourseID     uuid.UUID `json:"course_id"`
}

// NewEnrollmentCreatedEvent creates a new EnrollmentCreatedEvent
func NewEnrollmentCreatedEvent(enrollment *Enrollment) *EnrollmentCreatedEvent {
	return &EnrollmentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEnrollmentCreated, AggregateTypeEnrollment, enrollment.ID),
		EnrollmentID:    enrollment.ID,
		UserID:          enrollment.UserID,
		CourseID:        enrollment.CourseID,
	}
}

// EnrollmentCompletedEvent is published when all lessons of a course are done
type EnrollmentCompletedEvent struct {
	shared.BaseDomainEvent
	EnrollmentID uuid.UUID `json:"enrollment_id"`
	UserID       uuid.UUID `json:"user_id"`
	CourseID     uuid.UUID `json:"course_id"`
}

// NewEnrollmentCompletedEvent creates a new EnrollmentCompletedEvent
func NewEnrollmentCompletedEvent(enrollment *Enrollment) *EnrollmentCompletedEvent {
	return &EnrollmentCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEnrollmentCompleted, AggregateTypeEnrollment, enrollment.ID),
		EnrollmentID:    enrollment.ID,
		UserID:          enrollment.UserID,
		CourseID:        enrollment.CourseID,
	}
}

// AssignmentCreatedEvent is published when an assignment is attached to a lesson
type AssignmentCreatedEvent struct {
	shared.BaseDomainEvent
	AssignmentID uuid.UUID `json:"assignment_id"`
	LessonID     uuid.UUID `json:"lesson_id"`
	Title        string    `json:"title"`
}

// NewAssignmentCreatedEvent creates a new AssignmentCreatedEvent
func NewAssignmentCreatedEvent(assignment *Assignment) *AssignmentCreatedEvent {
	return &AssignmentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAssignmentCreated, AggregateTypeAssignment, assignment.ID),
		AssignmentID:    assignment.ID,
		LessonID:        assignment.LessonID,
		Title:           assignment.Title,
	}
}

// SubmissionReceivedEvent is published on first submission and resubmission
type SubmissionReceivedEvent struct {
	shared.BaseDomainEvent
	SubmissionID uuid.UUID `json:"submission_id"`
	AssignmentID uuid.UUID `json:"assignment_id"`
	UserID       uuid.UUID `json:"user_id"`
}

// NewSubmissionReceivedEvent creates a new SubmissionReceivedEvent
func NewSubmissionReceivedEvent(submission *Submission) *SubmissionReceivedEvent {
	return &SubmissionReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSubmissionReceived, AggregateTypeSubmission, submission.ID),
		SubmissionID:    submission.ID,
		AssignmentID:    submission.AssignmentID,
		UserID:          submission.UserID,
	}
}

// SubmissionGradedEvent is published when a teacher grades a submission
type SubmissionGradedEvent struct {
	shared.BaseDomainEvent
	SubmissionID uuid.UUID `json:"submission_id"`
	AssignmentID uuid.UUID `json:"assignment_id"`
	UserID       uuid.UUID `json:"user_id"`
}

// NewSubmissionGradedEvent creates a new SubmissionGradedEvent
func NewSubmissionGradedEvent(submission *Submission) *SubmissionGradedEvent {
	return &SubmissionGradedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSubmissionGraded, AggregateTypeSubmission, submission.ID),
		SubmissionID:    submission.ID,
		AssignmentID:    submission.AssignmentID,
		UserID:          submission.UserID,
	}
}
