package catalog

import (
	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeCourse       = "Course"
	AggregateTypeCourseModule = "CourseModule"
	AggregateTypeLesson       = "Lesson"
)

// Event type constants
const (
	EventTypeCourseCreated       = "CourseCreated"
	EventTypeCourseUpdated       = "CourseUpdated"
	EventTypeCourseStatusChanged = "CourseStatusChanged"
	EventTypeCourseDeleted       = "CourseDeleted"
	EventTypeModuleCreated       = "CourseModuleCreated"
	EventTypeLessonCreated       = "LessonCreated"
)

// CourseCreatedEvent is published when a new course is created
type CourseCreatedEvent struct {
	shared.BaseDomainEvent
	CourseID uuid.UUID      `json:"course_id"`
	Title    string         `json:"title"`
	Audience CourseAudience `json:"audience"`
	OwnerID  *uuid.UUID     `json:"owner_id,omitempty"`
}

// NewCourseCreatedEvent creates a new CourseCreatedEvent
func NewCourseCreatedEvent(course *Course) *CourseCreatedEvent {
	return &CourseCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCourseCreated, AggregateTypeCourse, course.ID),
		CourseID:        course.ID,
		Title:           course.Title,
		Audience:        course.Audience,
		OwnerID:         course.CreatedBy,
	}
}

// CourseUpdatedEvent is published when a course is updated
type CourseUpdatedEvent struct {
	shared.BaseDomainEvent
	CourseID uuid.UUID `json:"course_id"`
	Title    string    `json:"title"`
}

// NewCourseUpdatedEvent creates a new CourseUpdatedEvent
func NewCourseUpdatedEvent(course *Course) *CourseUpdatedEvent {
	return &CourseUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCourseUpdated, AggregateTypeCourse, course.ID),
		CourseID:        course.ID,
		Title:           course.Title,
	}
}

// CourseStatusChangedEvent is published when a course is published or unpublished
type CourseStatusChangedEvent struct {
	shared.BaseDomainEvent
	CourseID  uuid.UUID    `json:"course_id"`
	OldStatus CourseStatus `json:"old_status"`
	NewStatus CourseStatus `json:"new_status"`
}

// NewCourseStatusChangedEvent creates a new CourseStatusChangedEvent
func NewCourseStatusChangedEvent(course *Course, oldStatus, newStatus CourseStatus) *CourseStatusChangedEvent {
	return &CourseStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCourseStatusChanged, AggregateTypeCourse, course.ID),
		CourseID:        course.ID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// ModuleCreatedEvent is published when a module is added to a course
type ModuleCreatedEvent struct {
	shared.BaseDomainEvent
	ModuleID uuid.UUID `json:"module_id"`
	CourseID uuid.UUID `json:"course_id"`
	Title    string    `json:"title"`
	Position int       `json:"position"`
}

// NewModuleCreatedEvent creates a new ModuleCreatedEvent
func NewModuleCreatedEvent(module *CourseModule) *ModuleCreatedEvent {
	return &ModuleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeModuleCreated, AggregateTypeCourseModule, module.ID),
		ModuleID:        module.ID,
		CourseID:        module.CourseID,
		Title:           module.Title,
		Position:        module.Position,
	}
}

// LessonCreatedEvent is published when a lesson is added to a module
type LessonCreatedEvent struct {
	shared.BaseDomainEvent
	LessonID uuid.UUID `json:"lesson_id"`
	ModuleID uuid.UUID `json:"module_id"`
	Title    string    `json:"title"`
	Position int       `json:"position"`
}

// NewLessonCreatedEvent creates a new LessonCreatedEvent
func NewLessonCreatedEvent(lesson *Lesson) *LessonCreatedEvent {
	return &LessonCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLessonCreated, AggregateTypeLesson, lesson.ID),
		LessonID:        lesson.ID,
		ModuleID:        lesson.ModuleID,
		Title:           lesson.Title,
		Position:        lesson.Position,
	}
}
