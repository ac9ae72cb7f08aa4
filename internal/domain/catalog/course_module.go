package catalog

import (
	"strings"
	"time"

	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CourseModule groups lessons within a course. Modules are ordered by
// Position, which is an absolute 1-based index within the course.
type CourseModule struct {
	shared.BaseAggregateRoot
	CourseID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title    string    `gorm:"type:varchar(200);not null"`
	Position int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CourseModule) TableName() string {
	return "course_module"
}

// NewCourseModule creates a new module at the given position
func NewCourseModule(courseID uuid.UUID, title string, position int) (*CourseModule, error) {
	if err := validateModuleTitle(title); err != nil {
		return nil, err
	}
	if position < 1 {
		return nil, shared.NewDomainError("INVALID_POSITION", "Module position must be at least 1")
	}

	module := &CourseModule{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CourseID:          courseID,
		Title:             strings.TrimSpace(title),
		Position:          position,
	}

	module.AddDomainEvent(NewModuleCreatedEvent(module))

	return module, nil
}

// Rename changes the module title
func (m *CourseModule) Rename(title string) error {
	if err := validateModuleTitle(title); err != nil {
		return err
	}

	m.Title = strings.TrimSpace(title)
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// MoveTo sets an absolute position. Positions are replacement values, not
// deltas, so applying the same reorder twice is a no-op.
func (m *CourseModule) MoveTo(position int) error {
	if position < 1 {
		return shared.NewDomainError("INVALID_POSITION", "Module position must be at least 1")
	}
	if m.Position == position {
		return nil
	}

	m.Position = position
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// validateModuleTitle validates the module title
func validateModuleTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Module title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Module title cannot exceed 200 characters")
	}
	return nil
}
