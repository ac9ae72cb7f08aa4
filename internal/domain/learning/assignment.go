package learning

import (
	"strings"
	"time"

	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Assignment is graded work attached to a lesson
type Assignment struct {
	shared.BaseAggregateRoot
	LessonID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title       string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	DueDate     *time.Time      `gorm:""`
	MaxScore    decimal.Decimal `gorm:"type:decimal(6,2);not null"`
}

// TableName returns the table name for GORM
func (Assignment) TableName() string {
	return "assignment"
}

// NewAssignment creates a new assignment for a lesson
func NewAssignment(lessonID uuid.UUID, title, description string, maxScore decimal.Decimal) (*Assignment, error) {
	if err := validateAssignmentTitle(title); err != nil {
		return nil, err
	}
	if maxScore.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_MAX_SCORE", "Assignment max score must be positive")
	}

	assignment := &Assignment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		LessonID:          lessonID,
		Title:             strings.TrimSpace(title),
		Description:       description,
		MaxScore:          maxScore,
	}

	assignment.AddDomainEvent(NewAssignmentCreatedEvent(assignment))

	return assignment, nil
}

// Update updates the assignment's descriptive fields
func (a *Assignment) Update(title, description string) error {
	if err := validateAssignmentTitle(title); err != nil {
		return err
	}

	a.Title = strings.TrimSpace(title)
	a.Description = description
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// SetDueDate sets or clears the due date
func (a *Assignment) SetDueDate(due *time.Time) {
	a.DueDate = due
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// SetMaxScore changes the maximum achievable score
func (a *Assignment) SetMaxScore(maxScore decimal.Decimal) error {
	if maxScore.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_MAX_SCORE", "Assignment max score must be positive")
	}

	a.MaxScore = maxScore
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// IsOverdue returns true if the due date has passed
func (a *Assignment) IsOverdue(now time.Time) bool {
	return a.DueDate != nil && now.After(*a.DueDate)
}

// validateAssignmentTitle validates the assignment title
func validateAssignmentTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Assignment title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Assignment title cannot exceed 200 characters")
	}
	return nil
}
