package catalog

import (
	"strings"
	"time"

	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LessonContentType describes the kind of content a lesson points at
type LessonContentType string

const (
	ContentTypeVideo    LessonContentType = "video"
	ContentTypeDocument LessonContentType = "document"
	ContentTypeText     LessonContentType = "text"
	ContentTypeQuiz     LessonContentType = "quiz"
)

// Lesson is a single unit of content within a module. Lessons are ordered
// by Position, unique within their module.
type Lesson struct {
	shared.BaseAggregateRoot
	ModuleID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	Title           string            `gorm:"type:varchar(200);not null"`
	Description     string            `gorm:"type:text"`
	DurationMinutes int               `gorm:"not null;default:0"`
	ContentURL      string            `gorm:"type:varchar(2048)"`
	ContentType     LessonContentType `gorm:"type:varchar(20);not null;default:'video'"`
	Position        int               `gorm:"not null;default:0"`
	Public          bool              `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Lesson) TableName() string {
	return "lesson"
}

// NewLesson creates a new lesson at the given position within a module
func NewLesson(moduleID uuid.UUID, title string, contentType LessonContentType, position int) (*Lesson, error) {
	if err := validateLessonTitle(title); err != nil {
		return nil, err
	}
	if err := validateContentType(contentType); err != nil {
		return nil, err
	}
	if position < 1 {
		return nil, shared.NewDomainError("INVALID_POSITION", "Lesson position must be at least 1")
	}

	lesson := &Lesson{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ModuleID:          moduleID,
		Title:             strings.TrimSpace(title),
		ContentType:       contentType,
		Position:          position,
	}

	lesson.AddDomainEvent(NewLessonCreatedEvent(lesson))

	return lesson, nil
}

// Update updates the lesson's descriptive fields
func (l *Lesson) Update(title, description string, durationMinutes int) error {
	if err := validateLessonTitle(title); err != nil {
		return err
	}
	if durationMinutes < 0 {
		return shared.NewDomainError("INVALID_DURATION", "Lesson duration cannot be negative")
	}

	l.Title = strings.TrimSpace(title)
	l.Description = description
	l.DurationMinutes = durationMinutes
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// SetContent sets the content URL and type
func (l *Lesson) SetContent(contentURL string, contentType LessonContentType) error {
	if err := validateContentType(contentType); err != nil {
		return err
	}
	if len(contentURL) > 2048 {
		return shared.NewDomainError("INVALID_CONTENT_URL", "Content URL cannot exceed 2048 characters")
	}

	l.ContentURL = contentURL
	l.ContentType = contentType
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// SetPublic marks the lesson as previewable without enrollment
func (l *Lesson) SetPublic(public bool) {
	l.Public = public
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// MoveTo sets an absolute position within the module
func (l *Lesson) MoveTo(position int) error {
	if position < 1 {
		return shared.NewDomainError("INVALID_POSITION", "Lesson position must be at least 1")
	}
	if l.Position == position {
		return nil
	}

	l.Position = position
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// validateLessonTitle validates the lesson title
func validateLessonTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Lesson title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Lesson title cannot exceed 200 characters")
	}
	return nil
}

// validateContentType validates the lesson content type
func validateContentType(contentType LessonContentType) error {
	switch contentType {
	case ContentTypeVideo, ContentTypeDocument, ContentTypeText, ContentTypeQuiz:
		return nil
	default:
		return shared.NewDomainError("INVALID_CONTENT_TYPE", "Lesson content type must be video, document, text or quiz")
	}
}
