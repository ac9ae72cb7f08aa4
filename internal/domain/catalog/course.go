package catalog

import (
	"strings"
	"time"

	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CourseStatus represents the publication status of a course
type CourseStatus string

const (
	CourseStatusDraft  CourseStatus = "draft"
	CourseStatusActive CourseStatus = "active"
)

// CourseAudience restricts who can see a published course
type CourseAudience string

const (
	AudienceStudent CourseAudience = "student"
	AudienceTeacher CourseAudience = "teacher"
)

// CourseLevel represents the difficulty level of a course
type CourseLevel string

const (
	LevelBeginner     CourseLevel = "beginner"
	LevelIntermediate CourseLevel = "intermediate"
	LevelAdvanced     CourseLevel = "advanced"
)

// Viewer describes the authenticated subject for visibility decisions.
// Visibility is always decided server-side; handlers build a Viewer from
// the session claims and pass it down.
type Viewer struct {
	UserID    uuid.UUID
	IsAdmin   bool
	IsTeacher bool
}

// Course is the aggregate root for course authoring.
// A course owns ordered modules, which in turn own ordered lessons.
type Course struct {
	shared.OwnedAggregateRoot
	Title       string         `gorm:"type:varchar(200);not null"`
	Description string         `gorm:"type:text"`
	Level       CourseLevel    `gorm:"type:varchar(20);not null;default:'beginner'"`
	Status      CourseStatus   `gorm:"type:varchar(20);not null;default:'draft'"`
	Audience    CourseAudience `gorm:"type:varchar(20);not null;default:'student'"`
	ThumbnailID *uuid.UUID     `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Course) TableName() string {
	return "course"
}

// NewCourse creates a new draft course owned by the given user
func NewCourse(ownerID uuid.UUID, title, description string, audience CourseAudience) (*Course, error) {
	if err := validateCourseTitle(title); err != nil {
		return nil, err
	}
	if err := validateAudience(audience); err != nil {
		return nil, err
	}

	course := &Course{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Title:              strings.TrimSpace(title),
		Description:        description,
		Level:              LevelBeginner,
		Status:             CourseStatusDraft,
		Audience:           audience,
	}

	course.AddDomainEvent(NewCourseCreatedEvent(course))

	return course, nil
}

// Update updates the course's basic information
func (c *Course) Update(title, description string) error {
	if err := validateCourseTitle(title); err != nil {
		return err
	}

	c.Title = strings.TrimSpace(title)
	c.Description = description
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCourseUpdatedEvent(c))

	return nil
}

// SetLevel sets the difficulty level
func (c *Course) SetLevel(level CourseLevel) error {
	switch level {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
	default:
		return shared.NewDomainError("INVALID_LEVEL", "Course level must be beginner, intermediate or advanced")
	}

	c.Level = level
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetAudience changes who can see the course once published
func (c *Course) SetAudience(audience CourseAudience) error {
	if err := validateAudience(audience); err != nil {
		return err
	}

	c.Audience = audience
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetThumbnail attaches a media file as the course thumbnail
func (c *Course) SetThumbnail(mediaID *uuid.UUID) {
	c.ThumbnailID = mediaID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Publish moves the course from draft to active
func (c *Course) Publish() error {
	if c.Status == CourseStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Course is already published")
	}

	c.Status = CourseStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCourseStatusChangedEvent(c, CourseStatusDraft, CourseStatusActive))

	return nil
}

// Unpublish moves the course back to draft
func (c *Course) Unpublish() error {
	if c.Status == CourseStatusDraft {
		return shared.NewDomainError("ALREADY_DRAFT", "Course is already a draft")
	}

	c.Status = CourseStatusDraft
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCourseStatusChangedEvent(c, CourseStatusActive, CourseStatusDraft))

	return nil
}

// IsPublished returns true if the course is active
func (c *Course) IsPublished() bool {
	return c.Status == CourseStatusActive
}

// VisibleTo reports whether the course appears in the public catalog for
// the given viewer. Student-audience courses are visible to everyone;
// teacher-audience courses require a teacher or admin viewer. Drafts are
// never publicly visible regardless of role.
func (c *Course) VisibleTo(v Viewer) bool {
	if c.Status != CourseStatusActive {
		return false
	}
	if c.Audience == AudienceStudent {
		return true
	}
	return v.IsTeacher || v.IsAdmin
}

// CanView reports whether the viewer may read the course at all. This is
// the broader authoring path: owners and admins also see drafts.
func (c *Course) CanView(v Viewer) bool {
	if c.VisibleTo(v) {
		return true
	}
	return v.IsAdmin || c.IsOwnedBy(v.UserID)
}

// CanEdit reports whether the viewer may modify the course
func (c *Course) CanEdit(v Viewer) bool {
	return v.IsAdmin || c.IsOwnedBy(v.UserID)
}

// validateCourseTitle validates the course title
func validateCourseTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Course title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Course title cannot exceed 200 characters")
	}
	return nil
}

// validateAudience validates the course audience
func validateAudience(audience CourseAudience) error {
	switch audience {
	case AudienceStudent, AudienceTeacher:
		return nil
	default:
		return shared.NewDomainError("INVALID_AUDIENCE", "Course audience must be student or teacher")
	}
}
