package curriculum

import (
	"strings"
	"time"

	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LearningPath is an ordered sequence of courses presented as a guided
// curriculum. Course membership and ordering live on the join rows.
type LearningPath struct {
	shared.OwnedAggregateRoot
	Title       string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (LearningPath) TableName() string {
	return "learning_path"
}

// PathCourse is the join row linking a course into a learning path.
// Position is an absolute 1-based index within the path.
type PathCourse struct {
	shared.BaseEntity
	PathID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_path_course,priority:1"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_path_course,priority:2"`
	Position int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PathCourse) TableName() string {
	return "learning_path_course"
}

// NewLearningPath creates a new learning path
func NewLearningPath(ownerID uuid.UUID, title, description string) (*LearningPath, error) {
	if err := validatePathTitle(title); err != nil {
		return nil, err
	}

	path := &LearningPath{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Title:              strings.TrimSpace(title),
		Description:        description,
	}

	path.AddDomainEvent(NewPathCreatedEvent(path))

	return path, nil
}

// Update updates the path's basic information
func (p *LearningPath) Update(title, description string) error {
	if err := validatePathTitle(title); err != nil {
		return err
	}

	p.Title = strings.TrimSpace(title)
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPathUpdatedEvent(p))

	return nil
}

// NewPathCourse links a course into a path at the given position
func NewPathCourse(pathID, courseID uuid.UUID, position int) (*PathCourse, error) {
	if position < 1 {
		return nil, shared.NewDomainError("INVALID_POSITION", "Course position must be at least 1")
	}

	return &PathCourse{
		BaseEntity: shared.NewBaseEntity(),
		PathID:     pathID,
		CourseID:   courseID,
		Position:   position,
	}, nil
}

// MoveTo sets an absolute position within the path
func (pc *PathCourse) MoveTo(position int) error {
	if position < 1 {
		return shared.NewDomainError("INVALID_POSITION", "Course position must be at least 1")
	}
	if pc.Position == position {
		return nil
	}

	pc.Position = position
	pc.UpdatedAt = time.Now()

	return nil
}

// CourseOrder is one entry of a reorder request: an absolute position
// for a course within a path. Orders are replacement values, so applying
// the same list twice yields the same final ordering.
type CourseOrder struct {
	CourseID uuid.UUID
	Position int
}

// ApplyOrders sets positions on the join rows from a replacement list.
// Courses missing from the list keep their position; unknown course IDs
// are rejected.
func ApplyOrders(courses []PathCourse, orders []CourseOrder) error {
	byCourse := make(map[uuid.UUID]*PathCourse, len(courses))
	for i := range courses {
		byCourse[courses[i].CourseID] = &courses[i]
	}

	for _, order := range orders {
		pc, ok := byCourse[order.CourseID]
		if !ok {
			return shared.NewDomainError("COURSE_NOT_IN_PATH", "Course is not part of this learning path")
		}
		if err := pc.MoveTo(order.Position); err != nil {
			return err
		}
	}

	return nil
}

// validatePathTitle validates the learning path title
func validatePathTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Learning path title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Learning path title cannot exceed 200 characters")
	}
	return nil
}
