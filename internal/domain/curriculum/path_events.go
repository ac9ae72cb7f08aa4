package curriculum

import (
	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeLearningPath = "LearningPath"

// Event type constants
const (
	EventTypePathCreated         = "LearningPathCreated"
	EventTypePathUpdated         = "LearningPathUpdated"
	EventTypePathCoursesReorder  = "LearningPathCoursesReordered"
)

// PathCreatedEvent is published when a learning path is created
type PathCreatedEvent struct {
	shared.BaseDomainEvent
	PathID uuid.UUID `json:"path_id"`
	Title  string    `json:"title"`
}

// NewPathCreatedEvent creates a new PathCreatedEvent
func NewPathCreatedEvent(path *LearningPath) *PathCreatedEvent {
	return &PathCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePathCreated, AggregateTypeLearningPath, path.ID),
		PathID:          path.ID,
		Title:           path.Title,
	}
}

// PathUpdatedEvent is published when a learning path is updated
type PathUpdatedEvent struct {
	shared.BaseDomainEvent
	PathID uuid.UUID `json:"path_id"`
	Title  string    `json:"title"`
}

// NewPathUpdatedEvent creates a new PathUpdatedEvent
func NewPathUpdatedEvent(path *LearningPath) *PathUpdatedEvent {
	return &PathUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePathUpdated, AggregateTypeLearningPath, path.ID),
		PathID:          path.ID,
		Title:           path.Title,
	}
}
