package learning

import (
	"context"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/domain/learning"
	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// defaultMaxScore is used when an assignment is created without an
// explicit maximum
var defaultMaxScore = decimal.NewFromInt(100)

// AssignmentService handles assignments attached to lessons
type AssignmentService struct {
	assignmentRepo learning.AssignmentRepository
	courseRepo     catalog.CourseRepository
	moduleRepo     catalog.ModuleRepository
	lessonRepo     catalog.LessonRepository
	eventPublisher shared.EventPublisher
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	assignmentRepo learning.AssignmentRepository,
	courseRepo catalog.CourseRepository,
	moduleRepo catalog.ModuleRepository,
	lessonRepo catalog.LessonRepository,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		courseRepo:     courseRepo,
		moduleRepo:     moduleRepo,
		lessonRepo:     lessonRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *AssignmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create attaches an assignment to a lesson
func (s *AssignmentService) Create(ctx context.Context, viewer catalog.Viewer, lessonID uuid.UUID, req CreateAssignmentRequest) (*AssignmentResponse, error) {
	if err := s.checkLessonEdit(ctx, viewer, lessonID); err != nil {
		return nil, err
	}

	maxScore := defaultMaxScore
	if req.MaxScore != nil {
		maxScore = *req.MaxScore
	}

	assignment, err := learning.NewAssignment(lessonID, req.Title, req.Description, maxScore)
	if err != nil {
		return nil, err
	}
	assignment.SetDueDate(req.DueDate)

	if err := s.assignmentRepo.Save(ctx, assignment); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, assignment)
	return ToAssignmentResponse(assignment), nil
}

// GetByID retrieves an assignment
func (s *AssignmentService) GetByID(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) (*AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkLessonView(ctx, viewer, assignment.LessonID); err != nil {
		return nil, err
	}
	return ToAssignmentResponse(assignment), nil
}

// ListByLesson retrieves the assignments of a lesson
func (s *AssignmentService) ListByLesson(ctx context.Context, viewer catalog.Viewer, lessonID uuid.UUID) ([]AssignmentResponse, error) {
	if err := s.checkLessonView(ctx, viewer, lessonID); err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.FindByLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	responses := make([]AssignmentResponse, len(assignments))
	for i := range assignments {
		responses[i] = *ToAssignmentResponse(&assignments[i])
	}
	return responses, nil
}

// Update updates an assignment
func (s *AssignmentService) Update(ctx context.Context, viewer catalog.Viewer, id uuid.UUID, req UpdateAssignmentRequest) (*AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkLessonEdit(ctx, viewer, assignment.LessonID); err != nil {
		return nil, err
	}

	title := assignment.Title
	description := assignment.Description
	if req.Title != nil {
		title = *req.Title
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := assignment.Update(title, description); err != nil {
		return nil, err
	}

	if req.ClearDue {
		assignment.SetDueDate(nil)
	} else if req.DueDate != nil {
		assignment.SetDueDate(req.DueDate)
	}
	if req.MaxScore != nil {
		if err := assignment.SetMaxScore(*req.MaxScore); err != nil {
			return nil, err
		}
	}

	if err := s.assignmentRepo.Save(ctx, assignment); err != nil {
		return nil, err
	}
	return ToAssignmentResponse(assignment), nil
}

// Delete deletes an assignment
func (s *AssignmentService) Delete(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) error {
	assignment, err := s.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkLessonEdit(ctx, viewer, assignment.LessonID); err != nil {
		return err
	}
	return s.assignmentRepo.Delete(ctx, id)
}

func (s *AssignmentService) checkLessonEdit(ctx context.Context, viewer catalog.Viewer, lessonID uuid.UUID) error {
	course, err := s.courseForLesson(ctx, lessonID)
	if err != nil {
		return err
	}
	if !course.CanEdit(viewer) {
		return shared.ErrForbidden
	}
	return nil
}

func (s *AssignmentService) checkLessonView(ctx context.Context, viewer catalog.Viewer, lessonID uuid.UUID) error {
	course, err := s.courseForLesson(ctx, lessonID)
	if err != nil {
		return err
	}
	if !course.CanView(viewer) {
		return shared.ErrNotFound
	}
	return nil
}

func (s *AssignmentService) courseForLesson(ctx context.Context, lessonID uuid.UUID) (*catalog.Course, error) {
	lesson, err := s.lessonRepo.FindByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	module, err := s.moduleRepo.FindByID(ctx, lesson.ModuleID)
	if err != nil {
		return nil, err
	}
	return s.courseRepo.FindByID(ctx, module.CourseID)
}

func (s *AssignmentService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	aggregate.ClearDomainEvents()
}
