package learning

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/domain/learning"
	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/mindsacademy/backend/internal/infrastructure/telemetry"
)

// SubmissionService handles answer submission and grading
type SubmissionService struct {
	submissionRepo  learning.SubmissionRepository
	assignmentRepo  learning.AssignmentRepository
	enrollmentRepo  learning.EnrollmentRepository
	courseRepo      catalog.CourseRepository
	moduleRepo      catalog.ModuleRepository
	lessonRepo      catalog.LessonRepository
	eventPublisher  shared.EventPublisher
	learningMetrics *telemetry.LearningMetrics
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(
	submissionRepo learning.SubmissionRepository,
	assignmentRepo learning.AssignmentRepository,
	enrollmentRepo learning.EnrollmentRepository,
	courseRepo catalog.CourseRepository,
	moduleRepo catalog.ModuleRepository,
	lessonRepo catalog.LessonRepository,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		assignmentRepo: assignmentRepo,
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		moduleRepo:     moduleRepo,
		lessonRepo:     lessonRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SubmissionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetLearningMetrics sets the learning metrics collector
func (s *SubmissionService) SetLearningMetrics(lm *telemetry.LearningMetrics) {
	s.learningMetrics = lm
}

// Submit records the viewer's answer for an assignment. A second submit
// replaces the previous answer and clears any grade.
func (s *SubmissionService) Submit(ctx context.Context, userID, assignmentID uuid.UUID, req SubmitRequest) (*SubmissionResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	enrollment, err := s.enrollmentForAssignment(ctx, userID, assignment)
	if err != nil {
		return nil, err
	}

	existing, err := s.submissionRepo.FindByAssignmentAndUser(ctx, assignmentID, userID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	var submission *learning.Submission
	resubmission := existing != nil
	if resubmission {
		submission = existing
		if err := submission.Resubmit(req.AnswerURL); err != nil {
			return nil, err
		}
	} else {
		submission, err = learning.NewSubmission(assignmentID, userID, enrollment.ID, req.AnswerURL)
		if err != nil {
			return nil, err
		}
	}

	if err := s.submissionRepo.Save(ctx, submission); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, submission)
	if s.learningMetrics != nil {
		s.learningMetrics.RecordSubmission(ctx, resubmission)
	}
	return ToSubmissionResponse(submission), nil
}

// Grade scores a submission. Only the course owner or an admin may
// grade, and the score cannot exceed the assignment's maximum.
func (s *SubmissionService) Grade(ctx context.Context, viewer catalog.Viewer, submissionID uuid.UUID, req GradeRequest) (*SubmissionResponse, error) {
	submission, err := s.submissionRepo.FindByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	assignment, err := s.assignmentRepo.FindByID(ctx, submission.AssignmentID)
	if err != nil {
		return nil, err
	}
	if err := s.checkLessonEdit(ctx, viewer, assignment.LessonID); err != nil {
		return nil, err
	}

	if err := submission.Grade(req.Score, assignment.MaxScore, req.Feedback); err != nil {
		return nil, err
	}
	if err := s.submissionRepo.Save(ctx, submission); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, submission)
	if s.learningMetrics != nil {
		s.learningMetrics.RecordSubmissionGraded(ctx, req.Score)
	}
	return ToSubmissionResponse(submission), nil
}

// GetMine retrieves the viewer's submission for an assignment
func (s *SubmissionService) GetMine(ctx context.Context, userID, assignmentID uuid.UUID) (*SubmissionResponse, error) {
	submission, err := s.submissionRepo.FindByAssignmentAndUser(ctx, assignmentID, userID)
	if err != nil {
		return nil, err
	}
	return ToSubmissionResponse(submission), nil
}

// ListMine retrieves all submissions of the viewer
func (s *SubmissionService) ListMine(ctx context.Context, userID uuid.UUID) ([]SubmissionResponse, error) {
	submissions, err := s.submissionRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]SubmissionResponse, len(submissions))
	for i := range submissions {
		responses[i] = *ToSubmissionResponse(&submissions[i])
	}
	return responses, nil
}

// ListByAssignment retrieves the submissions for an assignment. Course
// owners and admins only.
func (s *SubmissionService) ListByAssignment(ctx context.Context, viewer catalog.Viewer, assignmentID uuid.UUID, filter shared.Filter) ([]SubmissionResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if err := s.checkLessonEdit(ctx, viewer, assignment.LessonID); err != nil {
		return nil, err
	}

	submissions, err := s.submissionRepo.FindByAssignment(ctx, assignmentID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]SubmissionResponse, len(submissions))
	for i := range submissions {
		responses[i] = *ToSubmissionResponse(&submissions[i])
	}
	return responses, nil
}

// enrollmentForAssignment resolves the assignment's course and requires
// an active enrollment of the user in it
func (s *SubmissionService) enrollmentForAssignment(ctx context.Context, userID uuid.UUID, assignment *learning.Assignment) (*learning.Enrollment, error) {
	lesson, err := s.lessonRepo.FindByID(ctx, assignment.LessonID)
	if err != nil {
		return nil, err
	}
	module, err := s.moduleRepo.FindByID(ctx, lesson.ModuleID)
	if err != nil {
		return nil, err
	}

	enrollment, err := s.enrollmentRepo.FindByUserAndCourse(ctx, userID, module.CourseID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotEnrolled
		}
		return nil, err
	}
	if !enrollment.IsActive() {
		return nil, shared.ErrNotEnrolled
	}
	return enrollment, nil
}

func (s *SubmissionService) checkLessonEdit(ctx context.Context, viewer catalog.Viewer, lessonID uuid.UUID) error {
	lesson, err := s.lessonRepo.FindByID(ctx, lessonID)
	if err != nil {
		return err
	}
	module, err := s.moduleRepo.FindByID(ctx, lesson.ModuleID)
	if err != nil {
		return err
	}
	course, err := s.courseRepo.FindByID(ctx, module.CourseID)
	if err != nil {
		return err
	}
	if !course.CanEdit(viewer) {
		return shared.ErrForbidden
	}
	return nil
}

func (s *SubmissionService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
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
