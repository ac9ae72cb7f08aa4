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

// EnrollmentService handles enrollment lifecycle and lesson progress
type EnrollmentService struct {
	enrollmentRepo  learning.EnrollmentRepository
	progressRepo    learning.ProgressRepository
	courseRepo      catalog.CourseRepository
	moduleRepo      catalog.ModuleRepository
	lessonRepo      catalog.LessonRepository
	eventPublisher  shared.EventPublisher
	learningMetrics *telemetry.LearningMetrics
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	enrollmentRepo learning.EnrollmentRepository,
	progressRepo learning.ProgressRepository,
	courseRepo catalog.CourseRepository,
	moduleRepo catalog.ModuleRepository,
	lessonRepo catalog.LessonRepository,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
		courseRepo:     courseRepo,
		moduleRepo:     moduleRepo,
		lessonRepo:     lessonRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *EnrollmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetLearningMetrics sets the learning metrics collector
func (s *EnrollmentService) SetLearningMetrics(lm *telemetry.LearningMetrics) {
	s.learningMetrics = lm
}

// Enroll enrolls the viewer in a course. The course must be active and
// visible to the viewer. A dropped enrollment is replaced by a fresh
// one, discarding its old progress.
func (s *EnrollmentService) Enroll(ctx context.Context, viewer catalog.Viewer, courseID uuid.UUID) (*EnrollmentResponse, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.VisibleTo(viewer) {
		return nil, shared.ErrNotFound
	}

	existing, err := s.enrollmentRepo.FindByUserAndCourse(ctx, viewer.UserID, courseID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Status != learning.EnrollmentStatusDropped {
			return nil, shared.ErrAlreadyEnrolled
		}
		if err := s.enrollmentRepo.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
	}

	enrollment := learning.NewEnrollment(viewer.UserID, courseID)
	if err := s.enrollmentRepo.Save(ctx, enrollment); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, enrollment)
	if s.learningMetrics != nil {
		s.learningMetrics.RecordEnrollmentCreated(ctx, string(course.Level))
	}

	response := ToEnrollmentResponse(enrollment)
	response.Progress = &learning.Progress{}
	total, err := s.lessonRepo.CountByCourse(ctx, courseID)
	if err == nil {
		progress := learning.ComputeProgress(int(total), 0)
		response.Progress = &progress
	}
	return response, nil
}

// Drop drops the viewer's enrollment in a course
func (s *EnrollmentService) Drop(ctx context.Context, userID, courseID uuid.UUID) error {
	enrollment, err := s.enrollmentRepo.FindByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrNotEnrolled
		}
		return err
	}

	if err := enrollment.Drop(); err != nil {
		return err
	}
	return s.enrollmentRepo.Save(ctx, enrollment)
}

// ListMine retrieves the viewer's enrollments with aggregated progress
func (s *EnrollmentService) ListMine(ctx context.Context, userID uuid.UUID) ([]EnrollmentResponse, error) {
	enrollments, err := s.enrollmentRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]EnrollmentResponse, len(enrollments))
	for i := range enrollments {
		response := ToEnrollmentResponse(&enrollments[i])
		progress, err := s.computeProgress(ctx, &enrollments[i])
		if err != nil {
			return nil, err
		}
		response.Progress = &progress
		responses[i] = *response
	}
	return responses, nil
}

// GetProgress retrieves the per-lesson completion state of the viewer's
// enrollment in a course
func (s *EnrollmentService) GetProgress(ctx context.Context, userID, courseID uuid.UUID) (*EnrollmentResponse, []LessonProgressResponse, error) {
	enrollment, err := s.enrollmentRepo.FindByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil, shared.ErrNotEnrolled
		}
		return nil, nil, err
	}

	response := ToEnrollmentResponse(enrollment)
	progress, err := s.computeProgress(ctx, enrollment)
	if err != nil {
		return nil, nil, err
	}
	response.Progress = &progress

	records, err := s.progressRepo.FindByEnrollment(ctx, enrollment.ID)
	if err != nil {
		return nil, nil, err
	}
	lessonResponses := make([]LessonProgressResponse, len(records))
	for i := range records {
		lessonResponses[i] = *ToLessonProgressResponse(&records[i])
	}
	return response, lessonResponses, nil
}

// CompleteLesson marks a lesson as completed within the viewer's active
// enrollment. Completing the last lesson completes the enrollment.
// Marking an already completed lesson is a no-op that keeps the
// original completion timestamp.
func (s *EnrollmentService) CompleteLesson(ctx context.Context, userID, lessonID uuid.UUID) (*EnrollmentResponse, error) {
	enrollment, err := s.activeEnrollmentForLesson(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}

	record, err := s.progressRepo.FindByEnrollmentAndLesson(ctx, enrollment.ID, lessonID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		record = learning.NewLessonProgress(enrollment.ID, lessonID)
	}

	record.MarkCompleted()
	if err := s.progressRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	if s.learningMetrics != nil {
		s.learningMetrics.RecordLessonCompleted(ctx)
	}

	progress, err := s.computeProgress(ctx, enrollment)
	if err != nil {
		return nil, err
	}

	if progress.TotalLessons > 0 && progress.CompletedLessons == progress.TotalLessons && enrollment.IsActive() {
		if err := enrollment.Complete(); err != nil {
			return nil, err
		}
		if err := s.enrollmentRepo.Save(ctx, enrollment); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, enrollment)
	}

	response := ToEnrollmentResponse(enrollment)
	response.Progress = &progress
	return response, nil
}

// UncompleteLesson clears a lesson's completion flag
func (s *EnrollmentService) UncompleteLesson(ctx context.Context, userID, lessonID uuid.UUID) (*EnrollmentResponse, error) {
	enrollment, err := s.activeEnrollmentForLesson(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}

	record, err := s.progressRepo.FindByEnrollmentAndLesson(ctx, enrollment.ID, lessonID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// Nothing to clear
			progress, perr := s.computeProgress(ctx, enrollment)
			if perr != nil {
				return nil, perr
			}
			response := ToEnrollmentResponse(enrollment)
			response.Progress = &progress
			return response, nil
		}
		return nil, err
	}

	record.MarkIncomplete()
	if err := s.progressRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	progress, err := s.computeProgress(ctx, enrollment)
	if err != nil {
		return nil, err
	}
	response := ToEnrollmentResponse(enrollment)
	response.Progress = &progress
	return response, nil
}

// ListByCourse retrieves the enrollments of a course. Course owners and
// admins only.
func (s *EnrollmentService) ListByCourse(ctx context.Context, viewer catalog.Viewer, courseID uuid.UUID, filter shared.Filter) ([]EnrollmentResponse, int64, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, 0, err
	}
	if !course.CanEdit(viewer) {
		return nil, 0, shared.ErrForbidden
	}

	enrollments, err := s.enrollmentRepo.FindByCourse(ctx, courseID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.enrollmentRepo.CountByCourse(ctx, courseID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]EnrollmentResponse, len(enrollments))
	for i := range enrollments {
		responses[i] = *ToEnrollmentResponse(&enrollments[i])
	}
	return responses, total, nil
}

// activeEnrollmentForLesson resolves the lesson's course and loads the
// viewer's active enrollment in it
func (s *EnrollmentService) activeEnrollmentForLesson(ctx context.Context, userID, lessonID uuid.UUID) (*learning.Enrollment, error) {
	lesson, err := s.lessonRepo.FindByID(ctx, lessonID)
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
	// Completed enrollments still accept progress updates so that
	// re-marking the final lesson stays idempotent. Dropped ones do not.
	if enrollment.Status == learning.EnrollmentStatusDropped {
		return nil, shared.ErrNotEnrolled
	}
	return enrollment, nil
}

func (s *EnrollmentService) computeProgress(ctx context.Context, enrollment *learning.Enrollment) (learning.Progress, error) {
	total, err := s.lessonRepo.CountByCourse(ctx, enrollment.CourseID)
	if err != nil {
		return learning.Progress{}, err
	}
	completed, err := s.progressRepo.CountCompleted(ctx, enrollment.ID)
	if err != nil {
		return learning.Progress{}, err
	}
	return learning.ComputeProgress(int(total), int(completed)), nil
}

func (s *EnrollmentService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
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
