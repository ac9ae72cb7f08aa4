package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/domain/shared"
)

// CourseService handles course authoring and catalog browsing
type CourseService struct {
	courseRepo     catalog.CourseRepository
	moduleRepo     catalog.ModuleRepository
	lessonRepo     catalog.LessonRepository
	eventPublisher shared.EventPublisher
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseRepo catalog.CourseRepository,
	moduleRepo catalog.ModuleRepository,
	lessonRepo catalog.LessonRepository,
) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		moduleRepo: moduleRepo,
		lessonRepo: lessonRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CourseService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new draft course owned by the viewer
func (s *CourseService) Create(ctx context.Context, viewer catalog.Viewer, req CreateCourseRequest) (*CourseResponse, error) {
	if !viewer.IsAdmin && !viewer.IsTeacher {
		return nil, shared.ErrForbidden
	}

	audience := catalog.AudienceStudent
	if req.Audience != "" {
		audience = catalog.CourseAudience(req.Audience)
	}

	course, err := catalog.NewCourse(viewer.UserID, req.Title, req.Description, audience)
	if err != nil {
		return nil, err
	}

	if req.Level != "" {
		if err := course.SetLevel(catalog.CourseLevel(req.Level)); err != nil {
			return nil, err
		}
	}
	course.SetThumbnail(req.ThumbnailID)

	if err := s.courseRepo.Save(ctx, course); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, course)
	return ToCourseResponse(course), nil
}

// GetByID retrieves a course visible to the viewer. Drafts are only
// returned to their owner or an admin.
func (s *CourseService) GetByID(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) (*CourseResponse, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !course.CanView(viewer) {
		return nil, shared.ErrNotFound
	}
	return ToCourseResponse(course), nil
}

// List retrieves active courses visible to the viewer
func (s *CourseService) List(ctx context.Context, viewer catalog.Viewer, filter CourseListFilter) ([]CourseResponse, int64, error) {
	domainFilter := filter.buildFilter()

	courses, err := s.courseRepo.FindVisible(ctx, viewer, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.courseRepo.CountVisible(ctx, viewer, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CourseResponse, len(courses))
	for i := range courses {
		responses[i] = *ToCourseResponse(&courses[i])
	}
	return responses, total, nil
}

// ListAll retrieves all courses regardless of status. Admin only.
func (s *CourseService) ListAll(ctx context.Context, viewer catalog.Viewer, filter CourseListFilter) ([]CourseResponse, int64, error) {
	if !viewer.IsAdmin {
		return nil, 0, shared.ErrForbidden
	}
	domainFilter := filter.buildFilter()

	courses, err := s.courseRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.courseRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CourseResponse, len(courses))
	for i := range courses {
		responses[i] = *ToCourseResponse(&courses[i])
	}
	return responses, total, nil
}

// ListMine retrieves the viewer's own courses, drafts included
func (s *CourseService) ListMine(ctx context.Context, viewer catalog.Viewer, filter CourseListFilter) ([]CourseResponse, error) {
	courses, err := s.courseRepo.FindByOwner(ctx, viewer.UserID, filter.buildFilter())
	if err != nil {
		return nil, err
	}

	responses := make([]CourseResponse, len(courses))
	for i := range courses {
		responses[i] = *ToCourseResponse(&courses[i])
	}
	return responses, nil
}

// Update updates an existing course
func (s *CourseService) Update(ctx context.Context, viewer catalog.Viewer, id uuid.UUID, req UpdateCourseRequest) (*CourseResponse, error) {
	course, err := s.editableCourse(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	title := course.Title
	description := course.Description
	if req.Title != nil {
		title = *req.Title
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := course.Update(title, description); err != nil {
		return nil, err
	}

	if req.Level != nil {
		if err := course.SetLevel(catalog.CourseLevel(*req.Level)); err != nil {
			return nil, err
		}
	}
	if req.Audience != nil {
		if err := course.SetAudience(catalog.CourseAudience(*req.Audience)); err != nil {
			return nil, err
		}
	}
	if req.ThumbnailID != nil {
		course.SetThumbnail(req.ThumbnailID)
	}

	if err := s.courseRepo.Save(ctx, course); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, course)
	return ToCourseResponse(course), nil
}

// Publish makes a course active and visible to its audience
func (s *CourseService) Publish(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) (*CourseResponse, error) {
	course, err := s.editableCourse(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	if err := course.Publish(); err != nil {
		return nil, err
	}
	if err := s.courseRepo.Save(ctx, course); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, course)
	return ToCourseResponse(course), nil
}

// Unpublish returns a course to draft state
func (s *CourseService) Unpublish(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) (*CourseResponse, error) {
	course, err := s.editableCourse(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	if err := course.Unpublish(); err != nil {
		return nil, err
	}
	if err := s.courseRepo.Save(ctx, course); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, course)
	return ToCourseResponse(course), nil
}

// Delete deletes a course
func (s *CourseService) Delete(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) error {
	if _, err := s.editableCourse(ctx, viewer, id); err != nil {
		return err
	}
	return s.courseRepo.Delete(ctx, id)
}

// editableCourse loads a course and checks edit permission
func (s *CourseService) editableCourse(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) (*catalog.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !course.CanEdit(viewer) {
		return nil, shared.ErrForbidden
	}
	return course, nil
}

func (s *CourseService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := aggregate.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
	aggregate.ClearDomainEvents()
}
