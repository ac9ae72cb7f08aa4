package catalog

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/domain/shared"
)

// LessonService handles the lessons inside a course module
type LessonService struct {
	courseRepo catalog.CourseRepository
	moduleRepo catalog.ModuleRepository
	lessonRepo catalog.LessonRepository
}

// NewLessonService creates a new LessonService
func NewLessonService(
	courseRepo catalog.CourseRepository,
	moduleRepo catalog.ModuleRepository,
	lessonRepo catalog.LessonRepository,
) *LessonService {
	return &LessonService{
		courseRepo: courseRepo,
		moduleRepo: moduleRepo,
		lessonRepo: lessonRepo,
	}
}

// Create appends a new lesson at the end of the module
func (s *LessonService) Create(ctx context.Context, viewer catalog.Viewer, moduleID uuid.UUID, req CreateLessonRequest) (*LessonResponse, error) {
	module, err := s.moduleRepo.FindByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if err := s.checkEdit(ctx, viewer, module.CourseID); err != nil {
		return nil, err
	}

	count, err := s.lessonRepo.CountByModule(ctx, moduleID)
	if err != nil {
		return nil, err
	}

	contentType := catalog.ContentTypeVideo
	if req.ContentType != "" {
		contentType = catalog.LessonContentType(req.ContentType)
	}

	lesson, err := catalog.NewLesson(moduleID, req.Title, contentType, int(count)+1)
	if err != nil {
		return nil, err
	}
	if req.Description != "" || req.DurationMinutes > 0 {
		if err := lesson.Update(req.Title, req.Description, req.DurationMinutes); err != nil {
			return nil, err
		}
	}
	if req.ContentURL != "" {
		if err := lesson.SetContent(req.ContentURL, contentType); err != nil {
			return nil, err
		}
	}
	if req.Public != nil {
		lesson.SetPublic(*req.Public)
	}

	if err := s.lessonRepo.Save(ctx, lesson); err != nil {
		return nil, err
	}
	return ToLessonResponse(lesson), nil
}

// GetByID retrieves a lesson. Non-public lessons of a course the
// viewer cannot see behave as missing.
func (s *LessonService) GetByID(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) (*LessonResponse, error) {
	lesson, err := s.lessonRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !lesson.Public {
		module, err := s.moduleRepo.FindByID(ctx, lesson.ModuleID)
		if err != nil {
			return nil, err
		}
		course, err := s.courseRepo.FindByID(ctx, module.CourseID)
		if err != nil {
			return nil, err
		}
		if !course.CanView(viewer) {
			return nil, shared.ErrNotFound
		}
	}
	return ToLessonResponse(lesson), nil
}

// List retrieves the lessons of a module ordered by position
func (s *LessonService) List(ctx context.Context, viewer catalog.Viewer, moduleID uuid.UUID) ([]LessonResponse, error) {
	module, err := s.moduleRepo.FindByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.FindByID(ctx, module.CourseID)
	if err != nil {
		return nil, err
	}
	if !course.CanView(viewer) {
		return nil, shared.ErrNotFound
	}

	lessons, err := s.lessonRepo.FindByModule(ctx, moduleID)
	if err != nil {
		return nil, err
	}

	responses := make([]LessonResponse, len(lessons))
	for i := range lessons {
		responses[i] = *ToLessonResponse(&lessons[i])
	}
	return responses, nil
}

// ListByCourse retrieves every lesson of a course ordered by module
// position then lesson position
func (s *LessonService) ListByCourse(ctx context.Context, viewer catalog.Viewer, courseID uuid.UUID) ([]LessonResponse, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.CanView(viewer) {
		return nil, shared.ErrNotFound
	}

	lessons, err := s.lessonRepo.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]LessonResponse, len(lessons))
	for i := range lessons {
		responses[i] = *ToLessonResponse(&lessons[i])
	}
	return responses, nil
}

// Update updates a lesson
func (s *LessonService) Update(ctx context.Context, viewer catalog.Viewer, id uuid.UUID, req UpdateLessonRequest) (*LessonResponse, error) {
	lesson, err := s.editableLesson(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	title := lesson.Title
	description := lesson.Description
	duration := lesson.DurationMinutes
	if req.Title != nil {
		title = *req.Title
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}
	if err := lesson.Update(title, description, duration); err != nil {
		return nil, err
	}

	if req.ContentURL != nil || req.ContentType != nil {
		contentURL := lesson.ContentURL
		contentType := lesson.ContentType
		if req.ContentURL != nil {
			contentURL = *req.ContentURL
		}
		if req.ContentType != nil {
			contentType = catalog.LessonContentType(*req.ContentType)
		}
		if err := lesson.SetContent(contentURL, contentType); err != nil {
			return nil, err
		}
	}
	if req.Public != nil {
		lesson.SetPublic(*req.Public)
	}

	if err := s.lessonRepo.Save(ctx, lesson); err != nil {
		return nil, err
	}
	return ToLessonResponse(lesson), nil
}

// Delete deletes a lesson
func (s *LessonService) Delete(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) error {
	if _, err := s.editableLesson(ctx, viewer, id); err != nil {
		return err
	}
	return s.lessonRepo.Delete(ctx, id)
}

// Reorder replaces lesson positions inside a module with the
// requested absolute values
func (s *LessonService) Reorder(ctx context.Context, viewer catalog.Viewer, moduleID uuid.UUID, req ReorderRequest) ([]LessonResponse, error) {
	module, err := s.moduleRepo.FindByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if err := s.checkEdit(ctx, viewer, module.CourseID); err != nil {
		return nil, err
	}

	lessons, err := s.lessonRepo.FindByModule(ctx, moduleID)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Lesson, len(lessons))
	for i := range lessons {
		byID[lessons[i].ID] = &lessons[i]
	}

	for _, entry := range req.Orders {
		lesson, ok := byID[entry.ID]
		if !ok {
			return nil, shared.NewDomainError("LESSON_NOT_IN_MODULE", "Lesson does not belong to this module")
		}
		if err := lesson.MoveTo(entry.Order); err != nil {
			return nil, err
		}
	}

	if err := s.lessonRepo.SaveAll(ctx, lessons); err != nil {
		return nil, err
	}

	sort.Slice(lessons, func(i, j int) bool {
		return lessons[i].Position < lessons[j].Position
	})
	responses := make([]LessonResponse, len(lessons))
	for i := range lessons {
		responses[i] = *ToLessonResponse(&lessons[i])
	}
	return responses, nil
}

func (s *LessonService) editableLesson(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) (*catalog.Lesson, error) {
	lesson, err := s.lessonRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	module, err := s.moduleRepo.FindByID(ctx, lesson.ModuleID)
	if err != nil {
		return nil, err
	}
	if err := s.checkEdit(ctx, viewer, module.CourseID); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) checkEdit(ctx context.Context, viewer catalog.Viewer, courseID uuid.UUID) error {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return err
	}
	if !course.CanEdit(viewer) {
		return shared.ErrForbidden
	}
	return nil
}
