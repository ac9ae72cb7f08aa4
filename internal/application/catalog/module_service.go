package catalog

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/domain/shared"
)

// ModuleService handles the modules inside a course
type ModuleService struct {
	courseRepo catalog.CourseRepository
	moduleRepo catalog.ModuleRepository
}

// NewModuleService creates a new ModuleService
func NewModuleService(courseRepo catalog.CourseRepository, moduleRepo catalog.ModuleRepository) *ModuleService {
	return &ModuleService{
		courseRepo: courseRepo,
		moduleRepo: moduleRepo,
	}
}

// Create appends a new module at the end of the course
func (s *ModuleService) Create(ctx context.Context, viewer catalog.Viewer, courseID uuid.UUID, req CreateModuleRequest) (*ModuleResponse, error) {
	if err := s.checkEdit(ctx, viewer, courseID); err != nil {
		return nil, err
	}

	count, err := s.moduleRepo.CountByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	module, err := catalog.NewCourseModule(courseID, req.Title, int(count)+1)
	if err != nil {
		return nil, err
	}

	if err := s.moduleRepo.Save(ctx, module); err != nil {
		return nil, err
	}
	return ToModuleResponse(module), nil
}

// List retrieves the modules of a course ordered by position
func (s *ModuleService) List(ctx context.Context, viewer catalog.Viewer, courseID uuid.UUID) ([]ModuleResponse, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.CanView(viewer) {
		return nil, shared.ErrNotFound
	}

	modules, err := s.moduleRepo.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]ModuleResponse, len(modules))
	for i := range modules {
		responses[i] = *ToModuleResponse(&modules[i])
	}
	return responses, nil
}

// Update renames a module
func (s *ModuleService) Update(ctx context.Context, viewer catalog.Viewer, id uuid.UUID, req UpdateModuleRequest) (*ModuleResponse, error) {
	module, err := s.moduleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkEdit(ctx, viewer, module.CourseID); err != nil {
		return nil, err
	}

	if err := module.Rename(req.Title); err != nil {
		return nil, err
	}
	if err := s.moduleRepo.Save(ctx, module); err != nil {
		return nil, err
	}
	return ToModuleResponse(module), nil
}

// Delete deletes a module
func (s *ModuleService) Delete(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) error {
	module, err := s.moduleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkEdit(ctx, viewer, module.CourseID); err != nil {
		return err
	}
	return s.moduleRepo.Delete(ctx, id)
}

// Reorder replaces module positions with the requested absolute
// values. Entries referencing modules outside the course are rejected
// and applying the same request twice leaves the same ordering.
func (s *ModuleService) Reorder(ctx context.Context, viewer catalog.Viewer, courseID uuid.UUID, req ReorderRequest) ([]ModuleResponse, error) {
	if err := s.checkEdit(ctx, viewer, courseID); err != nil {
		return nil, err
	}

	modules, err := s.moduleRepo.FindByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.CourseModule, len(modules))
	for i := range modules {
		byID[modules[i].ID] = &modules[i]
	}

	for _, entry := range req.Orders {
		module, ok := byID[entry.ID]
		if !ok {
			return nil, shared.NewDomainError("MODULE_NOT_IN_COURSE", "Module does not belong to this course")
		}
		if err := module.MoveTo(entry.Order); err != nil {
			return nil, err
		}
	}

	if err := s.moduleRepo.SaveAll(ctx, modules); err != nil {
		return nil, err
	}

	sort.Slice(modules, func(i, j int) bool {
		return modules[i].Position < modules[j].Position
	})
	responses := make([]ModuleResponse, len(modules))
	for i := range modules {
		responses[i] = *ToModuleResponse(&modules[i])
	}
	return responses, nil
}

func (s *ModuleService) checkEdit(ctx context.Context, viewer catalog.Viewer, courseID uuid.UUID) error {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return err
	}
	if !course.CanEdit(viewer) {
		return shared.ErrForbidden
	}
	return nil
}
