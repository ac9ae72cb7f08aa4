package curriculum

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/domain/curriculum"
	"github.com/mindsacademy/backend/internal/domain/shared"
)

// PathService handles learning paths, ordered sequences of courses
type PathService struct {
	pathRepo       curriculum.PathRepository
	courseRepo     catalog.CourseRepository
	eventPublisher shared.EventPublisher
}

// NewPathService creates a new PathService
func NewPathService(pathRepo curriculum.PathRepository, courseRepo catalog.CourseRepository) *PathService {
	return &PathService{
		pathRepo:   pathRepo,
		courseRepo: courseRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PathService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new learning path
func (s *PathService) Create(ctx context.Context, viewer catalog.Viewer, req CreatePathRequest) (*PathResponse, error) {
	if !viewer.IsAdmin && !viewer.IsTeacher {
		return nil, shared.ErrForbidden
	}

	path, err := curriculum.NewLearningPath(viewer.UserID, req.Title, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.pathRepo.Save(ctx, path); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, path)
	response := ToPathResponse(path)
	response.Courses = []PathCourseResponse{}
	return response, nil
}

// GetByID retrieves a learning path with its ordered courses
func (s *PathService) GetByID(ctx context.Context, id uuid.UUID) (*PathResponse, error) {
	path, err := s.pathRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	links, err := s.pathRepo.FindCourses(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToPathResponse(path)
	response.Courses = ToPathCourseResponses(links)
	return response, nil
}

// List retrieves learning paths matching the filter
func (s *PathService) List(ctx context.Context, filter PathListFilter) ([]PathResponse, int64, error) {
	domainFilter := filter.buildFilter()

	paths, err := s.pathRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.pathRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PathResponse, len(paths))
	for i := range paths {
		responses[i] = *ToPathResponse(&paths[i])
	}
	return responses, total, nil
}

// Update updates a learning path
func (s *PathService) Update(ctx context.Context, viewer catalog.Viewer, id uuid.UUID, req UpdatePathRequest) (*PathResponse, error) {
	path, err := s.editablePath(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	title := path.Title
	description := path.Description
	if req.Title != nil {
		title = *req.Title
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := path.Update(title, description); err != nil {
		return nil, err
	}

	if err := s.pathRepo.Save(ctx, path); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, path)
	return ToPathResponse(path), nil
}

// Delete deletes a learning path and its course links
func (s *PathService) Delete(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) error {
	if _, err := s.editablePath(ctx, viewer, id); err != nil {
		return err
	}
	return s.pathRepo.Delete(ctx, id)
}

// AddCourse appends a course at the end of the path
func (s *PathService) AddCourse(ctx context.Context, viewer catalog.Viewer, pathID, courseID uuid.UUID) (*PathResponse, error) {
	path, err := s.editablePath(ctx, viewer, pathID)
	if err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.FindByID(ctx, courseID); err != nil {
		return nil, err
	}

	links, err := s.pathRepo.FindCourses(ctx, pathID)
	if err != nil {
		return nil, err
	}
	for i := range links {
		if links[i].CourseID == courseID {
			return nil, shared.ErrAlreadyExists
		}
	}

	link, err := curriculum.NewPathCourse(pathID, courseID, len(links)+1)
	if err != nil {
		return nil, err
	}
	if err := s.pathRepo.AddCourse(ctx, link); err != nil {
		return nil, err
	}

	response := ToPathResponse(path)
	response.Courses = ToPathCourseResponses(append(links, *link))
	return response, nil
}

// RemoveCourse unlinks a course from the path and closes the position
// gap it leaves behind
func (s *PathService) RemoveCourse(ctx context.Context, viewer catalog.Viewer, pathID, courseID uuid.UUID) error {
	if _, err := s.editablePath(ctx, viewer, pathID); err != nil {
		return err
	}

	if err := s.pathRepo.RemoveCourse(ctx, pathID, courseID); err != nil {
		return err
	}

	links, err := s.pathRepo.FindCourses(ctx, pathID)
	if err != nil {
		return err
	}
	changed := false
	for i := range links {
		if links[i].Position != i+1 {
			if err := links[i].MoveTo(i + 1); err != nil {
				return err
			}
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.pathRepo.SaveCourses(ctx, links)
}

// ReorderCourses replaces course positions with the requested absolute
// values. Applying the same request twice leaves the same ordering.
func (s *PathService) ReorderCourses(ctx context.Context, viewer catalog.Viewer, pathID uuid.UUID, req ReorderCoursesRequest) (*PathResponse, error) {
	path, err := s.editablePath(ctx, viewer, pathID)
	if err != nil {
		return nil, err
	}

	links, err := s.pathRepo.FindCourses(ctx, pathID)
	if err != nil {
		return nil, err
	}

	orders := make([]curriculum.CourseOrder, len(req.CourseOrders))
	for i, entry := range req.CourseOrders {
		orders[i] = curriculum.CourseOrder{CourseID: entry.CourseID, Position: entry.Order}
	}
	if err := curriculum.ApplyOrders(links, orders); err != nil {
		return nil, err
	}

	if err := s.pathRepo.SaveCourses(ctx, links); err != nil {
		return nil, err
	}

	sort.Slice(links, func(i, j int) bool {
		return links[i].Position < links[j].Position
	})
	response := ToPathResponse(path)
	response.Courses = ToPathCourseResponses(links)
	return response, nil
}

func (s *PathService) editablePath(ctx context.Context, viewer catalog.Viewer, id uuid.UUID) (*curriculum.LearningPath, error) {
	path, err := s.pathRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.IsAdmin {
		if !viewer.IsTeacher || path.CreatedBy == nil || *path.CreatedBy != viewer.UserID {
			return nil, shared.ErrForbidden
		}
	}
	return path, nil
}

func (s *PathService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
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
