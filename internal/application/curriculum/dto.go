package curriculum

import (
	"time"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/curriculum"
	"github.com/mindsacademy/backend/internal/domain/shared"
)

// CreatePathRequest represents a request to create a learning path
type CreatePathRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=5000"`
}

// UpdatePathRequest represents a request to update a learning path
type UpdatePathRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
}

// AddCourseRequest represents a request to link a course into a path
type AddCourseRequest struct {
	CourseID uuid.UUID `json:"course_id" binding:"required"`
}

// CourseOrderEntry is one absolute position assignment for a course
// within a path
type CourseOrderEntry struct {
	CourseID uuid.UUID `json:"courseId" binding:"required"`
	Order    int       `json:"order" binding:"required,min=1"`
}

// ReorderCoursesRequest carries the replacement ordering for the
// courses of a path
type ReorderCoursesRequest struct {
	CourseOrders []CourseOrderEntry `json:"courseOrders" binding:"required,dive"`
}

// PathCourseResponse represents a course link in API responses
type PathCourseResponse struct {
	CourseID uuid.UUID `json:"course_id"`
	Order    int       `json:"order"`
}

// PathResponse represents a learning path in API responses
type PathResponse struct {
	ID          uuid.UUID            `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Courses     []PathCourseResponse `json:"courses,omitempty"`
	CreatedBy   *uuid.UUID           `json:"created_by,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// PathListFilter represents filter options for learning path listings
type PathListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToPathResponse converts a domain LearningPath to PathResponse
func ToPathResponse(p *curriculum.LearningPath) *PathResponse {
	return &PathResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToPathCourseResponses converts course links ordered by position
func ToPathCourseResponses(links []curriculum.PathCourse) []PathCourseResponse {
	responses := make([]PathCourseResponse, len(links))
	for i := range links {
		responses[i] = PathCourseResponse{
			CourseID: links[i].CourseID,
			Order:    links[i].Position,
		}
	}
	return responses
}

// buildFilter converts list filter options to a domain filter
func (f PathListFilter) buildFilter() shared.Filter {
	filter := shared.Filter{
		Search:   f.Search,
		Page:     f.Page,
		PageSize: f.PageSize,
		OrderBy:  f.OrderBy,
		OrderDir: f.OrderDir,
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
		filter.OrderDir = "desc"
	}
	return filter
}
