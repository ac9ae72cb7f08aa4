package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/domain/shared"
)

// CreateCourseRequest represents a request to create a new course
type CreateCourseRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description string     `json:"description" binding:"max=5000"`
	Level       string     `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Audience    string     `json:"audience" binding:"omitempty,oneof=student teacher"`
	ThumbnailID *uuid.UUID `json:"thumbnail_id"`
}

// UpdateCourseRequest represents a request to update a course
type UpdateCourseRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=5000"`
	Level       *string    `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Audience    *string    `json:"audience" binding:"omitempty,oneof=student teacher"`
	ThumbnailID *uuid.UUID `json:"thumbnail_id"`
}

// CourseResponse represents a course in API responses
type CourseResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Level       string     `json:"level"`
	Status      string     `json:"status"`
	Audience    string     `json:"audience"`
	ThumbnailID *uuid.UUID `json:"thumbnail_id"`
	CreatedBy   *uuid.UUID `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CourseListFilter represents filter options for course listings
type CourseListFilter struct {
	Search   string `form:"search"`
	Level    string `form:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Status   string `form:"status" binding:"omitempty,oneof=draft active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateModuleRequest represents a request to create a module
type CreateModuleRequest struct {
	Title string `json:"title" binding:"required,min=1,max=200"`
}

// UpdateModuleRequest represents a request to rename a module
type UpdateModuleRequest struct {
	Title string `json:"title" binding:"required,min=1,max=200"`
}

// ModuleResponse represents a module in API responses
type ModuleResponse struct {
	ID        uuid.UUID `json:"id"`
	CourseID  uuid.UUID `json:"course_id"`
	Title     string    `json:"title"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateLessonRequest represents a request to create a lesson
type CreateLessonRequest struct {
	Title           string `json:"title" binding:"required,min=1,max=200"`
	Description     string `json:"description" binding:"max=5000"`
	ContentType     string `json:"content_type" binding:"omitempty,oneof=video document text quiz"`
	ContentURL      string `json:"content_url" binding:"omitempty,max=2048"`
	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,min=0"`
	Public          *bool  `json:"public"`
}

// UpdateLessonRequest represents a request to update a lesson
type UpdateLessonRequest struct {
	Title           *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description     *string `json:"description" binding:"omitempty,max=5000"`
	ContentType     *string `json:"content_type" binding:"omitempty,oneof=video document text quiz"`
	ContentURL      *string `json:"content_url" binding:"omitempty,max=2048"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,min=0"`
	Public          *bool   `json:"public"`
}

// LessonResponse represents a lesson in API responses
type LessonResponse struct {
	ID              uuid.UUID `json:"id"`
	ModuleID        uuid.UUID `json:"module_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ContentType     string    `json:"content_type"`
	ContentURL      string    `json:"content_url"`
	DurationMinutes int       `json:"duration_minutes"`
	Order           int       `json:"order"`
	Public          bool      `json:"public"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ReorderEntry is one absolute position assignment within a reorder
// request. Positions are replacement values so a repeated request is a
// no-op.
type ReorderEntry struct {
	ID    uuid.UUID `json:"id" binding:"required"`
	Order int       `json:"order" binding:"required,min=1"`
}

// ReorderRequest carries the full replacement ordering
type ReorderRequest struct {
	Orders []ReorderEntry `json:"orders" binding:"required,dive"`
}

// ToCourseResponse converts a domain Course to CourseResponse
func ToCourseResponse(c *catalog.Course) *CourseResponse {
	return &CourseResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Level:       string(c.Level),
		Status:      string(c.Status),
		Audience:    string(c.Audience),
		ThumbnailID: c.ThumbnailID,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToModuleResponse converts a domain CourseModule to ModuleResponse
func ToModuleResponse(m *catalog.CourseModule) *ModuleResponse {
	return &ModuleResponse{
		ID:        m.ID,
		CourseID:  m.CourseID,
		Title:     m.Title,
		Order:     m.Position,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToLessonResponse converts a domain Lesson to LessonResponse
func ToLessonResponse(l *catalog.Lesson) *LessonResponse {
	return &LessonResponse{
		ID:              l.ID,
		ModuleID:        l.ModuleID,
		Title:           l.Title,
		Description:     l.Description,
		ContentType:     string(l.ContentType),
		ContentURL:      l.ContentURL,
		DurationMinutes: l.DurationMinutes,
		Order:           l.Position,
		Public:          l.Public,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

// buildFilter converts list filter options to a domain filter
func (f CourseListFilter) buildFilter() shared.Filter {
	filter := shared.Filter{
		Filters: make(map[string]interface{}),
	}
	if f.Search != "" {
		filter.Search = f.Search
	}
	if f.Level != "" {
		filter.Filters["level"] = f.Level
	}
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.Page > 0 && f.PageSize > 0 {
		filter.Page = f.Page
		filter.PageSize = f.PageSize
	} else {
		filter.Page = 1
		filter.PageSize = 20
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
		filter.OrderDir = f.OrderDir
	} else {
		filter.OrderBy = "created_at"
		filter.OrderDir = "desc"
	}
	return filter
}
