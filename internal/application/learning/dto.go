package learning

import (
	"time"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/learning"
	"github.com/shopspring/decimal"
)

// EnrollRequest represents a request to enroll in a course
type EnrollRequest struct {
	CourseID uuid.UUID `json:"course_id" binding:"required"`
}

// EnrollmentResponse represents an enrollment in API responses
type EnrollmentResponse struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"user_id"`
	CourseID  uuid.UUID          `json:"course_id"`
	Status    string             `json:"status"`
	Progress  *learning.Progress `json:"progress,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// LessonProgressResponse represents one lesson's completion state
type LessonProgressResponse struct {
	LessonID    uuid.UUID  `json:"lesson_id"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CreateAssignmentRequest represents a request to attach an assignment
// to a lesson
type CreateAssignmentRequest struct {
	Title       string           `json:"title" binding:"required,min=1,max=200"`
	Description string           `json:"description" binding:"max=5000"`
	DueDate     *time.Time       `json:"due_date"`
	MaxScore    *decimal.Decimal `json:"max_score"`
}

// UpdateAssignmentRequest represents a request to update an assignment
type UpdateAssignmentRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=5000"`
	DueDate     *time.Time       `json:"due_date"`
	ClearDue    bool             `json:"clear_due_date"`
	MaxScore    *decimal.Decimal `json:"max_score"`
}

// AssignmentResponse represents an assignment in API responses
type AssignmentResponse struct {
	ID          uuid.UUID       `json:"id"`
	LessonID    uuid.UUID       `json:"lesson_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	MaxScore    decimal.Decimal `json:"max_score"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SubmitRequest represents a request to submit an answer
type SubmitRequest struct {
	AnswerURL string `json:"answer_url" binding:"required,max=2048"`
}

// GradeRequest represents a request to grade a submission
type GradeRequest struct {
	Score    decimal.Decimal `json:"score" binding:"required"`
	Feedback string          `json:"feedback" binding:"max=5000"`
}

// SubmissionResponse represents a submission in API responses
type SubmissionResponse struct {
	ID           uuid.UUID        `json:"id"`
	AssignmentID uuid.UUID        `json:"assignment_id"`
	UserID       uuid.UUID        `json:"user_id"`
	EnrollmentID uuid.UUID        `json:"enrollment_id"`
	AnswerURL    string           `json:"answer_url"`
	Score        *decimal.Decimal `json:"score,omitempty"`
	Feedback     string           `json:"feedback,omitempty"`
	GradedAt     *time.Time       `json:"graded_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// SubmissionListFilter represents filter options for submission listings
type SubmissionListFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToEnrollmentResponse converts a domain Enrollment to EnrollmentResponse
func ToEnrollmentResponse(e *learning.Enrollment) *EnrollmentResponse {
	return &EnrollmentResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		CourseID:  e.CourseID,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// ToLessonProgressResponse converts a domain LessonProgress
func ToLessonProgressResponse(p *learning.LessonProgress) *LessonProgressResponse {
	return &LessonProgressResponse{
		LessonID:    p.LessonID,
		Completed:   p.Completed,
		CompletedAt: p.CompletedAt,
	}
}

// ToAssignmentResponse converts a domain Assignment to AssignmentResponse
func ToAssignmentResponse(a *learning.Assignment) *AssignmentResponse {
	return &AssignmentResponse{
		ID:          a.ID,
		LessonID:    a.LessonID,
		Title:       a.Title,
		Description: a.Description,
		DueDate:     a.DueDate,
		MaxScore:    a.MaxScore,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ToSubmissionResponse converts a domain Submission to SubmissionResponse
func ToSubmissionResponse(s *learning.Submission) *SubmissionResponse {
	return &SubmissionResponse{
		ID:           s.ID,
		AssignmentID: s.AssignmentID,
		UserID:       s.UserID,
		EnrollmentID: s.EnrollmentID,
		AnswerURL:    s.AnswerURL,
		Score:        s.Score,
		Feedback:     s.Feedback,
		GradedAt:     s.GradedAt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
