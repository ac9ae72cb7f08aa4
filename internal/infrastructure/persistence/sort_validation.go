package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// CourseSortFields contains allowed sort fields for courses
var CourseSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"title":      true,
	"level":      true,
	"status":     true,
	"audience":   true,
}

// LessonSortFields contains allowed sort fields for lessons
var LessonSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"title":            true,
	"position":         true,
	"duration_minutes": true,
}

// EnrollmentSortFields contains allowed sort fields for enrollments
var EnrollmentSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"status":     true,
}

// AssignmentSortFields contains allowed sort fields for assignments
var AssignmentSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"title":      true,
	"due_date":   true,
	"max_score":  true,
}

// SubmissionSortFields contains allowed sort fields for submissions
var SubmissionSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"score":      true,
	"graded_at":  true,
}

// LearningPathSortFields contains allowed sort fields for learning paths
var LearningPathSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"title":      true,
}

// ArticleSortFields contains allowed sort fields for articles
var ArticleSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"title":        true,
	"slug":         true,
	"published_at": true,
}

// MediaSortFields contains allowed sort fields for media files
var MediaSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"file_name":  true,
	"size_bytes": true,
	"mime_type":  true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"full_name":     true,
	"email":         true,
	"active":        true,
	"last_login_at": true,
}
