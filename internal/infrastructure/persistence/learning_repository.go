package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/learning"
	"github.com/mindsacademy/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormEnrollmentRepository implements learning.EnrollmentRepository using GORM
type GormEnrollmentRepository struct {
	db *gorm.DB
}

// NewGormEnrollmentRepository creates a new GormEnrollmentRepository
func NewGormEnrollmentRepository(db *gorm.DB) *GormEnrollmentRepository {
	return &GormEnrollmentRepository{db: db}
}

// FindByID finds an enrollment by its ID
func (r *GormEnrollmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*learning.Enrollment, error) {
	var enrollment learning.Enrollment
	if err := r.db.WithContext(ctx).First(&enrollment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}

// FindByUser finds all enrollments of a user
func (r *GormEnrollmentRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]learning.Enrollment, error) {
	var enrollments []learning.Enrollment
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

// FindByUserAndCourse finds the enrollment linking a user to a course
func (r *GormEnrollmentRepository) FindByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*learning.Enrollment, error) {
	var enrollment learning.Enrollment
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}

// FindByCourse finds all enrollments of a course
func (r *GormEnrollmentRepository) FindByCourse(ctx context.Context, courseID uuid.UUID, filter shared.Filter) ([]learning.Enrollment, error) {
	var enrollments []learning.Enrollment
	query := r.db.WithContext(ctx).Model(&learning.Enrollment{}).Where("course_id = ?", courseID)
	query = applyFilter(query, filter, EnrollmentSortFields, "created_at")

	if err := query.Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

// Save creates or updates an enrollment
func (r *GormEnrollmentRepository) Save(ctx context.Context, enrollment *learning.Enrollment) error {
	return r.db.WithContext(ctx).Save(enrollment).Error
}

// Delete deletes an enrollment and its progress records
func (r *GormEnrollmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&learning.LessonProgress{}, "enrollment_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&learning.Enrollment{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountByCourse counts the enrollments of a course
func (r *GormEnrollmentRepository) CountByCourse(ctx context.Context, courseID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&learning.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormProgressRepository implements learning.ProgressRepository using GORM
type GormProgressRepository struct {
	db *gorm.DB
}

// NewGormProgressRepository creates a new GormProgressRepository
func NewGormProgressRepository(db *gorm.DB) *GormProgressRepository {
	return &GormProgressRepository{db: db}
}

// FindByEnrollment finds all progress records of an enrollment
func (r *GormProgressRepository) FindByEnrollment(ctx context.Context, enrollmentID uuid.UUID) ([]learning.LessonProgress, error) {
	var records []learning.LessonProgress
	if err := r.db.WithContext(ctx).
		Where("enrollment_id = ?", enrollmentID).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByEnrollmentAndLesson finds the progress record for one lesson
func (r *GormProgressRepository) FindByEnrollmentAndLesson(ctx context.Context, enrollmentID, lessonID uuid.UUID) (*learning.LessonProgress, error) {
	var record learning.LessonProgress
	if err := r.db.WithContext(ctx).
		Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// CountCompleted counts completed lessons for an enrollment
func (r *GormProgressRepository) CountCompleted(ctx context.Context, enrollmentID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&learning.LessonProgress{}).
		Where("enrollment_id = ? AND completed = ?", enrollmentID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a progress record
func (r *GormProgressRepository) Save(ctx context.Context, progress *learning.LessonProgress) error {
	return r.db.WithContext(ctx).Save(progress).Error
}

// DeleteByEnrollment removes all progress records of an enrollment
func (r *GormProgressRepository) DeleteByEnrollment(ctx context.Context, enrollmentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&learning.LessonProgress{}, "enrollment_id = ?", enrollmentID).Error
}

// GormAssignmentRepository implements learning.AssignmentRepository using GORM
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GormAssignmentRepository
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// FindByID finds an assignment by its ID
func (r *GormAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*learning.Assignment, error) {
	var assignment learning.Assignment
	if err := r.db.WithContext(ctx).First(&assignment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// FindByLesson finds all assignments of a lesson
func (r *GormAssignmentRepository) FindByLesson(ctx context.Context, lessonID uuid.UUID) ([]learning.Assignment, error) {
	var assignments []learning.Assignment
	if err := r.db.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Order("created_at ASC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// Save creates or updates an assignment
func (r *GormAssignmentRepository) Save(ctx context.Context, assignment *learning.Assignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

// Delete deletes an assignment
func (r *GormAssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&learning.Assignment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormSubmissionRepository implements learning.SubmissionRepository using GORM
type GormSubmissionRepository struct {
	db *gorm.DB
}

// NewGormSubmissionRepository creates a new GormSubmissionRepository
func NewGormSubmissionRepository(db *gorm.DB) *GormSubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

// FindByID finds a submission by its ID
func (r *GormSubmissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*learning.Submission, error) {
	var submission learning.Submission
	if err := r.db.WithContext(ctx).First(&submission, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// FindByAssignmentAndUser finds the current submission of a user for an assignment
func (r *GormSubmissionRepository) FindByAssignmentAndUser(ctx context.Context, assignmentID, userID uuid.UUID) (*learning.Submission, error) {
	var submission learning.Submission
	if err := r.db.WithContext(ctx).
		Where("assignment_id = ? AND user_id = ?", assignmentID, userID).
		First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// FindByAssignment finds all submissions for an assignment
func (r *GormSubmissionRepository) FindByAssignment(ctx context.Context, assignmentID uuid.UUID, filter shared.Filter) ([]learning.Submission, error) {
	var submissions []learning.Submission
	query := r.db.WithContext(ctx).Model(&learning.Submission{}).Where("assignment_id = ?", assignmentID)
	query = applyFilter(query, filter, SubmissionSortFields, "created_at")

	if err := query.Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// FindByUser finds all submissions of a user
func (r *GormSubmissionRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]learning.Submission, error) {
	var submissions []learning.Submission
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// Save creates or updates a submission
func (r *GormSubmissionRepository) Save(ctx context.Context, submission *learning.Submission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}

// Delete deletes a submission
func (r *GormSubmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&learning.Submission{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Interface guards
var (
	_ learning.EnrollmentRepository = (*GormEnrollmentRepository)(nil)
	_ learning.ProgressRepository   = (*GormProgressRepository)(nil)
	_ learning.AssignmentRepository = (*GormAssignmentRepository)(nil)
	_ learning.SubmissionRepository = (*GormSubmissionRepository)(nil)
)
