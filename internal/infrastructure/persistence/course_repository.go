package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCourseRepository implements catalog.CourseRepository using GORM
type GormCourseRepository struct {
	db *gorm.DB
}

// NewGormCourseRepository creates a new GormCourseRepository
func NewGormCourseRepository(db *gorm.DB) *GormCourseRepository {
	return &GormCourseRepository{db: db}
}

// FindByID finds a course by its ID
func (r *GormCourseRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Course, error) {
	var course catalog.Course
	if err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

// FindAll finds all courses matching the filter
func (r *GormCourseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Course, error) {
	var courses []catalog.Course
	query := applyFilter(r.db.WithContext(ctx).Model(&catalog.Course{}), filter, CourseSortFields, "created_at")

	if err := query.Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// visibleScope builds the WHERE clause matching the audience rules:
// active courses only, teacher-audience courses restricted to staff.
func visibleScope(query *gorm.DB, viewer catalog.Viewer) *gorm.DB {
	query = query.Where("status = ?", catalog.CourseStatusActive)
	if !viewer.IsAdmin && !viewer.IsTeacher {
		query = query.Where("audience = ?", catalog.AudienceStudent)
	}
	return query
}

// FindVisible finds active courses visible to the viewer
func (r *GormCourseRepository) FindVisible(ctx context.Context, viewer catalog.Viewer, filter shared.Filter) ([]catalog.Course, error) {
	var courses []catalog.Course
	query := visibleScope(r.db.WithContext(ctx).Model(&catalog.Course{}), viewer)
	query = applyFilter(query, filter, CourseSortFields, "created_at")

	if err := query.Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// FindByOwner finds all courses created by the given user, including drafts
func (r *GormCourseRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]catalog.Course, error) {
	var courses []catalog.Course
	query := r.db.WithContext(ctx).Model(&catalog.Course{}).Where("created_by = ?", ownerID)
	query = applyFilter(query, filter, CourseSortFields, "created_at")

	if err := query.Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// Save creates or updates a course
func (r *GormCourseRepository) Save(ctx context.Context, course *catalog.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

// Delete deletes a course
func (r *GormCourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Course{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts courses matching the filter
func (r *GormCourseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyEqualityFilters(r.db.WithContext(ctx).Model(&catalog.Course{}), filter, CourseSortFields)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountVisible counts active courses visible to the viewer
func (r *GormCourseRepository) CountVisible(ctx context.Context, viewer catalog.Viewer, filter shared.Filter) (int64, error) {
	var count int64
	query := visibleScope(r.db.WithContext(ctx).Model(&catalog.Course{}), viewer)
	query = applyEqualityFilters(query, filter, CourseSortFields)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormModuleRepository implements catalog.ModuleRepository using GORM
type GormModuleRepository struct {
	db *gorm.DB
}

// NewGormModuleRepository creates a new GormModuleRepository
func NewGormModuleRepository(db *gorm.DB) *GormModuleRepository {
	return &GormModuleRepository{db: db}
}

// FindByID finds a module by its ID
func (r *GormModuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.CourseModule, error) {
	var module catalog.CourseModule
	if err := r.db.WithContext(ctx).First(&module, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &module, nil
}

// FindByCourse finds all modules of a course ordered by position
func (r *GormModuleRepository) FindByCourse(ctx context.Context, courseID uuid.UUID) ([]catalog.CourseModule, error) {
	var modules []catalog.CourseModule
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("position ASC").
		Find(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

// Save creates or updates a module
func (r *GormModuleRepository) Save(ctx context.Context, module *catalog.CourseModule) error {
	return r.db.WithContext(ctx).Save(module).Error
}

// SaveAll persists a batch of modules in a single transaction
func (r *GormModuleRepository) SaveAll(ctx context.Context, modules []catalog.CourseModule) error {
	if len(modules) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range modules {
			if err := tx.Save(&modules[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes a module
func (r *GormModuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.CourseModule{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByCourse counts the modules of a course
func (r *GormModuleRepository) CountByCourse(ctx context.Context, courseID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.CourseModule{}).
		Where("course_id = ?", courseID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormLessonRepository implements catalog.LessonRepository using GORM
type GormLessonRepository struct {
	db *gorm.DB
}

// NewGormLessonRepository creates a new GormLessonRepository
func NewGormLessonRepository(db *gorm.DB) *GormLessonRepository {
	return &GormLessonRepository{db: db}
}

// FindByID finds a lesson by its ID
func (r *GormLessonRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Lesson, error) {
	var lesson catalog.Lesson
	if err := r.db.WithContext(ctx).First(&lesson, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lesson, nil
}

// FindByModule finds all lessons of a module ordered by position
func (r *GormLessonRepository) FindByModule(ctx context.Context, moduleID uuid.UUID) ([]catalog.Lesson, error) {
	var lessons []catalog.Lesson
	if err := r.db.WithContext(ctx).
		Where("module_id = ?", moduleID).
		Order("position ASC").
		Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

// FindByCourse finds all lessons of a course across its modules,
// ordered by module position then lesson position
func (r *GormLessonRepository) FindByCourse(ctx context.Context, courseID uuid.UUID) ([]catalog.Lesson, error) {
	var lessons []catalog.Lesson
	if err := r.db.WithContext(ctx).
		Joins("JOIN course_module ON course_module.id = lesson.module_id").
		Where("course_module.course_id = ?", courseID).
		Order("course_module.position ASC, lesson.position ASC").
		Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

// Save creates or updates a lesson
func (r *GormLessonRepository) Save(ctx context.Context, lesson *catalog.Lesson) error {
	return r.db.WithContext(ctx).Save(lesson).Error
}

// SaveAll persists a batch of lessons in a single transaction
func (r *GormLessonRepository) SaveAll(ctx context.Context, lessons []catalog.Lesson) error {
	if len(lessons) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range lessons {
			if err := tx.Save(&lessons[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes a lesson
func (r *GormLessonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Lesson{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByModule counts the lessons of a module
func (r *GormLessonRepository) CountByModule(ctx context.Context, moduleID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Lesson{}).
		Where("module_id = ?", moduleID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCourse counts the lessons of a course across its modules
func (r *GormLessonRepository) CountByCourse(ctx context.Context, courseID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Lesson{}).
		Joins("JOIN course_module ON course_module.id = lesson.module_id").
		Where("course_module.course_id = ?", courseID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Interface guards
var (
	_ catalog.CourseRepository = (*GormCourseRepository)(nil)
	_ catalog.ModuleRepository = (*GormModuleRepository)(nil)
	_ catalog.LessonRepository = (*GormLessonRepository)(nil)
)
