package learning

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/domain/learning"
	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEnrollmentRepository is a mock implementation of EnrollmentRepository
type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*learning.Enrollment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*learning.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]learning.Enrollment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]learning.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) FindByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*learning.Enrollment, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*learning.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) FindByCourse(ctx context.Context, courseID uuid.UUID, filter shared.Filter) ([]learning.Enrollment, error) {
	args := m.Called(ctx, courseID, filter)
	return args.Get(0).([]learning.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) Save(ctx context.Context, enrollment *learning.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) CountByCourse(ctx context.Context, courseID uuid.UUID) (int64, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).(int64), args.Error(1)
}

// MockProgressRepository is a mock implementation of ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) FindByEnrollment(ctx context.Context, enrollmentID uuid.UUID) ([]learning.LessonProgress, error) {
	args := m.Called(ctx, enrollmentID)
	return args.Get(0).([]learning.LessonProgress), args.Error(1)
}

func (m *MockProgressRepository) FindByEnrollmentAndLesson(ctx context.Context, enrollmentID, lessonID uuid.UUID) (*learning.LessonProgress, error) {
	args := m.Called(ctx, enrollmentID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*learning.LessonProgress), args.Error(1)
}

func (m *MockProgressRepository) CountCompleted(ctx context.Context, enrollmentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, enrollmentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProgressRepository) Save(ctx context.Context, progress *learning.LessonProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressRepository) DeleteByEnrollment(ctx context.Context, enrollmentID uuid.UUID) error {
	args := m.Called(ctx, enrollmentID)
	return args.Error(0)
}

// MockCourseRepository is a mock implementation of catalog.CourseRepository
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Course), args.Error(1)
}

func (m *MockCourseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Course, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Course), args.Error(1)
}

func (m *MockCourseRepository) FindVisible(ctx context.Context, viewer catalog.Viewer, filter shared.Filter) ([]catalog.Course, error) {
	args := m.Called(ctx, viewer, filter)
	return args.Get(0).([]catalog.Course), args.Error(1)
}

func (m *MockCourseRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]catalog.Course, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]catalog.Course), args.Error(1)
}

func (m *MockCourseRepository) Save(ctx context.Context, course *catalog.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCourseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCourseRepository) CountVisible(ctx context.Context, viewer catalog.Viewer, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, viewer, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockModuleRepository is a mock implementation of catalog.ModuleRepository
type MockModuleRepository struct {
	mock.Mock
}

func (m *MockModuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.CourseModule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.CourseModule), args.Error(1)
}

func (m *MockModuleRepository) FindByCourse(ctx context.Context, courseID uuid.UUID) ([]catalog.CourseModule, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).([]catalog.CourseModule), args.Error(1)
}

func (m *MockModuleRepository) Save(ctx context.Context, module *catalog.CourseModule) error {
	args := m.Called(ctx, module)
	return args.Error(0)
}

func (m *MockModuleRepository) SaveAll(ctx context.Context, modules []catalog.CourseModule) error {
	args := m.Called(ctx, modules)
	return args.Error(0)
}

func (m *MockModuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockModuleRepository) CountByCourse(ctx context.Context, courseID uuid.UUID) (int64, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).(int64), args.Error(1)
}

// MockLessonRepository is a mock implementation of catalog.LessonRepository
type MockLessonRepository struct {
	mock.Mock
}

func (m *MockLessonRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Lesson), args.Error(1)
}

func (m *MockLessonRepository) FindByModule(ctx context.Context, moduleID uuid.UUID) ([]catalog.Lesson, error) {
	args := m.Called(ctx, moduleID)
	return args.Get(0).([]catalog.Lesson), args.Error(1)
}

func (m *MockLessonRepository) FindByCourse(ctx context.Context, courseID uuid.UUID) ([]catalog.Lesson, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).([]catalog.Lesson), args.Error(1)
}

func (m *MockLessonRepository) Save(ctx context.Context, lesson *catalog.Lesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

func (m *MockLessonRepository) SaveAll(ctx context.Context, lessons []catalog.Lesson) error {
	args := m.Called(ctx, lessons)
	return args.Error(0)
}

func (m *MockLessonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLessonRepository) CountByModule(ctx context.Context, moduleID uuid.UUID) (int64, error) {
	args := m.Called(ctx, moduleID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLessonRepository) CountByCourse(ctx context.Context, courseID uuid.UUID) (int64, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).(int64), args.Error(1)
}

// Test helpers
type enrollmentMocks struct {
	enrollments *MockEnrollmentRepository
	progress    *MockProgressRepository
	courses     *MockCourseRepository
	modules     *MockModuleRepository
	lessons     *MockLessonRepository
}

func newEnrollmentService() (*EnrollmentService, enrollmentMocks) {
	mocks := enrollmentMocks{
		enrollments: new(MockEnrollmentRepository),
		progress:    new(MockProgressRepository),
		courses:     new(MockCourseRepository),
		modules:     new(MockModuleRepository),
		lessons:     new(MockLessonRepository),
	}
	service := NewEnrollmentService(mocks.enrollments, mocks.progress, mocks.courses, mocks.modules, mocks.lessons)
	return service, mocks
}

func newTestStudentID() uuid.UUID {
	return uuid.MustParse("22222222-2222-2222-2222-222222222222")
}

func studentViewer() catalog.Viewer {
	return catalog.Viewer{UserID: newTestStudentID()}
}

func createActiveCourse() *catalog.Course {
	course, _ := catalog.NewCourse(uuid.New(), "História Geral", "Da antiguidade ao presente", catalog.AudienceStudent)
	_ = course.Publish()
	course.ClearDomainEvents()
	return course
}

// Tests for EnrollmentService.Enroll
func TestEnrollmentService_Enroll_Success(t *testing.T) {
	service, mocks := newEnrollmentService()

	ctx := context.Background()
	viewer := studentViewer()
	course := createActiveCourse()

	mocks.courses.On("FindByID", ctx, course.ID).Return(course, nil)
	mocks.enrollments.On("FindByUserAndCourse", ctx, viewer.UserID, course.ID).Return(nil, shared.ErrNotFound)
	mocks.enrollments.On("Save", ctx, mock.AnythingOfType("*learning.Enrollment")).Return(nil)
	mocks.lessons.On("CountByCourse", ctx, course.ID).Return(int64(8), nil)

	result, err := service.Enroll(ctx, viewer, course.ID)

	require.NoError(t, err)
	assert.Equal(t, "active", result.Status)
	assert.Equal(t, viewer.UserID, result.UserID)
	require.NotNil(t, result.Progress)
	assert.Equal(t, 8, result.Progress.TotalLessons)
	assert.Equal(t, 0, result.Progress.Percent)
	mocks.enrollments.AssertExpectations(t)
}

func TestEnrollmentService_Enroll_AlreadyEnrolled(t *testing.T) {
	service, mocks := newEnrollmentService()

	ctx := context.Background()
	viewer := studentViewer()
	course := createActiveCourse()
	enrollment := learning.NewEnrollment(viewer.UserID, course.ID)
	enrollment.ClearDomainEvents()

	mocks.courses.On("FindByID", ctx, course.ID).Return(course, nil)
	mocks.enrollments.On("FindByUserAndCourse", ctx, viewer.UserID, course.ID).Return(enrollment, nil)

	result, err := service.Enroll(ctx, viewer, course.ID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrAlreadyEnrolled)
	mocks.enrollments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestEnrollmentService_Enroll_DroppedEnrollmentReplaced(t *testing.T) {
	service, mocks := newEnrollmentService()

	ctx := context.Background()
	viewer := studentViewer()
	course := createActiveCourse()
	dropped := learning.NewEnrollment(viewer.UserID, course.ID)
	dropped.ClearDomainEvents()
	_ = dropped.Drop()

	mocks.courses.On("FindByID", ctx, course.ID).Return(course, nil)
	mocks.enrollments.On("FindByUserAndCourse", ctx, viewer.UserID, course.ID).Return(dropped, nil)
	mocks.enrollments.On("Delete", ctx, dropped.ID).Return(nil)
	mocks.enrollments.On("Save", ctx, mock.AnythingOfType("*learning.Enrollment")).Return(nil)
	mocks.lessons.On("CountByCourse", ctx, course.ID).Return(int64(3), nil)

	result, err := service.Enroll(ctx, viewer, course.ID)

	require.NoError(t, err)
	assert.Equal(t, "active", result.Status)
	assert.NotEqual(t, dropped.ID, result.ID)
	mocks.enrollments.AssertExpectations(t)
}

func TestEnrollmentService_Enroll_DraftCourseHidden(t *testing.T) {
	service, mocks := newEnrollmentService()

	ctx := context.Background()
	viewer := studentViewer()
	course, _ := catalog.NewCourse(uuid.New(), "Rascunho", "Ainda em produção", catalog.AudienceStudent)
	course.ClearDomainEvents()

	mocks.courses.On("FindByID", ctx, course.ID).Return(course, nil)

	result, err := service.Enroll(ctx, viewer, course.ID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

// Tests for EnrollmentService.Drop
func TestEnrollmentService_Drop_Success(t *testing.T) {
	service, mocks := newEnrollmentService()

	ctx := context.Background()
	userID := newTestStudentID()
	courseID := uuid.New()
	enrollment := learning.NewEnrollment(userID, courseID)
	enrollment.ClearDomainEvents()

	mocks.enrollments.On("FindByUserAndCourse", ctx, userID, courseID).Return(enrollment, nil)
	mocks.enrollments.On("Save", ctx, enrollment).Return(nil)

	err := service.Drop(ctx, userID, courseID)

	assert.NoError(t, err)
	assert.Equal(t, learning.EnrollmentStatusDropped, enrollment.Status)
}

func TestEnrollmentService_Drop_NotEnrolled(t *testing.T) {
	service, mocks := newEnrollmentService()

	ctx := context.Background()
	userID := newTestStudentID()
	courseID := uuid.New()

	mocks.enrollments.On("FindByUserAndCourse", ctx, userID, courseID).Return(nil, shared.ErrNotFound)

	err := service.Drop(ctx, userID, courseID)

	assert.ErrorIs(t, err, shared.ErrNotEnrolled)
}

// Tests for EnrollmentService.CompleteLesson
func TestEnrollmentService_CompleteLesson_CreatesRecord(t *testing.T) {
	service, mocks := newEnrollmentService()

	ctx := context.Background()
	userID := newTestStudentID()
	courseID := uuid.New()
	module, _ := catalog.NewCourseModule(courseID, "Introdução", 1)
	lesson, _ := catalog.NewLesson(module.ID, "Primeira aula", catalog.ContentTypeVideo, 1)
	enrollment := learning.NewEnrollment(userID, courseID)
	enrollment.ClearDomainEvents()

	mocks.lessons.On("FindByID", ctx, lesson.ID).Return(lesson, nil)
	mocks.modules.On("FindByID", ctx, module.ID).Return(module, nil)
	mocks.enrollments.On("FindByUserAndCourse", ctx, userID, courseID).Return(enrollment, nil)
	mocks.progress.On("FindByEnrollmentAndLesson", ctx, enrollment.ID, lesson.ID).Return(nil, shared.ErrNotFound)
	mocks.progress.On("Save", ctx, mock.AnythingOfType("*learning.LessonProgress")).Return(nil)
	mocks.lessons.On("CountByCourse", ctx, courseID).Return(int64(4), nil)
	mocks.progress.On("CountCompleted", ctx, enrollment.ID).Return(int64(1), nil)

	result, err := service.CompleteLesson(ctx, userID, lesson.ID)

	require.NoError(t, err)
	assert.Equal(t, "active", result.Status)
	require.NotNil(t, result.Progress)
	assert.Equal(t, 25, result.Progress.Percent)
	mocks.progress.AssertExpectations(t)
}

func TestEnrollmentService_CompleteLesson_LastLessonCompletesEnrollment(t *testing.T) {
	service, mocks := newEnrollmentService()

	ctx := context.Background()
	userID := newTestStudentID()
	courseID := uuid.New()
	module, _ := catalog.NewCourseModule(courseID, "Encerramento", 1)
	lesson, _ := catalog.NewLesson(module.ID, "Última aula", catalog.ContentTypeVideo, 1)
	enrollment := learning.NewEnrollment(userID, courseID)
	enrollment.ClearDomainEvents()

	mocks.lessons.On("FindByID", ctx, lesson.ID).Return(lesson, nil)
	mocks.modules.On("FindByID", ctx, module.ID).Return(module, nil)
	mocks.enrollments.On("FindByUserAndCourse", ctx, userID, courseID).Return(enrollment, nil)
	mocks.progress.On("FindByEnrollmentAndLesson", ctx, enrollment.ID, lesson.ID).Return(nil, shared.ErrNotFound)
	mocks.progress.On("Save", ctx, mock.AnythingOfType("*learning.LessonProgress")).Return(nil)
	mocks.lessons.On("CountByCourse", ctx, courseID).Return(int64(2), nil)
	mocks.progress.On("CountCompleted", ctx, enrollment.ID).Return(int64(2), nil)
	mocks.enrollments.On("Save", ctx, enrollment).Return(nil)

	result, err := service.CompleteLesson(ctx, userID, lesson.ID)

	require.NoError(t, err)
	assert.Equal(t, "completed", result.Status)
	assert.Equal(t, 100, result.Progress.Percent)
	mocks.enrollments.AssertExpectations(t)
}

func TestEnrollmentService_CompleteLesson_AlreadyCompletedKeepsTimestamp(t *testing.T) {
	service, mocks := newEnrollmentService()

	ctx := context.Background()
	userID := newTestStudentID()
	courseID := uuid.New()
	module, _ := catalog.NewCourseModule(courseID, "Introdução", 1)
	lesson, _ := catalog.NewLesson(module.ID, "Aula repetida", catalog.ContentTypeVideo, 1)
	enrollment := learning.NewEnrollment(userID, courseID)
	enrollment.ClearDomainEvents()

	record := learning.NewLessonProgress(enrollment.ID, lesson.ID)
	record.MarkCompleted()
	originalTime := record.CompletedAt

	mocks.lessons.On("FindByID", ctx, lesson.ID).Return(lesson, nil)
	mocks.modules.On("FindByID", ctx, module.ID).Return(module, nil)
	mocks.enrollments.On("FindByUserAndCourse", ctx, userID, courseID).Return(enrollment, nil)
	mocks.progress.On("FindByEnrollmentAndLesson", ctx, enrollment.ID, lesson.ID).Return(record, nil)
	mocks.progress.On("Save", ctx, record).Return(nil)
	mocks.lessons.On("CountByCourse", ctx, courseID).Return(int64(4), nil)
	mocks.progress.On("CountCompleted", ctx, enrollment.ID).Return(int64(1), nil)

	_, err := service.CompleteLesson(ctx, userID, lesson.ID)

	require.NoError(t, err)
	assert.Equal(t, originalTime, record.CompletedAt)
}

func TestEnrollmentService_CompleteLesson_NotEnrolled(t *testing.T) {
	service, mocks := newEnrollmentService()

	ctx := context.Background()
	userID := newTestStudentID()
	courseID := uuid.New()
	module, _ := catalog.NewCourseModule(courseID, "Introdução", 1)
	lesson, _ := catalog.NewLesson(module.ID, "Aula fechada", catalog.ContentTypeVideo, 1)

	mocks.lessons.On("FindByID", ctx, lesson.ID).Return(lesson, nil)
	mocks.modules.On("FindByID", ctx, module.ID).Return(module, nil)
	mocks.enrollments.On("FindByUserAndCourse", ctx, userID, courseID).Return(nil, shared.ErrNotFound)

	result, err := service.CompleteLesson(ctx, userID, lesson.ID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotEnrolled)
}

// Tests for EnrollmentService.ListMine
func TestEnrollmentService_ListMine_IncludesProgress(t *testing.T) {
	service, mocks := newEnrollmentService()

	ctx := context.Background()
	userID := newTestStudentID()
	courseID := uuid.New()
	enrollment := learning.NewEnrollment(userID, courseID)
	enrollment.ClearDomainEvents()

	mocks.enrollments.On("FindByUser", ctx, userID).Return([]learning.Enrollment{*enrollment}, nil)
	mocks.lessons.On("CountByCourse", ctx, courseID).Return(int64(3), nil)
	mocks.progress.On("CountCompleted", ctx, mock.AnythingOfType("uuid.UUID")).Return(int64(2), nil)

	results, err := service.ListMine(ctx, userID)

	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NotNil(t, results[0].Progress)
	assert.Equal(t, 3, results[0].Progress.TotalLessons)
	assert.Equal(t, 2, results[0].Progress.CompletedLessons)
	// 2/3 rounds to nearest integer
	assert.Equal(t, 67, results[0].Progress.Percent)
}
