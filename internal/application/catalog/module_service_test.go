package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestModule(courseID uuid.UUID, title string, position int) catalog.CourseModule {
	module, _ := catalog.NewCourseModule(courseID, title, position)
	return *module
}

func TestModuleService_Create_AppendsAtEnd(t *testing.T) {
	mockCourseRepo := new(MockCourseRepository)
	mockModuleRepo := new(MockModuleRepository)
	service := NewModuleService(mockCourseRepo, mockModuleRepo)

	ctx := context.Background()
	course := createTestCourse(newTestTeacherID())

	mockCourseRepo.On("FindByID", ctx, course.ID).Return(course, nil)
	mockModuleRepo.On("CountByCourse", ctx, course.ID).Return(int64(2), nil)
	mockModuleRepo.On("Save", ctx, mock.AnythingOfType("*catalog.CourseModule")).Return(nil)

	result, err := service.Create(ctx, teacherViewer(), course.ID, CreateModuleRequest{Title: "Frações"})

	assert.NoError(t, err)
	assert.Equal(t, "Frações", result.Title)
	assert.Equal(t, 3, result.Order)
	mockModuleRepo.AssertExpectations(t)
}

func TestModuleService_Create_NotOwnerForbidden(t *testing.T) {
	mockCourseRepo := new(MockCourseRepository)
	mockModuleRepo := new(MockModuleRepository)
	service := NewModuleService(mockCourseRepo, mockModuleRepo)

	ctx := context.Background()
	course := createTestCourse(newTestTeacherID())

	mockCourseRepo.On("FindByID", ctx, course.ID).Return(course, nil)

	result, err := service.Create(ctx, studentViewer(), course.ID, CreateModuleRequest{Title: "Frações"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrForbidden)
	mockModuleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestModuleService_List_DraftCourseHiddenFromStudent(t *testing.T) {
	mockCourseRepo := new(MockCourseRepository)
	mockModuleRepo := new(MockModuleRepository)
	service := NewModuleService(mockCourseRepo, mockModuleRepo)

	ctx := context.Background()
	course := createTestCourse(newTestTeacherID())

	mockCourseRepo.On("FindByID", ctx, course.ID).Return(course, nil)

	result, err := service.List(ctx, studentViewer(), course.ID)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestModuleService_Update_Rename(t *testing.T) {
	mockCourseRepo := new(MockCourseRepository)
	mockModuleRepo := new(MockModuleRepository)
	service := NewModuleService(mockCourseRepo, mockModuleRepo)

	ctx := context.Background()
	course := createTestCourse(newTestTeacherID())
	module := createTestModule(course.ID, "Introdução", 1)

	mockModuleRepo.On("FindByID", ctx, module.ID).Return(&module, nil)
	mockCourseRepo.On("FindByID", ctx, course.ID).Return(course, nil)
	mockModuleRepo.On("Save", ctx, &module).Return(nil)

	result, err := service.Update(ctx, teacherViewer(), module.ID, UpdateModuleRequest{Title: "Apresentação"})

	assert.NoError(t, err)
	assert.Equal(t, "Apresentação", result.Title)
}

func TestModuleService_Reorder_AppliesAbsolutePositions(t *testing.T) {
	mockCourseRepo := new(MockCourseRepository)
	mockModuleRepo := new(MockModuleRepository)
	service := NewModuleService(mockCourseRepo, mockModuleRepo)

	ctx := context.Background()
	course := createTestCourse(newTestTeacherID())
	first := createTestModule(course.ID, "Primeiro", 1)
	second := createTestModule(course.ID, "Segundo", 2)
	third := createTestModule(course.ID, "Terceiro", 3)
	modules := []catalog.CourseModule{first, second, third}

	mockCourseRepo.On("FindByID", ctx, course.ID).Return(course, nil)
	mockModuleRepo.On("FindByCourse", ctx, course.ID).Return(modules, nil)
	mockModuleRepo.On("SaveAll", ctx, mock.AnythingOfType("[]catalog.CourseModule")).Return(nil)

	req := ReorderRequest{Orders: []ReorderEntry{
		{ID: first.ID, Order: 3},
		{ID: second.ID, Order: 1},
		{ID: third.ID, Order: 2},
	}}

	result, err := service.Reorder(ctx, teacherViewer(), course.ID, req)

	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, "Segundo", result[0].Title)
	assert.Equal(t, 1, result[0].Order)
	assert.Equal(t, "Terceiro", result[1].Title)
	assert.Equal(t, "Primeiro", result[2].Title)
	assert.Equal(t, 3, result[2].Order)
	mockModuleRepo.AssertExpectations(t)
}

func TestModuleService_Reorder_Idempotent(t *testing.T) {
	mockCourseRepo := new(MockCourseRepository)
	mockModuleRepo := new(MockModuleRepository)
	service := NewModuleService(mockCourseRepo, mockModuleRepo)

	ctx := context.Background()
	course := createTestCourse(newTestTeacherID())
	first := createTestModule(course.ID, "Primeiro", 1)
	second := createTestModule(course.ID, "Segundo", 2)

	req := ReorderRequest{Orders: []ReorderEntry{
		{ID: first.ID, Order: 2},
		{ID: second.ID, Order: 1},
	}}

	mockCourseRepo.On("FindByID", ctx, course.ID).Return(course, nil)
	mockModuleRepo.On("SaveAll", ctx, mock.AnythingOfType("[]catalog.CourseModule")).Return(nil)

	// First application swaps the modules
	mockModuleRepo.On("FindByCourse", ctx, course.ID).
		Return([]catalog.CourseModule{first, second}, nil).Once()
	firstPass, err := service.Reorder(ctx, teacherViewer(), course.ID, req)
	require.NoError(t, err)

	// Second application with the same absolute positions changes nothing
	swappedFirst := first
	swappedFirst.Position = 2
	swappedSecond := second
	swappedSecond.Position = 1
	mockModuleRepo.On("FindByCourse", ctx, course.ID).
		Return([]catalog.CourseModule{swappedFirst, swappedSecond}, nil).Once()
	secondPass, err := service.Reorder(ctx, teacherViewer(), course.ID, req)
	require.NoError(t, err)

	assert.Equal(t, firstPass, secondPass)
}

func TestModuleService_Reorder_UnknownModuleRejected(t *testing.T) {
	mockCourseRepo := new(MockCourseRepository)
	mockModuleRepo := new(MockModuleRepository)
	service := NewModuleService(mockCourseRepo, mockModuleRepo)

	ctx := context.Background()
	course := createTestCourse(newTestTeacherID())
	module := createTestModule(course.ID, "Único", 1)

	mockCourseRepo.On("FindByID", ctx, course.ID).Return(course, nil)
	mockModuleRepo.On("FindByCourse", ctx, course.ID).Return([]catalog.CourseModule{module}, nil)

	req := ReorderRequest{Orders: []ReorderEntry{
		{ID: uuid.New(), Order: 1},
	}}

	result, err := service.Reorder(ctx, teacherViewer(), course.ID, req)

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MODULE_NOT_IN_COURSE", domainErr.Code)
	mockModuleRepo.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
}

func TestModuleService_Delete_Success(t *testing.T) {
	mockCourseRepo := new(MockCourseRepository)
	mockModuleRepo := new(MockModuleRepository)
	service := NewModuleService(mockCourseRepo, mockModuleRepo)

	ctx := context.Background()
	course := createTestCourse(newTestTeacherID())
	module := createTestModule(course.ID, "Removível", 1)

	mockModuleRepo.On("FindByID", ctx, module.ID).Return(&module, nil)
	mockCourseRepo.On("FindByID", ctx, course.ID).Return(course, nil)
	mockModuleRepo.On("Delete", ctx, module.ID).Return(nil)

	err := service.Delete(ctx, teacherViewer(), module.ID)

	assert.NoError(t, err)
	mockModuleRepo.AssertExpectations(t)
}
