package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	learningapp "github.com/mindsacademy/backend/internal/application/learning"
	"github.com/mindsacademy/backend/internal/domain/catalog"
	"github.com/mindsacademy/backend/internal/domain/learning"
	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/mindsacademy/backend/internal/infrastructure/persistence"
)

// TestEnrollmentFlow_Integration walks through the full student journey:
// enroll in a published course, complete lessons one by one and watch the
// progress percentage move until the enrollment completes.
func TestEnrollmentFlow_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	ctx := context.Background()

	courseRepo := persistence.NewGormCourseRepository(testDB.DB)
	moduleRepo := persistence.NewGormModuleRepository(testDB.DB)
	lessonRepo := persistence.NewGormLessonRepository(testDB.DB)
	enrollmentRepo := persistence.NewGormEnrollmentRepository(testDB.DB)
	progressRepo := persistence.NewGormProgressRepository(testDB.DB)

	service := learningapp.NewEnrollmentService(enrollmentRepo, progressRepo, courseRepo, moduleRepo, lessonRepo)

	teacherID := uuid.New()
	studentID := uuid.New()
	testDB.CreateTestUser(teacherID, "Professor Carlos", "carlos@mindsacademy.com.br")
	testDB.CreateTestUser(studentID, "Aluna Beatriz", "beatriz@mindsacademy.com.br")

	// Published course with one module and three lessons
	course, err := catalog.NewCourse(teacherID, "Curso de Go", "Programação em Go do zero", catalog.AudienceStudent)
	require.NoError(t, err)
	require.NoError(t, course.Publish())
	require.NoError(t, courseRepo.Save(ctx, course))

	module, err := catalog.NewCourseModule(course.ID, "Fundamentos", 1)
	require.NoError(t, err)
	require.NoError(t, moduleRepo.Save(ctx, module))

	lessons := make([]*catalog.Lesson, 0, 3)
	for i, title := range []string{"Variáveis", "Funções", "Structs"} {
		lesson, err := catalog.NewLesson(module.ID, title, catalog.ContentTypeVideo, i+1)
		require.NoError(t, err)
		require.NoError(t, lessonRepo.Save(ctx, lesson))
		lessons = append(lessons, lesson)
	}

	student := catalog.Viewer{UserID: studentID}

	t.Run("Enroll in published course", func(t *testing.T) {
		enrollment, err := service.Enroll(ctx, student, course.ID)
		require.NoError(t, err)
		assert.Equal(t, studentID, enrollment.UserID)
		assert.Equal(t, course.ID, enrollment.CourseID)
		assert.Equal(t, string(learning.EnrollmentStatusActive), enrollment.Status)
	})

	t.Run("Duplicate enrollment is rejected", func(t *testing.T) {
		_, err := service.Enroll(ctx, student, course.ID)
		assert.ErrorIs(t, err, shared.ErrAlreadyEnrolled)
	})

	t.Run("Progress rounds to nearest percent", func(t *testing.T) {
		_, err := service.CompleteLesson(ctx, studentID, lessons[0].ID)
		require.NoError(t, err)
		_, err = service.CompleteLesson(ctx, studentID, lessons[1].ID)
		require.NoError(t, err)

		enrollment, _, err := service.GetProgress(ctx, studentID, course.ID)
		require.NoError(t, err)
		require.NotNil(t, enrollment.Progress)
		assert.Equal(t, 3, enrollment.Progress.TotalLessons)
		assert.Equal(t, 2, enrollment.Progress.CompletedLessons)
		assert.Equal(t, 67, enrollment.Progress.Percent)
	})

	t.Run("Completing a lesson twice is idempotent", func(t *testing.T) {
		_, err := service.CompleteLesson(ctx, studentID, lessons[0].ID)
		require.NoError(t, err)

		enrollment, _, err := service.GetProgress(ctx, studentID, course.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, enrollment.Progress.CompletedLessons)
	})

	t.Run("Last lesson completes the enrollment", func(t *testing.T) {
		result, err := service.CompleteLesson(ctx, studentID, lessons[2].ID)
		require.NoError(t, err)
		assert.Equal(t, string(learning.EnrollmentStatusCompleted), result.Status)

		enrollment, lessonStates, err := service.GetProgress(ctx, studentID, course.ID)
		require.NoError(t, err)
		assert.Equal(t, 100, enrollment.Progress.Percent)
		assert.Len(t, lessonStates, 3)
		for _, state := range lessonStates {
			assert.True(t, state.Completed)
		}
	})

	t.Run("Uncompleting lowers progress but keeps completion", func(t *testing.T) {
		result, err := service.UncompleteLesson(ctx, studentID, lessons[2].ID)
		require.NoError(t, err)
		assert.Equal(t, string(learning.EnrollmentStatusCompleted), result.Status)

		enrollment, _, err := service.GetProgress(ctx, studentID, course.ID)
		require.NoError(t, err)
		assert.Equal(t, 67, enrollment.Progress.Percent)
	})

	t.Run("Drop and re-enroll resets progress", func(t *testing.T) {
		require.NoError(t, service.Drop(ctx, studentID, course.ID))

		enrollment, err := service.Enroll(ctx, student, course.ID)
		require.NoError(t, err)
		assert.Equal(t, string(learning.EnrollmentStatusActive), enrollment.Status)

		fresh, _, err := service.GetProgress(ctx, studentID, course.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, fresh.Progress.CompletedLessons)
	})

	t.Run("Draft course is not enrollable", func(t *testing.T) {
		draft, err := catalog.NewCourse(teacherID, "Curso em Rascunho", "", catalog.AudienceStudent)
		require.NoError(t, err)
		require.NoError(t, courseRepo.Save(ctx, draft))

		_, err = service.Enroll(ctx, student, draft.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
