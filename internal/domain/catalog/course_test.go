package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourse(t *testing.T) {
	ownerID := uuid.New()

	t.Run("creates draft course with valid inputs", func(t *testing.T) {
		course, err := NewCourse(ownerID, "Algebra Basics", "Introductory algebra", AudienceStudent)
		require.NoError(t, err)
		require.NotNil(t, course)

		assert.Equal(t, "Algebra Basics", course.Title)
		assert.Equal(t, CourseStatusDraft, course.Status)
		assert.Equal(t, AudienceStudent, course.Audience)
		assert.Equal(t, LevelBeginner, course.Level)
		assert.True(t, course.IsOwnedBy(ownerID))
		assert.NotEmpty(t, course.ID)
	})

	t.Run("trims title whitespace", func(t *testing.T) {
		course, err := NewCourse(ownerID, "  Algebra  ", "", AudienceStudent)
		require.NoError(t, err)
		assert.Equal(t, "Algebra", course.Title)
	})

	t.Run("publishes CourseCreated event", func(t *testing.T) {
		course, err := NewCourse(ownerID, "Algebra", "", AudienceStudent)
		require.NoError(t, err)

		events := course.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCourseCreated, events[0].EventType())
	})

	t.Run("fails with empty title", func(t *testing.T) {
		_, err := NewCourse(ownerID, "   ", "", AudienceStudent)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "title cannot be empty")
	})

	t.Run("fails with invalid audience", func(t *testing.T) {
		_, err := NewCourse(ownerID, "Algebra", "", CourseAudience("everyone"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "audience must be student or teacher")
	})
}

func TestCoursePublish(t *testing.T) {
	ownerID := uuid.New()

	t.Run("publish moves draft to active", func(t *testing.T) {
		course, _ := NewCourse(ownerID, "Algebra", "", AudienceStudent)
		require.NoError(t, course.Publish())
		assert.Equal(t, CourseStatusActive, course.Status)
		assert.True(t, course.IsPublished())
	})

	t.Run("publish fails when already active", func(t *testing.T) {
		course, _ := NewCourse(ownerID, "Algebra", "", AudienceStudent)
		require.NoError(t, course.Publish())
		assert.Error(t, course.Publish())
	})

	t.Run("unpublish moves active back to draft", func(t *testing.T) {
		course, _ := NewCourse(ownerID, "Algebra", "", AudienceStudent)
		require.NoError(t, course.Publish())
		require.NoError(t, course.Unpublish())
		assert.Equal(t, CourseStatusDraft, course.Status)
	})

	t.Run("publish increments version", func(t *testing.T) {
		course, _ := NewCourse(ownerID, "Algebra", "", AudienceStudent)
		v := course.GetVersion()
		require.NoError(t, course.Publish())
		assert.Equal(t, v+1, course.GetVersion())
	})
}

func TestCourseVisibility(t *testing.T) {
	ownerID := uuid.New()
	student := Viewer{UserID: uuid.New()}
	teacher := Viewer{UserID: uuid.New(), IsTeacher: true}
	admin := Viewer{UserID: uuid.New(), IsAdmin: true}

	active := func(audience CourseAudience) *Course {
		course, err := NewCourse(ownerID, "Course", "", audience)
		require.NoError(t, err)
		require.NoError(t, course.Publish())
		return course
	}

	t.Run("student audience is visible to everyone", func(t *testing.T) {
		course := active(AudienceStudent)
		assert.True(t, course.VisibleTo(student))
		assert.True(t, course.VisibleTo(teacher))
		assert.True(t, course.VisibleTo(admin))
	})

	t.Run("teacher audience is hidden from students", func(t *testing.T) {
		course := active(AudienceTeacher)
		assert.False(t, course.VisibleTo(student))
		assert.True(t, course.VisibleTo(teacher))
		assert.True(t, course.VisibleTo(admin))
	})

	t.Run("drafts are never publicly visible", func(t *testing.T) {
		course, err := NewCourse(ownerID, "Course", "", AudienceStudent)
		require.NoError(t, err)
		assert.False(t, course.VisibleTo(student))
		assert.False(t, course.VisibleTo(teacher))
		assert.False(t, course.VisibleTo(admin))
	})

	t.Run("owner and admin can view drafts through the authoring path", func(t *testing.T) {
		course, err := NewCourse(ownerID, "Course", "", AudienceStudent)
		require.NoError(t, err)

		owner := Viewer{UserID: ownerID, IsTeacher: true}
		assert.True(t, course.CanView(owner))
		assert.True(t, course.CanView(admin))
		assert.False(t, course.CanView(teacher))
		assert.False(t, course.CanView(student))
	})

	t.Run("only owner and admin can edit", func(t *testing.T) {
		course := active(AudienceStudent)
		owner := Viewer{UserID: ownerID, IsTeacher: true}
		assert.True(t, course.CanEdit(owner))
		assert.True(t, course.CanEdit(admin))
		assert.False(t, course.CanEdit(teacher))
	})
}

func TestCourseModule(t *testing.T) {
	courseID := uuid.New()

	t.Run("creates module with position", func(t *testing.T) {
		module, err := NewCourseModule(courseID, "Week 1", 1)
		require.NoError(t, err)
		assert.Equal(t, courseID, module.CourseID)
		assert.Equal(t, 1, module.Position)
	})

	t.Run("rejects position below 1", func(t *testing.T) {
		_, err := NewCourseModule(courseID, "Week 1", 0)
		require.Error(t, err)
	})

	t.Run("MoveTo is idempotent", func(t *testing.T) {
		module, _ := NewCourseModule(courseID, "Week 1", 1)
		require.NoError(t, module.MoveTo(3))
		v := module.GetVersion()
		require.NoError(t, module.MoveTo(3))
		assert.Equal(t, 3, module.Position)
		assert.Equal(t, v, module.GetVersion())
	})
}

func TestLesson(t *testing.T) {
	moduleID := uuid.New()

	t.Run("creates lesson with valid inputs", func(t *testing.T) {
		lesson, err := NewLesson(moduleID, "Intro", ContentTypeVideo, 1)
		require.NoError(t, err)
		assert.Equal(t, moduleID, lesson.ModuleID)
		assert.Equal(t, ContentTypeVideo, lesson.ContentType)
		assert.False(t, lesson.Public)
	})

	t.Run("rejects unknown content type", func(t *testing.T) {
		_, err := NewLesson(moduleID, "Intro", LessonContentType("hologram"), 1)
		require.Error(t, err)
	})

	t.Run("update rejects negative duration", func(t *testing.T) {
		lesson, _ := NewLesson(moduleID, "Intro", ContentTypeVideo, 1)
		err := lesson.Update("Intro", "", -5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duration cannot be negative")
	})

	t.Run("SetContent validates URL length", func(t *testing.T) {
		lesson, _ := NewLesson(moduleID, "Intro", ContentTypeVideo, 1)
		require.NoError(t, lesson.SetContent("https://cdn.example.com/v/1.mp4", ContentTypeVideo))
		assert.Equal(t, "https://cdn.example.com/v/1.mp4", lesson.ContentURL)
	})
}
