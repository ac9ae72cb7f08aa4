package learning

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignment(t *testing.T) {
	lessonID := uuid.New()

	t.Run("creates assignment with positive max score", func(t *testing.T) {
		assignment, err := NewAssignment(lessonID, "Essay", "Write 500 words", decimal.NewFromInt(100))
		require.NoError(t, err)
		assert.Equal(t, lessonID, assignment.LessonID)
		assert.True(t, assignment.MaxScore.Equal(decimal.NewFromInt(100)))
	})

	t.Run("rejects non-positive max score", func(t *testing.T) {
		_, err := NewAssignment(lessonID, "Essay", "", decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max score must be positive")
	})

	t.Run("overdue check", func(t *testing.T) {
		assignment, _ := NewAssignment(lessonID, "Essay", "", decimal.NewFromInt(10))
		assert.False(t, assignment.IsOverdue(time.Now()))

		due := time.Now().Add(-time.Hour)
		assignment.SetDueDate(&due)
		assert.True(t, assignment.IsOverdue(time.Now()))
	})
}

func TestSubmissionGrading(t *testing.T) {
	maxScore := decimal.NewFromInt(100)

	newSubmission := func(t *testing.T) *Submission {
		submission, err := NewSubmission(uuid.New(), uuid.New(), uuid.New(), "https://files.example.com/answer.pdf")
		require.NoError(t, err)
		return submission
	}

	t.Run("grade within range", func(t *testing.T) {
		submission := newSubmission(t)
		require.NoError(t, submission.Grade(decimal.NewFromFloat(87.5), maxScore, "Good work"))
		assert.True(t, submission.IsGraded())
		assert.True(t, submission.Score.Equal(decimal.NewFromFloat(87.5)))
		assert.Equal(t, "Good work", submission.Feedback)
	})

	t.Run("grade above max score fails", func(t *testing.T) {
		submission := newSubmission(t)
		err := submission.Grade(decimal.NewFromInt(101), maxScore, "")
		require.Error(t, err)
		assert.False(t, submission.IsGraded())
	})

	t.Run("negative grade fails", func(t *testing.T) {
		submission := newSubmission(t)
		require.Error(t, submission.Grade(decimal.NewFromInt(-1), maxScore, ""))
	})

	t.Run("resubmit clears previous grade", func(t *testing.T) {
		submission := newSubmission(t)
		require.NoError(t, submission.Grade(decimal.NewFromInt(60), maxScore, "Needs work"))

		require.NoError(t, submission.Resubmit("https://files.example.com/answer-v2.pdf"))
		assert.False(t, submission.IsGraded())
		assert.Nil(t, submission.Score)
		assert.Empty(t, submission.Feedback)
		assert.Equal(t, "https://files.example.com/answer-v2.pdf", submission.AnswerURL)
	})

	t.Run("empty answer URL rejected", func(t *testing.T) {
		_, err := NewSubmission(uuid.New(), uuid.New(), uuid.New(), "  ")
		require.Error(t, err)
	})
}
