package learning

import (
	"strings"
	"time"

	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Submission is a user's answer to an assignment. There is at most one
// current submission per (assignment, user); resubmitting replaces the
// answer and clears any previous grade.
type Submission struct {
	shared.BaseAggregateRoot
	AssignmentID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_submission_assignment_user,priority:1"`
	UserID       uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_submission_assignment_user,priority:2"`
	EnrollmentID uuid.UUID        `gorm:"type:uuid;not null;index"`
	AnswerURL    string           `gorm:"type:varchar(2048);not null"`
	Score        *decimal.Decimal `gorm:"type:decimal(6,2)"`
	Feedback     string           `gorm:"type:text"`
	GradedAt     *time.Time       `gorm:""`
}

// TableName returns the table name for GORM
func (Submission) TableName() string {
	return "assignment_submission"
}

// NewSubmission creates a submission for an assignment
func NewSubmission(assignmentID, userID, enrollmentID uuid.UUID, answerURL string) (*Submission, error) {
	if err := validateAnswerURL(answerURL); err != nil {
		return nil, err
	}

	submission := &Submission{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AssignmentID:      assignmentID,
		UserID:            userID,
		EnrollmentID:      enrollmentID,
		AnswerURL:         answerURL,
	}

	submission.AddDomainEvent(NewSubmissionReceivedEvent(submission))

	return submission, nil
}

// Resubmit replaces the answer and clears any previous grade
func (s *Submission) Resubmit(answerURL string) error {
	if err := validateAnswerURL(answerURL); err != nil {
		return err
	}

	s.AnswerURL = answerURL
	s.Score = nil
	s.Feedback = ""
	s.GradedAt = nil
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSubmissionReceivedEvent(s))

	return nil
}

// Grade records a score and feedback. The score must be within
// [0, maxScore] for the owning assignment.
func (s *Submission) Grade(score decimal.Decimal, maxScore decimal.Decimal, feedback string) error {
	if score.IsNegative() {
		return shared.NewDomainError("INVALID_SCORE", "Score cannot be negative")
	}
	if score.GreaterThan(maxScore) {
		return shared.NewDomainError("INVALID_SCORE", "Score cannot exceed the assignment max score")
	}

	now := time.Now()
	s.Score = &score
	s.Feedback = feedback
	s.GradedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewSubmissionGradedEvent(s))

	return nil
}

// IsGraded returns true if the submission has been graded
func (s *Submission) IsGraded() bool {
	return s.GradedAt != nil
}

// validateAnswerURL validates the submitted answer URL
func validateAnswerURL(answerURL string) error {
	answerURL = strings.TrimSpace(answerURL)
	if answerURL == "" {
		return shared.NewDomainError("INVALID_ANSWER", "Submission answer URL cannot be empty")
	}
	if len(answerURL) > 2048 {
		return shared.NewDomainError("INVALID_ANSWER", "Submission answer URL cannot exceed 2048 characters")
	}
	return nil
}
