// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// LearningMetrics provides business metrics for the learning platform.
// It tracks enrollments, lesson completions and grading activity.
type LearningMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	enrollmentCreatedTotal *Counter
	lessonCompletedTotal   *Counter
	submissionTotal        *Counter
	submissionGradedTotal  *Counter

	// Distribution of awarded scores on a 0-100 scale
	submissionScore *Histogram

	// Gauge metrics (point-in-time values)
	activeEnrollments *Gauge
	publishedCourses  *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	provider PlatformMetricsProvider
}

// PlatformMetricsProvider provides platform counts for periodic metrics
// collection. The interface keeps the telemetry layer from depending on
// the domain repositories directly.
type PlatformMetricsProvider interface {
	// GetActiveEnrollmentCount returns the number of active enrollments
	GetActiveEnrollmentCount(ctx context.Context) (int64, error)

	// GetPublishedCourseCount returns the number of published courses
	GetPublishedCourseCount(ctx context.Context) (int64, error)
}

// LearningMetricsConfig holds configuration for learning metrics.
type LearningMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	Provider        PlatformMetricsProvider
}

// NewLearningMetrics creates a new LearningMetrics instance.
func NewLearningMetrics(cfg LearningMetricsConfig) (*LearningMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	lm := &LearningMetrics{
		meter:    cfg.Meter,
		logger:   logger,
		stopChan: make(chan struct{}),
		provider: cfg.Provider,
	}

	var err error

	lm.enrollmentCreatedTotal, err = NewCounter(
		cfg.Meter,
		"lms_enrollment_created_total",
		"Total number of enrollments created",
		"{enrollments}",
	)
	if err != nil {
		return nil, err
	}

	lm.lessonCompletedTotal, err = NewCounter(
		cfg.Meter,
		"lms_lesson_completed_total",
		"Total number of lesson completions",
		"{lessons}",
	)
	if err != nil {
		return nil, err
	}

	lm.submissionTotal, err = NewCounter(
		cfg.Meter,
		"lms_submission_total",
		"Total number of assignment submissions",
		"{submissions}",
	)
	if err != nil {
		return nil, err
	}

	lm.submissionGradedTotal, err = NewCounter(
		cfg.Meter,
		"lms_submission_graded_total",
		"Total number of graded submissions",
		"{submissions}",
	)
	if err != nil {
		return nil, err
	}

	lm.submissionScore, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "lms_submission_score",
		Description: "Distribution of awarded submission scores",
		Unit:        "{points}",
		Boundaries:  []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})
	if err != nil {
		return nil, err
	}

	lm.activeEnrollments, err = NewGauge(
		cfg.Meter,
		"lms_active_enrollments",
		"Current number of active enrollments",
		"{enrollments}",
	)
	if err != nil {
		return nil, err
	}

	lm.publishedCourses, err = NewGauge(
		cfg.Meter,
		"lms_published_courses",
		"Current number of published courses",
		"{courses}",
	)
	if err != nil {
		return nil, err
	}

	return lm, nil
}

// RecordEnrollmentCreated records an enrollment creation event.
// Called from the application layer when a student enrolls.
func (lm *LearningMetrics) RecordEnrollmentCreated(ctx context.Context, courseLevel string) {
	lm.enrollmentCreatedTotal.Inc(ctx,
		AttrCourseLevel.String(courseLevel),
	)
}

// RecordLessonCompleted records a lesson completion event.
func (lm *LearningMetrics) RecordLessonCompleted(ctx context.Context) {
	lm.lessonCompletedTotal.Inc(ctx)
}

// RecordSubmission records an assignment submission event.
func (lm *LearningMetrics) RecordSubmission(ctx context.Context, resubmission bool) {
	status := "initial"
	if resubmission {
		status = "resubmission"
	}
	lm.submissionTotal.Inc(ctx,
		AttrSubmissionStatus.String(status),
	)
}

// RecordSubmissionGraded records a grading event with the awarded score.
func (lm *LearningMetrics) RecordSubmissionGraded(ctx context.Context, score decimal.Decimal) {
	lm.submissionGradedTotal.Inc(ctx)
	lm.submissionScore.Record(ctx, score.InexactFloat64())
}

// RecordActiveEnrollments records the current number of active enrollments.
// This is a gauge metric updated by the periodic collector.
func (lm *LearningMetrics) RecordActiveEnrollments(ctx context.Context, count int64) {
	lm.activeEnrollments.Record(ctx, count)
}

// RecordPublishedCourses records the current number of published courses.
func (lm *LearningMetrics) RecordPublishedCourses(ctx context.Context, count int64) {
	lm.publishedCourses.Record(ctx, count)
}

// StartPeriodicCollection starts periodic collection of gauge metrics.
// Non-blocking, use Stop() to stop collection.
func (lm *LearningMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	lm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go lm.runPeriodicCollection(ctx, interval)
	})
}

func (lm *LearningMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	lm.collectPlatformMetrics(ctx)

	for {
		select {
		case <-lm.stopChan:
			lm.logger.Info("Stopping periodic learning metrics collection")
			return
		case <-ctx.Done():
			lm.logger.Info("Context cancelled, stopping periodic learning metrics collection")
			return
		case <-ticker.C:
			lm.collectPlatformMetrics(ctx)
		}
	}
}

func (lm *LearningMetrics) collectPlatformMetrics(ctx context.Context) {
	if lm.provider == nil {
		lm.logger.Debug("No platform metrics provider configured, skipping collection")
		return
	}

	enrollments, err := lm.provider.GetActiveEnrollmentCount(ctx)
	if err != nil {
		lm.logger.Warn("Failed to get active enrollment count", zap.Error(err))
	} else {
		lm.RecordActiveEnrollments(ctx, enrollments)
	}

	courses, err := lm.provider.GetPublishedCourseCount(ctx)
	if err != nil {
		lm.logger.Warn("Failed to get published course count", zap.Error(err))
	} else {
		lm.RecordPublishedCourses(ctx, courses)
	}
}

// Stop stops the periodic collection.
func (lm *LearningMetrics) Stop() {
	lm.stopOnce.Do(func() {
		close(lm.stopChan)
	})
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewLearningMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
