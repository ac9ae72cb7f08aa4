package telemetry_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mindsacademy/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

func TestNewLearningMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	lm, err := telemetry.NewLearningMetrics(telemetry.LearningMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
	})

	require.NoError(t, err)
	require.NotNil(t, lm)
}

func TestNewLearningMetrics_NilMeter(t *testing.T) {
	lm, err := telemetry.NewLearningMetrics(telemetry.LearningMetricsConfig{
		Meter:  nil,
		Logger: zap.NewNop(),
	})

	require.Error(t, err)
	assert.Nil(t, lm)
	assert.Equal(t, "NewLearningMetrics: meter cannot be nil", err.Error())
}

func TestLearningMetrics_RecordCounters(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	lm, err := telemetry.NewLearningMetrics(telemetry.LearningMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	lm.RecordEnrollmentCreated(ctx, "beginner")
	lm.RecordEnrollmentCreated(ctx, "advanced")
	lm.RecordLessonCompleted(ctx)
	lm.RecordSubmission(ctx, false)
	lm.RecordSubmission(ctx, true)
	lm.RecordSubmissionGraded(ctx, decimal.NewFromFloat(87.5))
}

func TestLearningMetrics_RecordGauges(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	lm, err := telemetry.NewLearningMetrics(telemetry.LearningMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	lm.RecordActiveEnrollments(ctx, 42)
	lm.RecordPublishedCourses(ctx, 7)
}

type stubPlatformProvider struct {
	calls atomic.Int64
}

func (p *stubPlatformProvider) GetActiveEnrollmentCount(ctx context.Context) (int64, error) {
	p.calls.Add(1)
	return 10, nil
}

func (p *stubPlatformProvider) GetPublishedCourseCount(ctx context.Context) (int64, error) {
	return 3, nil
}

func TestLearningMetrics_PeriodicCollection(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	provider := &stubPlatformProvider{}

	lm, err := telemetry.NewLearningMetrics(telemetry.LearningMetricsConfig{
		Meter:    meter,
		Provider: provider,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lm.StartPeriodicCollection(ctx, 10*time.Millisecond)
	defer lm.Stop()

	assert.Eventually(t, func() bool {
		return provider.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestLearningMetrics_StopIsIdempotent(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	lm, err := telemetry.NewLearningMetrics(telemetry.LearningMetricsConfig{
		Meter: meter,
	})
	require.NoError(t, err)

	lm.Stop()
	lm.Stop()
}
