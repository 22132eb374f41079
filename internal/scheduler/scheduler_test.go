package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/mixlog/internal/config"
	"github.com/mamadbah2/mixlog/internal/domain/models"
	"github.com/mamadbah2/mixlog/pkg/clients/notify"
)

type fakeBuilder struct {
	owner string
	day   time.Time
	err   error
}

func (f *fakeBuilder) DailySnapshot(_ context.Context, owner string, day time.Time) (models.SummarySnapshot, string, error) {
	f.owner = owner
	f.day = day
	if f.err != nil {
		return models.SummarySnapshot{}, "", f.err
	}
	return models.SummarySnapshot{Owner: owner}, "digest", nil
}

type fakeNotifier struct {
	sent []notify.SendTextRequest
	err  error
}

func (f *fakeNotifier) SendText(_ context.Context, req notify.SendTextRequest) error {
	f.sent = append(f.sent, req)
	return f.err
}

func reportingConfig() config.ReportingConfig {
	return config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "UTC", OwnerID: "owner-1"}
}

func TestScheduler_DailySummarySendsDigest(t *testing.T) {
	t.Parallel()

	builder := &fakeBuilder{}
	notifier := &fakeNotifier{}
	s, err := NewScheduler(reportingConfig(), builder, notifier, nil)
	require.NoError(t, err)

	fixed := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	require.NoError(t, s.dailySummary(context.Background()))

	assert.Equal(t, "owner-1", builder.owner)
	assert.Equal(t, fixed, builder.day)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "digest", notifier.sent[0].Body)
}

func TestScheduler_DailySummaryWithoutNotifier(t *testing.T) {
	t.Parallel()

	s, err := NewScheduler(reportingConfig(), &fakeBuilder{}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.dailySummary(context.Background()))
}

func TestScheduler_DailySummaryErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	s, err := NewScheduler(reportingConfig(), &fakeBuilder{err: boom}, &fakeNotifier{}, nil)
	require.NoError(t, err)
	require.ErrorIs(t, s.dailySummary(context.Background()), boom)

	s, err = NewScheduler(reportingConfig(), &fakeBuilder{}, &fakeNotifier{err: boom}, nil)
	require.NoError(t, err)
	require.ErrorIs(t, s.dailySummary(context.Background()), boom)
}

func TestScheduler_StartWithoutOwnerIsNoop(t *testing.T) {
	t.Parallel()

	cfg := reportingConfig()
	cfg.OwnerID = ""

	s, err := NewScheduler(cfg, &fakeBuilder{}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	assert.Empty(t, s.cron.Entries())
	s.Stop()
}

func TestScheduler_StartRegistersJob(t *testing.T) {
	t.Parallel()

	s, err := NewScheduler(reportingConfig(), &fakeBuilder{}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Len(t, s.cron.Entries(), 1)
}

func TestNewScheduler_BadTimezone(t *testing.T) {
	t.Parallel()

	cfg := reportingConfig()
	cfg.Timezone = "Nowhere/Land"

	_, err := NewScheduler(cfg, &fakeBuilder{}, nil, nil)
	require.Error(t, err)
}
