package job

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"go.uber.org/zap"
)

func TestAddJobValidation(t *testing.T) {
	s := NewCronScheduler(loggerv2.NewZapLogger(zap.NewNop()))
	noop := func(context.Context) error { return nil }

	assert.Error(t, s.AddJob(nil))
	assert.Error(t, s.AddJob(&JobConfig{CronExpr: "@every 1s", JobFunc: noop}))
	assert.Error(t, s.AddJob(&JobConfig{Name: "a", JobFunc: noop}))
	assert.Error(t, s.AddJob(&JobConfig{Name: "a", CronExpr: "@every 1s"}))
	assert.Error(t, s.AddJob(&JobConfig{Name: "a", CronExpr: "not a cron", JobFunc: noop}))

	cfg := &JobConfig{Name: "a", CronExpr: "0 0 3 * * *", JobFunc: noop, Enabled: true}
	require.NoError(t, s.AddJob(cfg))
	assert.Equal(t, defaultJobTimeout, cfg.Timeout)

	status, err := s.GetJobStatus("a")
	require.NoError(t, err)
	assert.True(t, status.Enabled)
	assert.Equal(t, "0 0 3 * * *", status.CronExpr)
}

func TestRunJobOnceTracksStatus(t *testing.T) {
	s := NewCronScheduler(loggerv2.NewZapLogger(zap.NewNop()))
	fail := true
	require.NoError(t, s.AddJob(&JobConfig{
		Name:     "clean",
		CronExpr: "@daily",
		Timeout:  time.Second,
		JobFunc: func(ctx context.Context) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			if fail {
				return errors.New("boom")
			}
			return nil
		},
	}))

	assert.EqualError(t, s.RunJobOnce("clean"), "boom")
	status, err := s.GetJobStatus("clean")
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.RunCount)
	assert.Equal(t, int64(1), status.ErrorCount)
	assert.Equal(t, "boom", status.LastError)
	require.NotNil(t, status.LastRun)

	fail = false
	require.NoError(t, s.RunJobOnce("clean"))
	status, err = s.GetJobStatus("clean")
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.RunCount)
	assert.Empty(t, status.LastError)

	assert.ErrorIs(t, s.RunJobOnce("missing"), ErrJobNotFound)
}

func TestEnableDisableRemove(t *testing.T) {
	s := NewCronScheduler(loggerv2.NewZapLogger(zap.NewNop()))
	require.NoError(t, s.AddJob(&JobConfig{Name: "a", CronExpr: "@hourly", JobFunc: func(context.Context) error { return nil }}))

	require.NoError(t, s.EnableJob("a"))
	assert.True(t, s.GetJobStatuses()["a"].Enabled)
	require.NoError(t, s.DisableJob("a"))
	assert.False(t, s.GetJobStatuses()["a"].Enabled)

	assert.ErrorIs(t, s.EnableJob("b"), ErrJobNotFound)
	require.NoError(t, s.RemoveJob("a"))
	assert.ErrorIs(t, s.RemoveJob("a"), ErrJobNotFound)
	_, err := s.GetJobStatus("a")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestStartSchedulesEnabledJobs(t *testing.T) {
	s := NewCronScheduler(loggerv2.NewZapLogger(zap.NewNop()))
	var runs atomic.Int32
	require.NoError(t, s.AddJob(&JobConfig{
		Name:     "tick",
		CronExpr: "@every 1s",
		Enabled:  true,
		JobFunc: func(context.Context) error {
			runs.Add(1)
			return nil
		},
	}))
	require.NoError(t, s.AddJob(&JobConfig{
		Name:     "off",
		CronExpr: "@every 1s",
		JobFunc: func(context.Context) error {
			t.Error("disabled job must not run")
			return nil
		},
	}))

	require.NoError(t, s.Start())
	status, err := s.GetJobStatus("tick")
	require.NoError(t, err)
	require.NotNil(t, status.NextRun)

	assert.Eventually(t, func() bool { return runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	s.Stop()

	off, err := s.GetJobStatus("off")
	require.NoError(t, err)
	assert.Nil(t, off.NextRun)
	assert.Zero(t, off.RunCount)
}
