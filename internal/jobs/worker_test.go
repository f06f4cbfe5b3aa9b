package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueueRunsJob(t *testing.T) {
	w := NewWorker(1)
	done := make(chan struct{})
	w.Enqueue("noop", func(ctx context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}
	w.Shutdown()

	stats := w.GetStats()
	assert.Equal(t, int64(1), stats.CompletedJobs)
	assert.Zero(t, stats.FailedJobs)
	assert.Contains(t, stats.LastRuns, "noop")
}

func TestFailuresAndPanicsAreCounted(t *testing.T) {
	w := NewWorker(1)
	var ran atomic.Int32

	w.EnqueueAsync("fails", func(ctx context.Context) error {
		ran.Add(1)
		return errors.New("nope")
	})
	w.EnqueueAsync("panics", func(ctx context.Context) error {
		ran.Add(1)
		panic("boom")
	})

	require.Eventually(t, func() bool {
		return w.GetStats().CompletedJobs == 2
	}, 2*time.Second, 10*time.Millisecond)
	w.Shutdown()

	stats := w.GetStats()
	assert.Equal(t, int32(2), ran.Load())
	assert.Equal(t, int64(2), stats.FailedJobs)
	assert.Equal(t, "nope", stats.LastRuns["fails"].Error)
	assert.Contains(t, stats.LastRuns["panics"].Error, "boom")
}

func TestScheduleEveryImmediate(t *testing.T) {
	w := NewWorker(1)
	var runs atomic.Int32

	w.ScheduleEveryImmediate("tick", 20*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	require.Eventually(t, func() bool { return runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	w.Shutdown()

	stats := w.GetStats()
	assert.Equal(t, "20ms", stats.Schedules["tick"])
	assert.Zero(t, stats.ActiveJobs)
}

func TestShutdownIsIdempotent(t *testing.T) {
	w := NewWorker(2)
	w.Shutdown()
	assert.NotPanics(t, w.Shutdown)
	assert.Error(t, w.Context().Err())
}
