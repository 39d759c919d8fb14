package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpirer struct {
	calls   atomic.Int32
	lastTTL time.Duration
	n       int
	err     error
	block   chan struct{}
}

func (f *fakeExpirer) ExpireStale(ctx context.Context, ttl time.Duration) (int, error) {
	f.calls.Add(1)
	f.lastTTL = ttl
	if f.block != nil {
		<-f.block
	}
	return f.n, f.err
}

func TestNewExpiryJob_InvalidTTL(t *testing.T) {
	_, err := NewExpiryJob(&fakeExpirer{}, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidTTL)
}

func TestExpiryJob_RunOnce(t *testing.T) {
	t.Run("returns expired count", func(t *testing.T) {
		f := &fakeExpirer{n: 3}
		job, err := NewExpiryJob(f, 168*time.Hour, nil)
		require.NoError(t, err)

		n, err := job.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, 168*time.Hour, f.lastTTL)
	})

	t.Run("propagates errors", func(t *testing.T) {
		boom := errors.New("boom")
		job, err := NewExpiryJob(&fakeExpirer{n: 1, err: boom}, time.Hour, nil)
		require.NoError(t, err)

		n, err := job.RunOnce(context.Background())
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, n)
	})

	t.Run("skips overlapping run", func(t *testing.T) {
		f := &fakeExpirer{n: 2, block: make(chan struct{})}
		job, err := NewExpiryJob(f, time.Hour, nil)
		require.NoError(t, err)

		done := make(chan int, 1)
		go func() {
			n, _ := job.RunOnce(context.Background())
			done <- n
		}()
		require.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

		n, err := job.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		close(f.block)
		assert.Equal(t, 2, <-done)
		assert.Equal(t, int32(1), f.calls.Load())
	})
}

func TestScheduler_AddExpiry(t *testing.T) {
	job, err := NewExpiryJob(&fakeExpirer{}, time.Hour, nil)
	require.NoError(t, err)

	t.Run("accepts descriptors", func(t *testing.T) {
		s := NewScheduler(nil, nil)
		_, err := s.AddExpiry(context.Background(), "@every 1h", job)
		require.NoError(t, err)
		assert.Len(t, s.Entries(), 1)
	})

	t.Run("accepts cron expressions", func(t *testing.T) {
		s := NewScheduler(time.UTC, nil)
		_, err := s.AddExpiry(context.Background(), "0 3 * * *", job)
		require.NoError(t, err)
	})

	t.Run("rejects invalid schedule", func(t *testing.T) {
		s := NewScheduler(nil, nil)
		_, err := s.AddExpiry(context.Background(), "every hour", job)
		assert.Error(t, err)
		assert.Empty(t, s.Entries())
	})
}

func TestScheduler_RunStopsOnCancel(t *testing.T) {
	s := NewScheduler(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(stopped)
	}()
	cancel()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatalf("scheduler did not stop")
	}
}
