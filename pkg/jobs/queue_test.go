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

func TestQueueRejectsBeforeStart(t *testing.T) {
	q := NewQueue("idle", func(context.Context, Job) error { return nil }, QueueConfig{})
	require.Error(t, q.Enqueue(Job{Type: "noop"}))
}

func TestQueueRunsJobs(t *testing.T) {
	done := make(chan Job, 1)
	q := NewQueue("run", func(_ context.Context, job Job) error {
		done <- job
		return nil
	}, QueueConfig{Workers: 2})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{Type: "export_cleanup"}))

	select {
	case job := <-done:
		assert.Equal(t, "export_cleanup", job.Type)
		assert.NotEmpty(t, job.ID)
		assert.False(t, job.Enqueued.IsZero())
	case <-time.After(time.Second):
		t.Fatal("job not processed")
	}
}

func TestQueueRetriesFailures(t *testing.T) {
	var calls int32
	done := make(chan struct{})
	q := NewQueue("retry", func(context.Context, Job) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("boom")
		}
		close(done)
		return nil
	}, QueueConfig{RetryDelay: 5 * time.Millisecond, MaxRetries: 5})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{Type: "flaky"}))

	select {
	case <-done:
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	case <-time.After(time.Second):
		t.Fatal("job never succeeded")
	}
}

func TestQueueEveryEnqueuesOnTick(t *testing.T) {
	done := make(chan Job, 4)
	q := NewQueue("tick", func(_ context.Context, job Job) error {
		select {
		case done <- job:
		default:
		}
		return nil
	}, QueueConfig{})
	q.Start(context.Background())
	defer q.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Every(ctx, 5*time.Millisecond, "export_cleanup")

	select {
	case job := <-done:
		assert.Equal(t, "export_cleanup", job.Type)
	case <-time.After(time.Second):
		t.Fatal("no tick observed")
	}
}
