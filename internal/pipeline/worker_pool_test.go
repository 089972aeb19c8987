package pipeline

import (
	"context"
	"testing"
	"time"
)

func TestWorkerPool_RunsAllTasks(t *testing.T) {
	pool := NewWorkerPool(3, 4)
	results := pool.Run(context.Background())

	const n = 20
	for i := 0; i < n; i++ {
		if !pool.Submit(context.Background(), func(context.Context) Result { return Result{} }) {
			t.Fatalf("submit %d rejected", i)
		}
	}
	pool.Close()

	got := 0
	for range results {
		got++
	}
	if got != n {
		t.Fatalf("expected %d results, got %d", n, got)
	}
}

// Submit must not block on a full task buffer once the context is cancelled.
func TestWorkerPool_SubmitRejectsAfterCancel(t *testing.T) {
	pool := NewWorkerPool(1, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// No Run call, so nothing drains the task channel.
	done := make(chan bool, 1)
	go func() {
		done <- pool.Submit(ctx, func(context.Context) Result { return Result{} })
	}()

	select {
	case accepted := <-done:
		if accepted {
			t.Fatal("expected submit to be rejected after cancellation")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("submit blocked despite cancelled context")
	}
}
