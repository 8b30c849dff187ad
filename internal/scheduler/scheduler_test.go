package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func countingTask(name string, n *atomic.Int32, err error) Task {
	return Task{Name: name, Run: func(context.Context) error {
		n.Add(1)
		return err
	}}
}

func TestRun_CancelReturnsPromptly(t *testing.T) {
	var n atomic.Int32
	s := NewScheduler([]Task{countingTask("sweep", &n, nil)}, time.Hour, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil error on cancel, got: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not return within 2s after cancel")
	}
	if got := n.Load(); got != 1 {
		t.Errorf("task calls = %d, want 1 immediate run", got)
	}
}

func TestRun_TicksOnInterval(t *testing.T) {
	var n atomic.Int32
	s := NewScheduler([]Task{countingTask("sweep", &n, nil)}, 50*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	// Immediate run plus at least two ticks.
	time.Sleep(180 * time.Millisecond)
	cancel()
	<-done

	if got := n.Load(); got < 3 {
		t.Errorf("task calls = %d, want >= 3", got)
	}
}

func TestRun_FailingTaskDoesNotStopOthers(t *testing.T) {
	var failing, healthy atomic.Int32
	s := NewScheduler([]Task{
		countingTask("failing", &failing, errors.New("disk full")),
		countingTask("healthy", &healthy, nil),
	}, time.Hour, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}

	if failing.Load() != 1 || healthy.Load() != 1 {
		t.Errorf("calls = %d/%d, want 1/1", failing.Load(), healthy.Load())
	}
}

func TestRun_TasksRunInOrder(t *testing.T) {
	var mu sync.Mutex
	var order []string
	record := func(name string) Task {
		return Task{Name: name, Run: func(context.Context) error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil
		}}
	}

	s := NewScheduler([]Task{record("a"), record("b"), record("c")}, time.Hour, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()
	time.Sleep(100 * time.Millisecond)
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Errorf("order = %v, want [a b c]", order)
	}
}

func TestRun_SkipsRemainingTasksAfterCancel(t *testing.T) {
	var second atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler([]Task{
		{Name: "cancel", Run: func(context.Context) error {
			cancel()
			return nil
		}},
		countingTask("after", &second, nil),
	}, time.Hour, discardLogger())

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if second.Load() != 0 {
		t.Errorf("task after cancel ran %d times, want 0", second.Load())
	}
}
