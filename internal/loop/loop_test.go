package loop

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestInterval(t *testing.T) {
	tests := []struct {
		fps  int
		want time.Duration
	}{
		{60, time.Second / 60},
		{1, time.Second},
		{0, 0},
		{-5, 0},
	}
	for _, tt := range tests {
		if got := Interval(tt.fps); got != tt.want {
			t.Errorf("Interval(%d) = %v, want %v", tt.fps, got, tt.want)
		}
	}
}

func TestLoop_StartStop(t *testing.T) {
	var ticks atomic.Int64
	l := New(func() { ticks.Add(1) }, time.Millisecond)

	if err := l.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if !l.Running() {
		t.Error("expected loop to be running")
	}

	deadline := time.Now().Add(2 * time.Second)
	for ticks.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if ticks.Load() < 3 {
		t.Fatalf("expected at least 3 ticks, got %d", ticks.Load())
	}

	l.Stop()
	if l.Running() {
		t.Error("expected loop to be stopped")
	}

	after := ticks.Load()
	time.Sleep(10 * time.Millisecond)
	if ticks.Load() != after {
		t.Error("loop kept ticking after Stop")
	}
	if l.Frames() != after {
		t.Errorf("expected %d frames, got %d", after, l.Frames())
	}

	l.Stop()
}

func TestLoop_DoubleStart(t *testing.T) {
	l := New(func() {}, time.Millisecond)
	if err := l.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer l.Stop()

	if err := l.Start(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestLoop_Restart(t *testing.T) {
	l := New(func() {}, time.Millisecond)
	for i := 0; i < 3; i++ {
		if err := l.Start(context.Background()); err != nil {
			t.Fatalf("start %d failed: %v", i, err)
		}
		l.Stop()
	}
}

func TestLoop_ContextCancel(t *testing.T) {
	l := New(func() {}, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	if err := l.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for l.Running() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if l.Running() {
		t.Fatal("loop did not stop on context cancel")
	}

	if err := l.Start(context.Background()); err != nil {
		t.Errorf("restart after cancel failed: %v", err)
	}
	l.Stop()
}

func TestLoop_InvalidInterval(t *testing.T) {
	l := New(func() {}, 0)
	if err := l.Start(context.Background()); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestRun(t *testing.T) {
	var seen []int
	n, err := Run(context.Background(), 4, func(frame int) { seen = append(seen, frame) })
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if n != 4 || len(seen) != 4 || seen[3] != 3 {
		t.Errorf("unexpected frames: n=%d seen=%v", n, seen)
	}

	ctx, cancel := context.WithCancel(context.Background())
	n, err = Run(ctx, 100, func(frame int) {
		if frame == 9 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if n != 10 {
		t.Errorf("expected 10 frames before cancel, got %d", n)
	}
}
