// Package loop drives a frame callback from a host-owned clock.
package loop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

var (
	ErrAlreadyRunning  = errors.New("loop: already running")
	ErrInvalidInterval = errors.New("loop: interval must be positive")
)

// Loop calls its tick function once per interval on a single goroutine
// until stopped.
type Loop struct {
	tick     func()
	interval time.Duration
	logger   *log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	frames atomic.Int64
}

type Option func(*Loop)

func WithLogger(l *log.Logger) Option {
	return func(lp *Loop) { lp.logger = l }
}

func New(tick func(), interval time.Duration, opts ...Option) *Loop {
	l := &Loop{
		tick:     tick,
		interval: interval,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Interval converts a frame rate into a tick interval. Non-positive rates
// yield zero.
func Interval(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}

// Start begins ticking. The loop ends when ctx is done or Stop is called.
func (l *Loop) Start(ctx context.Context) error {
	if l.interval <= 0 {
		return ErrInvalidInterval
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.done != nil {
		select {
		case <-l.done:
		default:
			return ErrAlreadyRunning
		}
	}

	if l.cancel != nil {
		l.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	l.cancel, l.done = cancel, done

	l.logger.Debug("loop started", "interval", l.interval)
	go l.run(ctx, done)
	return nil
}

func (l *Loop) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("loop stopped", "frames", l.frames.Load())
			return
		case <-ticker.C:
			l.tick()
			l.frames.Add(1)
		}
	}
}

// Stop cancels the loop and waits for the ticking goroutine to exit. It is
// safe to call more than once.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel == nil {
		return
	}
	l.cancel()
	<-l.done
	l.cancel = nil
}

func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.done == nil || l.cancel == nil {
		return false
	}
	select {
	case <-l.done:
		return false
	default:
		return true
	}
}

func (l *Loop) Frames() int64 { return l.frames.Load() }

// Run calls tick n times back to back without a clock, checking ctx between
// frames. It returns the number of frames completed.
func Run(ctx context.Context, n int, tick func(frame int)) (int, error) {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return i, ctx.Err()
		default:
		}
		tick(i)
	}
	return n, nil
}
