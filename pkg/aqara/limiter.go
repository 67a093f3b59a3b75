package aqara

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Limiter throttle defaults. These are policy choices, not published vendor
// limits; override them with the options on NewLimiter.
const (
	DefaultMaxInFlight = 3
	DefaultMinSpacing  = 200 * time.Millisecond
)

// Limiter is the sole backpressure mechanism in front of the vendor API:
// at most maxInFlight calls execute concurrently and consecutive call
// starts are separated by at least the configured spacing. Waiters are
// admitted in submission order. There is no retry policy; a throttled
// request simply waits longer.
type Limiter struct {
	slots  *semaphore.Weighted
	spacer *rate.Limiter
}

// LimiterOption adjusts Limiter construction.
type LimiterOption func(*limiterSettings)

type limiterSettings struct {
	maxInFlight int64
	minSpacing  time.Duration
}

// WithMaxInFlight sets the concurrent call ceiling.
func WithMaxInFlight(n int) LimiterOption {
	return func(s *limiterSettings) {
		if n > 0 {
			s.maxInFlight = int64(n)
		}
	}
}

// WithMinSpacing sets the minimum interval between call starts.
func WithMinSpacing(d time.Duration) LimiterOption {
	return func(s *limiterSettings) {
		if d > 0 {
			s.minSpacing = d
		}
	}
}

// NewLimiter creates a Limiter with the default 3-slot / 200 ms policy
// unless overridden.
func NewLimiter(opts ...LimiterOption) *Limiter {
	settings := limiterSettings{
		maxInFlight: DefaultMaxInFlight,
		minSpacing:  DefaultMinSpacing,
	}
	for _, opt := range opts {
		opt(&settings)
	}
	return &Limiter{
		slots:  semaphore.NewWeighted(settings.maxInFlight),
		spacer: rate.NewLimiter(rate.Every(settings.minSpacing), 1),
	}
}

// Do schedules fn through the limiter. The slot is held for the full
// duration of fn so completion order is not guaranteed beyond FIFO starts.
// A call still queued when ctx ends is abandoned without running fn.
func (l *Limiter) Do(ctx context.Context, fn func(context.Context) error) error {
	if err := l.slots.Acquire(ctx, 1); err != nil {
		return ErrAbandoned
	}
	defer l.slots.Release(1)

	if err := l.spacer.Wait(ctx); err != nil {
		return ErrAbandoned
	}

	return fn(ctx)
}
