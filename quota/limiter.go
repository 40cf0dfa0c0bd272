package quota

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/hupe1980/agentduel/logging"
)

const (
	minuteHorizon = time.Minute
	dayHorizon    = 24 * time.Hour
)

// Options configures a Limiter.
type Options struct {
	// MaxPerMinute caps authorizations in any trailing 60-second window.
	MaxPerMinute int
	// MaxPerDay caps authorizations per calendar day.
	MaxPerDay int
	// SafetyMargin is added to every per-minute wait so a call issued
	// right at the window edge is not rejected upstream.
	SafetyMargin time.Duration
	// Clock supplies time and timers. Tests inject a mock clock so quota
	// waits run without wall-clock delays.
	Clock clock.Clock
	// Logger receives usage and wait progress lines.
	Logger logging.Logger
}

// Limiter tracks authorization timestamps in two ordered windows and blocks
// callers until the next outbound call is permitted under both quotas.
//
// The zero defaults (6/minute, 800/day) are deliberately conservative for
// free-tier model APIs. A single Limiter is shared by both players of a
// duel so the process-wide quota holds regardless of which side is calling.
type Limiter struct {
	maxPerMinute int
	maxPerDay    int
	safetyMargin time.Duration
	clock        clock.Clock
	logger       logging.Logger

	mu        sync.Mutex
	minute    []time.Time
	day       []time.Time
	lastReset time.Time
}

// NewLimiter constructs a Limiter with optional overrides.
func NewLimiter(optFns ...func(o *Options)) *Limiter {
	opts := Options{
		MaxPerMinute: 6,
		MaxPerDay:    800,
		SafetyMargin: 5 * time.Second,
		Clock:        clock.New(),
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Limiter{
		maxPerMinute: opts.MaxPerMinute,
		maxPerDay:    opts.MaxPerDay,
		safetyMargin: opts.SafetyMargin,
		clock:        opts.Clock,
		logger:       opts.Logger,
		lastReset:    opts.Clock.Now(),
	}
}

// Acquire blocks until one outbound call is authorized under both windows,
// then records it. It returns a non-nil error only when ctx is cancelled
// mid-wait; otherwise it always eventually returns, bounded in the worst
// case by the time until the next local midnight.
//
// The whole check-wait-record cycle runs under one mutex: concurrent
// acquirers are serialized, so two authorizations can never be granted from
// a stale read of the same window.
func (l *Limiter) Acquire(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		now := l.clock.Now()

		// Single reset rule: the daily pool empties when the calendar
		// date advances past the last reset, wherever the loop re-enters
		// from. Idempotent, so the post-midnight-sleep path below needs
		// no reset of its own.
		if laterDate(now, l.lastReset) {
			l.minute = l.minute[:0]
			l.day = l.day[:0]
			l.lastReset = now
			l.logger.Info("daily quota reset at %s", now.Format("15:04:05"))
		}

		l.minute = pruneBefore(l.minute, now.Add(-minuteHorizon))
		l.day = pruneBefore(l.day, now.Add(-dayHorizon))

		if len(l.day) >= l.maxPerDay {
			wait := nextMidnight(now).Sub(now)
			l.logger.Warn("daily quota of %d calls exhausted, waiting %.1fh until midnight", l.maxPerDay, wait.Hours())
			if err := l.sleep(ctx, wait); err != nil {
				return err
			}
			continue
		}

		if len(l.minute) >= l.maxPerMinute {
			wait := minuteHorizon - now.Sub(l.minute[0]) + l.safetyMargin
			if wait > 0 {
				l.logger.Info("rate limit reached (%d/%d calls per minute), waiting %.1fs", len(l.minute), l.maxPerMinute, wait.Seconds())
				if err := l.sleep(ctx, wait); err != nil {
					return err
				}
			}
			continue
		}

		l.minute = append(l.minute, now)
		l.day = append(l.day, now)
		l.logger.Debug("quota usage minute=%d/%d day=%d/%d", len(l.minute), l.maxPerMinute, len(l.day), l.maxPerDay)

		return nil
	}
}

// Usage returns the current per-minute and per-day authorization counts
// without pruning. Intended for progress output.
func (l *Limiter) Usage() (minute, day int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.minute), len(l.day)
}

// sleep waits for d on the injected clock, honoring ctx cancellation. The
// mutex stays held: blocking every caller is the contract, not queueing.
func (l *Limiter) sleep(ctx context.Context, d time.Duration) error {
	t := l.clock.Timer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// pruneBefore drops leading entries at or before cutoff. Windows are
// append-only and ordered, so pruning is a prefix cut.
func pruneBefore(window []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(window) && !window[i].After(cutoff) {
		i++
	}

	return append(window[:0], window[i:]...)
}

// laterDate reports whether a falls on a later calendar date than b.
func laterDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	if ay != by {
		return ay > by
	}
	if am != bm {
		return am > bm
	}

	return ad > bd
}

// nextMidnight returns the start of the next calendar day in now's location.
func nextMidnight(now time.Time) time.Time {
	y, m, d := now.Date()

	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}
