package fetcher

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/vuthanhdatt/baomoi/internal/logger"
)

// Rate limit applied when NewRateLimiter gets non-positive values.
const (
	DefaultRequests = 10
	DefaultPer      = time.Second
)

// windowGuardDivisor sets the guard added to the admission window (per/50).
const windowGuardDivisor = 50

// RateLimiter gates request admission for one harvest run.
// Permits are paced per/requests apart by a token bucket of depth one, and a
// log of recent grants holds every span of per+per/50 to at most requests
// admissions. Any number of callers may wait at once.
type RateLimiter struct {
	limiter  *rate.Limiter
	requests int
	per      time.Duration
	window   time.Duration
	logger   logger.Logger

	mu       sync.Mutex
	grants   []time.Time // oldest first, at most requests entries
	interval time.Duration
}

// NewRateLimiter creates a limiter admitting requests permits per window.
func NewRateLimiter(requests int, per time.Duration, log logger.Logger) *RateLimiter {
	if requests <= 0 {
		requests = DefaultRequests
	}
	if per <= 0 {
		per = DefaultPer
	}
	if log == nil {
		log = logger.NewNop()
	}

	interval := per / time.Duration(requests)

	return &RateLimiter{
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		requests: requests,
		per:      per,
		window:   per + per/windowGuardDivisor,
		logger:   log,
		grants:   make([]time.Time, 0, requests),
		interval: interval,
	}
}

// Wait blocks until a permit is granted or ctx is done.
// It returns the time spent waiting.
func (r *RateLimiter) Wait(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := r.limiter.Wait(ctx); err != nil {
		r.logger.Debug("Rate limiter wait failed", logger.Error(err))
		return time.Since(start), err
	}

	for {
		wake, ok := r.admit()
		if ok {
			return time.Since(start), nil
		}

		timer := time.NewTimer(time.Until(wake))
		select {
		case <-ctx.Done():
			timer.Stop()
			r.logger.Debug("Rate limiter wait failed", logger.Error(ctx.Err()))
			return time.Since(start), ctx.Err()
		case <-timer.C:
		}
	}
}

// admit records a grant when the window has room. Otherwise it returns the
// time the oldest grant leaves the window.
func (r *RateLimiter) admit() (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	expired := 0
	for expired < len(r.grants) && now.Sub(r.grants[expired]) >= r.window {
		expired++
	}
	r.grants = append(r.grants[:0], r.grants[expired:]...)

	if len(r.grants) < r.requests {
		r.grants = append(r.grants, now)
		return now, true
	}

	return r.grants[0].Add(r.window), false
}

// SetMinInterval widens permit spacing to at least d. Narrower values are ignored.
func (r *RateLimiter) SetMinInterval(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d <= r.interval {
		return
	}

	r.interval = d
	r.limiter.SetLimit(rate.Every(d))
	r.logger.Info("Rate limiter slowed", logger.Duration("interval", d))
}

// Interval returns the current spacing between permits.
func (r *RateLimiter) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interval
}

// Requests returns the number of permits per window.
func (r *RateLimiter) Requests() int {
	return r.requests
}

// Per returns the window length.
func (r *RateLimiter) Per() time.Duration {
	return r.per
}
