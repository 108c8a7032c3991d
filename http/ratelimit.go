package http

import (
	"context"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter manages per-host request pacing using a token bucket, plus a
// backoff window that opens whenever the host answers with a rate limit
// status. Both YouTube endpoints this service talks to (the innertube API
// and the caption delivery hosts) throttle aggressive clients, so requests
// are paced even before the first 429 arrives.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	backoff  map[string]*backoffState
	config   RateLimiterConfig
}

// backoffState tracks the rate limit backoff window for one host.
type backoffState struct {
	// until is when requests to the host may resume.
	until time.Time
	// current is the backoff that produced the window, doubled on every
	// consecutive rate limit error up to maxBackoff.
	current time.Duration
}

const (
	initialBackoff = 1 * time.Second
	maxBackoff     = 60 * time.Second
)

// RateLimiterConfig defines rate limiting behavior.
type RateLimiterConfig struct {
	// RequestsPerSecond is the steady-state rate per host (default: 2.5).
	RequestsPerSecond float64
	// Burst is the token bucket burst size (default: 3).
	Burst int
}

// DefaultRateLimiterConfig returns defaults conservative enough to stay
// under YouTube's anonymous-client thresholds.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 2.5,
		Burst:             3,
	}
}

// NewRateLimiter creates a new rate limiter with the given configuration.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRateLimiterConfig().RequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultRateLimiterConfig().Burst
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		backoff:  make(map[string]*backoffState),
		config:   cfg,
	}
}

// Wait blocks until the host's token bucket allows a request and any open
// backoff window has elapsed. It returns early if ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context, urlStr string) error {
	if rl == nil {
		return nil
	}
	host := hostOf(urlStr)

	if wait := rl.backoffRemaining(host); wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return rl.limiter(host).Wait(ctx)
}

// RecordRateLimited opens (or widens) the backoff window for the host.
// retryAfter, when positive, comes from the Retry-After header and takes
// precedence over the exponential schedule. It returns the window applied.
func (rl *RateLimiter) RecordRateLimited(urlStr string, retryAfter time.Duration) time.Duration {
	host := hostOf(urlStr)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	st := rl.backoff[host]
	if st == nil {
		st = &backoffState{current: initialBackoff}
		rl.backoff[host] = st
	} else {
		st.current *= 2
		if st.current > maxBackoff {
			st.current = maxBackoff
		}
	}

	window := st.current
	if retryAfter > window {
		window = retryAfter
	}
	st.until = time.Now().Add(window)
	return window
}

// RecordSuccess resets the backoff schedule for the host.
func (rl *RateLimiter) RecordSuccess(urlStr string) {
	host := hostOf(urlStr)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if st := rl.backoff[host]; st != nil && time.Now().After(st.until) {
		delete(rl.backoff, host)
	}
}

// backoffRemaining returns how long the host's backoff window has left.
func (rl *RateLimiter) backoffRemaining(host string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	st := rl.backoff[host]
	if st == nil {
		return 0
	}
	return time.Until(st.until)
}

// limiter returns the token bucket for a host, creating it on first use.
func (rl *RateLimiter) limiter(host string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	l, ok := rl.limiters[host]
	if !ok {
		l = rate.NewLimiter(rate.Limit(rl.config.RequestsPerSecond), rl.config.Burst)
		rl.limiters[host] = l
	}
	return l
}

// hostOf extracts the host from a URL, falling back to the raw string so
// unparseable URLs still share one bucket.
func hostOf(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return urlStr
	}
	return u.Host
}
