package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "task-management.com/task-management/internal/errors"
)

// RateLimiter allows limit requests per client IP in each fixed window.
func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	return newRateLimiter(limit, window, time.Now).middleware
}

type bucket struct {
	count int
	start time.Time
}

type rateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu         sync.Mutex
	buckets    map[string]*bucket
	lastPruned time.Time
}

func newRateLimiter(limit int, window time.Duration, now func() time.Time) *rateLimiter {
	return &rateLimiter{
		limit:      limit,
		window:     window,
		now:        now,
		buckets:    make(map[string]*bucket),
		lastPruned: now(),
	}
}

func (l *rateLimiter) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		now := l.now()
		key := c.RealIP()

		l.mu.Lock()
		b, ok := l.buckets[key]
		if !ok || now.Sub(b.start) > l.window {
			l.prune(now)
			b = &bucket{start: now}
			l.buckets[key] = b
		}

		if b.count >= l.limit {
			retryAfter := b.start.Add(l.window).Sub(now)
			l.mu.Unlock()
			c.Response().Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			return apperrors.ErrRateLimited
		}

		b.count++
		l.mu.Unlock()

		return next(c)
	}
}

// prune drops buckets whose window has ended, at most once per window.
// Callers hold mu.
func (l *rateLimiter) prune(now time.Time) {
	if now.Sub(l.lastPruned) <= l.window {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.start) > l.window {
			delete(l.buckets, key)
		}
	}
	l.lastPruned = now
}

func (l *rateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
