// ratelimit.go implements a fixed-window per-IP rate limiter kept in memory.
// Applied to the admin login, passcode login, and contact endpoints. Counts
// reset exactly at window boundaries and are lost on restart -- the limiter
// is abuse mitigation, not a security boundary.
package middleware

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/acampos/folio/internal/apperror"
)

// anonPartition is the bucket used when no client address is available.
const anonPartition = "anon"

// rateLimitEntry tracks the permit count for a single partition within the
// current window.
type rateLimitEntry struct {
	count       int
	windowStart time.Time
}

// RateLimit returns middleware that allows maxRequests per window per client
// IP. Requests beyond the limit get 429. The window is fixed: it begins at a
// boundary aligned to the window size, and the count resets when the next
// window begins -- unused permits never carry over.
func RateLimit(maxRequests int, window time.Duration) echo.MiddlewareFunc {
	return rateLimitWithClock(maxRequests, window, time.Now)
}

// rateLimitWithClock is the implementation with an injectable clock so tests
// can cross window boundaries without sleeping.
func rateLimitWithClock(maxRequests int, window time.Duration, now func() time.Time) echo.MiddlewareFunc {
	var mu sync.Mutex
	entries := make(map[string]*rateLimitEntry)

	// Background cleanup of expired entries every minute. Entries older than
	// two windows can never be consulted again.
	go func() {
		for {
			time.Sleep(time.Minute)
			mu.Lock()
			cutoff := now()
			for key, entry := range entries {
				if cutoff.Sub(entry.windowStart) > window*2 {
					delete(entries, key)
				}
			}
			mu.Unlock()
		}
	}()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if key == "" {
				key = anonPartition
			}

			// Align the window to fixed boundaries so the count resets at
			// the same instant for every request in the partition.
			windowStart := now().Truncate(window)

			// Increment-and-compare under the lock. A read-then-write pair
			// would undercount when concurrent requests from the same
			// address race on the counter.
			mu.Lock()
			entry, exists := entries[key]
			if !exists || !entry.windowStart.Equal(windowStart) {
				entries[key] = &rateLimitEntry{count: 1, windowStart: windowStart}
				mu.Unlock()
				return next(c)
			}

			entry.count++
			if entry.count > maxRequests {
				mu.Unlock()
				return apperror.NewRateLimited("Too many requests. Please try again later.")
			}
			mu.Unlock()
			return next(c)
		}
	}
}
