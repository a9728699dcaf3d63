package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"tourhub_backend/pkg/apperrors"
)

// RateLimiter throttles clients with a fixed window per IP. Counters reset
// lazily on the first request after a window elapses; state is in-process,
// so limits apply per instance.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientWindow
	nextSweep time.Time

	max    int
	window time.Duration
	now    func() time.Time
}

type clientWindow struct {
	count   int
	resetAt time.Time
}

func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientWindow),
		max:     max,
		window:  window,
		now:     time.Now,
	}
}

// Allow records a hit for the client and reports whether it is within the
// limit. The remaining count and window reset time are returned for the
// response headers.
func (rl *RateLimiter) Allow(clientID string) (allowed bool, remaining int, resetAt time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.evictExpired(now)

	w, ok := rl.clients[clientID]
	if !ok || !now.Before(w.resetAt) {
		w = &clientWindow{resetAt: now.Add(rl.window)}
		rl.clients[clientID] = w
	}

	if w.count >= rl.max {
		return false, 0, w.resetAt
	}

	w.count++
	return true, rl.max - w.count, w.resetAt
}

// evictExpired drops elapsed windows so one-off clients do not pin memory
// for the process lifetime. Runs at most once per window; caller holds the
// lock.
func (rl *RateLimiter) evictExpired(now time.Time) {
	if now.Before(rl.nextSweep) {
		return
	}
	for id, w := range rl.clients {
		if !now.Before(w.resetAt) {
			delete(rl.clients, id)
		}
	}
	rl.nextSweep = now.Add(rl.window)
}

// Middleware enforces the limit keyed by client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, resetAt := rl.Allow(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			abortWith(c, apperrors.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
