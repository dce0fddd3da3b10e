package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/vichannnnn/holy-grail-sub001/types"
)

// limiterEntry pairs a token bucket with its last-seen time.
type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore maps client keys (IP) to token buckets. A janitor goroutine
// evicts entries not seen within staleAfter so memory stays bounded.
type limiterStore struct {
	mu         sync.Mutex
	entries    map[string]*limiterEntry
	staleAfter time.Duration
}

func newLimiterStore(staleAfter time.Duration) *limiterStore {
	store := &limiterStore{
		entries:    make(map[string]*limiterEntry),
		staleAfter: staleAfter,
	}
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			store.cleanup()
		}
	}()
	return store
}

func (s *limiterStore) getOrCreate(key string, r rate.Limit, burst int) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		e.lastSeen = time.Now()
		return e.limiter
	}
	lim := rate.NewLimiter(r, burst)
	s.entries[key] = &limiterEntry{limiter: lim, lastSeen: time.Now()}
	return lim
}

func (s *limiterStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.staleAfter)
	for k, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

func tooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests,
		types.NewErrorResponse(types.ErrorCodeTooManyReqs,
			"You're doing this too fast. Please try again later."))
}

// RateLimit applies a per-IP token bucket to every request.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	store := newLimiterStore(10 * time.Minute)
	return func(c *gin.Context) {
		lim := store.getOrCreate(c.ClientIP(), rate.Limit(rps), burst)
		if !lim.Allow() {
			tooManyRequests(c)
			return
		}
		c.Next()
	}
}

// RateLimitAuth is a stricter per-IP bucket for credential endpoints
// (login, registration, password reset mail) to slow brute forcing.
func RateLimitAuth() gin.HandlerFunc {
	store := newLimiterStore(30 * time.Minute)
	return func(c *gin.Context) {
		lim := store.getOrCreate(c.ClientIP(), rate.Limit(0.5), 5)
		if !lim.Allow() {
			tooManyRequests(c)
			return
		}
		c.Next()
	}
}
