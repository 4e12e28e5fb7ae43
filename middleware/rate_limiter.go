package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// LimiterConfig configures a token-bucket rate limiter
type LimiterConfig struct {
	RPS     float64       // steady-state refill rate per key
	Burst   int           // bucket capacity
	IdleTTL time.Duration // idle keys are evicted after this long
}

type keyLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one in-memory token bucket per key (IP, user id...)
type RateLimiter struct {
	conf     LimiterConfig
	mu       sync.Mutex
	buckets  map[string]*keyLimiter
	stop     chan struct{}
	stopOnce sync.Once
}

// KeySelector decides which key a request is limited by
type KeySelector func(c *gin.Context) string

// NewRateLimiter creates a rate limiter and starts a background sweep that
// evicts idle keys so the bucket map cannot grow without bound
func NewRateLimiter(conf LimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		conf:    conf,
		buckets: make(map[string]*keyLimiter),
		stop:    make(chan struct{}),
	}

	go func() {
		interval := conf.IdleTTL / 2
		if interval <= 0 {
			interval = time.Minute
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-rl.stop:
				return
			case <-ticker.C:
				now := time.Now()
				rl.mu.Lock()
				for k, v := range rl.buckets {
					if now.Sub(v.lastSeen) > rl.conf.IdleTTL {
						delete(rl.buckets, k)
					}
				}
				rl.mu.Unlock()
			}
		}
	}()

	return rl
}

// Stop terminates the background eviction sweep. The limiter itself keeps
// working after Stop; only idle-key eviction ceases. Safe to call twice.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	now := time.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if b, ok := rl.buckets[key]; ok {
		b.lastSeen = now
		return b.limiter
	}

	lim := rate.NewLimiter(rate.Limit(rl.conf.RPS), rl.conf.Burst)
	rl.buckets[key] = &keyLimiter{limiter: lim, lastSeen: now}
	return lim
}

// Middleware returns a gin handler that rejects requests exceeding the
// configured rate with 429
func (rl *RateLimiter) Middleware(selectKey KeySelector) gin.HandlerFunc {
	return func(c *gin.Context) {
		lim := rl.getLimiter(selectKey(c))
		if !lim.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"message": "Too many requests. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
