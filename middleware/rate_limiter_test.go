package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(t *testing.T, conf LimiterConfig, selectKey KeySelector) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	rl := NewRateLimiter(conf)
	t.Cleanup(rl.Stop)
	router.GET("/ping", rl.Middleware(selectKey), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	router := newLimitedRouter(t,
		LimiterConfig{RPS: 1, Burst: 3, IdleTTL: time.Minute},
		func(c *gin.Context) string { return "fixed-key" },
	)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code, "request %d should be within burst", i)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	router := newLimitedRouter(t,
		LimiterConfig{RPS: 1, Burst: 1, IdleTTL: time.Minute},
		func(c *gin.Context) string { return c.GetHeader("X-Key") },
	)

	first := httptest.NewRequest(http.MethodGet, "/ping", nil)
	first.Header.Set("X-Key", "alpha")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, first)
	assert.Equal(t, http.StatusOK, w.Code)

	// alpha's bucket is drained
	w = httptest.NewRecorder()
	router.ServeHTTP(w, first)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// beta still has tokens
	second := httptest.NewRequest(http.MethodGet, "/ping", nil)
	second.Header.Set("X-Key", "beta")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, second)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_Stop(t *testing.T) {
	rl := NewRateLimiter(LimiterConfig{RPS: 1, Burst: 1, IdleTTL: time.Minute})

	// Stop is idempotent and leaves the limiter itself working
	rl.Stop()
	rl.Stop()
	assert.True(t, rl.getLimiter("key").Allow())
	assert.False(t, rl.getLimiter("key").Allow())
}
