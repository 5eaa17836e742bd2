package middleware

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/metrics"
	"github.com/businessgurujee/businessgurujee/backend/go-services/pkg/response"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a key's bucket survives without traffic.
const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	lim  *rate.Limiter
	last atomic.Int64 // unix nanos of the latest request
}

// limiterStore holds one token bucket per key and sweeps idle keys at most
// once per ttl.
type limiterStore struct {
	m         sync.Map // map[string]*limiterEntry
	rps       float64
	burst     int
	ttl       time.Duration
	now       func() time.Time
	lastSweep atomic.Int64
}

func newLimiterStore(rps float64, burst int) *limiterStore {
	s := &limiterStore{rps: rps, burst: burst, ttl: limiterIdleTTL, now: time.Now}
	s.lastSweep.Store(s.now().UnixNano())
	return s
}

func (s *limiterStore) get(key string) *rate.Limiter {
	now := s.now().UnixNano()
	s.sweep(now)
	v, ok := s.m.Load(key)
	if !ok {
		v, _ = s.m.LoadOrStore(key, &limiterEntry{lim: rate.NewLimiter(rate.Limit(s.rps), s.burst)})
	}
	e := v.(*limiterEntry)
	e.last.Store(now)
	return e.lim
}

func (s *limiterStore) sweep(now int64) {
	last := s.lastSweep.Load()
	if now-last < int64(s.ttl) || !s.lastSweep.CompareAndSwap(last, now) {
		return
	}
	s.m.Range(func(k, v any) bool {
		if now-v.(*limiterEntry).last.Load() >= int64(s.ttl) {
			s.m.Delete(k)
		}
		return true
	})
}

// RateLimitMiddleware enforces a token-bucket limit per subject (or client IP).
// rps = allowed events per second, burst = maximum tokens in bucket.
// Each call gets its own bucket set, so routes can carry different limits.
func RateLimitMiddleware(rps float64, burst int) gin.HandlerFunc {
	store := newLimiterStore(rps, burst)
	return func(c *gin.Context) {
		if !store.get(subjectKey(c)).Allow() {
			c.Header("Retry-After", "1")
			metrics.RateLimitRejected.WithLabelValues("memory").Inc()
			response.Fail(c, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		c.Next()
	}
}
