package plans

import (
	"sync"
	"time"

	"codeberg.org/placewise/server/internal/auth"
	apierrors "codeberg.org/placewise/server/internal/errors"
	"codeberg.org/placewise/server/internal/metrics"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// planning is the expensive endpoint; one plan every 2s with a small burst
	DefaultRatePerSecond = 0.5
	DefaultBurst         = 5

	limiterIdleTTL   = 10 * time.Minute
	limiterSweepSize = 1024
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// token bucket per authenticated user, falling back to client ip
type Limiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

func NewLimiter(perSecond float64, burst int) *Limiter {
	if perSecond <= 0 {
		perSecond = DefaultRatePerSecond
	}

	if burst <= 0 {
		burst = DefaultBurst
	}

	return &Limiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		now:      time.Now,
	}
}

// reports whether key may proceed now
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	if len(l.visitors) >= limiterSweepSize {
		l.sweep(now)
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}

	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// drops visitors idle for longer than limiterIdleTTL; caller holds mu
func (l *Limiter) sweep(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(l.visitors, key)
		}
	}
}

// rejects requests over the limit with 429
func (l *Limiter) Middleware(endpoint string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := auth.GetUserID(c)
		if !ok {
			key = "ip:" + c.ClientIP()
		}

		if !l.Allow(key) {
			metrics.APIRateLimitHits.WithLabelValues(endpoint).Inc()
			apierrors.TooManyRequests(c, "plan rate limit exceeded, try again shortly")
			c.Abort()
			return
		}

		c.Next()
	}
}
