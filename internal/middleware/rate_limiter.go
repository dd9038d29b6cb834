package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/inkframe/inkframe/internal/config"
	"github.com/inkframe/inkframe/internal/logging"
)

// RenderRateLimiter caps render traffic per client. The capture pipeline
// itself never throttles concurrent browser launches, so the cap has to
// live here at the HTTP boundary.
type RenderRateLimiter struct {
	mutex   sync.Mutex
	clients map[string]*clientLimiter

	limit rate.Limit
	burst int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRenderRateLimiter creates a limiter configured from the environment:
// RENDERS_PER_MINUTE per client with a burst of RENDER_BURST.
func NewRenderRateLimiter() *RenderRateLimiter {
	perMinute := config.GetInt("RENDERS_PER_MINUTE", 10)
	burst := config.GetInt("RENDER_BURST", 3)

	limiter := &RenderRateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(float64(perMinute) / 60.0),
		burst:   burst,
	}

	// Drop idle client entries so the map does not grow forever.
	go limiter.cleanupRoutine()

	return limiter
}

// RateLimit is a middleware that enforces per-client render limits
func (l *RenderRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !l.allow(ip) {
			logging.WarnWithComponent(logging.ComponentRateLimit, "Render rate limit exceeded", "ip", ip)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (l *RenderRateLimiter) allow(key string) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	client, ok := l.clients[key]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = client
	}
	client.lastSeen = time.Now()
	return client.limiter.Allow()
}

func (l *RenderRateLimiter) cleanupRoutine() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-time.Hour)
		l.mutex.Lock()
		for key, client := range l.clients {
			if client.lastSeen.Before(cutoff) {
				delete(l.clients, key)
			}
		}
		l.mutex.Unlock()
	}
}
