package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
)

const (
	bucketTTL     = 5 * time.Minute
	sweepInterval = time.Minute

	// rateLimitedKey marca a requisição já contabilizada, para que grupos
	// aninhados não consumam dois tokens
	rateLimitedKey = "rate_limit_checked"
)

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimiter aplica um token bucket por IP de cliente.
// Buckets ociosos são descartados durante as próprias requisições.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	limit     rate.Limit
	burst     int
	respond   ErrorResponder
	now       func() time.Time
	lastSweep time.Time
}

// NewRateLimiter cria um limitador com rps requisições por segundo e rajada burst
func NewRateLimiter(rps float64, burst int, respond ErrorResponder) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(rps),
		burst:   burst,
		respond: respond,
		now:     time.Now,
	}
}

// Limit limita todas as requisições
func (l *RateLimiter) Limit() gin.HandlerFunc {
	return l.handler(func(*gin.Context) bool { return true })
}

// LimitMutations limita apenas métodos que alteram estado
func (l *RateLimiter) LimitMutations() gin.HandlerFunc {
	return l.handler(func(c *gin.Context) bool {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			return true
		}
		return false
	})
}

func (l *RateLimiter) handler(applies func(*gin.Context) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !applies(c) || c.GetBool(rateLimitedKey) {
			c.Next()
			return
		}
		c.Set(rateLimitedKey, true)

		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if ok, wait := l.allow(ip); !ok {
			seconds := int(wait.Seconds())
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			l.respond(c, errors.ErrRateLimited)
			return
		}
		c.Next()
	}
}

// allow consome um token do bucket da chave e informa a espera sugerida
func (l *RateLimiter) allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > sweepInterval {
		for k, b := range l.buckets {
			if now.Sub(b.lastSeen) > bucketTTL {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	if b.lim.AllowN(now, 1) {
		return true, 0
	}
	r := b.lim.ReserveN(now, 1)
	wait := r.DelayFrom(now)
	r.CancelAt(now)
	return false, wait
}

// size retorna quantos buckets estão em memória
func (l *RateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
