package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type keyLimiter struct {
	lim *rate.Limiter
	ts  time.Time
}

// RateLimiter es un token bucket por IP+ruta. Las entradas sin uso por más
// de ttl se barren en el propio get, sin goroutine aparte.
type RateLimiter struct {
	mu        sync.Mutex
	m         map[string]*keyLimiter
	r         rate.Limit
	b         int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(r rate.Limit, burst int, ttl time.Duration) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		m:   make(map[string]*keyLimiter),
		r:   r,
		b:   burst,
		ttl: ttl,
		now: time.Now,
	}
}

// PerMinute arma un RateLimiter de n requests por minuto.
func PerMinute(n, burst int) *RateLimiter {
	return NewRateLimiter(rate.Limit(float64(n)/60.0), burst, 2*time.Minute)
}

func (rl *RateLimiter) get(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > rl.ttl {
		for k, v := range rl.m {
			if now.Sub(v.ts) > rl.ttl {
				delete(rl.m, k)
			}
		}
		rl.lastSweep = now
	}

	kl, ok := rl.m[key]
	if ok {
		kl.ts = now
		return kl.lim
	}
	lim := rate.NewLimiter(rl.r, rl.b)
	rl.m[key] = &keyLimiter{lim: lim, ts: now}
	return lim
}

// Middleware responde 429 cuando se agota el bucket de IP+path.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r.RemoteAddr) + "|" + r.Method + " " + r.URL.Path
		if !rl.get(key).Allow() {
			w.Header().Set("Retry-After", "60")
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(remote string) string {
	host, _, err := net.SplitHostPort(remote)
	if err != nil {
		return remote
	}
	return host
}
