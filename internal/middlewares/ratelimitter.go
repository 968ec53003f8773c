package middlewares

import (
	"net"
	"net/http"
	"sync"
	"time"
)

type limiterEntry struct {
	tokens     int
	lastAccess time.Time
}

var (
	rateLimitStore = make(map[string]*limiterEntry)
	rateLimitLock  sync.Mutex

	requestsPerMinute = 120
)

// RateLimitPerClient applies a token-bucket limit keyed by client IP. The
// notification stream endpoint is mounted outside this middleware: one
// long-lived request should not consume a bucket for its whole lifetime.
func RateLimitPerClient(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			key = r.RemoteAddr
		}

		now := time.Now()
		rateLimitLock.Lock()

		entry, exists := rateLimitStore[key]
		if !exists {
			rateLimitStore[key] = &limiterEntry{
				tokens:     requestsPerMinute - 1,
				lastAccess: now,
			}
		} else {
			elapsed := now.Sub(entry.lastAccess).Minutes()
			entry.tokens += int(elapsed * float64(requestsPerMinute))
			if entry.tokens > requestsPerMinute {
				entry.tokens = requestsPerMinute
			}
			entry.lastAccess = now

			if entry.tokens <= 0 {
				rateLimitLock.Unlock()
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			entry.tokens--
		}
		rateLimitLock.Unlock()

		next.ServeHTTP(w, r)
	})
}
