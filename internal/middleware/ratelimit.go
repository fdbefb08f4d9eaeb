package middleware

import (
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RateLimit enforces a fixed-window per-client ceiling backed by Redis, so
// the limit holds across replicas. A nil client disables limiting. Redis
// outages fail open: dropping traffic because the limiter is down would be
// worse than briefly not limiting.
func RateLimit(rdb *redis.Client, window time.Duration, max int, log *logrus.Logger, next http.Handler) http.Handler {
	if rdb == nil || max <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		key := "ratelimit:" + ip

		count, err := rdb.Incr(r.Context(), key).Result()
		if err != nil {
			log.WithError(err).Warn("rate limiter unavailable")
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			rdb.Expire(r.Context(), key, window)
		}
		if count > int64(max) {
			w.Header().Set("Retry-After", window.String())
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"success":false,"message":"rate limit exceeded"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
