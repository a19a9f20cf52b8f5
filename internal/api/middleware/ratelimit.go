package middleware

import (
	"fmt"
	"net"
	"net/http"
	"staff_attendance/internal/common"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimit caps requests per client address using a fixed one-minute
// window counted in redis. Meant for the credential-guessing surfaces
// (login, password reset). When redis is unreachable the limiter fails
// open rather than locking everyone out.
func RateLimit(client *redis.Client, perMinute int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr // RealIP leaves bare addresses without a port
			}

			key := fmt.Sprintf("ratelimit:%s:%s", host, time.Now().Format("200601021504"))
			count, err := client.Incr(r.Context(), key).Result()
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				client.Expire(r.Context(), key, time.Minute)
			}
			if count > int64(perMinute) {
				common.RespondWithError(w, http.StatusTooManyRequests, "too many requests, slow down")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
