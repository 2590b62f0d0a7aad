package middleware

import (
	"net/http"

	"taskhub/internal/common"

	"golang.org/x/time/rate"
)

// RateLimiter applies a process-wide token bucket to every request.
func RateLimiter(perSecond, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				common.RespondWithError(w, http.StatusTooManyRequests, "The API is at capacity, try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
