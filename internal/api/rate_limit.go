package api

import (
	"net/http"

	"golang.org/x/time/rate"

	"festx/infrastructure"
)

// RateLimitMiddleware applies a global token-bucket limit across all
// endpoints. Per-identifier login throttling is handled separately in the
// auth layer.
func RateLimitMiddleware(rps int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), rps)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				infrastructure.WriteJSON(w, http.StatusTooManyRequests, infrastructure.Response{
					Success: false,
					Message: "Too many requests",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
