package controller

import (
	"context"
	"net/http"
	"time"
)

// WithTimeout returns a middleware that puts a deadline of d on the request
// context. It never writes a response itself: handlers observe the deadline
// and answer on their own, so a timed-out lookup still returns its
// unresolvable result.
func WithTimeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
