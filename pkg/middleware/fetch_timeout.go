package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// WithFetchTimeout bounds list fetches: after d the pending request is
// abandoned and reported as an error by the handler (context deadline).
func WithFetchTimeout(d time.Duration) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
