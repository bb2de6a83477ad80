package http

import (
	"net/http"
)

// Request shape limits. The longest legitimate paths here are
// /articles/<uuid> and the timestamped upload URLs, and the bearer
// token carries only subject and email, so both caps leave generous
// headroom. Body size is enforced separately by LimitRequestBody.
const (
	maxAuthorizationLen = 4096
	maxPathLen          = 1024
)

// InputValidation rejects structurally oversized requests before any
// handler work happens.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > maxAuthorizationLen {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"authorization header too large"}`))
				return
			}

			if len(r.URL.Path) > maxPathLen {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestURITooLong)
				_, _ = w.Write([]byte(`{"error":"URI too long"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
