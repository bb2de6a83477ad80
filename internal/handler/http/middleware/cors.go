// Package middleware holds cross-cutting HTTP middleware that does not
// depend on the feature handlers.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	envcfg "personal-site/pkg/config"
)

// CORSConfig holds the configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is a whitelist of permitted origins.
	// Example: ["http://localhost:3000", "https://example.com"]
	AllowedOrigins []string

	// AllowedMethods specifies which HTTP methods are allowed in CORS requests.
	// Default: GET, POST, PUT, DELETE, OPTIONS
	AllowedMethods []string

	// AllowedHeaders specifies which request headers are allowed.
	// Default: Content-Type, Authorization, X-Request-ID
	AllowedHeaders []string

	// AllowCredentials must be true for JWT Bearer token authentication.
	AllowCredentials bool

	// MaxAge specifies how long preflight results may be cached, in seconds.
	MaxAge int

	Logger *slog.Logger
}

// LoadCORSConfig builds a CORSConfig from the CORS_ALLOWED_ORIGINS
// environment variable (comma separated). An empty variable yields an
// empty whitelist, which rejects every cross-origin request.
func LoadCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins:   envcfg.GetEnvStringList("CORS_ALLOWED_ORIGINS", nil),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
}

func (c CORSConfig) allows(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// CORS returns a middleware that handles cross-origin requests against
// the configured whitelist.
//
// Behavior:
//   - No Origin header: same-origin request, pass through untouched.
//   - Origin not in the whitelist: log and pass through without CORS
//     headers; the browser blocks the response.
//   - Allowed origin, OPTIONS: answer the preflight with 204 and the
//     full header set without calling the next handler.
//   - Allowed origin, other methods: set the allow headers and continue.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.allows(origin) {
				if config.Logger != nil {
					config.Logger.Warn("cors origin not allowed",
						slog.String("origin", origin),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method))
				}
				next.ServeHTTP(w, r)
				return
			}

			// Echo the request origin; wildcard is incompatible with credentials.
			w.Header().Set("Access-Control-Allow-Origin", origin)
			if config.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
