package auth

import "strings"

// PublicEndpoints defines endpoints that never carry a session token.
//
// Justification for each public endpoint:
// - /healthz: orchestration health checks
// - /metrics: Prometheus scraping
// - /visits: the visit counter is called by anonymous visitors
// - /auth/signin, /auth/signup: can't require a token to get a token
var PublicEndpoints = []string{
	"/healthz",
	"/metrics",
	"/visits",
	"/auth/signin",
	"/auth/signup",
}

// IsPublicEndpoint checks if a given path is a public endpoint.
//
// Matching logic:
// - Endpoints ending with '/' use prefix matching
// - Endpoints without '/' require exact match, a trailing slash, or
//   query params only (so /healthz matches /healthz?x=1 but /visits
//   does not match /visitsummary)
func IsPublicEndpoint(path string) bool {
	for _, endpoint := range PublicEndpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}

		if path == endpoint || path == endpoint+"/" {
			return true
		}
		if strings.HasPrefix(path, endpoint+"?") {
			return true
		}
	}
	return false
}
