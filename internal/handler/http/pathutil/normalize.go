package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

const uuidSegment = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`

// pathPatterns defines the list of patterns for dynamic routes.
// Pre-compiled at initialization so normalization stays off the hot
// path's allocation profile.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/articles/` + uuidSegment + `$`), Template: "/articles/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label
// cardinality explosion. Paths carrying article IDs collapse to their
// template form; static paths pass through unchanged.
//
// Examples:
//
//	NormalizePath("/articles/8c2b79e7-...")   // "/articles/:id"
//	NormalizePath("/articles")                // "/articles" (unchanged)
//	NormalizePath("/visits")                  // "/visits" (unchanged)
//	NormalizePath("/healthz")                 // "/healthz" (unchanged)
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	return path
}
