package postgres

import (
	"time"

	"personal-site/internal/observability/metrics"
)

// observe times a repository operation for the db_query_duration
// histogram. Usage: defer observe("articles_list")().
func observe(op string) func() {
	start := time.Now()
	return func() {
		metrics.RecordDBQuery(op, time.Since(start))
	}
}
