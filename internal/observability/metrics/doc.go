// Package metrics provides Prometheus metrics for domain-level activity.
//
// This package centralizes business metrics:
//   - Visit counter activity and serialization retries
//   - Article counts and mutation outcomes
//   - Image upload results
//   - Database query durations
//
// HTTP transport metrics (request counts, latency, sizes) are recorded by
// the middleware in internal/handler/http and are not defined here.
//
// All metrics are registered with the Prometheus default registry and
// exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "personal-site/internal/observability/metrics"
//
//	func recordVisit() {
//	    start := time.Now()
//	    // ... increment the durable counter ...
//	    metrics.RecordSiteVisit()
//	    metrics.RecordDBQuery("counter_increment", time.Since(start))
//	}
package metrics
