package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track domain-level activity. HTTP transport metrics
// live next to the middleware that records them.
var (
	// SiteVisitsTotal counts visit increments recorded since process start.
	// The durable counter value lives in the database; this counter exists
	// for rate() queries over recent traffic.
	SiteVisitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "site_visits_total",
			Help: "Visit counter increments since process start",
		},
	)

	// ArticlesTotal reflects the number of stored articles, drafts included.
	ArticlesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "articles_total",
			Help: "Total number of articles, drafts included",
		},
	)

	// ArticleWritesTotal counts article mutations by operation and result.
	ArticleWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_writes_total",
			Help: "Article create, update and delete operations",
		},
		[]string{"operation", "result"},
	)

	// ImageUploadsTotal counts article image uploads by result.
	ImageUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_uploads_total",
			Help: "Total number of article image uploads",
		},
		[]string{"status"},
	)

	// DBQueryDuration measures database query duration by operation.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// CounterRetriesTotal counts serialization retries on the visit counter.
	CounterRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "visit_counter_retries_total",
			Help: "Visit counter transaction retries due to serialization conflicts",
		},
	)
)
