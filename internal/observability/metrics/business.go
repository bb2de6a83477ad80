package metrics

import (
	"time"
)

// RecordSiteVisit counts one visit increment.
func RecordSiteVisit() {
	SiteVisitsTotal.Inc()
}

// RecordArticleWrite records the result of an article mutation.
// Operation should be one of "create", "update", "delete".
func RecordArticleWrite(operation string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	ArticleWritesTotal.WithLabelValues(operation, result).Inc()
}

// RecordImageUpload records the result of an article image upload.
func RecordImageUpload(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	ImageUploadsTotal.WithLabelValues(status).Inc()
}

// RecordDBQuery records the duration of a database query operation.
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCounterRetry counts one serialization retry on the visit counter.
func RecordCounterRetry() {
	CounterRetriesTotal.Inc()
}

// UpdateArticlesTotal updates the total count of articles in the database.
// This gauge should be updated after mutations or on a periodic sweep.
func UpdateArticlesTotal(count int) {
	ArticlesTotal.Set(float64(count))
}
