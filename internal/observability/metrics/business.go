package metrics

import "time"

// RecordCycle records the outcome and duration of one ingestion cycle.
// A successful cycle also advances the last-success timestamp, which alerting
// uses to detect a stalled pipeline.
func RecordCycle(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	IngestCycleRunsTotal.WithLabelValues(status).Inc()
	IngestCycleDuration.Observe(duration.Seconds())
	if success {
		LastSuccessTimestamp.SetToCurrentTime()
	}
}

// RecordArticlesFetched records the number of raw articles pulled from one
// upstream provider in a cycle.
func RecordArticlesFetched(providerName string, count int) {
	ArticlesFetchedTotal.WithLabelValues(providerName).Add(float64(count))
}

// RecordArticlesPersisted records the insert/update breakdown of a cycle.
func RecordArticlesPersisted(created, updated int) {
	ArticlesStoredTotal.Add(float64(created))
	ArticlesUpdatedTotal.Add(float64(updated))
}

// RecordScrapeAttempt records one content scrape attempt.
// Result should be "success", "failure", or "blocked".
func RecordScrapeAttempt(result string, duration time.Duration) {
	ScrapeAttemptsTotal.WithLabelValues(result).Inc()
	if result != "blocked" {
		ScrapeDuration.Observe(duration.Seconds())
	}
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "select_articles", "insert_article").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
