// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count)
//   - Ingestion pipeline metrics (cycles, fetches, scrapes)
//   - Database query metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "newshub/internal/observability/metrics"
//
//	func runCycle() {
//	    start := time.Now()
//	    // ... fetch and store articles ...
//	    metrics.RecordArticlesFetched("newsapi", 20)
//	    metrics.RecordCycle(true, time.Since(start))
//	}
package metrics
