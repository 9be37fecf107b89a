// Package observability provides observability infrastructure for the
// ingestion pipeline and the read API: structured logging and Prometheus
// metrics.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
package observability
