// Package resilience provides reliability patterns for outbound calls:
// retry with exponential backoff and jitter, and a circuit breaker wrapper.
//
// The retry subpackage guards the upstream news provider APIs; the
// circuitbreaker subpackage keeps a run of failing page scrapes from
// hammering dead hosts.
//
// Usage:
//
//	cb := circuitbreaker.New(circuitbreaker.ContentScrapeConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return fetchPage(url)
//	})
//
//	err := retry.WithBackoff(ctx, retry.ProviderAPIConfig(), func() error {
//	    return callProvider()
//	})
package resilience
