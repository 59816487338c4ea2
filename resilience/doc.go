// Package resilience provides the fault-tolerance patterns the default HTTP
// transport can opt into.
//
//   - CircuitBreaker: fails fast with CIRCUIT_OPEN while the remote is unhealthy
//   - Retry: retries retryable transport errors with exponential backoff
//   - RateLimiter: token bucket throttling built on golang.org/x/time/rate
//   - Bulkhead: bounds the number of requests in flight
//
// Every rejection is a transport error from the errors package, so callers
// inspect it the same way as a network failure:
//
//	cb := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("todos"))
//	err := cb.Execute(func() error { return send(ctx) })
//	if errors.HasCode(err, errors.ErrCodeCircuitOpen) { ... }
package resilience
