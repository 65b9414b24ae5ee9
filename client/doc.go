// Package client is the SocialFlow REST API client.
//
// Every endpoint method is a thin wrapper that forwards to the resilient
// executor: one attempt per call into the transport, retries with
// exponential backoff around it, and a circuit breaker around the
// retries. Failures of any shape come back as *apierror.Error.
//
// The transport injects the bearer token, a generated X-Request-ID, and
// the client User-Agent on every request. Outbound calls are paced by a
// token-bucket rate limiter and GET responses are served from a short
// TTL cache that write operations invalidate.
//
// Retries assume idempotent operations; a timed-out create may still
// have happened server-side. That tradeoff belongs to the caller.
package client
