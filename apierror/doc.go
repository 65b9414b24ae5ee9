// Package apierror normalizes failures from the SocialFlow API into a
// single classified error type.
//
// Every failure a resilient operation can surface (transport errors,
// non-2xx responses, the circuit breaker's short-circuit) is funneled
// through Classify and comes out as an *Error carrying an HTTP-style
// status, a Kind, a retryability flag, an actionable suggestion, and any
// field-level validation detail the server returned. Callers handle
// exactly one error type.
//
// Classification is total: Classify never panics and never returns nil,
// regardless of input. Retryability is derived solely from the status and
// kind, never set ad hoc; see Retryable for the policy.
package apierror
