package apierror

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Kind identifies the classified failure category.
type Kind string

const (
	KindTimeout            Kind = "TIMEOUT"
	KindConnectionRefused  Kind = "CONNECTION_REFUSED"
	KindCircuitOpen        Kind = "CIRCUIT_OPEN"
	KindNetworkError       Kind = "NETWORK_ERROR"
	KindBadRequest         Kind = "BAD_REQUEST"
	KindUnauthorized       Kind = "UNAUTHORIZED"
	KindForbidden          Kind = "FORBIDDEN"
	KindNotFound           Kind = "NOT_FOUND"
	KindMethodNotAllowed   Kind = "METHOD_NOT_ALLOWED"
	KindConflict           Kind = "CONFLICT"
	KindUnprocessable      Kind = "UNPROCESSABLE_ENTITY"
	KindTooManyRequests    Kind = "TOO_MANY_REQUESTS"
	KindInternalServer     Kind = "INTERNAL_SERVER_ERROR"
	KindBadGateway         Kind = "BAD_GATEWAY"
	KindServiceUnavailable Kind = "SERVICE_UNAVAILABLE"
	KindGatewayTimeout     Kind = "GATEWAY_TIMEOUT"
)

// CallContext carries call-site metadata stamped onto classified errors.
type CallContext struct {
	// Endpoint is the API path being called, e.g. "/posts".
	Endpoint string
	// Method is the HTTP method. Stored upper-cased.
	Method string
}

// Context is the diagnostic context attached to a classified error.
type Context struct {
	Endpoint  string
	Method    string
	Timestamp time.Time
	RequestID string
	// RetryCount is the zero-based attempt number at classification time.
	// Nil when the error was classified outside a retry loop.
	RetryCount *int
}

// Error is the normalized error produced by Classify and raised by every
// resilient operation.
//
// Status and Kind are always mutually consistent: Status 503 with
// KindCircuitOpen for short-circuited calls, 500 when no response was
// received, otherwise the response status with its mapped kind.
type Error struct {
	// Message is never empty; Classify falls back to a generic string.
	Message string
	// Status is the HTTP-style status associated with the failure.
	Status int
	// Kind is the classified failure category.
	Kind Kind
	// Retryable reports whether re-attempting the operation is expected
	// to plausibly succeed. Derived from Status and Kind.
	Retryable bool
	// Suggestion is an actionable human-readable hint.
	Suggestion string
	// ValidationErrors maps field names to their validation messages.
	// Nil when the response carried no validation detail.
	ValidationErrors map[string][]string
	// Context records where and when the failure was classified.
	Context Context
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("socialflow: ")
	b.WriteString(e.Message)
	fmt.Fprintf(&b, " (status %d, %s", e.Status, e.Kind)
	if e.Context.Endpoint != "" {
		fmt.Fprintf(&b, ", %s %s", e.Context.Method, e.Context.Endpoint)
	}
	b.WriteString(")")
	return b.String()
}

// WithRetryCount returns a copy of e with the attempt number attached.
func (e *Error) WithRetryCount(n int) *Error {
	out := *e
	out.Context.RetryCount = &n
	return &out
}

// NewCircuitOpen builds the classified error raised when the circuit
// breaker short-circuits a call. waitSeconds is the remaining time, in
// whole seconds, before a probe call will be allowed through.
//
// The error is shaped exactly as Classify would produce it, so retry
// logic downstream of the breaker sees a consistent *Error.
func NewCircuitOpen(cc CallContext, waitSeconds int) *Error {
	return &Error{
		Message:    "Circuit breaker is open",
		Status:     http.StatusServiceUnavailable,
		Kind:       KindCircuitOpen,
		Retryable:  false,
		Suggestion: fmt.Sprintf("Service temporarily unavailable after repeated failures. Retry in %ds.", waitSeconds),
		Context: Context{
			Endpoint:  cc.Endpoint,
			Method:    strings.ToUpper(cc.Method),
			Timestamp: time.Now().UTC(),
		},
	}
}

// NewBadInput builds a client-side validation error for requests rejected
// before they reach the wire, e.g. a missing resource identifier.
func NewBadInput(cc CallContext, msg string) *Error {
	return &Error{
		Message:    msg,
		Status:     http.StatusBadRequest,
		Kind:       KindBadRequest,
		Retryable:  false,
		Suggestion: suggestionFor(KindBadRequest),
		Context: Context{
			Endpoint:  cc.Endpoint,
			Method:    strings.ToUpper(cc.Method),
			Timestamp: time.Now().UTC(),
		},
	}
}
