package apierror

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"
)

// FallbackMessage is used when a failure carries no usable message.
const FallbackMessage = "An unexpected error occurred"

// Classify maps a raw failure onto the normalized *Error.
//
// The raw failure is matched in a fixed priority order:
//
//  1. aborted / timed-out connections -> KindTimeout, status 408,
//     regardless of any response status present
//  2. refused connections -> KindConnectionRefused, status 500
//  3. an already classified *Error (the breaker's synthesized open
//     error) passes through with its context re-stamped
//  4. transport failures with no response -> KindNetworkError, status 500
//  5. responses -> the status-to-kind table (kindForStatus)
//  6. anything else, including nil -> KindInternalServer, status 500
//
// Classify never panics and never returns nil.
func Classify(err error, cc CallContext) *Error {
	now := time.Now().UTC()

	if isTimeout(err) {
		return newError(KindTimeout, http.StatusRequestTimeout, messageOf(err, "Request timed out"), cc, now)
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return newError(KindConnectionRefused, http.StatusInternalServerError, messageOf(err, "Connection refused"), cc, now)
	}

	var classified *Error
	if errors.As(err, &classified) {
		out := *classified
		out.Context = stampContext(out.Context, cc, now)
		return &out
	}

	var failure *HTTPFailure
	if errors.As(err, &failure) {
		return classifyResponse(failure, cc, now)
	}

	if isNetworkError(err) {
		return newError(KindNetworkError, http.StatusInternalServerError, messageOf(err, "Network Error"), cc, now)
	}

	return newError(KindInternalServer, http.StatusInternalServerError, messageOf(err, ""), cc, now)
}

func classifyResponse(failure *HTTPFailure, cc CallContext, now time.Time) *Error {
	status := failure.StatusCode
	kind := kindForStatus(status)

	msg := ""
	var validation map[string][]string
	if failure.Body != nil {
		if failure.Body.Message != "" {
			msg = failure.Body.Message
		} else if failure.Body.ErrorText != "" {
			msg = failure.Body.ErrorText
		}
		validation = normalizeValidation(failure.Body.Errors)
	}
	if msg == "" {
		msg = FallbackMessage
	}

	// Call-site context wins; fall back to what the transport recorded
	// on the failure itself.
	if cc.Endpoint == "" {
		cc.Endpoint = failure.Endpoint
	}
	if cc.Method == "" {
		cc.Method = failure.Method
	}

	out := newError(kind, status, msg, cc, now)
	out.ValidationErrors = validation
	out.Context.RequestID = failure.RequestID
	return out
}

// Retryable reports whether a failure with the given status and kind is
// safe to re-attempt under the default policy: circuit-open never, 4xx
// only for 408 and 429, everything else (missing status, 5xx) yes.
func Retryable(status int, kind Kind) bool {
	if kind == KindCircuitOpen {
		return false
	}
	if status >= 400 && status < 500 {
		return status == http.StatusRequestTimeout || status == http.StatusTooManyRequests
	}
	return true
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest:
		return KindBadRequest
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusMethodNotAllowed:
		return KindMethodNotAllowed
	case http.StatusRequestTimeout:
		return KindTimeout
	case http.StatusConflict:
		return KindConflict
	case http.StatusUnprocessableEntity:
		return KindUnprocessable
	case http.StatusTooManyRequests:
		return KindTooManyRequests
	case http.StatusInternalServerError:
		return KindInternalServer
	case http.StatusBadGateway:
		return KindBadGateway
	case http.StatusServiceUnavailable:
		return KindServiceUnavailable
	case http.StatusGatewayTimeout:
		return KindGatewayTimeout
	default:
		if status >= 500 {
			return KindInternalServer
		}
		return KindBadRequest
	}
}

func suggestionFor(kind Kind) string {
	switch kind {
	case KindUnauthorized:
		return "Check that the API token is valid and has the required scope."
	case KindForbidden:
		return "The token is valid but lacks permission for this resource."
	case KindNotFound:
		return "Verify that the resource identifier exists."
	case KindConflict:
		return "The resource was modified concurrently; fetch it again and retry."
	case KindUnprocessable:
		return "Inspect the validation errors for the fields that were rejected."
	case KindTooManyRequests:
		return "Rate limit reached; wait before retrying."
	case KindTimeout:
		return "The server may be slow; consider retrying later."
	case KindConnectionRefused:
		return "The service refused the connection; check that it is running and reachable."
	case KindNetworkError:
		return "Check network connectivity and the configured base URL."
	case KindServiceUnavailable:
		return "The service is likely temporarily unavailable; retry later."
	case KindCircuitOpen:
		return "Service degraded; wait for the circuit to close."
	default:
		return "Check the request parameters and the service status, then try again."
	}
}

func newError(kind Kind, status int, msg string, cc CallContext, now time.Time) *Error {
	if msg == "" {
		msg = FallbackMessage
	}
	return &Error{
		Message:    msg,
		Status:     status,
		Kind:       kind,
		Retryable:  Retryable(status, kind),
		Suggestion: suggestionFor(kind),
		Context: Context{
			Endpoint:  cc.Endpoint,
			Method:    strings.ToUpper(cc.Method),
			Timestamp: now,
		},
	}
}

func stampContext(prev Context, cc CallContext, now time.Time) Context {
	out := prev
	if cc.Endpoint != "" {
		out.Endpoint = cc.Endpoint
	}
	if cc.Method != "" {
		out.Method = strings.ToUpper(cc.Method)
	}
	out.Timestamp = now
	return out
}

// normalizeValidation coerces the server's field->value(s) map into
// field->[]string. Scalars are wrapped, non-strings stringified, nils
// skipped. Fields whose normalized list is empty are dropped; a map with
// no surviving fields normalizes to nil.
func normalizeValidation(raw map[string]any) map[string][]string {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string][]string, len(raw))
	for field, value := range raw {
		var msgs []string
		switch v := value.(type) {
		case nil:
		case []any:
			for _, item := range v {
				if item == nil {
					continue
				}
				msgs = append(msgs, stringify(item))
			}
		case []string:
			msgs = append(msgs, v...)
		default:
			msgs = append(msgs, stringify(v))
		}
		if len(msgs) > 0 {
			out[field] = msgs
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func messageOf(err error, fallback string) string {
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	if fallback != "" {
		return fallback
	}
	return FallbackMessage
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	if errors.Is(err, syscall.ECONNABORTED) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	// A *url.Error means the request never produced a response.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	// Some transports surface a bare "Network Error" with no response.
	return err.Error() == "Network Error"
}
