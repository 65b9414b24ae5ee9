package resilience

import (
	"errors"

	"github.com/socialflow-dev/socialflow-mcp/apierror"
)

// IsCircuitOpen reports whether err is the circuit breaker's
// short-circuit error.
func IsCircuitOpen(err error) bool {
	var ae *apierror.Error
	return errors.As(err, &ae) && ae.Kind == apierror.KindCircuitOpen
}
