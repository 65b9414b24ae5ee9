package resilience

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/socialflow-dev/socialflow-mcp/apierror"
)

// Operation is a single attempt against the API. Implementations may
// return any raw failure; classification happens in the retry loop.
type Operation func(ctx context.Context) (any, error)

// RetryPolicy configures the retry behavior. Immutable once handed to
// NewRetry.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the initial attempt, so
	// an always-failing operation is attempted MaxRetries+1 times.
	// Negative values take the default: 3
	MaxRetries int

	// BaseDelay is the backoff delay before the first retry.
	// Default: 1s
	BaseDelay time.Duration

	// MaxDelay caps the backoff delay after jitter.
	// Default: 30s, floored at BaseDelay
	MaxDelay time.Duration

	// ShouldRetry overrides the default retryability check (the
	// classified error's Retryable flag).
	ShouldRetry func(*apierror.Error) bool

	// OnRetry is called before each backoff wait.
	OnRetry func(attempt int, err *apierror.Error, delay time.Duration)
}

// Retry drives repeated attempts of an operation.
type Retry struct {
	policy RetryPolicy
}

// NewRetry creates a retry handler, applying policy defaults.
func NewRetry(policy RetryPolicy) *Retry {
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 3
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = time.Second
	}
	if policy.MaxDelay <= 0 {
		policy.MaxDelay = 30 * time.Second
	}
	if policy.MaxDelay < policy.BaseDelay {
		policy.MaxDelay = policy.BaseDelay
	}
	return &Retry{policy: policy}
}

// Do attempts op until it succeeds, the retry budget is exhausted, or the
// failure classifies as non-retryable. The returned error is always a
// classified *apierror.Error with the attempt count stamped into its
// context.
func (r *Retry) Do(ctx context.Context, cc apierror.CallContext, op Operation) (any, error) {
	for attempt := 0; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		enhanced := apierror.Classify(err, cc).WithRetryCount(attempt)

		if attempt >= r.policy.MaxRetries || !r.shouldRetry(enhanced) {
			return nil, enhanced
		}

		delay := r.backoff(attempt)
		if r.policy.OnRetry != nil {
			r.policy.OnRetry(attempt, enhanced, delay)
		}

		select {
		case <-ctx.Done():
			// The host is going away; surface the classified failure
			// rather than a bare context error.
			return nil, enhanced
		case <-time.After(delay):
		}
	}
}

func (r *Retry) shouldRetry(err *apierror.Error) bool {
	if r.policy.ShouldRetry != nil {
		return r.policy.ShouldRetry(err)
	}
	return err.Retryable
}

// backoff returns the delay before retrying attempt n: BaseDelay doubled
// per attempt, scaled by a uniform factor in [0.5, 1.0), clamped to
// MaxDelay. The result is always in [0.5*BaseDelay*2^n, MaxDelay].
func (r *Retry) backoff(attempt int) time.Duration {
	delay := float64(r.policy.BaseDelay) * math.Pow(2, float64(attempt))
	// #nosec G404 -- jitter is non-cryptographic timing variance.
	delay *= 0.5 + rand.Float64()/2
	if delay > float64(r.policy.MaxDelay) {
		return r.policy.MaxDelay
	}
	return time.Duration(delay)
}

// Policy returns the retry policy.
func (r *Retry) Policy() RetryPolicy {
	return r.policy
}
