// Package resilience executes SocialFlow API operations with retries and
// a circuit breaker.
//
// The package composes three pieces:
//
//   - Retry: drives repeated attempts of an operation with exponential
//     backoff and jitter, classifying each failure through apierror and
//     consulting the policy's retry predicate.
//
//   - Breaker: a CLOSED/OPEN/HALF_OPEN state machine that short-circuits
//     calls after repeated failures and probes recovery after a reset
//     timeout.
//
//   - Executor: the single entry point used by all API methods. It wraps
//     the retry loop inside the circuit breaker, so a request that
//     exhausts its retry budget registers as one breaker failure.
//
// # Usage
//
//	exec := resilience.NewExecutor(resilience.ExecutorConfig{
//	    Retry:   resilience.RetryPolicy{MaxRetries: 3, BaseDelay: time.Second},
//	    Breaker: resilience.BreakerConfig{FailureThreshold: 5, ResetTimeout: time.Minute},
//	})
//
//	post, err := resilience.Do(ctx, exec, apierror.CallContext{Endpoint: "/posts/42", Method: "GET"},
//	    func(ctx context.Context) (*Post, error) {
//	        return fetchPost(ctx, "42")
//	    })
//
// On final failure the returned error is always a classified
// *apierror.Error, whether it came from the operation, retry exhaustion,
// or the breaker's short-circuit.
package resilience
