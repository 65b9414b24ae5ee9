package resilience

import (
	"context"

	"github.com/socialflow-dev/socialflow-mcp/apierror"
)

// ExecutorConfig configures the resilient executor.
type ExecutorConfig struct {
	Retry   RetryPolicy
	Breaker BreakerConfig

	// Disabled skips retries and circuit breaking: the operation is
	// attempted exactly once and failures are still classified.
	Disabled bool
}

// Executor composes the circuit breaker around the retry loop around the
// raw operation. Each executor owns one breaker; its state is shared by
// every request made through the executor and by nothing else.
type Executor struct {
	retry    *Retry
	breaker  *Breaker
	disabled bool
}

// NewExecutor creates a resilient executor.
func NewExecutor(config ExecutorConfig) *Executor {
	return &Executor{
		retry:    NewRetry(config.Retry),
		breaker:  NewBreaker(config.Breaker),
		disabled: config.Disabled,
	}
}

// Execute runs op with retries inside the circuit breaker. A request that
// exhausts its retry budget counts as a single breaker failure. The
// returned error, if any, is always a classified *apierror.Error.
func (e *Executor) Execute(ctx context.Context, cc apierror.CallContext, op Operation) (any, error) {
	if e.disabled {
		result, err := op(ctx)
		if err != nil {
			return nil, apierror.Classify(err, cc)
		}
		return result, nil
	}

	return e.breaker.Do(ctx, cc, func(ctx context.Context) (any, error) {
		return e.retry.Do(ctx, cc, op)
	})
}

// BreakerState returns the circuit breaker snapshot for diagnostics. Not
// intended for control flow.
func (e *Executor) BreakerState() BreakerState {
	return e.breaker.State()
}

// Do runs a typed operation through the executor.
func Do[T any](ctx context.Context, e *Executor, cc apierror.CallContext, op func(ctx context.Context) (T, error)) (T, error) {
	result, err := e.Execute(ctx, cc, func(ctx context.Context) (any, error) {
		return op(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	out, _ := result.(T)
	return out, nil
}
