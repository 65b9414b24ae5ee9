package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/socialflow-dev/socialflow-mcp/apierror"
)

func TestExecutor_Success(t *testing.T) {
	e := NewExecutor(ExecutorConfig{})

	got, err := Do(context.Background(), e, apierror.CallContext{}, func(ctx context.Context) (string, error) {
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if got != "ok" {
		t.Errorf("got %q, want ok", got)
	}
}

func TestExecutor_RetriesThenSucceeds(t *testing.T) {
	// Fails twice with 503 then succeeds, with two delayed retries
	// totalling at least 0.5*100ms + 0.5*200ms.
	e := NewExecutor(ExecutorConfig{
		Retry: RetryPolicy{MaxRetries: 2, BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second},
	})

	attempts := 0
	start := time.Now()
	got, err := Do(context.Background(), e, apierror.CallContext{}, func(ctx context.Context) (int, error) {
		attempts++
		if attempts <= 2 {
			return 0, failWith(503)
		}
		return attempts, nil
	})
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if got != 3 || attempts != 3 {
		t.Errorf("got %d after %d attempts, want success on attempt 3", got, attempts)
	}
	if elapsed < 150*time.Millisecond {
		t.Errorf("elapsed = %v, want >= 150ms of backoff", elapsed)
	}
}

func TestExecutor_ExhaustedRetriesIsOneBreakerFailure(t *testing.T) {
	e := NewExecutor(ExecutorConfig{
		Retry:   RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond},
		Breaker: BreakerConfig{FailureThreshold: 5},
	})

	_, err := Do(context.Background(), e, apierror.CallContext{}, func(ctx context.Context) (any, error) {
		return nil, failWith(500)
	})
	if err == nil {
		t.Fatal("expected failure")
	}

	state := e.BreakerState()
	if state.ConsecutiveFailures != 1 {
		t.Errorf("ConsecutiveFailures = %d, want 1 (retries inside the breaker)", state.ConsecutiveFailures)
	}
}

func TestExecutor_BreakerOpensAndShortCircuits(t *testing.T) {
	e := NewExecutor(ExecutorConfig{
		Retry:   RetryPolicy{MaxRetries: 0},
		Breaker: BreakerConfig{FailureThreshold: 2, ResetTimeout: time.Minute},
	})

	attempts := 0
	op := func(ctx context.Context) (any, error) {
		attempts++
		return nil, failWith(500)
	}

	e.Execute(context.Background(), apierror.CallContext{}, op)
	e.Execute(context.Background(), apierror.CallContext{}, op)

	if state := e.BreakerState(); state.Phase != PhaseOpen {
		t.Fatalf("phase = %s, want open", state.Phase)
	}

	before := attempts
	_, err := e.Execute(context.Background(), apierror.CallContext{Endpoint: "/posts"}, op)
	if attempts != before {
		t.Error("operation attempted while circuit open")
	}
	if !IsCircuitOpen(err) {
		t.Errorf("IsCircuitOpen(%v) = false, want true", err)
	}
}

func TestExecutor_DisabledAttemptsOnceAndStillClassifies(t *testing.T) {
	e := NewExecutor(ExecutorConfig{
		Retry:    RetryPolicy{MaxRetries: 5, BaseDelay: time.Millisecond},
		Disabled: true,
	})

	attempts := 0
	_, err := e.Execute(context.Background(), apierror.CallContext{Endpoint: "/tags", Method: "get"}, func(ctx context.Context) (any, error) {
		attempts++
		return nil, failWith(503)
	})

	if attempts != 1 {
		t.Errorf("attempts = %d, want exactly 1 when disabled", attempts)
	}

	var ae *apierror.Error
	if !errors.As(err, &ae) {
		t.Fatalf("error = %T, want classified even when disabled", err)
	}
	if ae.Kind != apierror.KindServiceUnavailable {
		t.Errorf("Kind = %s, want SERVICE_UNAVAILABLE", ae.Kind)
	}
	if ae.Context.Method != "GET" {
		t.Errorf("Method = %q, want GET", ae.Context.Method)
	}
}

func TestExecutor_AlwaysReturnsClassifiedError(t *testing.T) {
	e := NewExecutor(ExecutorConfig{Retry: RetryPolicy{MaxRetries: 0}})

	_, err := e.Execute(context.Background(), apierror.CallContext{}, func(ctx context.Context) (any, error) {
		return nil, errors.New("something opaque")
	})

	var ae *apierror.Error
	if !errors.As(err, &ae) {
		t.Fatalf("error = %T, want *apierror.Error", err)
	}
	if ae.Status != 500 {
		t.Errorf("Status = %d, want 500 for an opaque failure", ae.Status)
	}
}

func TestDo_TypedZeroValueOnError(t *testing.T) {
	e := NewExecutor(ExecutorConfig{Retry: RetryPolicy{MaxRetries: 0}})

	got, err := Do(context.Background(), e, apierror.CallContext{}, func(ctx context.Context) (*struct{ N int }, error) {
		return nil, failWith(404)
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if got != nil {
		t.Errorf("got %v, want nil zero value", got)
	}
}
