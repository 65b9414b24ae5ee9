package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/socialflow-dev/socialflow-mcp/apierror"
)

func failWith(status int) error {
	return &apierror.HTTPFailure{StatusCode: status}
}

func TestNewRetry_Defaults(t *testing.T) {
	r := NewRetry(RetryPolicy{MaxRetries: -1})

	if r.policy.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", r.policy.MaxRetries)
	}
	if r.policy.BaseDelay != time.Second {
		t.Errorf("BaseDelay = %v, want 1s", r.policy.BaseDelay)
	}
	if r.policy.MaxDelay != 30*time.Second {
		t.Errorf("MaxDelay = %v, want 30s", r.policy.MaxDelay)
	}
}

func TestNewRetry_MaxDelayFlooredAtBase(t *testing.T) {
	r := NewRetry(RetryPolicy{BaseDelay: time.Minute, MaxDelay: time.Second})
	if r.policy.MaxDelay != time.Minute {
		t.Errorf("MaxDelay = %v, want floored to BaseDelay", r.policy.MaxDelay)
	}
}

func TestRetry_SuccessFirstAttempt(t *testing.T) {
	r := NewRetry(RetryPolicy{MaxRetries: 3})

	attempts := 0
	result, err := r.Do(context.Background(), apierror.CallContext{}, func(ctx context.Context) (any, error) {
		attempts++
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if result != "ok" {
		t.Errorf("result = %v, want ok", result)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestRetry_RetryableExhaustsBudget(t *testing.T) {
	r := NewRetry(RetryPolicy{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond})

	attempts := 0
	_, err := r.Do(context.Background(), apierror.CallContext{}, func(ctx context.Context) (any, error) {
		attempts++
		return nil, failWith(500)
	})

	if attempts != 4 {
		t.Errorf("attempts = %d, want 4 (initial + 3 retries)", attempts)
	}

	var ae *apierror.Error
	if !errors.As(err, &ae) {
		t.Fatalf("error = %T, want *apierror.Error", err)
	}
	if ae.Status != 500 {
		t.Errorf("Status = %d, want 500", ae.Status)
	}
	if ae.Context.RetryCount == nil || *ae.Context.RetryCount != 3 {
		t.Errorf("RetryCount = %v, want 3", ae.Context.RetryCount)
	}
}

func TestRetry_NonRetryableFailsImmediately(t *testing.T) {
	r := NewRetry(RetryPolicy{MaxRetries: 5, BaseDelay: time.Millisecond})

	attempts := 0
	_, err := r.Do(context.Background(), apierror.CallContext{}, func(ctx context.Context) (any, error) {
		attempts++
		return nil, failWith(400)
	})

	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 for a 400", attempts)
	}

	var ae *apierror.Error
	if !errors.As(err, &ae) {
		t.Fatalf("error = %T, want *apierror.Error", err)
	}
	if ae.Kind != apierror.KindBadRequest {
		t.Errorf("Kind = %s, want BAD_REQUEST", ae.Kind)
	}
}

func TestRetry_SuccessAfterFailures(t *testing.T) {
	r := NewRetry(RetryPolicy{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond})

	attempts := 0
	result, err := r.Do(context.Background(), apierror.CallContext{}, func(ctx context.Context) (any, error) {
		attempts++
		if attempts < 3 {
			return nil, failWith(503)
		}
		return attempts, nil
	})

	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if result != 3 || attempts != 3 {
		t.Errorf("result = %v after %d attempts, want 3 after 3", result, attempts)
	}
}

func TestRetry_ShouldRetryOverride(t *testing.T) {
	// Force retries of a normally non-retryable 404.
	r := NewRetry(RetryPolicy{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		ShouldRetry: func(err *apierror.Error) bool {
			return err.Kind == apierror.KindNotFound
		},
	})

	attempts := 0
	_, err := r.Do(context.Background(), apierror.CallContext{}, func(ctx context.Context) (any, error) {
		attempts++
		return nil, failWith(404)
	})

	if attempts != 3 {
		t.Errorf("attempts = %d, want 3 with override", attempts)
	}
	if err == nil {
		t.Fatal("Do() error = nil, want classified 404")
	}

	// And suppress retries of a normally retryable 500.
	r = NewRetry(RetryPolicy{
		MaxRetries:  5,
		BaseDelay:   time.Millisecond,
		ShouldRetry: func(*apierror.Error) bool { return false },
	})

	attempts = 0
	_, _ = r.Do(context.Background(), apierror.CallContext{}, func(ctx context.Context) (any, error) {
		attempts++
		return nil, failWith(500)
	})
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 with suppressing override", attempts)
	}
}

func TestRetry_OnRetryCallback(t *testing.T) {
	var seen []int
	r := NewRetry(RetryPolicy{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		OnRetry: func(attempt int, err *apierror.Error, delay time.Duration) {
			seen = append(seen, attempt)
			if delay <= 0 {
				t.Errorf("delay = %v, want > 0", delay)
			}
		},
	})

	_, _ = r.Do(context.Background(), apierror.CallContext{}, func(ctx context.Context) (any, error) {
		return nil, failWith(502)
	})

	if len(seen) != 2 || seen[0] != 0 || seen[1] != 1 {
		t.Errorf("OnRetry attempts = %v, want [0 1]", seen)
	}
}

func TestRetry_CancelledContextSurfacesClassifiedError(t *testing.T) {
	r := NewRetry(RetryPolicy{MaxRetries: 5, BaseDelay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Do(ctx, apierror.CallContext{Endpoint: "/posts"}, func(ctx context.Context) (any, error) {
		return nil, failWith(503)
	})

	var ae *apierror.Error
	if !errors.As(err, &ae) {
		t.Fatalf("error = %T, want *apierror.Error, not a bare context error", err)
	}
	if ae.Status != 503 {
		t.Errorf("Status = %d, want the last classified failure", ae.Status)
	}
}

func TestBackoff_Bounds(t *testing.T) {
	base := 100 * time.Millisecond
	max := 10 * time.Second
	r := NewRetry(RetryPolicy{BaseDelay: base, MaxDelay: max})

	for attempt := 0; attempt <= 8; attempt++ {
		lower := time.Duration(float64(base) * float64(int64(1)<<attempt) / 2)
		if lower > max {
			lower = max
		}
		for i := 0; i < 50; i++ {
			d := r.backoff(attempt)
			if d < lower || d > max {
				t.Fatalf("backoff(%d) = %v, want in [%v, %v]", attempt, d, lower, max)
			}
		}
	}
}

func TestBackoff_ClampedAtMaxDelay(t *testing.T) {
	r := NewRetry(RetryPolicy{BaseDelay: time.Second, MaxDelay: 2 * time.Second})
	// 1s * 2^20 dwarfs the cap even after jitter.
	if d := r.backoff(20); d != 2*time.Second {
		t.Errorf("backoff(20) = %v, want clamped to 2s", d)
	}
}
