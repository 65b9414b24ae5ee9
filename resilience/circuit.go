package resilience

import (
	"context"
	"encoding/json"
	"math"
	"sync"
	"time"

	"github.com/socialflow-dev/socialflow-mcp/apierror"
)

// Phase is the circuit breaker phase.
type Phase int

const (
	// PhaseClosed means calls flow through normally.
	PhaseClosed Phase = iota
	// PhaseOpen means calls are short-circuited without being attempted.
	PhaseOpen
	// PhaseHalfOpen means trial calls are let through to probe recovery.
	PhaseHalfOpen
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseOpen:
		return "open"
	case PhaseHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the phase as its string form.
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// halfOpenCloseAfter is the number of half-open successes required to
// close the circuit.
const halfOpenCloseAfter = 3

// BreakerConfig configures the circuit breaker. Immutable once handed to
// NewBreaker.
type BreakerConfig struct {
	// FailureThreshold is the consecutive-failure count that opens the
	// circuit.
	// Default: 5
	FailureThreshold int

	// ResetTimeout is how long the circuit stays open before the next
	// call is allowed through as a probe.
	// Default: 30s
	ResetTimeout time.Duration

	// MonitoringPeriod is reserved for failure-window accounting. It is
	// validated but not consulted by the state machine.
	// Default: 10s
	MonitoringPeriod time.Duration

	// OnPhaseChange is called after every phase transition.
	OnPhaseChange func(from, to Phase)
}

// Breaker gates calls to the API and short-circuits them while the
// downstream is judged unhealthy.
//
// A success in the closed phase decrements the failure counter rather
// than resetting it, so intermittent failures keep pressure on the
// threshold. Closing from half-open requires three consecutive probe
// successes.
type Breaker struct {
	config BreakerConfig

	mu                  sync.Mutex
	phase               Phase
	consecutiveFailures int
	halfOpenSuccesses   int
	openedAt            time.Time

	now func() time.Time
}

// BreakerState is a read-only snapshot of the breaker, exposed for
// diagnostics and testing.
type BreakerState struct {
	Phase               Phase `json:"phase"`
	ConsecutiveFailures int   `json:"consecutive_failures"`
	HalfOpenSuccesses   int   `json:"half_open_successes"`
}

// NewBreaker creates a circuit breaker in the closed phase, applying
// config defaults.
func NewBreaker(config BreakerConfig) *Breaker {
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 5
	}
	if config.ResetTimeout <= 0 {
		config.ResetTimeout = 30 * time.Second
	}
	if config.MonitoringPeriod <= 0 {
		config.MonitoringPeriod = 10 * time.Second
	}
	return &Breaker{
		config: config,
		phase:  PhaseClosed,
		now:    time.Now,
	}
}

// Do runs op through the breaker. While the circuit is open the call is
// rejected with a classified CIRCUIT_OPEN error and op is never invoked.
func (b *Breaker) Do(ctx context.Context, cc apierror.CallContext, op Operation) (any, error) {
	if err := b.before(cc); err != nil {
		return nil, err
	}

	result, err := op(ctx)
	b.after(err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// State returns the current breaker snapshot.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return BreakerState{
		Phase:               b.phase,
		ConsecutiveFailures: b.consecutiveFailures,
		HalfOpenSuccesses:   b.halfOpenSuccesses,
	}
}

// before admits or rejects the call. The first call at or after
// openedAt+ResetTimeout flips the circuit to half-open and is attempted.
func (b *Breaker) before(cc apierror.CallContext) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.phase != PhaseOpen {
		return nil
	}

	now := b.now()
	reopenAt := b.openedAt.Add(b.config.ResetTimeout)
	if !now.Before(reopenAt) {
		b.transition(PhaseHalfOpen)
		b.halfOpenSuccesses = 0
		return nil
	}

	waitSeconds := int(math.Ceil(reopenAt.Sub(now).Seconds()))
	return apierror.NewCircuitOpen(cc, waitSeconds)
}

func (b *Breaker) after(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.onFailure()
		return
	}
	b.onSuccess()
}

// onFailure applies in both the closed and half-open phases: increment
// the counter and open once it reaches the threshold.
func (b *Breaker) onFailure() {
	b.consecutiveFailures++
	if b.consecutiveFailures >= b.config.FailureThreshold {
		b.openedAt = b.now()
		b.transition(PhaseOpen)
	}
}

func (b *Breaker) onSuccess() {
	switch b.phase {
	case PhaseClosed:
		// Counter decay, not reset.
		if b.consecutiveFailures > 0 {
			b.consecutiveFailures--
		}
	case PhaseHalfOpen:
		b.halfOpenSuccesses++
		if b.halfOpenSuccesses >= halfOpenCloseAfter {
			b.consecutiveFailures = 0
			b.transition(PhaseClosed)
		}
	}
}

func (b *Breaker) transition(to Phase) {
	from := b.phase
	if from == to {
		return
	}
	b.phase = to
	if b.config.OnPhaseChange != nil {
		b.config.OnPhaseChange(from, to)
	}
}
