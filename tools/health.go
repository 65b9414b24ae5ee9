package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// HealthInput has no parameters.
type HealthInput struct{}

// HealthOutput reports API reachability and circuit breaker state.
type HealthOutput struct {
	Healthy             bool   `json:"healthy"`
	Error               string `json:"error,omitempty"`
	CircuitPhase        string `json:"circuit_phase"`
	ConsecutiveFailures int    `json:"consecutive_failures"`
}

func healthHandler(api API) mcp.ToolHandlerFor[HealthInput, HealthOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, in HealthInput) (*mcp.CallToolResult, HealthOutput, error) {
		out := HealthOutput{Healthy: true}
		if err := api.Ping(ctx); err != nil {
			out.Healthy = false
			out.Error = renderError(err)
		}

		state := api.CircuitState()
		out.CircuitPhase = state.Phase.String()
		out.ConsecutiveFailures = state.ConsecutiveFailures
		return nil, out, nil
	}
}
