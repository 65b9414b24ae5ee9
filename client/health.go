package client

import (
	"context"
	"net/http"

	"github.com/socialflow-dev/socialflow-mcp/apierror"
	"github.com/socialflow-dev/socialflow-mcp/resilience"
)

// Ping probes the API. It bypasses the response cache so the result is
// always fresh, but still runs through the resilient executor.
func (c *Client) Ping(ctx context.Context) error {
	cc := apierror.CallContext{Endpoint: "/ping", Method: http.MethodGet}
	_, err := resilience.Do(ctx, c.exec, cc, func(ctx context.Context) ([]byte, error) {
		return c.roundTrip(ctx, http.MethodGet, "/ping", nil, nil)
	})
	return err
}
