package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/socialflow-dev/socialflow-mcp/apierror"
	"github.com/socialflow-dev/socialflow-mcp/cache"
	"github.com/socialflow-dev/socialflow-mcp/resilience"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 8 << 20

// get issues a cached GET and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	cc := apierror.CallContext{Endpoint: path, Method: http.MethodGet}
	key := cache.Key(http.MethodGet, path, query)

	if raw, ok := c.cache.Get(key); ok {
		return c.decode(raw, out, cc)
	}

	raw, err := resilience.Do(ctx, c.exec, cc, func(ctx context.Context) ([]byte, error) {
		return c.roundTrip(ctx, http.MethodGet, path, query, nil)
	})
	if err != nil {
		return err
	}

	c.cache.Set(key, raw)
	return c.decode(raw, out, cc)
}

// send issues a write request (POST/PUT/DELETE), invalidates the cached
// entries under the affected resource, and decodes the response into out
// when out is non-nil.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	cc := apierror.CallContext{Endpoint: path, Method: method}

	raw, err := resilience.Do(ctx, c.exec, cc, func(ctx context.Context) ([]byte, error) {
		return c.roundTrip(ctx, method, path, nil, body)
	})
	if err != nil {
		return err
	}

	c.cache.InvalidatePrefix(resourcePrefix(path))

	if out == nil {
		return nil
	}
	return c.decode(raw, out, cc)
}

// roundTrip performs exactly one attempt: rate-limit, build, execute,
// and turn non-2xx responses into an *apierror.HTTPFailure for the
// classifier.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	tracer := otel.Tracer(instrumentationName)
	ctx, span := tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("url.path", path),
		))
	defer span.End()

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.metrics.record(ctx, method, path, 0, elapsed, true)
		c.logger.Debug("request transport failure", "method", method, "path", path, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	failed := resp.StatusCode >= 400
	c.metrics.record(ctx, method, path, resp.StatusCode, elapsed, failed)
	c.logger.Debug("request complete", "method", method, "path", path, "status", resp.StatusCode, "elapsed", elapsed)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if failed {
		span.SetStatus(codes.Error, resp.Status)
		return nil, newHTTPFailure(resp, data, method, path)
	}
	return data, nil
}

func (c *Client) decode(raw []byte, out any, cc apierror.CallContext) error {
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apierror.Classify(fmt.Errorf("decode response: %w", err), cc)
	}
	return nil
}

func newHTTPFailure(resp *http.Response, data []byte, method, path string) *apierror.HTTPFailure {
	failure := &apierror.HTTPFailure{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get("X-Request-ID"),
		Endpoint:   path,
		Method:     method,
	}
	var body apierror.ErrorBody
	if json.Unmarshal(data, &body) == nil {
		failure.Body = &body
	}
	return failure
}

// resourcePrefix reduces a request path to its top-level resource, so a
// write to /posts/42/schedule invalidates everything under /posts.
func resourcePrefix(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return "/" + trimmed
}
