package client

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/socialflow-dev/socialflow-mcp/apierror"
	"github.com/socialflow-dev/socialflow-mcp/cache"
	"github.com/socialflow-dev/socialflow-mcp/resilience"
)

const defaultUserAgent = "socialflow-mcp"

// Config configures the SocialFlow client.
type Config struct {
	// BaseURL is the API root, e.g. "https://app.socialflow.example/api/v1".
	BaseURL string

	// Token is the bearer token sent with every request.
	Token string

	// Timeout is the per-request timeout enforced by the HTTP client.
	// Default: 30s
	Timeout time.Duration

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// RateLimit is the outbound request rate in requests per second.
	// Default: 10
	RateLimit float64

	// RateBurst is the rate limiter burst size.
	// Default: 5
	RateBurst int

	// CacheTTL is how long GET responses are cached. Zero disables the
	// cache.
	CacheTTL time.Duration

	// Resilience configures retries and the circuit breaker.
	Resilience resilience.ExecutorConfig

	// Logger receives retry and breaker transition events.
	// Default: slog.Default()
	Logger *slog.Logger

	// HTTPClient overrides the underlying HTTP client. Its transport is
	// still wrapped with the auth round tripper. Intended for tests.
	HTTPClient *http.Client
}

// Client is the SocialFlow API client. Safe for concurrent use; all
// requests share one circuit breaker by design.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	exec    *resilience.Executor
	limiter *rate.Limiter
	cache   *cache.Cache
	logger  *slog.Logger
	metrics *clientMetrics
}

// New creates a SocialFlow client.
func New(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errors.New("client: base URL is required")
	}
	base, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("client: parse base URL: %w", err)
	}
	if config.Token == "" {
		return nil, errors.New("client: API token is required")
	}

	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}
	if config.RateLimit <= 0 {
		config.RateLimit = 10
	}
	if config.RateBurst <= 0 {
		config.RateBurst = 5
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var httpClient http.Client
	if config.HTTPClient != nil {
		httpClient = *config.HTTPClient
	}
	baseTransport := httpClient.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}
	httpClient.Transport = &transport{
		token:     config.Token,
		userAgent: config.UserAgent,
		base:      baseTransport,
	}
	httpClient.Timeout = config.Timeout

	if config.Resilience.Retry.OnRetry == nil {
		config.Resilience.Retry.OnRetry = func(attempt int, err *apierror.Error, delay time.Duration) {
			logger.Warn("retrying request",
				"attempt", attempt,
				"status", err.Status,
				"kind", string(err.Kind),
				"endpoint", err.Context.Endpoint,
				"delay", delay,
			)
		}
	}
	if config.Resilience.Breaker.OnPhaseChange == nil {
		config.Resilience.Breaker.OnPhaseChange = func(from, to resilience.Phase) {
			logger.Warn("circuit breaker phase change", "from", from.String(), "to", to.String())
		}
	}

	metrics, err := newClientMetrics()
	if err != nil {
		return nil, fmt.Errorf("client: init metrics: %w", err)
	}

	return &Client{
		baseURL: base,
		http:    &httpClient,
		exec:    resilience.NewExecutor(config.Resilience),
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst),
		cache:   cache.New(config.CacheTTL),
		logger:  logger,
		metrics: metrics,
	}, nil
}

// CircuitState exposes the circuit breaker snapshot for diagnostics.
func (c *Client) CircuitState() resilience.BreakerState {
	return c.exec.BreakerState()
}
