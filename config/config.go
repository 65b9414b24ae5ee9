// Package config loads the adapter configuration from the environment.
//
// A .env file in the working directory is read first when present;
// process environment variables win over it.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/socialflow-dev/socialflow-mcp/observe"
	"github.com/socialflow-dev/socialflow-mcp/resilience"
)

// Config is the full process configuration.
type Config struct {
	// BaseURL is the SocialFlow API root.
	BaseURL string
	// APIToken is the bearer token for the SocialFlow API.
	APIToken string
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// Retry tuning.
	MaxRetries     int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration

	// Circuit breaker tuning.
	BreakerThreshold        int
	BreakerResetTimeout     time.Duration
	BreakerMonitoringPeriod time.Duration

	// ResilienceDisabled turns off retries and circuit breaking;
	// failures are still classified.
	ResilienceDisabled bool

	// Outbound rate limiting.
	RateLimit float64
	RateBurst int

	// CacheTTL is how long GET responses are cached. Zero disables.
	CacheTTL time.Duration

	// Logging.
	LogLevel  string
	LogFormat string

	// DiagnosticsAddr is the listen address for /healthz, /metrics and
	// /circuit. Empty disables the listener.
	DiagnosticsAddr string

	// Observe is the telemetry configuration.
	Observe observe.Config
}

// Load reads configuration from .env (if present) and the process
// environment, applies defaults, and validates.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL:  os.Getenv("SOCIALFLOW_BASE_URL"),
		APIToken: os.Getenv("SOCIALFLOW_API_TOKEN"),
		Timeout:  getDuration("SOCIALFLOW_TIMEOUT", 30*time.Second),

		MaxRetries:     getInt("SOCIALFLOW_MAX_RETRIES", 3),
		RetryBaseDelay: getDuration("SOCIALFLOW_RETRY_BASE_DELAY", time.Second),
		RetryMaxDelay:  getDuration("SOCIALFLOW_RETRY_MAX_DELAY", 30*time.Second),

		BreakerThreshold:        getInt("SOCIALFLOW_BREAKER_THRESHOLD", 5),
		BreakerResetTimeout:     getDuration("SOCIALFLOW_BREAKER_RESET_TIMEOUT", 30*time.Second),
		BreakerMonitoringPeriod: getDuration("SOCIALFLOW_BREAKER_MONITORING_PERIOD", 10*time.Second),

		ResilienceDisabled: getBool("SOCIALFLOW_RESILIENCE_DISABLED", false),

		RateLimit: getFloat("SOCIALFLOW_RATE_LIMIT", 10),
		RateBurst: getInt("SOCIALFLOW_RATE_BURST", 5),

		CacheTTL: getDuration("SOCIALFLOW_CACHE_TTL", 30*time.Second),

		LogLevel:  getString("LOG_LEVEL", "info"),
		LogFormat: getString("LOG_FORMAT", "text"),

		DiagnosticsAddr: os.Getenv("SOCIALFLOW_DIAGNOSTICS_ADDR"),

		Observe: observe.Config{
			ServiceName:    getString("OTEL_SERVICE_NAME", "socialflow-mcp"),
			TraceExporter:  getString("OBSERVE_TRACE_EXPORTER", "none"),
			OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			SampleRatio:    getFloat("OBSERVE_TRACE_SAMPLE_RATIO", 1),
			MetricExporter: getString("OBSERVE_METRIC_EXPORTER", "none"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("config: SOCIALFLOW_BASE_URL is required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("config: invalid SOCIALFLOW_BASE_URL: %w", err)
	}
	if c.APIToken == "" {
		return errors.New("config: SOCIALFLOW_API_TOKEN is required")
	}
	if c.MaxRetries < 0 {
		return errors.New("config: max retries must be non-negative")
	}
	if c.RetryBaseDelay <= 0 {
		return errors.New("config: retry base delay must be positive")
	}
	if c.RetryMaxDelay < c.RetryBaseDelay {
		return errors.New("config: retry max delay must be >= base delay")
	}
	if c.BreakerThreshold <= 0 {
		return errors.New("config: breaker threshold must be positive")
	}
	if c.BreakerResetTimeout <= 0 {
		return errors.New("config: breaker reset timeout must be positive")
	}
	if c.BreakerMonitoringPeriod <= 0 {
		return errors.New("config: breaker monitoring period must be positive")
	}
	if c.RateLimit <= 0 {
		return errors.New("config: rate limit must be positive")
	}
	return c.Observe.Validate()
}

// Resilience builds the executor configuration.
func (c *Config) Resilience() resilience.ExecutorConfig {
	return resilience.ExecutorConfig{
		Retry: resilience.RetryPolicy{
			MaxRetries: c.MaxRetries,
			BaseDelay:  c.RetryBaseDelay,
			MaxDelay:   c.RetryMaxDelay,
		},
		Breaker: resilience.BreakerConfig{
			FailureThreshold: c.BreakerThreshold,
			ResetTimeout:     c.BreakerResetTimeout,
			MonitoringPeriod: c.BreakerMonitoringPeriod,
		},
		Disabled: c.ResilienceDisabled,
	}
}

// String renders the configuration with the token redacted.
func (c *Config) String() string {
	token := ""
	if c.APIToken != "" {
		token = "****"
	}
	return fmt.Sprintf("Config{BaseURL: %s, APIToken: %s, Timeout: %s, MaxRetries: %d, BreakerThreshold: %d, RateLimit: %g}",
		c.BaseURL, token, c.Timeout, c.MaxRetries, c.BreakerThreshold, c.RateLimit)
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
