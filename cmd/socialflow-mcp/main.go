// Command socialflow-mcp serves SocialFlow API tools over MCP stdio.
//
// The protocol stream owns stdout, so all logs and telemetry go to
// stderr. An optional diagnostics HTTP listener exposes /healthz,
// /metrics and /circuit.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/socialflow-dev/socialflow-mcp/client"
	"github.com/socialflow-dev/socialflow-mcp/config"
	"github.com/socialflow-dev/socialflow-mcp/observe"
	"github.com/socialflow-dev/socialflow-mcp/tools"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "socialflow-mcp:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observe.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	slog.SetDefault(logger)
	logger.Info("starting", "version", version, "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg.Observe.Version = version
	provider, err := observe.Setup(ctx, cfg.Observe)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown", "error", err)
		}
	}()

	api, err := client.New(client.Config{
		BaseURL:    cfg.BaseURL,
		Token:      cfg.APIToken,
		Timeout:    cfg.Timeout,
		RateLimit:  cfg.RateLimit,
		RateBurst:  cfg.RateBurst,
		CacheTTL:   cfg.CacheTTL,
		Resilience: cfg.Resilience(),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "socialflow-mcp", Version: version}, nil)
	tools.Register(server, api)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("serving MCP on stdio")
		return server.Run(ctx, &mcp.StdioTransport{})
	})

	if cfg.DiagnosticsAddr != "" {
		group.Go(func() error {
			return serveDiagnostics(ctx, cfg.DiagnosticsAddr, api, provider, logger)
		})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func serveDiagnostics(ctx context.Context, addr string, api *client.Client, provider *observe.Provider, logger *slog.Logger) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := api.Ping(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintln(w, "ok")
	})

	mux.HandleFunc("/circuit", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		state := api.CircuitState()
		if err := json.NewEncoder(w).Encode(state); err != nil {
			logger.Error("encode circuit state", "error", err)
		}
	})

	if registry := provider.PrometheusRegistry(); registry != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("diagnostics listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
