package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhobs/launch-dash/pkg/dispatch"
	"github.com/rhobs/launch-dash/pkg/layout"
	"github.com/rhobs/launch-dash/pkg/metrics"
	"github.com/rhobs/launch-dash/pkg/render"
)

const (
	mcpEndpoint            = "/mcp"
	healthEndpoint         = "/health"
	metricsEndpoint        = "/metrics"
	defaultShutdownTimeout = 10 * time.Second
)

// Options contains everything the dashboard HTTP server serves.
type Options struct {
	Dispatcher *dispatch.Dispatcher
	Layout     layout.Layout
	// Metrics is optional; /metrics is only mounted when set.
	Metrics *metrics.Metrics
	// MCP is optional; /mcp is only mounted when set.
	MCP             http.Handler
	Chart           render.Options
	ShutdownTimeout time.Duration
}

type dashboard struct {
	dispatcher *dispatch.Dispatcher
	layout     layout.Layout
	metrics    *metrics.Metrics
	chart      render.Options
	page       *template.Template
}

// NewHandler builds the HTTP handler serving the page, its API, and the
// optional MCP and metrics endpoints.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Dispatcher == nil {
		return nil, errors.New("a dispatcher is required")
	}

	page, err := parseDashboard()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}

	d := &dashboard{
		dispatcher: opts.Dispatcher,
		layout:     opts.Layout,
		metrics:    opts.Metrics,
		chart:      opts.Chart,
		page:       page,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", d.handlePage)
	mux.HandleFunc("GET /api/layout", d.handleLayout)
	mux.HandleFunc("POST /api/update", d.handleUpdate)
	mux.HandleFunc("GET /charts/{file}", d.handleChart)

	mux.HandleFunc(healthEndpoint, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if opts.Metrics != nil {
		mux.Handle(metricsEndpoint, promhttp.HandlerFor(opts.Metrics.Registry, promhttp.HandlerOpts{
			Registry: opts.Metrics.Registry,
		}))
	}

	if opts.MCP != nil {
		mux.Handle(mcpEndpoint, opts.MCP)
	}

	return loggingMiddleware(mux), nil
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Info("Incoming request", "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)
		slog.Debug("Request headers", "headers", r.Header)
		if r.ContentLength > 0 {
			slog.Info("Request content length", "content_length", r.ContentLength)
		}
		next.ServeHTTP(w, r)
	})
}

// Serve runs the dashboard on listenAddr until ctx is cancelled or the
// process receives SIGINT, SIGHUP or SIGTERM, then shuts down gracefully.
func Serve(ctx context.Context, opts Options, listenAddr string) error {
	handler, err := NewHandler(opts)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGHUP, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "listen_addr", listenAddr, "mcp_enabled", opts.MCP != nil)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-sigChan:
		slog.Warn("Received signal, initiating graceful shutdown", "signal", sig)
		cancel()
	case <-ctx.Done():
		slog.Warn("Context cancelled, initiating graceful shutdown")
	case err := <-serverErr:
		slog.Error("HTTP server error", "error", err)
		return err
	}

	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	slog.Info("Shutting down HTTP server gracefully")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
		return err
	}

	slog.Info("HTTP server shutdown complete")
	return nil
}
