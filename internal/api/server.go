// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware for the webguard service.
package api

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"time"
	"webguard/internal/api/handler/v1handler"
	"webguard/internal/config"
	"webguard/pkg/controller"
	"webguard/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riverqueue/river"
	"github.com/swaggest/swgui/v5emb"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"riverqueue.com/riverui"
)

// v1Spec contains the embedded OpenAPI specification for version 1 of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

const meterName = "webguard/internal/api"

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// All durations are used to configure server timeouts, and zero values
// should be considered as using the defaults provided by net/http where applicable.
type Options struct {
	// SecHandlerOptions configures the bearer token verification of v1 endpoints.
	SecHandlerOptions *v1handler.SecHandlerOptions

	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout bounds every v1 request except the settings event stream.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MaxBodyBytes limits the size of request bodies.
	MaxBodyBytes int64
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// AllowedOrigins are the CORS origin patterns.
	AllowedOrigins []string
	// EnableRiverUI mounts the job dashboard when a job client is available.
	EnableRiverUI bool
	// Registerer receives the HTTP metrics. Nil means prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
	// Gatherer backs the metrics endpoint. Nil means prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// NewOptions constructs an Options value from the provided application configuration.
// It maps HTTP server-related settings from config.Config to the Options used by the API server.
func NewOptions(cfg *config.Config) Options {
	return Options{
		SecHandlerOptions: v1handler.NewSecHandlerOptions(cfg),

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		EnableRiverUI:     cfg.HTTP.EnableRiverUI,
	}
}

// Deps are the collaborators of the server. Redis, Storage and Jobs may be nil;
// the health check then reports them as not configured and the job dashboard
// is not mounted.
type Deps struct {
	v1handler.Deps

	Redis   Pinger
	Storage Pinger
	Jobs    *river.Client[pgx.Tx]
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// It sets up:
// - Prometheus metrics endpoint (MetricsPath) and OpenTelemetry HTTP metrics
// - Embedded OpenAPI v1 spec and Swagger UI
// - v1 API routes
// - health check, pprof endpoints and the optional River dashboard
// Every route is wrapped with logging, security headers, CORS and a body limit.
func NewServer(ctx context.Context, deps Deps, opts Options) (*http.Server, error) {
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}

	// otel
	exp, err := otelprom.New(otelprom.WithRegisterer(opts.Registerer))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))
	httpMetrics, err := controller.NewHTTPMetrics(mp.Meter(meterName))
	if err != nil {
		return nil, fmt.Errorf("could not create http metrics: %w", err)
	}

	cors, err := controller.NewCORS(opts.AllowedOrigins)
	if err != nil {
		return nil, fmt.Errorf("could not create cors handler: %w", err)
	}

	secHandler, err := v1handler.NewSecHandler(opts.SecHandlerOptions)
	if err != nil {
		return nil, fmt.Errorf("could not create sec handler: %w", err)
	}

	r := chi.NewRouter()
	r.Use(
		controller.WithLogger,
		controller.WithSecurityHeaders,
		cors.Handler,
		controller.WithBodyLimit(opts.MaxBodyBytes),
		httpMetrics.Handler,
	)

	// prometheus metrics server
	r.Handle(opts.MetricsPath, promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))

	r.Get("/healthz", newHealthHandler(deps.Redis, deps.Storage).ServeHTTP)

	// v1 specs file
	r.Get("/specs/v1.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})

	// v1 api, with the swagger playground under /v1/docs/
	r.Mount("/v1", v1handler.New(deps.Deps).Router(v1handler.RouterOptions{
		Sec:     secHandler,
		Timeout: opts.RequestTimeout,
		Docs: v5emb.New(
			"Webguard API",
			"/specs/v1.yaml",
			"/v1/docs/",
		),
	}))

	// pprof
	r.Mount("/debug/pprof", controller.PprofRouter())

	if opts.EnableRiverUI && deps.Jobs != nil {
		ui, err := newRiverUI(ctx, deps.Jobs)
		if err != nil {
			return nil, err
		}
		r.Mount("/riverui", ui)
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           r,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}

func newRiverUI(ctx context.Context, jobs *river.Client[pgx.Tx]) (http.Handler, error) {
	ui, err := riverui.NewHandler(&riverui.HandlerOpts{
		Endpoints: riverui.NewEndpoints(jobs, nil),
		Logger:    logger.Slog(ctx),
		Prefix:    "/riverui",
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river ui: %w", err)
	}
	if err := ui.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river ui: %w", err)
	}

	return ui, nil
}
