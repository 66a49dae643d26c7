package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/lampara23/dise-o-web/internal/infrastructure/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Telemetry holds all OpenTelemetry components
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *metric.MeterProvider
	Logger         *slog.Logger
	// Registry backs the /metrics endpoint.
	Registry *prometheus.Registry
}

// NewTelemetry initializes all OpenTelemetry components with OTLP export
func NewTelemetry(cfg *config.OTLPConfig) (*Telemetry, error) {
	// Initialize logger first for debugging
	logger := initLogger(cfg)

	logger.Info("Initializing OpenTelemetry",
		slog.String("endpoint", cfg.Endpoint),
		slog.String("service_name", cfg.ServiceName),
	)

	res, err := newResource(cfg)
	if err != nil {
		return nil, err
	}

	tp, err := initTracerProvider(cfg, res)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer provider: %w", err)
	}

	otel.SetTracerProvider(tp)
	logger.Info("Tracer provider initialized successfully")

	registry := newRegistry()

	// Meter provider with dual exporters (OTLP + Prometheus)
	mp, err := initMeterProvider(cfg, res, registry)
	if err != nil {
		_ = tp.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to initialize meter provider: %w", err)
	}

	otel.SetMeterProvider(mp)
	setPropagator()
	logger.Info("Meter provider initialized successfully (OTLP + Prometheus exporters)")

	return &Telemetry{
		TracerProvider: tp,
		MeterProvider:  mp,
		Logger:         logger,
		Registry:       registry,
	}, nil
}

// NewNoOpTelemetry creates a telemetry instance that exports nothing over OTLP.
// Spans are still created so logs carry trace ids, and metrics are still
// served on /metrics through the Prometheus registry.
func NewNoOpTelemetry(cfg *config.OTLPConfig) *Telemetry {
	logger := initLogger(cfg)

	tp := sdktrace.NewTracerProvider()

	registry := newRegistry()
	mp, err := initPrometheusMeterProvider(registry)
	if err != nil {
		logger.Warn("Prometheus exporter unavailable, metrics are dropped", slog.String("error", err.Error()))
		mp = metric.NewMeterProvider()
	}

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	setPropagator()

	logger.Info("Telemetry initialized in no-op mode (export disabled)")

	return &Telemetry{
		TracerProvider: tp,
		MeterProvider:  mp,
		Logger:         logger,
		Registry:       registry,
	}
}

// NewDiscardTelemetry is NewNoOpTelemetry with logs discarded. It leaves the
// global providers untouched and is meant for tests.
func NewDiscardTelemetry() *Telemetry {
	registry := newRegistry()
	mp, err := initPrometheusMeterProvider(registry)
	if err != nil {
		mp = metric.NewMeterProvider()
	}
	return &Telemetry{
		TracerProvider: sdktrace.NewTracerProvider(),
		MeterProvider:  mp,
		Logger:         slog.New(slog.NewJSONHandler(io.Discard, nil)),
		Registry:       registry,
	}
}

// Shutdown gracefully shuts down all telemetry components
func (t *Telemetry) Shutdown(ctx context.Context) error {
	t.Logger.Info("Shutting down OpenTelemetry")

	if err := t.TracerProvider.Shutdown(ctx); err != nil {
		t.Logger.Error("Failed to shutdown tracer provider", slog.String("error", err.Error()))
		return err
	}

	if err := t.MeterProvider.Shutdown(ctx); err != nil {
		t.Logger.Error("Failed to shutdown meter provider", slog.String("error", err.Error()))
		return err
	}

	t.Logger.Info("OpenTelemetry shutdown successfully")
	return nil
}

func newRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func setPropagator() {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}
