// Package observability wires OpenTelemetry tracing and log export for the
// storefront. Export is optional: with no endpoint configured spans are
// recorded by a provider with no processor and logs stay local.
package observability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/F-Fleron-G/bestbuy2/internal/config"
)

// InstrumentationScope names the tracer and the bridged logger.
const InstrumentationScope = "github.com/F-Fleron-G/bestbuy2"

// Shutdown flushes and stops a pipeline.
type Shutdown func(context.Context) error

func noopShutdown(context.Context) error { return nil }

func newResource() (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

func authHeaders(cfg *config.Config) map[string]string {
	if cfg.OtelAuthHeader == "" {
		return nil
	}
	return map[string]string{"Authorization": cfg.OtelAuthHeader}
}

// SetupTracing installs a global tracer provider. With an endpoint it
// exports over OTLP/HTTP; without one it drops every span.
func SetupTracing(ctx context.Context, cfg *config.Config) (*sdktrace.TracerProvider, Shutdown, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	res, err := newResource()
	if err != nil {
		return nil, nil, err
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
	}
	if cfg.TracingEnabled() {
		exporter, err := otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(cfg.OtelEndpoint),
			otlptracehttp.WithURLPath(config.TracesPath),
			otlptracehttp.WithHeaders(authHeaders(cfg)),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("OTLP trace exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter,
			sdktrace.WithExportTimeout(config.ExportTimeout),
			sdktrace.WithMaxQueueSize(config.MaxQueueSize),
		))
	}

	provider := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(provider)
	return provider, provider.Shutdown, nil
}

// SetupLogging installs a global OTel logger provider exporting over
// OTLP/HTTP. Pair it with BridgeLogger to send zap records through it.
func SetupLogging(ctx context.Context, cfg *config.Config) (Shutdown, error) {
	if !cfg.TracingEnabled() {
		return noopShutdown, nil
	}

	res, err := newResource()
	if err != nil {
		return nil, err
	}

	exporter, err := otlploghttp.New(ctx,
		otlploghttp.WithEndpoint(cfg.OtelEndpoint),
		otlploghttp.WithURLPath(config.LogsPath),
		otlploghttp.WithHeaders(authHeaders(cfg)),
	)
	if err != nil {
		return nil, fmt.Errorf("OTLP log exporter: %w", err)
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter,
			sdklog.WithExportTimeout(config.ExportTimeout),
			sdklog.WithMaxQueueSize(config.MaxQueueSize),
		)),
	)
	global.SetLoggerProvider(provider)
	return provider.Shutdown, nil
}

// BridgeLogger returns a logger writing to base and to the global OTel
// logger provider.
func BridgeLogger(base *zap.Logger) *zap.Logger {
	otelCore := otelzap.NewCore(InstrumentationScope,
		otelzap.WithLoggerProvider(global.GetLoggerProvider()),
	)
	return base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, otelCore)
	}))
}

// Setup runs both pipelines and returns one shutdown covering them.
func Setup(ctx context.Context, cfg *config.Config) (*sdktrace.TracerProvider, Shutdown, error) {
	tp, shutdownTracing, err := SetupTracing(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	shutdownLogging, err := SetupLogging(ctx, cfg)
	if err != nil {
		return nil, nil, errors.Join(err, shutdownTracing(ctx))
	}
	return tp, func(ctx context.Context) error {
		return errors.Join(shutdownTracing(ctx), shutdownLogging(ctx))
	}, nil
}
