package telemetry

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type OtlpConfig struct {
	HttpEndpoint string            `json:"http_endpoint"`
	Headers      map[string]string `json:"headers"`
}

type Config struct {
	Otlp OtlpConfig `json:"otlp"`
}

type Telemetry struct {
	TracerProvider *trace.TracerProvider
}

func (t Telemetry) Shutdown(ctx context.Context) error {
	if t.TracerProvider == nil {
		return nil
	}
	return t.TracerProvider.Shutdown(ctx)
}

// Setup installs a global tracer provider, spans are only exported when
// an otlp endpoint is configured.
func Setup(ctx context.Context, serviceName string, config Config) (Telemetry, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*15)
	defer cancel()

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return Telemetry{}, err
	}

	opts := []trace.TracerProviderOption{trace.WithResource(r)}
	if config.Otlp.HttpEndpoint != "" {
		exporter, err := otlptracehttp.New(
			ctx,
			otlptracehttp.WithEndpointURL(config.Otlp.HttpEndpoint),
			otlptracehttp.WithHeaders(config.Otlp.Headers),
		)
		if err != nil {
			return Telemetry{}, err
		}
		opts = append(opts, trace.WithBatcher(exporter))
		slog.Info(
			"tracer export initialized",
			"type", "http",
			"endpoint", config.Otlp.HttpEndpoint,
			"headers", len(config.Otlp.Headers) > 0,
		)
	}

	tracerProvider := trace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tracerProvider)

	return Telemetry{TracerProvider: tracerProvider}, nil
}
