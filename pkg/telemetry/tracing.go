package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName — имя трейсера для спанов приложения.
const instrumentationName = "github.com/Gunvolt24/grocery"

// ShutdownFunc — остановка провайдера с дозаписью батча.
type ShutdownFunc func(context.Context) error

// SetupTracing настраивает OTLP/HTTP экспорт, семплинг и глобальные пропагаторы.
func SetupTracing(ctx context.Context, serviceName, endpoint string, sampleRatio float64) (ShutdownFunc, error) {
	if endpoint == "" {
		endpoint = "localhost:4318"
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	return Install(sdktrace.WithBatcher(exporter), serviceName, sampleRatio), nil
}

// Install — регистрирует глобальный провайдер с данным процессором спанов.
// Отдельно от SetupTracing, чтобы в тестах подставлять tracetest.SpanRecorder.
func Install(opt sdktrace.TracerProviderOption, serviceName string, sampleRatio float64) ShutdownFunc {
	// границы семплинга [0..1]
	sampleRatio = min(max(sampleRatio, 0), 1)

	tp := sdktrace.NewTracerProvider(
		opt,
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			attribute.String("telemetry.sdk", "opentelemetry"),
		)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{},
		),
	)
	return tp.Shutdown
}

// StartSpan — спан от глобального провайдера (без настройки — no-op).
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan — закрывает спан, отмечая ошибку, если она есть.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
