package instrument

import (
	"context"
	"fmt"

	"github.com/vango-dev/reactor/pkg/reactive"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for reactor instrumentation.
const defaultTracerName = "reactor"

// TracingConfig configures the OpenTelemetry instrumentation.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "reactor").
	TracerName string

	// Provider is the tracer provider. If nil, the global provider is used.
	Provider trace.TracerProvider

	// Parent is the context spans are started from (default: Background).
	Parent context.Context

	// IncludeUnnamed traces unnamed batches too.
	IncludeUnnamed bool
}

// TracingOption configures the OpenTelemetry instrumentation.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(provider trace.TracerProvider) TracingOption {
	return func(c *TracingConfig) {
		c.Provider = provider
	}
}

// WithParentContext sets the context spans are started from.
func WithParentContext(ctx context.Context) TracingOption {
	return func(c *TracingConfig) {
		c.Parent = ctx
	}
}

// WithUnnamedBatches enables tracing of unnamed batches.
func WithUnnamedBatches(include bool) TracingOption {
	return func(c *TracingConfig) {
		c.IncludeUnnamed = include
	}
}

// Tracing creates a span for every named batch. The span ends when the
// batch has drained; a batch aborted by a panic ends with an error status.
// Other events are ignored.
type Tracing struct {
	reactive.NopInstrumentation

	tracer         trace.Tracer
	parent         context.Context
	includeUnnamed bool
}

var _ reactive.Instrumentation = (*Tracing)(nil)

// NewTracing creates the tracing instrumentation.
//
// The tracer uses the global OpenTelemetry tracer provider unless
// WithTracerProvider is given. Configure it in main() before creating
// signals:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func NewTracing(opts ...TracingOption) *Tracing {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Provider == nil {
		config.Provider = otel.GetTracerProvider()
	}
	if config.Parent == nil {
		config.Parent = context.Background()
	}
	return &Tracing{
		tracer:         config.Provider.Tracer(config.TracerName),
		parent:         config.Parent,
		includeUnnamed: config.IncludeUnnamed,
	}
}

// BatchStarted implements reactive.Instrumentation.
func (t *Tracing) BatchStarted(name string) reactive.BatchDone {
	if name == "" && !t.includeUnnamed {
		return func(int, error) {}
	}

	spanName := "reactor.batch"
	if name != "" {
		spanName = fmt.Sprintf("reactor.batch %s", name)
	}
	_, span := t.tracer.Start(t.parent, spanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("reactor.batch.name", name)),
	)

	return func(drained int, err error) {
		span.SetAttributes(attribute.Int("reactor.batch.drained", drained))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}
