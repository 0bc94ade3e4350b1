package instrument

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/vango-dev/reactor/pkg/reactive"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricHistogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func TestPrometheusRecordsReactiveEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(WithRegistry(reg), WithNamespace("test"))
	reactive.Current().Configure(reactive.Config{Instrumentation: p})

	s := reactive.NewSignal(0)
	reactive.Effect(func() { s.Get() })
	reactive.BatchNamed("save", func() { s.Set(1) })

	if got := counterValue(t, p.notifications); got != 1 {
		t.Errorf("notifications = %v, want 1", got)
	}
	if got := counterValue(t, p.observerRuns.WithLabelValues("effect")); got != 2 {
		t.Errorf("effect runs = %v, want 2", got)
	}
	if got := counterValue(t, p.batches.WithLabelValues("save", "ok")); got != 1 {
		t.Errorf("batches = %v, want 1", got)
	}
	if got := metricHistogramCount(t, p.batchDrained); got != 1 {
		t.Errorf("drained samples = %v, want 1", got)
	}

	items := reactive.NewSignal([]int{1, 2, 3})
	reactive.MapArray(reactive.Cell(items), func(v int, _ func() int) int { return v })
	items.Set([]int{3, 4})

	if got := counterValue(t, p.reconciliation); got != 2 {
		t.Errorf("reconciliations = %v, want 2", got)
	}
	if got := counterValue(t, p.entries.WithLabelValues("created")); got != 4 {
		t.Errorf("created = %v, want 4", got)
	}
	if got := counterValue(t, p.entries.WithLabelValues("disposed")); got != 2 {
		t.Errorf("disposed = %v, want 2", got)
	}
	if got := counterValue(t, p.entries.WithLabelValues("reused")); got != 1 {
		t.Errorf("reused = %v, want 1", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	series := 0
	for _, mf := range families {
		if mf.GetName() == "test_batches_total" {
			series = len(mf.GetMetric())
		}
	}
	if series != 2 {
		t.Errorf("test_batches_total has %d series, want 2", series)
	}
}

func TestPrometheusAbortedBatch(t *testing.T) {
	p := NewPrometheus(WithRegistry(prometheus.NewRegistry()))
	p.BatchStarted("")(3, errors.New("boom"))

	if got := counterValue(t, p.batches.WithLabelValues("", "aborted")); got != 1 {
		t.Errorf("aborted batches = %v, want 1", got)
	}
}

type recordedSpan struct {
	noop.Span
	name   string
	attrs  []attribute.KeyValue
	status codes.Code
	errs   []error
	ended  bool
}

func (s *recordedSpan) SetAttributes(kv ...attribute.KeyValue) {
	s.attrs = append(s.attrs, kv...)
}

func (s *recordedSpan) RecordError(err error, _ ...trace.EventOption) {
	s.errs = append(s.errs, err)
}

func (s *recordedSpan) SetStatus(code codes.Code, _ string) {
	s.status = code
}

func (s *recordedSpan) End(...trace.SpanEndOption) {
	s.ended = true
}

type recordingTracer struct {
	noop.Tracer
	spans []*recordedSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordedSpan{name: name, attrs: cfg.Attributes()}
	t.spans = append(t.spans, s)
	return trace.ContextWithSpan(ctx, s), s
}

type recordingProvider struct {
	noop.TracerProvider
	tracer *recordingTracer
}

func (p recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return p.tracer
}

func TestTracingSpansNamedBatches(t *testing.T) {
	tracer := &recordingTracer{}
	tr := NewTracing(WithTracerProvider(recordingProvider{tracer: tracer}))
	reactive.Current().Configure(reactive.Config{Instrumentation: tr})

	reactive.Batch(func() {})
	reactive.BatchNamed("save", func() {})
	func() {
		defer func() { recover() }()
		reactive.BatchNamed("fail", func() { panic("boom") })
	}()

	if len(tracer.spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(tracer.spans))
	}
	save, fail := tracer.spans[0], tracer.spans[1]
	if save.name != "reactor.batch save" || !save.ended || save.status != codes.Ok {
		t.Errorf("unexpected save span: %+v", save)
	}
	if fail.status != codes.Error || len(fail.errs) != 1 || !fail.ended {
		t.Errorf("unexpected fail span: %+v", fail)
	}

	var drained bool
	for _, kv := range save.attrs {
		if kv.Key == "reactor.batch.drained" {
			drained = true
		}
	}
	if !drained {
		t.Error("expected drained attribute")
	}
}

func TestTracingUnnamedBatches(t *testing.T) {
	tracer := &recordingTracer{}
	tr := NewTracing(WithTracerProvider(recordingProvider{tracer: tracer}), WithUnnamedBatches(true))
	tr.BatchStarted("")(0, nil)

	if len(tracer.spans) != 1 || tracer.spans[0].name != "reactor.batch" {
		t.Errorf("expected one reactor.batch span, got %d", len(tracer.spans))
	}
}

func TestSlog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := NewSlog(logger)

	s.SignalNotified(2)
	s.ObserverRan(reactive.KindTrigger)
	s.BatchStarted("save")(4, nil)
	s.BatchStarted("")(0, errors.New("boom"))
	s.Reconciled(reactive.ReconcileStats{Size: 3, Created: 1})

	out := buf.String()
	for _, want := range []string{
		"signal notified", "hooks=2",
		"kind=trigger",
		"batch drained", "batch=save", "drained=4",
		"level=WARN", "batch aborted",
		"list reconciled", "created=1",
		"component=reactive",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSlogSkipsDebugWhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	s := NewSlog(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	s.SignalNotified(1)
	s.BatchStarted("x")(1, nil)

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

type countingInstrumentation struct {
	reactive.NopInstrumentation
	events *[]string
	name   string
}

func (c countingInstrumentation) SignalNotified(int) {
	*c.events = append(*c.events, c.name+":notify")
}

func (c countingInstrumentation) BatchStarted(string) reactive.BatchDone {
	*c.events = append(*c.events, c.name+":start")
	return func(int, error) {
		*c.events = append(*c.events, c.name+":done")
	}
}

func TestMulti(t *testing.T) {
	var events []string
	a := countingInstrumentation{events: &events, name: "a"}
	b := countingInstrumentation{events: &events, name: "b"}

	m := Multi(a, nil, b)
	m.SignalNotified(1)
	m.BatchStarted("x")(0, nil)

	want := "a:notify b:notify a:start b:start b:done a:done"
	if got := strings.Join(events, " "); got != want {
		t.Errorf("events = %q, want %q", got, want)
	}

	if single := Multi(nil, a); single != reactive.Instrumentation(a) {
		t.Error("Multi with one instrumentation should return it")
	}
}
