// Package instrument provides reactive.Instrumentation implementations.
//
// Prometheus exports counters and histograms for notifications, observer
// runs, batches and list reconciliation. Tracing opens an OpenTelemetry span
// for every named batch. Slog logs each event at debug level. Multi fans
// events out to several implementations.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	reactive.Configure(reactive.Config{
//	    Instrumentation: instrument.Multi(
//	        instrument.NewPrometheus(instrument.WithRegistry(reg)),
//	        instrument.NewTracing(instrument.WithTracerName("my-app")),
//	    ),
//	})
package instrument
