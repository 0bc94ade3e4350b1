package instrument

import (
	"context"
	"log/slog"

	"github.com/vango-dev/reactor/pkg/reactive"
)

// Slog logs every reactive event at debug level.
type Slog struct {
	logger *slog.Logger
}

var _ reactive.Instrumentation = (*Slog)(nil)

// NewSlog creates a logging instrumentation. A nil logger uses slog.Default.
func NewSlog(logger *slog.Logger) *Slog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Slog{logger: logger.With("component", "reactive")}
}

func (s *Slog) enabled() bool {
	return s.logger.Enabled(context.Background(), slog.LevelDebug)
}

// SignalNotified implements reactive.Instrumentation.
func (s *Slog) SignalNotified(hooks int) {
	if s.enabled() {
		s.logger.Debug("signal notified", "hooks", hooks)
	}
}

// ObserverRan implements reactive.Instrumentation.
func (s *Slog) ObserverRan(kind reactive.ObserverKind) {
	if s.enabled() {
		s.logger.Debug("observer ran", "kind", kind.String())
	}
}

// BatchStarted implements reactive.Instrumentation.
func (s *Slog) BatchStarted(name string) reactive.BatchDone {
	return func(drained int, err error) {
		if err != nil {
			s.logger.Warn("batch aborted", "batch", name, "drained", drained, "error", err)
			return
		}
		if s.enabled() {
			s.logger.Debug("batch drained", "batch", name, "drained", drained)
		}
	}
}

// Reconciled implements reactive.Instrumentation.
func (s *Slog) Reconciled(stats reactive.ReconcileStats) {
	if s.enabled() {
		s.logger.Debug("list reconciled",
			"size", stats.Size,
			"created", stats.Created,
			"reused", stats.Reused,
			"disposed", stats.Disposed,
		)
	}
}
