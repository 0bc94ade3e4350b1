package live

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/reactor/pkg/instrument"
	"github.com/vango-dev/reactor/pkg/reactive"
)

// Options configures a Server.
type Options struct {
	// Addr is the listen address used by Run.
	Addr string

	// Interval is the time between demo steps (default: 500ms).
	Interval time.Duration

	// Items is the number of distinct demo items.
	Items int

	// Seed seeds the demo edits.
	Seed int64

	// Logger receives server records. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Instrumentation is added to the demo runtime next to the server's
	// Prometheus metrics.
	Instrumentation reactive.Instrumentation

	// TracerProvider traces HTTP requests. If nil, the global provider is
	// used.
	TracerProvider trace.TracerProvider
}

// Server serves the live demo.
type Server struct {
	opts     Options
	demo     *Demo
	hub      *Hub
	registry *prometheus.Registry
	router   chi.Router
	frames   prometheus.Counter
	logger   *slog.Logger
}

// NewServer creates a server with its own metrics registry and demo.
func NewServer(opts Options) *Server {
	if opts.Interval <= 0 {
		opts.Interval = 500 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.TracerProvider == nil {
		opts.TracerProvider = otel.GetTracerProvider()
	}
	logger := opts.Logger.With("component", "live")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	s := &Server{
		opts:     opts,
		registry: registry,
		logger:   logger,
		frames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "reactor",
			Subsystem: "live",
			Name:      "frames_total",
			Help:      "Total number of patch frames broadcast",
		}),
	}

	s.demo = NewDemo(DemoOptions{
		Items:  opts.Items,
		Seed:   opts.Seed,
		Logger: logger,
		Instrumentation: instrument.Multi(
			instrument.NewPrometheus(instrument.WithRegistry(registry)),
			opts.Instrumentation,
		),
	})

	clients := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "reactor",
		Subsystem: "live",
		Name:      "clients",
		Help:      "Number of connected websocket clients",
	})
	s.hub = NewHub(s.demo.Snapshot, logger)
	s.hub.onCount = func(n int) { clients.Set(float64(n)) }

	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(httpMetrics(s.registry))
	r.Use(httpTracing(s.opts.TracerProvider.Tracer("reactor/live")))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Get("/snapshot", s.handleSnapshot)
	r.Get("/ws", s.hub.HandleWebSocket)
	return r
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := s.demo.Snapshot()
	if r.URL.Query().Get("format") == "json" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snap)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(snap.HTML))
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Tick advances the demo one step and broadcasts the frame. A closed
// demo yields the zero Frame, which is not broadcast.
func (s *Server) Tick() Frame {
	frame := s.demo.Step()
	if frame.Seq == 0 {
		return frame
	}
	s.hub.Broadcast(frame)
	s.frames.Inc()
	return frame
}

// Run listens on Options.Addr and ticks the demo until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is like Run with an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("serving", "addr", ln.Addr().String(), "interval", s.opts.Interval)

	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Tick()
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.hub.Close()
			err := srv.Shutdown(shutdownCtx)
			s.logger.Info("stopped")
			return err
		}
	}
}

// Close stops the demo. The server must not be used afterwards.
func (s *Server) Close() {
	s.hub.Close()
	s.demo.Close()
}
