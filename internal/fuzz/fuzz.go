package fuzz

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/vango-dev/reactor/internal/errors"
	"github.com/vango-dev/reactor/pkg/reactive"
)

// MaxMismatches bounds how many mismatches a Report keeps.
const MaxMismatches = 20

// Options configures a fuzz run.
type Options struct {
	// Iterations is the number of transitions to check.
	Iterations int

	// Seed seeds the generator. Zero picks one from the clock.
	Seed int64

	// MaxLen is the maximum list length.
	MaxLen int

	// Alphabet is the number of distinct keys.
	Alphabet int

	// Logger receives progress records. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Instrumentation is installed on the runtime driving the reconciler.
	Instrumentation reactive.Instrumentation
}

// Mismatch describes one transition that failed a check.
type Mismatch struct {
	Iteration int    `json:"iteration"`
	Prev      []int  `json:"prev"`
	Next      []int  `json:"next"`
	Reason    string `json:"reason"`
}

// Report is the result of a fuzz run.
type Report struct {
	RunID      string        `json:"runId"`
	Seed       int64         `json:"seed"`
	Iterations int           `json:"iterations"`
	Created    int           `json:"created"`
	Reused     int           `json:"reused"`
	Disposed   int           `json:"disposed"`
	Divergent  int           `json:"divergent"`
	Failures   int           `json:"failures"`
	Mismatches []Mismatch    `json:"mismatches,omitempty"`
	Duration   time.Duration `json:"durationNs"`
	Runtime    RuntimeStats  `json:"runtime"`
}

// RuntimeStats are the counters of the runtime that drove the run.
type RuntimeStats struct {
	Notifications   int `json:"notifications"`
	ObserverRuns    int `json:"observerRuns"`
	Batches         int `json:"batches"`
	Reconciliations int `json:"reconciliations"`
}

// Err returns an E103 error if any transition failed a check.
func (r *Report) Err() error {
	if r.Failures == 0 {
		return nil
	}
	err := errors.New("E103").
		WithDetailf("%d of %d transitions failed (run %s, seed %d)", r.Failures, r.Iterations, r.RunID, r.Seed)
	if len(r.Mismatches) > 0 {
		m := r.Mismatches[0]
		err = err.WithSuggestion(fmt.Sprintf("First failure: %v -> %v: %s", m.Prev, m.Next, m.Reason))
	}
	return err
}

// JSON returns the indented JSON encoding of the report.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

type item struct {
	id    int
	key   int
	index func() int
}

// state is the checker's view of the reconciler between transitions.
type state struct {
	inputs   *reactive.Signal[[]int]
	outputs  func() []*item
	nextID   int
	created  []int
	disposed []int
}

func (o Options) withDefaults() Options {
	if o.Iterations <= 0 {
		o.Iterations = 1000
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	if o.MaxLen <= 0 {
		o.MaxLen = 16
	}
	if o.Alphabet <= 0 {
		o.Alphabet = 6
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Run performs a fuzz run. The reconciler runs on a goroutine of its own
// with a fresh runtime. Run stops early when ctx is done and returns the
// partial report with ctx's error.
func Run(ctx context.Context, opts Options) (*Report, error) {
	opts = opts.withDefaults()
	report := &Report{
		RunID: uuid.NewString(),
		Seed:  opts.Seed,
	}

	done := make(chan error, 1)
	go func() {
		defer reactive.Release()
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("reconciler panicked: %v", r)
			}
			done <- err
		}()
		err = run(ctx, opts, report)
	}()
	err := <-done

	opts.Logger.Info("fuzz run finished",
		"run", report.RunID,
		"seed", report.Seed,
		"iterations", report.Iterations,
		"divergent", report.Divergent,
		"failures", report.Failures,
		"duration", report.Duration)
	return report, err
}

func run(ctx context.Context, opts Options, report *Report) error {
	rt := reactive.Current()
	cfg := rt.Config()
	cfg.Logger = opts.Logger
	cfg.Instrumentation = opts.Instrumentation
	rt.Configure(cfg)
	rng := rand.New(rand.NewPCG(uint64(opts.Seed), uint64(opts.Seed>>1)))
	started := time.Now()

	s := &state{inputs: reactive.NewSignal[[]int](nil)}
	dispose := reactive.Capture(func() {
		s.outputs = reactive.MapArray(reactive.Cell(s.inputs), func(key int, index func() int) *item {
			s.nextID++
			it := &item{id: s.nextID, key: key, index: index}
			s.created = append(s.created, it.id)
			reactive.Teardown(func() {
				s.disposed = append(s.disposed, it.id)
			})
			return it
		})
	})
	defer dispose()

	defer func() {
		report.Duration = time.Since(started)
		stats := rt.Stats()
		report.Runtime = RuntimeStats{
			Notifications:   stats.Notifications,
			ObserverRuns:    stats.ObserverRuns,
			Batches:         stats.Batches,
			Reconciliations: stats.Reconciliations,
		}
	}()

	progress := opts.Iterations / 10
	for i := 0; i < opts.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		prev := s.inputs.Peek()
		next := nextList(rng, prev, opts.MaxLen, opts.Alphabet)
		s.step(report, i, prev, next)
		report.Iterations++

		if progress > 0 && (i+1)%progress == 0 {
			opts.Logger.Debug("fuzz progress", "run", report.RunID, "iterations", i+1, "failures", report.Failures)
		}
	}
	return nil
}

// step applies one transition and checks it.
func (s *state) step(report *Report, iteration int, prev, next []int) {
	before := entries(s.outputs())
	s.created, s.disposed = s.created[:0], s.disposed[:0]

	s.inputs.Set(next)

	fail := func(format string, args ...any) {
		report.Failures++
		if len(report.Mismatches) < MaxMismatches {
			report.Mismatches = append(report.Mismatches, Mismatch{
				Iteration: iteration,
				Prev:      prev,
				Next:      next,
				Reason:    fmt.Sprintf(format, args...),
			})
		}
	}

	out := s.outputs()
	if len(out) != len(next) {
		fail("got %d outputs for %d inputs", len(out), len(next))
		return
	}

	wasLive := make(map[int]bool, len(before))
	for _, e := range before {
		wasLive[e.ID] = true
	}
	isNew := make(map[int]bool, len(s.created))
	for _, id := range s.created {
		isNew[id] = true
	}

	seen := make(map[int]bool, len(out))
	reused := 0
	for i, it := range out {
		switch {
		case it.key != next[i]:
			fail("output %d has key %d, want %d", i, it.key, next[i])
			return
		case it.index() != i:
			fail("output %d reports index %d", i, it.index())
			return
		case seen[it.id]:
			fail("output %d used twice", it.id)
			return
		case !wasLive[it.id] && !isNew[it.id]:
			fail("output %d is neither reused nor created", it.id)
			return
		}
		seen[it.id] = true
		if wasLive[it.id] {
			reused++
		}
	}

	disposed := make(map[int]bool, len(s.disposed))
	for _, id := range s.disposed {
		if disposed[id] {
			fail("output %d disposed twice", id)
			return
		}
		if !wasLive[id] || seen[id] {
			fail("output %d disposed while live", id)
			return
		}
		disposed[id] = true
	}
	if dropped := len(before) - reused; dropped != len(disposed) {
		fail("%d outputs dropped but %d disposed", dropped, len(disposed))
		return
	}

	ref, created, refDisposed := Reconcile(before, next, func() int { return -1 })
	if created != len(s.created) || refDisposed != len(s.disposed) {
		fail("created %d and disposed %d, minimum is %d and %d",
			len(s.created), len(s.disposed), created, refDisposed)
		return
	}

	report.Created += len(s.created)
	report.Disposed += len(s.disposed)
	report.Reused += reused
	for i, e := range ref {
		if e.ID != -1 && e.ID != out[i].id || e.ID == -1 && !isNew[out[i].id] {
			report.Divergent++
			break
		}
	}
}

func entries(items []*item) []Entry {
	out := make([]Entry, len(items))
	for i, it := range items {
		out[i] = Entry{ID: it.id, Key: it.key}
	}
	return out
}

// nextList returns a random successor of prev. Half of the time it is an
// unrelated list, otherwise a small edit of prev, so that common prefixes
// and suffixes show up often.
func nextList(rng *rand.Rand, prev []int, maxLen, alphabet int) []int {
	if len(prev) == 0 || rng.IntN(2) == 0 {
		next := make([]int, rng.IntN(maxLen+1))
		for i := range next {
			next[i] = rng.IntN(alphabet)
		}
		return next
	}

	next := append([]int(nil), prev...)
	switch rng.IntN(5) {
	case 0:
		i, j := rng.IntN(len(next)), rng.IntN(len(next))
		next[i], next[j] = next[j], next[i]
	case 1:
		if len(next) < maxLen {
			i := rng.IntN(len(next) + 1)
			next = append(next[:i], append([]int{rng.IntN(alphabet)}, next[i:]...)...)
		}
	case 2:
		i := rng.IntN(len(next))
		next = append(next[:i], next[i+1:]...)
	case 3:
		next[rng.IntN(len(next))] = rng.IntN(alphabet)
	case 4:
		for i, j := 0, len(next)-1; i < j; i, j = i+1, j-1 {
			next[i], next[j] = next[j], next[i]
		}
	}
	return next
}
