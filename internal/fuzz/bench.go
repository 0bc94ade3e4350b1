package fuzz

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/vango-dev/reactor/pkg/reactive"
)

// BenchOptions configures Bench.
type BenchOptions struct {
	// Size is the list length.
	Size int

	// Rounds is the number of reconciliations per scenario.
	Rounds int

	// Seed seeds the shuffle scenario.
	Seed int64
}

// BenchResult is the timing of one scenario.
type BenchResult struct {
	Scenario string        `json:"scenario"`
	Rounds   int           `json:"rounds"`
	Total    time.Duration `json:"totalNs"`
	PerOp    time.Duration `json:"perOpNs"`
	Created  int           `json:"created"`
	Disposed int           `json:"disposed"`
}

// scenario derives the next list from the current one.
type scenario struct {
	name string
	edit func(rng *rand.Rand, list []int, fresh func() int) []int
}

var scenarios = []scenario{
	{"append", func(_ *rand.Rand, list []int, fresh func() int) []int {
		return append(list[1:len(list):len(list)], fresh())
	}},
	{"prepend", func(_ *rand.Rand, list []int, fresh func() int) []int {
		return append([]int{fresh()}, list[:len(list)-1]...)
	}},
	{"swap", func(_ *rand.Rand, list []int, _ func() int) []int {
		next := append([]int(nil), list...)
		next[1], next[len(next)-2] = next[len(next)-2], next[1]
		return next
	}},
	{"reverse", func(_ *rand.Rand, list []int, _ func() int) []int {
		next := make([]int, len(list))
		for i, v := range list {
			next[len(list)-1-i] = v
		}
		return next
	}},
	{"shuffle", func(rng *rand.Rand, list []int, _ func() int) []int {
		next := append([]int(nil), list...)
		rng.Shuffle(len(next), func(i, j int) { next[i], next[j] = next[j], next[i] })
		return next
	}},
	{"remove-middle", func(_ *rand.Rand, list []int, fresh func() int) []int {
		mid := len(list) / 2
		next := append([]int(nil), list[:mid]...)
		next = append(next, list[mid+1:]...)
		return append(next, fresh())
	}},
	{"replace-all", func(_ *rand.Rand, list []int, fresh func() int) []int {
		next := make([]int, len(list))
		for i := range next {
			next[i] = fresh()
		}
		return next
	}},
}

// Bench times every scenario on a list of distinct keys. Each scenario runs
// on a fresh runtime in a goroutine of its own.
func Bench(ctx context.Context, opts BenchOptions) ([]BenchResult, error) {
	if opts.Size < 4 {
		opts.Size = 4
	}
	if opts.Rounds <= 0 {
		opts.Rounds = 1
	}

	results := make([]BenchResult, 0, len(scenarios))
	for _, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		done := make(chan BenchResult, 1)
		go func() {
			defer reactive.Release()
			done <- bench(sc, opts)
		}()
		results = append(results, <-done)
	}
	return results, nil
}

func bench(sc scenario, opts BenchOptions) BenchResult {
	rng := rand.New(rand.NewPCG(uint64(opts.Seed), 1))
	key := 0
	fresh := func() int {
		key++
		return key
	}

	list := make([]int, opts.Size)
	for i := range list {
		list[i] = fresh()
	}
	inputs := reactive.NewSignal(list)

	result := BenchResult{Scenario: sc.name, Rounds: opts.Rounds}
	counting := false
	dispose := reactive.Capture(func() {
		reactive.MapArray(reactive.Cell(inputs), func(k int, _ func() int) int {
			if counting {
				result.Created++
			}
			reactive.Teardown(func() {
				if counting {
					result.Disposed++
				}
			})
			return k
		})
	})
	defer dispose()

	counting = true
	for i := 0; i < opts.Rounds; i++ {
		list = sc.edit(rng, list, fresh)
		started := time.Now()
		inputs.Set(list)
		result.Total += time.Since(started)
	}
	counting = false

	result.PerOp = result.Total / time.Duration(opts.Rounds)
	return result
}
