// Package bench records every algorithm over shared random inputs of several
// sizes, one goroutine per algorithm and size.
package bench

import (
	"context"
	"sync"
	"time"

	"github.com/san-kum/sortviz/internal/anim"
	"github.com/san-kum/sortviz/internal/gen"
	"github.com/san-kum/sortviz/internal/recorder"
)

type Config struct {
	Algorithms []string
	Sizes      []int
	Seed       int64
	MinValue   int
	MaxValue   int
}

type Result struct {
	Algorithm string
	Size      int
	Counts    anim.Counts
	Elapsed   time.Duration
}

// Run returns one result per algorithm and size, ordered by algorithm then
// size as given in cfg. Every algorithm sees the same input for a size.
func Run(ctx context.Context, cfg Config) ([]Result, error) {
	g := gen.New(cfg.Seed)
	inputs := make([]anim.Values, len(cfg.Sizes))
	for i, n := range cfg.Sizes {
		values, err := g.Generate(n, cfg.MinValue, cfg.MaxValue)
		if err != nil {
			return nil, err
		}
		inputs[i] = values
	}

	total := len(cfg.Algorithms) * len(inputs)
	results := make([]Result, total)
	errs := make([]error, total)

	var wg sync.WaitGroup
	for a, name := range cfg.Algorithms {
		for s, values := range inputs {
			wg.Add(1)
			go func(idx int, name string, values anim.Values) {
				defer wg.Done()
				if err := ctx.Err(); err != nil {
					errs[idx] = err
					return
				}

				start := time.Now()
				log, err := recorder.Record(values, name)
				if err != nil {
					errs[idx] = err
					return
				}
				results[idx] = Result{
					Algorithm: name,
					Size:      len(values),
					Counts:    log.Counts(),
					Elapsed:   time.Since(start),
				}
			}(a*len(inputs)+s, name, values)
		}
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Series groups compare counts per algorithm, in size order, for plotting.
func Series(results []Result, algorithms []string) [][]float64 {
	index := make(map[string]int, len(algorithms))
	series := make([][]float64, len(algorithms))
	for i, name := range algorithms {
		index[name] = i
	}
	for _, r := range results {
		if i, ok := index[r.Algorithm]; ok {
			series[i] = append(series[i], float64(r.Counts.Compares))
		}
	}
	return series
}
