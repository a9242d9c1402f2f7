// Package recorder runs sorting algorithms over a private copy of the input
// and records every compare, swap and finalize they perform as an anim.Log.
package recorder

import (
	"fmt"
	"sort"

	"github.com/san-kum/sortviz/internal/anim"
)

const (
	Selection = "selection"
	Bubble    = "bubble"
	Insertion = "insertion"
	Merge     = "merge"
	Quick     = "quick"
	Heap      = "heap"
)

type sortFunc func(t *tape)

type algorithm struct {
	run  sortFunc
	info string
}

type Registry struct {
	algorithms map[string]algorithm
}

func NewRegistry() *Registry {
	r := &Registry{algorithms: make(map[string]algorithm)}

	r.algorithms[Selection] = algorithm{selectionSort, "minimum scan of the unsorted suffix"}
	r.algorithms[Bubble] = algorithm{bubbleSort, "adjacent exchanges, early exit"}
	r.algorithms[Insertion] = algorithm{insertionSort, "shift left while greater"}
	r.algorithms[Merge] = algorithm{mergeSort, "top-down, in-place rotation merge"}
	r.algorithms[Quick] = algorithm{quickSort, "lomuto partition, last pivot"}
	r.algorithms[Heap] = algorithm{heapSort, "max-heap sift-down"}

	return r
}

func (r *Registry) get(name string) (algorithm, error) {
	alg, ok := r.algorithms[name]
	if !ok {
		return algorithm{}, fmt.Errorf("%w: %q", anim.ErrUnsupportedAlgorithm, name)
	}
	return alg, nil
}

// Record runs the named algorithm over a private copy of values and returns
// the events it performed. No log is returned on error.
func (r *Registry) Record(values anim.Values, name string) (anim.Log, error) {
	alg, err := r.get(name)
	if err != nil {
		return nil, err
	}
	if err := values.Validate(); err != nil {
		return nil, err
	}
	if len(values) <= 1 {
		return anim.Log{}, nil
	}

	t := newTape(values)
	alg.run(t)
	return t.log, nil
}

func (r *Registry) Supports(name string) bool {
	_, ok := r.algorithms[name]
	return ok
}

func (r *Registry) Describe(name string) string {
	return r.algorithms[name].info
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.algorithms))
	for name := range r.algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// Record uses the built-in registry.
func Record(values anim.Values, name string) (anim.Log, error) {
	return defaultRegistry.Record(values, name)
}

func Algorithms() []string      { return defaultRegistry.List() }
func Supports(name string) bool { return defaultRegistry.Supports(name) }
func Describe(name string) string {
	return defaultRegistry.Describe(name)
}
