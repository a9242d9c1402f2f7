package metrics

import (
	"sync"
	"time"

	"github.com/san-kum/sortviz/internal/anim"
)

// Throughput measures applied steps per second since step 0.
type Throughput struct {
	mu    sync.Mutex
	now   func() time.Time
	start time.Time
	last  time.Time
	steps int
}

func NewThroughput() *Throughput {
	return &Throughput{now: time.Now}
}

func (t *Throughput) Name() string { return "throughput" }

func (t *Throughput) OnStep(step int, ev anim.Event, frame anim.Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	if step == 0 {
		t.start, t.steps = now, 0
	}
	t.steps++
	t.last = now
}

func (t *Throughput) OnHalt(err error) {}

func (t *Throughput) Value() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	elapsed := t.last.Sub(t.start).Seconds()
	if t.steps < 2 || elapsed <= 0 {
		return 0
	}
	return float64(t.steps-1) / elapsed
}

func (t *Throughput) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.start, t.last, t.steps = time.Time{}, time.Time{}, 0
}
