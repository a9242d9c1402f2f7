package metrics

import (
	"sync/atomic"

	"github.com/san-kum/sortviz/internal/anim"
)

// EventCounts counts the events applied so far, per kind.
type EventCounts struct {
	compares  atomic.Int64
	swaps     atomic.Int64
	finalizes atomic.Int64
}

func NewEventCounts() *EventCounts {
	return &EventCounts{}
}

func (c *EventCounts) Name() string { return "events" }

func (c *EventCounts) OnStep(step int, ev anim.Event, frame anim.Frame) {
	if step == 0 {
		c.Reset()
	}
	switch ev.Kind {
	case anim.KindCompare:
		c.compares.Add(1)
	case anim.KindSwap:
		c.swaps.Add(1)
	case anim.KindFinalize:
		c.finalizes.Add(1)
	}
}

func (c *EventCounts) OnHalt(err error) {}

// Counts returns the counts applied so far.
func (c *EventCounts) Counts() anim.Counts {
	return anim.Counts{
		Compares:  int(c.compares.Load()),
		Swaps:     int(c.swaps.Load()),
		Finalizes: int(c.finalizes.Load()),
	}
}

// Value is the total number of applied events.
func (c *EventCounts) Value() float64 {
	return float64(c.Counts().Total())
}

func (c *EventCounts) Reset() {
	c.compares.Store(0)
	c.swaps.Store(0)
	c.finalizes.Store(0)
}
