package player

import "github.com/san-kum/sortviz/internal/anim"

// Observer is notified from the playback goroutine after each applied step
// and once when the playback ends. OnHalt gets nil on completion. OnStep is
// skipped once the display has moved to a newer generation, and must not
// start or stop a playback itself.
type Observer interface {
	OnStep(step int, ev anim.Event, frame anim.Frame)
	OnHalt(err error)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Step func(step int, ev anim.Event, frame anim.Frame)
	Halt func(err error)
}

func (o ObserverFuncs) OnStep(step int, ev anim.Event, frame anim.Frame) {
	if o.Step != nil {
		o.Step(step, ev, frame)
	}
}

func (o ObserverFuncs) OnHalt(err error) {
	if o.Halt != nil {
		o.Halt(err)
	}
}
