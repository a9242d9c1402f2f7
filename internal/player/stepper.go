package player

import (
	"errors"

	"github.com/san-kum/sortviz/internal/anim"
)

var (
	// ErrCanceled is reported by a playback that was stopped or superseded
	// before its last step.
	ErrCanceled = errors.New("sortviz: playback canceled")
)

// Stepper interprets a log one event at a time. It is not safe for
// concurrent use; a Playback owns exactly one.
type Stepper struct {
	display   *anim.Display
	log       anim.Log
	gen       uint64
	next      int
	comparing []int
	err       error
}

// NewStepper binds log to display under generation gen. Steps are dropped
// once the display moves past gen.
func NewStepper(display *anim.Display, log anim.Log, gen uint64) *Stepper {
	return &Stepper{
		display:   display,
		log:       log,
		gen:       gen,
		comparing: make([]int, 0, 2),
	}
}

func (s *Stepper) Len() int  { return len(s.log) }
func (s *Stepper) Next() int { return s.next }
func (s *Stepper) Err() error { return s.err }

func (s *Stepper) Done() bool {
	return s.err != nil || s.next >= len(s.log)
}

// Peek returns the event the next Step will apply.
func (s *Stepper) Peek() (anim.Event, bool) {
	if s.Done() {
		return anim.Event{}, false
	}
	return s.log[s.next], true
}

// Step applies the next event as one display update. Once Step returns an
// error the stepper is halted and keeps returning it.
func (s *Stepper) Step() error {
	if s.err != nil {
		return s.err
	}
	if s.next >= len(s.log) {
		return nil
	}

	idx, ev := s.next, s.log[s.next]
	var stepErr error
	applied := s.display.Update(s.gen, func(values anim.Values, markers []anim.Marker) {
		stepErr = s.apply(ev, values, markers)
	})

	switch {
	case !applied:
		s.err = ErrCanceled
	case stepErr != nil:
		s.err = &anim.EventError{Index: idx, Event: ev, Wrapped: stepErr}
	default:
		s.next++
	}
	return s.err
}

func (s *Stepper) apply(ev anim.Event, values anim.Values, markers []anim.Marker) error {
	if err := ev.Check(len(values)); err != nil {
		return err
	}

	switch ev.Kind {
	case anim.KindCompare:
		for _, i := range s.comparing {
			if markers[i] == anim.MarkerComparing {
				markers[i] = anim.MarkerDefault
			}
		}
		s.comparing = s.comparing[:0]
		for _, i := range ev.Indices() {
			if markers[i] != anim.MarkerSettled {
				markers[i] = anim.MarkerComparing
				s.comparing = append(s.comparing, i)
			}
		}
	case anim.KindSwap:
		values[ev.I], values[ev.J] = values[ev.J], values[ev.I]
	case anim.KindFinalize:
		markers[ev.I] = anim.MarkerSettled
	default:
		return anim.ErrInvalidAnimationEvent
	}
	return nil
}

// release drops the log once every step has been dispatched.
func (s *Stepper) release() {
	s.log = nil
}
