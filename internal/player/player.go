package player

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/sortviz/internal/anim"
	"github.com/san-kum/sortviz/internal/logging"
)

type Option func(*Player)

func WithObserver(o Observer) Option {
	return func(p *Player) { p.observers = append(p.observers, o) }
}

func WithLogger(l *logging.Logger) Option {
	return func(p *Player) { p.logger = l }
}

// Player owns a display and runs at most one playback against it.
type Player struct {
	display   *anim.Display
	observers []Observer
	logger    *logging.Logger

	mu      sync.Mutex
	current *Playback

	// notify is held while observers run and while the display generation
	// moves on, so a superseded step never reaches observers afterwards.
	notify sync.Mutex
}

func New(display *anim.Display, opts ...Option) *Player {
	p := &Player{
		display: display,
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Player) Display() *anim.Display { return p.display }

func (p *Player) AddObserver(o Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, o)
}

// Play is PlayContext with a background context.
func (p *Player) Play(log anim.Log, delay time.Duration) (*Playback, error) {
	return p.PlayContext(context.Background(), log, delay)
}

// PlayContext validates the whole log, supersedes any running playback and
// schedules one display update per event, step t at offset t*delay. It
// returns without waiting for any step. An invalid log fails with
// anim.ErrInvalidAnimationEvent before anything is scheduled.
//
// The playback takes ownership of log; callers must not modify it afterwards.
func (p *Player) PlayContext(ctx context.Context, log anim.Log, delay time.Duration) (*Playback, error) {
	if delay < 0 {
		return nil, fmt.Errorf("step delay must be non-negative, got %v", delay)
	}
	if err := log.Validate(p.display.Len()); err != nil {
		p.logger.Error("rejecting animation log", "events", len(log), "err", err)
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current != nil {
		p.current.cancel()
	}

	p.notify.Lock()
	var gen uint64
	if len(log) == 0 {
		gen = p.display.Invalidate()
	} else {
		gen = p.display.Restart()
	}
	p.notify.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)

	pb := &Playback{
		id:        uuid.NewString(),
		stepper:   NewStepper(p.display, log, gen),
		display:   p.display,
		gen:       gen,
		notify:    &p.notify,
		total:     len(log),
		delay:     delay,
		cancel:    cancel,
		done:      make(chan struct{}),
		observers: observers,
	}
	pb.logger = p.logger.With("playback", pb.id)
	p.current = pb

	pb.logger.Debug("playback scheduled", "events", pb.total, "delay", delay)
	go pb.run(runCtx)

	return pb, nil
}

// Stop cancels the current playback and invalidates any step in flight.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return
	}
	p.current.cancel()
	p.notify.Lock()
	p.display.Invalidate()
	p.notify.Unlock()
}

func (p *Player) Current() *Playback {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Active reports whether a playback is still running.
func (p *Player) Active() bool {
	pb := p.Current()
	return pb != nil && !pb.Finished()
}

// Playback is one scheduled run of a log.
type Playback struct {
	id        string
	stepper   *Stepper
	display   *anim.Display
	gen       uint64
	notify    *sync.Mutex
	total     int
	delay     time.Duration
	cancel    context.CancelFunc
	done      chan struct{}
	observers []Observer
	logger    *logging.Logger

	applied atomic.Int64
	mu      sync.Mutex
	err     error
}

func (pb *Playback) ID() string            { return pb.id }
func (pb *Playback) Done() <-chan struct{} { return pb.done }
func (pb *Playback) Delay() time.Duration  { return pb.delay }

// Stop cancels the remaining steps and, if this playback still owns the
// display, invalidates its generation. A step already applying finishes; no
// step applies afterwards.
func (pb *Playback) Stop() {
	pb.cancel()
	pb.notify.Lock()
	pb.display.Supersede(pb.gen)
	pb.notify.Unlock()
}

func (pb *Playback) Finished() bool {
	select {
	case <-pb.done:
		return true
	default:
		return false
	}
}

// Progress returns how many steps have been applied out of the total.
func (pb *Playback) Progress() (applied, total int) {
	return int(pb.applied.Load()), pb.total
}

// Err is nil while running and after a complete run. It is ErrCanceled for
// a stopped or superseded run, or an *anim.EventError wrapping
// anim.ErrInvalidAnimationEvent for a halted one.
func (pb *Playback) Err() error {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.err
}

// Wait blocks until the playback ends or ctx is done.
func (pb *Playback) Wait(ctx context.Context) error {
	select {
	case <-pb.done:
		return pb.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (pb *Playback) run(ctx context.Context) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	start := time.Now()
	for step := 0; step < pb.total; step++ {
		wait := time.Until(start.Add(time.Duration(step) * pb.delay))
		if wait > 0 {
			if timer == nil {
				timer = time.NewTimer(wait)
			} else {
				timer.Reset(wait)
			}
			select {
			case <-ctx.Done():
				pb.finish(ErrCanceled)
				return
			case <-timer.C:
			}
		} else if ctx.Err() != nil {
			pb.finish(ErrCanceled)
			return
		}

		ev, _ := pb.stepper.Peek()
		if err := pb.stepper.Step(); err != nil {
			pb.finish(err)
			return
		}
		pb.applied.Add(1)

		if len(pb.observers) > 0 {
			pb.notifyStep(step, ev)
		}
	}

	pb.finish(nil)
}

func (pb *Playback) notifyStep(step int, ev anim.Event) {
	pb.notify.Lock()
	defer pb.notify.Unlock()
	frame := pb.display.Snapshot()
	if frame.Generation != pb.gen {
		return
	}
	for _, o := range pb.observers {
		o.OnStep(step, ev, frame)
	}
}

func (pb *Playback) finish(err error) {
	pb.stepper.release()
	pb.cancel()

	pb.mu.Lock()
	pb.err = err
	pb.mu.Unlock()

	applied, total := pb.Progress()
	switch {
	case err == nil:
		pb.logger.Info("playback complete", "steps", total)
	case errors.Is(err, ErrCanceled):
		pb.logger.Debug("playback canceled", "applied", applied, "total", total)
	default:
		pb.logger.Error("playback halted", "applied", applied, "total", total, "err", err)
	}

	for _, o := range pb.observers {
		o.OnHalt(err)
	}
	close(pb.done)
}
