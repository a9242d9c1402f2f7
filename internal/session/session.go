// Package session ties the generator, recorder and player together around
// one display: the values live here between runs.
package session

import (
	"fmt"
	"sync"

	"github.com/san-kum/sortviz/internal/anim"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/gen"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/player"
	"github.com/san-kum/sortviz/internal/recorder"
)

type Option func(*Session)

func WithObserver(o player.Observer) Option {
	return func(s *Session) { s.observers = append(s.observers, o) }
}

func WithLogger(l *logging.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// Stats describes the last recorded run.
type Stats struct {
	RunID     string
	Algorithm string
	Size      int
	Counts    anim.Counts
}

type Session struct {
	cfg       *config.Config
	gen       *gen.Generator
	display   *anim.Display
	player    *player.Player
	logger    *logging.Logger
	observers []player.Observer
	seed      int64

	counts     *metrics.EventCounts
	throughput *metrics.Throughput

	mu    sync.Mutex
	stats Stats
}

// New seeds the generator from cfg and generates the first sequence.
func New(cfg *config.Config, opts ...Option) (*Session, error) {
	s := &Session{
		cfg:        cfg.Clone(),
		display:    anim.NewDisplay(nil),
		logger:     logging.Default(),
		counts:     metrics.NewEventCounts(),
		throughput: metrics.NewThroughput(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.seed = s.cfg.EffectiveSeed()
	s.gen = gen.New(s.seed)
	s.logger = s.logger.With("component", "session")
	s.logger.Debug("session created", "seed", s.seed)

	popts := []player.Option{
		player.WithLogger(s.logger),
		player.WithObserver(s.counts),
		player.WithObserver(s.throughput),
	}
	for _, o := range s.observers {
		popts = append(popts, player.WithObserver(o))
	}
	s.player = player.New(s.display, popts...)

	if _, err := s.Regenerate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Regenerate stops any running playback and replaces the values with a
// fresh random sequence.
func (s *Session) Regenerate() (anim.Values, error) {
	values, err := s.gen.Generate(s.cfg.Length, s.cfg.MinValue, s.cfg.MaxValue)
	if err != nil {
		return nil, err
	}
	s.player.Stop()
	s.display.Reset(values)
	s.logger.Debug("values regenerated", "length", len(values))
	return values.Clone(), nil
}

// SetValues replaces the sequence with values after validating them.
func (s *Session) SetValues(values anim.Values) error {
	if err := values.Validate(); err != nil {
		return err
	}
	s.player.Stop()
	s.display.Reset(values.Clone())
	return nil
}

// Sort records algorithm over the current values and starts playing the log
// with the configured step delay. An empty algorithm uses the configured
// one. A rejected algorithm or input leaves the display untouched.
func (s *Session) Sort(algorithm string) (*player.Playback, error) {
	if algorithm == "" {
		algorithm = s.Algorithm()
	}
	if !recorder.Supports(algorithm) {
		return nil, fmt.Errorf("%w: %q", anim.ErrUnsupportedAlgorithm, algorithm)
	}

	s.player.Stop()
	values := s.display.Values()

	log, err := recorder.Record(values, algorithm)
	if err != nil {
		return nil, err
	}

	return s.start(algorithm, values, log)
}

// Replay resets the display to values and plays a previously recorded log
// over them. A log that does not fit values fails with
// anim.ErrInvalidAnimationEvent before any step runs.
func (s *Session) Replay(algorithm string, values anim.Values, log anim.Log) (*player.Playback, error) {
	if err := values.Validate(); err != nil {
		return nil, err
	}
	if err := log.Validate(len(values)); err != nil {
		s.logger.Error("rejecting recorded log", "algorithm", algorithm, "events", len(log), "err", err)
		return nil, err
	}
	s.player.Stop()
	s.display.Reset(values)
	return s.start(algorithm, values, log)
}

func (s *Session) start(algorithm string, values anim.Values, log anim.Log) (*player.Playback, error) {
	s.counts.Reset()
	s.throughput.Reset()
	pb, err := s.player.Play(log, s.cfg.StepDelay())
	if err != nil {
		return nil, err
	}

	stats := Stats{
		RunID:     pb.ID(),
		Algorithm: algorithm,
		Size:      len(values),
		Counts:    log.Counts(),
	}
	s.mu.Lock()
	s.stats = stats
	s.mu.Unlock()

	s.logger.Info("sort started",
		"run", stats.RunID,
		"algorithm", algorithm,
		"size", stats.Size,
		"compares", stats.Counts.Compares,
		"swaps", stats.Counts.Swaps,
		"finalizes", stats.Counts.Finalizes,
	)
	return pb, nil
}

func (s *Session) Stop() { s.player.Stop() }

func (s *Session) Active() bool { return s.player.Active() }

func (s *Session) Display() *anim.Display { return s.display }

func (s *Session) Frame() anim.Frame { return s.display.Snapshot() }

func (s *Session) Config() *config.Config { return s.cfg.Clone() }

// Seed returns the seed the generator was created with, which is the
// time-based one when the config leaves it at zero.
func (s *Session) Seed() int64 { return s.seed }

// SetAlgorithm changes the default algorithm used by Sort("").
func (s *Session) SetAlgorithm(algorithm string) error {
	if !recorder.Supports(algorithm) {
		return fmt.Errorf("%w: %q", anim.ErrUnsupportedAlgorithm, algorithm)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Algorithm = algorithm
	return nil
}

func (s *Session) Algorithm() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Algorithm
}

func (s *Session) LastStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Applied returns the events applied so far by the latest run.
func (s *Session) Applied() anim.Counts { return s.counts.Counts() }

// Rate returns the latest run's applied steps per second.
func (s *Session) Rate() float64 { return s.throughput.Value() }
