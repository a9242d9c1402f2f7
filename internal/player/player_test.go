package player_test

import (
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sortviz/internal/anim"
	"github.com/san-kum/sortviz/internal/player"
	"github.com/san-kum/sortviz/internal/recorder"
)

type recordingObserver struct {
	mu     sync.Mutex
	steps  []int
	events anim.Log
	frames []anim.Frame
	halts  []error
}

func (o *recordingObserver) OnStep(step int, ev anim.Event, frame anim.Frame) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.steps = append(o.steps, step)
	o.events = append(o.events, ev)
	o.frames = append(o.frames, frame)
}

func (o *recordingObserver) OnHalt(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.halts = append(o.halts, err)
}

var _ = Describe("Player", func() {
	var (
		input   anim.Values
		display *anim.Display
	)

	BeforeEach(func() {
		input = anim.Values{5, 3, 1, 4, 2}
		display = anim.NewDisplay(input)
	})

	record := func(values anim.Values, alg string) anim.Log {
		log, err := recorder.Record(values, alg)
		Expect(err).NotTo(HaveOccurred())
		return log
	}

	It("replays a selection sort to the scenario result", func() {
		p := player.New(display)
		log := record(input, recorder.Selection)

		pb, err := p.Play(log, 0)
		Expect(err).NotTo(HaveOccurred())
		Eventually(pb.Done()).Should(BeClosed())

		Expect(pb.Err()).NotTo(HaveOccurred())
		applied, total := pb.Progress()
		Expect(applied).To(Equal(total))
		Expect(total).To(Equal(len(log)))

		f := display.Snapshot()
		Expect(f.Values).To(Equal(anim.Values{1, 2, 3, 4, 5}))
		Expect(f.Settled()).To(Equal(5))
		Expect(pb.ID()).NotTo(BeEmpty())
	})

	It("returns before the steps run", func() {
		p := player.New(display)
		pb, err := p.Play(record(input, recorder.Bubble), 200*time.Millisecond)
		Expect(err).NotTo(HaveOccurred())
		defer pb.Stop()

		Consistently(func() int {
			applied, _ := pb.Progress()
			return applied
		}, 100*time.Millisecond, 10*time.Millisecond).Should(BeNumerically("<=", 1))
		Expect(pb.Finished()).To(BeFalse())
	})

	It("spaces steps by the delay", func() {
		p := player.New(display)
		log := anim.Log{anim.Compare(0, 1), anim.Compare(1, 2), anim.Compare(2, 3), anim.Compare(3, 4), anim.Finalize(0)}

		start := time.Now()
		pb, err := p.Play(log, 10*time.Millisecond)
		Expect(err).NotTo(HaveOccurred())
		Eventually(pb.Done()).Should(BeClosed())

		Expect(time.Since(start)).To(BeNumerically(">=", 40*time.Millisecond))
	})

	It("notifies observers in log order with monotonic settled markers", func() {
		obs := &recordingObserver{}
		p := player.New(display, player.WithObserver(obs))
		log := record(input, recorder.Heap)

		pb, err := p.Play(log, 0)
		Expect(err).NotTo(HaveOccurred())
		Eventually(pb.Done()).Should(BeClosed())

		obs.mu.Lock()
		defer obs.mu.Unlock()

		Expect(obs.events).To(Equal(log))
		for i, step := range obs.steps {
			Expect(step).To(Equal(i))
		}
		for i := 1; i < len(obs.frames); i++ {
			for pos, m := range obs.frames[i-1].Markers {
				if m == anim.MarkerSettled {
					Expect(obs.frames[i].Markers[pos]).To(Equal(anim.MarkerSettled))
				}
			}
		}
		Expect(obs.halts).To(HaveLen(1))
		Expect(obs.halts[0]).NotTo(HaveOccurred())
	})

	It("does not touch the display for an empty log", func() {
		one := anim.NewDisplay(anim.Values{7})
		one.Update(one.Generation(), func(_ anim.Values, m []anim.Marker) { m[0] = anim.MarkerSettled })
		before := one.Snapshot()

		p := player.New(one)
		pb, err := p.Play(record(anim.Values{7}, recorder.Quick), 0)
		Expect(err).NotTo(HaveOccurred())
		Eventually(pb.Done()).Should(BeClosed())

		after := one.Snapshot()
		Expect(after.Values).To(Equal(before.Values))
		Expect(after.Markers).To(Equal(before.Markers))
	})

	It("rejects a log it cannot interpret before scheduling anything", func() {
		p := player.New(display)
		log := anim.Log{anim.Swap(0, 1), {Kind: 0}}

		pb, err := p.Play(log, 0)
		Expect(err).To(MatchError(anim.ErrInvalidAnimationEvent))
		Expect(pb).To(BeNil())
		Expect(display.Values()).To(Equal(input))
		Expect(p.Active()).To(BeFalse())
	})

	It("rejects a negative delay", func() {
		_, err := player.New(display).Play(anim.Log{}, -time.Millisecond)
		Expect(err).To(HaveOccurred())
	})

	Describe("with a long running playback", func() {
		var (
			big   anim.Values
			p     *player.Player
			first *player.Playback
		)

		BeforeEach(func() {
			big = make(anim.Values, 30)
			for i := range big {
				big[i] = float64(30 - i)
			}
			display = anim.NewDisplay(big)
			p = player.New(display)

			var err error
			first, err = p.Play(record(big, recorder.Selection), 5*time.Millisecond)
			Expect(err).NotTo(HaveOccurred())
			Eventually(func() int {
				applied, _ := first.Progress()
				return applied
			}).Should(BeNumerically(">", 3))
		})

		AfterEach(func() {
			p.Stop()
		})

		It("cancels it when a new playback starts", func() {
			second, err := p.Play(anim.Log{anim.Compare(0, 1), anim.Finalize(0)}, 0)
			Expect(err).NotTo(HaveOccurred())

			Eventually(first.Done()).Should(BeClosed())
			Expect(first.Err()).To(MatchError(player.ErrCanceled))
			stalled, _ := first.Progress()

			Eventually(second.Done()).Should(BeClosed())
			Expect(second.Err()).NotTo(HaveOccurred())
			Expect(p.Current()).To(BeIdenticalTo(second))

			Consistently(func() int {
				applied, _ := first.Progress()
				return applied
			}, 50*time.Millisecond).Should(Equal(stalled))
		})

		It("invalidates the display when stopped directly", func() {
			before := display.Generation()
			first.Stop()

			Expect(display.Generation()).To(BeNumerically(">", before))
			Eventually(first.Done()).Should(BeClosed())
			Expect(first.Err()).To(MatchError(player.ErrCanceled))

			frozen := display.Values()
			Consistently(func() anim.Values {
				return display.Values()
			}, 30*time.Millisecond).Should(Equal(frozen))
		})

		It("leaves a newer playback alone when a superseded one is stopped", func() {
			second, err := p.Play(record(big, recorder.Insertion), time.Millisecond)
			Expect(err).NotTo(HaveOccurred())
			current := display.Generation()

			first.Stop()
			Expect(display.Generation()).To(Equal(current))

			Eventually(second.Done(), 5*time.Second).Should(BeClosed())
			Expect(second.Err()).NotTo(HaveOccurred())
			Expect(display.Values().IsSorted()).To(BeTrue())
		})

		It("steps through the log it was handed", func() {
			log := record(big, recorder.Bubble)
			pb, err := p.Play(log, 5*time.Millisecond)
			Expect(err).NotTo(HaveOccurred())
			Expect(&player.PlaybackLog(pb)[0]).To(BeIdenticalTo(&log[0]))
		})

		It("drops its steps once the display is reset", func() {
			display.Reset(big)
			Eventually(first.Done()).Should(BeClosed())
			Expect(first.Err()).To(MatchError(player.ErrCanceled))
			Expect(display.Values()).To(Equal(big))

			second, err := p.Play(record(big, recorder.Merge), 0)
			Expect(err).NotTo(HaveOccurred())
			Eventually(second.Done()).Should(BeClosed())
			Expect(second.Err()).NotTo(HaveOccurred())
			Expect(display.Values().IsSorted()).To(BeTrue())
			Expect(display.Snapshot().Settled()).To(Equal(len(big)))
		})
	})

	It("does not report a superseded run's steps once a new run starts", func() {
		big := make(anim.Values, 200)
		for i := range big {
			big[i] = float64(200 - i)
		}
		display = anim.NewDisplay(big)

		var (
			started atomic.Bool
			current atomic.Uint64
			stale   atomic.Int64
		)
		p := player.New(display, player.WithObserver(player.ObserverFuncs{
			Step: func(_ int, _ anim.Event, frame anim.Frame) {
				if started.Load() && frame.Generation != current.Load() {
					stale.Add(1)
				}
			},
		}))
		defer p.Stop()

		first, err := p.Play(record(big, recorder.Bubble), 50*time.Microsecond)
		Expect(err).NotTo(HaveOccurred())
		Eventually(func() int {
			applied, _ := first.Progress()
			return applied
		}).Should(BeNumerically(">", 0))

		second, err := p.Play(anim.Log{anim.Compare(0, 1), anim.Swap(0, 1)}, 0)
		Expect(err).NotTo(HaveOccurred())
		current.Store(display.Generation())
		started.Store(true)

		Eventually(first.Done()).Should(BeClosed())
		Eventually(second.Done()).Should(BeClosed())
		Expect(stale.Load()).To(BeZero())
	})

	It("stops without further display writes", func() {
		p := player.New(display)
		pb, err := p.Play(record(input, recorder.Selection), 20*time.Millisecond)
		Expect(err).NotTo(HaveOccurred())

		Eventually(func() int {
			applied, _ := pb.Progress()
			return applied
		}).Should(BeNumerically(">=", 2))

		p.Stop()
		Eventually(pb.Done()).Should(BeClosed())
		Expect(pb.Err()).To(MatchError(player.ErrCanceled))

		frozen := display.Snapshot()
		Consistently(func() anim.Values {
			return display.Values()
		}, 100*time.Millisecond).Should(Equal(frozen.Values))
		Expect(p.Active()).To(BeFalse())
	})
})
