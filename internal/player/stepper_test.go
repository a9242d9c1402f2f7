package player_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sortviz/internal/anim"
	"github.com/san-kum/sortviz/internal/player"
	"github.com/san-kum/sortviz/internal/recorder"
)

var _ = Describe("Stepper", func() {
	var display *anim.Display

	BeforeEach(func() {
		display = anim.NewDisplay(anim.Values{5, 3, 1, 4, 2})
	})

	stepAll := func(s *player.Stepper) {
		for !s.Done() {
			Expect(s.Step()).To(Succeed())
		}
	}

	It("moves compare marks and reverts the previous pair in the same step", func() {
		s := player.NewStepper(display, anim.Log{anim.Compare(0, 1), anim.Compare(1, 2)}, display.Generation())

		Expect(s.Step()).To(Succeed())
		Expect(display.Snapshot().Markers).To(Equal([]anim.Marker{
			anim.MarkerComparing, anim.MarkerComparing, anim.MarkerDefault, anim.MarkerDefault, anim.MarkerDefault,
		}))

		Expect(s.Step()).To(Succeed())
		Expect(display.Snapshot().Markers).To(Equal([]anim.Marker{
			anim.MarkerDefault, anim.MarkerComparing, anim.MarkerComparing, anim.MarkerDefault, anim.MarkerDefault,
		}))
	})

	It("exchanges values on swap and leaves markers alone", func() {
		s := player.NewStepper(display, anim.Log{anim.Compare(0, 2), anim.Swap(2, 0)}, display.Generation())
		stepAll(s)

		f := display.Snapshot()
		Expect(f.Values).To(Equal(anim.Values{1, 3, 5, 4, 2}))
		Expect(f.Markers[0]).To(Equal(anim.MarkerComparing))
		Expect(f.Markers[2]).To(Equal(anim.MarkerComparing))
	})

	It("keeps settled positions settled through later compares", func() {
		log := anim.Log{anim.Compare(0, 1), anim.Finalize(0), anim.Compare(0, 2), anim.Compare(3, 4)}
		s := player.NewStepper(display, log, display.Generation())
		stepAll(s)

		f := display.Snapshot()
		Expect(f.Markers[0]).To(Equal(anim.MarkerSettled))
		Expect(f.Markers[1]).To(Equal(anim.MarkerDefault))
		Expect(f.Markers[2]).To(Equal(anim.MarkerDefault))
		Expect(f.Markers[3]).To(Equal(anim.MarkerComparing))
	})

	It("halts on an event it cannot interpret", func() {
		log := anim.Log{anim.Swap(0, 1), {Kind: 42, I: 0, J: 1}, anim.Swap(0, 1)}
		s := player.NewStepper(display, log, display.Generation())

		Expect(s.Step()).To(Succeed())
		err := s.Step()
		Expect(err).To(MatchError(anim.ErrInvalidAnimationEvent))

		var evErr *anim.EventError
		Expect(err).To(BeAssignableToTypeOf(evErr))
		Expect(s.Done()).To(BeTrue())
		Expect(s.Step()).To(MatchError(anim.ErrInvalidAnimationEvent))
		Expect(display.Values()).To(Equal(anim.Values{3, 5, 1, 4, 2}))
	})

	It("halts on an index outside the display", func() {
		s := player.NewStepper(display, anim.Log{anim.Finalize(5)}, display.Generation())
		Expect(s.Step()).To(MatchError(anim.ErrInvalidAnimationEvent))
		Expect(display.Snapshot().Settled()).To(BeZero())
	})

	It("drops steps once the display generation moves on", func() {
		s := player.NewStepper(display, anim.Log{anim.Swap(0, 1), anim.Swap(0, 1)}, display.Generation())
		Expect(s.Step()).To(Succeed())

		display.Invalidate()
		Expect(s.Step()).To(MatchError(player.ErrCanceled))
		Expect(display.Values()).To(Equal(anim.Values{3, 5, 1, 4, 2}))
	})

	for _, alg := range recorder.Algorithms() {
		alg := alg
		It("replays a "+alg+" log to a sorted, fully settled display", func() {
			input := anim.Values{9, 4, 7, 1, 8, 2, 2, 6, 3, 5, 0}
			log, err := recorder.Record(input, alg)
			Expect(err).NotTo(HaveOccurred())

			d := anim.NewDisplay(input)
			s := player.NewStepper(d, log, d.Generation())
			settled := make([]bool, len(input))
			for !s.Done() {
				Expect(s.Step()).To(Succeed())
				for i, m := range d.Snapshot().Markers {
					if settled[i] {
						Expect(m).To(Equal(anim.MarkerSettled), "position %d left settled", i)
					}
					settled[i] = m == anim.MarkerSettled
				}
			}

			f := d.Snapshot()
			Expect(f.Values.IsSorted()).To(BeTrue())
			Expect(f.Values).To(ConsistOf(0.0, 1.0, 2.0, 2.0, 3.0, 4.0, 5.0, 6.0, 7.0, 8.0, 9.0))
			Expect(f.Settled()).To(Equal(len(input)))
		})
	}
})
