package field_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/runviz/internal/field"
)

var _ = Describe("Player", func() {
	var p *field.Player

	BeforeEach(func() {
		p = field.NewPlayer(4)
	})

	It("starts paused at frame zero", func() {
		Expect(p.Playing()).To(BeFalse())
		Expect(p.Index()).To(Equal(0))
	})

	It("does not advance while paused", func() {
		Expect(p.Tick()).To(BeFalse())
		Expect(p.Index()).To(Equal(0))
	})

	It("advances on each tick while playing", func() {
		p.Play()
		p.Tick()
		p.Tick()
		Expect(p.Index()).To(Equal(2))
	})

	It("wraps to zero after the last frame", func() {
		p.SetIndex(3)
		p.Play()
		Expect(p.Tick()).To(BeTrue())
		Expect(p.Index()).To(Equal(0))
	})

	It("keeps playing after a manual scrub", func() {
		p.Play()
		p.SetIndex(1)
		Expect(p.Playing()).To(BeTrue())
		p.Tick()
		Expect(p.Index()).To(Equal(2))
	})

	It("clamps SetIndex into range", func() {
		p.SetIndex(99)
		Expect(p.Index()).To(Equal(3))
		p.SetIndex(-5)
		Expect(p.Index()).To(Equal(0))
		p.Step(2)
		Expect(p.Index()).To(Equal(2))
	})

	DescribeTable("reset returns to Paused@0",
		func(prepare func(*field.Player)) {
			prepare(p)
			p.Reset()
			Expect(p.Index()).To(Equal(0))
			Expect(p.Playing()).To(BeFalse())
		},
		Entry("from paused", func(p *field.Player) {}),
		Entry("from playing mid-sequence", func(p *field.Player) { p.SetIndex(2); p.Play() }),
		Entry("from last frame", func(p *field.Player) { p.SetIndex(3) }),
	)

	Context("with a single frame", func() {
		BeforeEach(func() {
			p = field.NewPlayer(1)
		})

		It("leaves the index unchanged on tick", func() {
			p.Play()
			Expect(p.Tick()).To(BeFalse())
			Expect(p.Index()).To(Equal(0))
			Expect(p.Playing()).To(BeTrue())
		})
	})

	Context("when the frame count shrinks", func() {
		It("clamps the current index", func() {
			p.SetIndex(3)
			p.SetCount(2)
			Expect(p.Index()).To(Equal(1))
			p.SetCount(0)
			Expect(p.Index()).To(Equal(0))
		})
	})
})
