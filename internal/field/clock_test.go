package field_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/runviz/internal/field"
)

var _ = Describe("Clock", func() {
	var (
		c *field.Clock
		p *field.Player
	)

	BeforeEach(func() {
		c = field.NewClock(800 * time.Millisecond)
		p = field.NewPlayer(3)
	})

	It("defaults to the autoplay period", func() {
		Expect(field.NewClock(0).Period).To(Equal(field.TickPeriod))
	})

	It("ticks once per elapsed period", func() {
		p.Play()
		Expect(c.Advance(p, 500*time.Millisecond)).To(BeFalse())
		Expect(c.Advance(p, 400*time.Millisecond)).To(BeTrue())
		Expect(p.Index()).To(Equal(1))
		Expect(c.Advance(p, 700*time.Millisecond)).To(BeTrue())
		Expect(p.Index()).To(Equal(2))
	})

	It("never ticks more than once per frame", func() {
		p.Play()
		Expect(c.Advance(p, 5*time.Second)).To(BeTrue())
		Expect(p.Index()).To(Equal(1))
	})

	It("drops elapsed time while paused", func() {
		Expect(c.Advance(p, 2*time.Second)).To(BeFalse())
		p.Play()
		Expect(c.Advance(p, 100*time.Millisecond)).To(BeFalse())
		Expect(p.Index()).To(Equal(0))
	})
})
