package field_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/runviz/internal/artifact"
	"github.com/san-kum/runviz/internal/field"
)

type line struct{ x0, y0, x1, y1 float64 }

type recorder struct {
	clears int
	lines  []line
	labels []string
}

func (r *recorder) Clear() {
	r.clears++
	r.lines = nil
	r.labels = nil
}

func (r *recorder) Line(x0, y0, x1, y1 float64) {
	r.lines = append(r.lines, line{x0, y0, x1, y1})
}

func (r *recorder) Label(x, y float64, text string) {
	r.labels = append(r.labels, text)
}

var _ = Describe("Render", func() {
	var rec *recorder

	BeforeEach(func() {
		rec = &recorder{}
	})

	It("draws one segment per point/vector pair", func() {
		s := &artifact.VectorFieldSample{
			T:       0.5,
			Points:  []artifact.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}},
			Vectors: []artifact.Vec2{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: -1}},
		}
		n := field.Render(rec, s, 200, 100)
		Expect(n).To(Equal(3))
		Expect(rec.lines).To(HaveLen(3))
		Expect(rec.clears).To(Equal(1))
		Expect(rec.labels).To(ConsistOf("t=0.500"))
	})

	It("maps the two-slice scenario with y flipped", func() {
		s := &artifact.VectorFieldSample{
			T:       0.5,
			Points:  []artifact.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}},
			Vectors: []artifact.Vec2{{X: 1, Y: 0}, {X: 0, Y: 1}},
		}
		segs := field.Segments(s)
		Expect(segs).To(Equal([]field.Segment{
			{From: artifact.Vec2{X: 0, Y: 0}, To: artifact.Vec2{X: 1, Y: 0}},
			{From: artifact.Vec2{X: 1, Y: 1}, To: artifact.Vec2{X: 1, Y: 2}},
		}))

		field.Render(rec, s, 100, 100)
		Expect(rec.lines[0].x0).To(BeNumerically("~", 5, 1e-9))
		Expect(rec.lines[0].y0).To(BeNumerically("~", 95, 1e-9))
		Expect(rec.lines[0].x1).To(BeNumerically("~", 95, 1e-9))
		Expect(rec.lines[0].y1).To(BeNumerically("~", 95, 1e-9))

		// (1,1) -> (1,2): the endpoint lies above the box, so it maps past the top margin
		Expect(rec.lines[1].x0).To(BeNumerically("~", 95, 1e-9))
		Expect(rec.lines[1].y0).To(BeNumerically("~", 5, 1e-9))
		Expect(rec.lines[1].y1).To(BeNumerically("~", -85, 1e-9))
	})

	It("renders only the background for empty samples", func() {
		Expect(field.Render(rec, &artifact.VectorFieldSample{T: 1}, 10, 10)).To(Equal(0))
		Expect(field.Render(rec, &artifact.VectorFieldSample{Points: []artifact.Vec2{{X: 1, Y: 1}}}, 10, 10)).To(Equal(0))
		Expect(field.Render(rec, nil, 10, 10)).To(Equal(0))
		Expect(rec.clears).To(Equal(3))
		Expect(rec.lines).To(BeEmpty())
		Expect(rec.labels).To(BeEmpty())
	})

	It("stays finite for degenerate frames", func() {
		s := &artifact.VectorFieldSample{
			Points:  []artifact.Vec2{{X: 3, Y: 1}, {X: 3, Y: 2}, {X: 3, Y: 5}},
			Vectors: []artifact.Vec2{{X: 0.1, Y: 0}, {X: 0, Y: 0.1}, {X: 0, Y: 0}},
		}
		field.Render(rec, s, 64, 48)
		for _, l := range rec.lines {
			for _, v := range []float64{l.x0, l.y0, l.x1, l.y1} {
				Expect(math.IsNaN(v) || math.IsInf(v, 0)).To(BeFalse())
			}
		}
	})
})
