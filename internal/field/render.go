package field

import (
	"fmt"

	"github.com/san-kum/runviz/internal/artifact"
)

// Label position in surface pixels.
const (
	LabelX = 10
	LabelY = 20
)

// Surface is a drawing target measured in physical pixels.
type Surface interface {
	Clear()
	Line(x0, y0, x1, y1 float64)
	Label(x, y float64, text string)
}

// Segment is one arrow in domain space.
type Segment struct {
	From, To artifact.Vec2
}

// Segments pairs every point with its vector. The endpoint is summed in
// domain space. Unpaired trailing entries are ignored.
func Segments(s *artifact.VectorFieldSample) []Segment {
	if s == nil {
		return nil
	}
	n := min(len(s.Points), len(s.Vectors))
	segs := make([]Segment, n)
	for i := 0; i < n; i++ {
		segs[i] = Segment{From: s.Points[i], To: s.Points[i].Add(s.Vectors[i])}
	}
	return segs
}

// FrameLabel formats the time label of a sample.
func FrameLabel(s *artifact.VectorFieldSample) string {
	return fmt.Sprintf("t=%.3f", s.T)
}

// Render clears the surface and draws sample onto a w×h surface. It returns
// the number of segments drawn. A nil sample or one without points or vectors
// leaves only the cleared background.
func Render(surf Surface, s *artifact.VectorFieldSample, w, h float64) int {
	surf.Clear()
	if s == nil || len(s.Points) == 0 || len(s.Vectors) == 0 {
		return 0
	}
	m, ok := NewMapper(s.Points, w, h)
	if !ok {
		return 0
	}

	segs := Segments(s)
	for _, seg := range segs {
		x0, y0 := m.Map(seg.From)
		x1, y1 := m.Map(seg.To)
		surf.Line(x0, y0, x1, y1)
	}
	surf.Label(LabelX, LabelY, FrameLabel(s))
	return len(segs)
}
