package field

import (
	"math"

	"github.com/san-kum/runviz/internal/artifact"
)

const (
	// Epsilon floors a bounding-box span so constant coordinates never divide by zero.
	Epsilon = 1e-6
	// Margin is the blank fraction kept on each side of the surface.
	Margin = 0.05
	// Fill is the fraction of the surface the data occupies.
	Fill = 1 - 2*Margin
)

// BoundingBox is the extent of a point set in domain space.
type BoundingBox struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Bounds computes the bounding box of points. It returns false for an empty set.
func Bounds(points []artifact.Vec2) (BoundingBox, bool) {
	if len(points) == 0 {
		return BoundingBox{}, false
	}
	b := BoundingBox{
		XMin: points[0].X, XMax: points[0].X,
		YMin: points[0].Y, YMax: points[0].Y,
	}
	for _, p := range points[1:] {
		b.XMin = math.Min(b.XMin, p.X)
		b.XMax = math.Max(b.XMax, p.X)
		b.YMin = math.Min(b.YMin, p.Y)
		b.YMax = math.Max(b.YMax, p.Y)
	}
	return b, true
}

func (b BoundingBox) XSpan() float64 { return math.Max(Epsilon, b.XMax-b.XMin) }
func (b BoundingBox) YSpan() float64 { return math.Max(Epsilon, b.YMax-b.YMin) }

// Mapper maps domain coordinates onto a W×H surface whose origin is top-left.
type Mapper struct {
	Box  BoundingBox
	W, H float64
}

// NewMapper fits the bounding box of points into the surface. It returns
// false when points is empty; callers must skip drawing in that case.
func NewMapper(points []artifact.Vec2, w, h float64) (Mapper, bool) {
	box, ok := Bounds(points)
	if !ok {
		return Mapper{}, false
	}
	return Mapper{Box: box, W: w, H: h}, true
}

// ToSurface maps (x, y) to surface pixels, flipping y so larger values sit higher.
func (m Mapper) ToSurface(x, y float64) (float64, float64) {
	px := (x-m.Box.XMin)/m.Box.XSpan()*Fill*m.W + Margin*m.W
	py := m.H - ((y-m.Box.YMin)/m.Box.YSpan()*Fill*m.H + Margin*m.H)
	return px, py
}

func (m Mapper) Map(v artifact.Vec2) (float64, float64) {
	return m.ToSurface(v.X, v.Y)
}
