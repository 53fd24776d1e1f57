package field

import (
	"math"
	"testing"

	"github.com/san-kum/runviz/internal/artifact"
)

func TestBounds(t *testing.T) {
	box, ok := Bounds([]artifact.Vec2{{X: 1, Y: -2}, {X: -3, Y: 4}, {X: 0, Y: 0}})
	if !ok {
		t.Fatal("expected bounds")
	}
	want := BoundingBox{XMin: -3, XMax: 1, YMin: -2, YMax: 4}
	if box != want {
		t.Errorf("expected %+v, got %+v", want, box)
	}

	if _, ok := Bounds(nil); ok {
		t.Error("empty set should have no bounds")
	}
}

func TestMapperCorners(t *testing.T) {
	m, ok := NewMapper([]artifact.Vec2{{X: 0, Y: 0}, {X: 10, Y: 20}}, 200, 100)
	if !ok {
		t.Fatal("expected mapper")
	}

	tests := []struct {
		x, y   float64
		px, py float64
	}{
		{0, 0, 10, 95},
		{10, 20, 190, 5},
		{5, 10, 100, 50},
	}

	for _, tt := range tests {
		px, py := m.ToSurface(tt.x, tt.y)
		if math.Abs(px-tt.px) > 1e-9 || math.Abs(py-tt.py) > 1e-9 {
			t.Errorf("ToSurface(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, px, py, tt.px, tt.py)
		}
	}
}

func TestMapperDeterministic(t *testing.T) {
	points := []artifact.Vec2{{X: 0.3, Y: 0.7}, {X: -1.2, Y: 4.4}, {X: 2.5, Y: -0.1}}
	a, _ := NewMapper(points, 640, 480)
	b, _ := NewMapper(points, 640, 480)

	for _, p := range points {
		ax, ay := a.Map(p)
		bx, by := b.Map(p)
		if ax != bx || ay != by {
			t.Errorf("mapping of %v differs: (%v,%v) vs (%v,%v)", p, ax, ay, bx, by)
		}
	}
}

func TestMapperDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		points []artifact.Vec2
	}{
		{"single point", []artifact.Vec2{{X: 2, Y: 2}}},
		{"constant x", []artifact.Vec2{{X: 1, Y: 0}, {X: 1, Y: 5}}},
		{"constant y", []artifact.Vec2{{X: 0, Y: 3}, {X: 4, Y: 3}}},
	}

	for _, tt := range tests {
		m, ok := NewMapper(tt.points, 100, 100)
		if !ok {
			t.Fatalf("%s: expected mapper", tt.name)
		}
		for _, p := range tt.points {
			px, py := m.Map(p)
			if math.IsNaN(px) || math.IsInf(px, 0) || math.IsNaN(py) || math.IsInf(py, 0) {
				t.Errorf("%s: non-finite output (%v, %v)", tt.name, px, py)
			}
		}
	}

	if _, ok := NewMapper(nil, 100, 100); ok {
		t.Error("empty point set should not yield a mapper")
	}
}
