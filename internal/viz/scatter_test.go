package viz

import (
	"testing"

	"github.com/san-kum/runviz/internal/artifact"
)

func TestScatterSeries(t *testing.T) {
	e := &artifact.Embedding{
		Teacher: []artifact.Vec2{{X: 0, Y: 0}},
		Student: []artifact.Vec2{{X: 1, Y: 1}},
	}
	s := NewScatter(e, 20, 10)

	if s.Counts[artifact.SeriesTeacher] != 1 || s.Counts[artifact.SeriesStudent] != 1 {
		t.Fatalf("unexpected counts %v", s.Counts)
	}

	var teacher, student int
	for row := 0; row < s.Height; row++ {
		for col := 0; col < s.Width; col++ {
			switch s.At(col, row) {
			case glyphTeacher:
				teacher++
			case glyphStudent:
				student++
			}
		}
	}
	if teacher != 1 || student != 1 {
		t.Errorf("expected one glyph per series, got teacher=%d student=%d", teacher, student)
	}

	// teacher sits bottom-left, student top-right
	if s.At(1, 9) != glyphTeacher {
		t.Errorf("expected teacher at (1,9), got %q", s.At(1, 9))
	}
	if s.At(19, 0) != glyphStudent {
		t.Errorf("expected student at (19,0), got %q", s.At(19, 0))
	}
}

func TestScatterOverlap(t *testing.T) {
	e := &artifact.Embedding{
		Teacher: []artifact.Vec2{{X: 0, Y: 0}, {X: 2, Y: 2}},
		Student: []artifact.Vec2{{X: 0, Y: 0}},
	}
	s := NewScatter(e, 10, 5)
	found := false
	for row := 0; row < s.Height; row++ {
		for col := 0; col < s.Width; col++ {
			if s.At(col, row) == glyphOverlap {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected an overlap glyph")
	}
}
