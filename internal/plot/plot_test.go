package plot

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/runviz/internal/artifact"
)

func TestCurveSeries(t *testing.T) {
	curve, err := artifact.ParseCurves(strings.NewReader("step,reward,mse\n1,0.1,\n2,,0.5\n3,0.3,0.4\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	steps, values := CurveSeries(curve, artifact.MetricReward)
	if len(steps) != 2 || steps[0] != 1 || steps[1] != 3 {
		t.Errorf("unexpected steps %v", steps)
	}
	if values[1] != 0.3 {
		t.Errorf("unexpected values %v", values)
	}

	if s, _ := CurveSeries(nil, "reward"); s != nil {
		t.Error("nil curve should give no series")
	}
}

func TestAvailableMetrics(t *testing.T) {
	curve, err := artifact.ParseCurves(strings.NewReader("step,custom,mse,reward,q_loss\n1,5,0.1,0.2,\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	got := AvailableMetrics(curve)
	want := []string{"reward", "mse", "custom"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestEmbeddingMarks(t *testing.T) {
	e := &artifact.Embedding{
		Teacher: []artifact.Vec2{{X: 0, Y: 0}},
		Student: []artifact.Vec2{{X: 1, Y: 1}},
	}
	marks := EmbeddingMarks(e, 100, 100)
	if len(marks) != 2 {
		t.Fatalf("expected 2 marks, got %d", len(marks))
	}

	counts := Count(marks)
	if counts[artifact.SeriesTeacher] != 1 || counts[artifact.SeriesStudent] != 1 {
		t.Errorf("expected one mark per series, got %v", counts)
	}

	teacher, student := marks[0], marks[1]
	if !near(teacher.X, 5) || !near(teacher.Y, 95) {
		t.Errorf("teacher mapped to (%v, %v)", teacher.X, teacher.Y)
	}
	if !near(student.X, 95) || !near(student.Y, 5) {
		t.Errorf("student mapped to (%v, %v)", student.X, student.Y)
	}

	if EmbeddingMarks(&artifact.Embedding{}, 10, 10) != nil {
		t.Error("empty embedding should have no marks")
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
