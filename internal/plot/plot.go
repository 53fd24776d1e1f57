package plot

import (
	"github.com/san-kum/runviz/internal/artifact"
	"github.com/san-kum/runviz/internal/field"
)

// CurveSeries extracts (step, value) pairs for metric, skipping rows where
// the metric is absent.
func CurveSeries(c *artifact.LearningCurve, metric string) (steps, values []float64) {
	if c == nil {
		return nil, nil
	}
	for _, row := range c.Rows {
		v, ok := row.Metric(metric)
		if !ok {
			continue
		}
		steps = append(steps, float64(row.Step))
		values = append(values, v)
	}
	return steps, values
}

// AvailableMetrics returns the metric columns that hold at least one value.
// Known metrics come first in their canonical order, then extra columns in
// header order.
func AvailableMetrics(c *artifact.LearningCurve) []string {
	if c == nil {
		return nil
	}
	has := func(name string) bool {
		for _, row := range c.Rows {
			if _, ok := row.Metric(name); ok {
				return true
			}
		}
		return false
	}

	known := make(map[string]bool, len(artifact.Metrics))
	var out []string
	for _, m := range artifact.Metrics {
		known[m] = true
		if has(m) {
			out = append(out, m)
		}
	}
	for _, col := range c.MetricColumns() {
		if !known[col] && has(col) {
			out = append(out, col)
		}
	}
	return out
}

// Mark is one embedding point on a surface, tagged with its series label.
type Mark struct {
	Series string
	X, Y   float64
}

// EmbeddingMarks maps both series into one w×h surface sharing a bounding
// box, so teacher and student positions stay comparable.
func EmbeddingMarks(e *artifact.Embedding, w, h float64) []Mark {
	if e == nil {
		return nil
	}
	all := make([]artifact.Vec2, 0, len(e.Teacher)+len(e.Student))
	all = append(all, e.Teacher...)
	all = append(all, e.Student...)

	m, ok := field.NewMapper(all, w, h)
	if !ok {
		return nil
	}

	marks := make([]Mark, 0, len(all))
	for _, p := range e.Teacher {
		x, y := m.Map(p)
		marks = append(marks, Mark{Series: artifact.SeriesTeacher, X: x, Y: y})
	}
	for _, p := range e.Student {
		x, y := m.Map(p)
		marks = append(marks, Mark{Series: artifact.SeriesStudent, X: x, Y: y})
	}
	return marks
}

// Count tallies marks per series label.
func Count(marks []Mark) map[string]int {
	counts := make(map[string]int)
	for _, mk := range marks {
		counts[mk.Series]++
	}
	return counts
}
