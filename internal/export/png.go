package export

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/san-kum/runviz/internal/artifact"
	"github.com/san-kum/runviz/internal/field"
	"github.com/san-kum/runviz/internal/plot"
	"github.com/san-kum/runviz/internal/viz"
)

// pointStyle renders points only, no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    4,
		DotColor:    col,
	}
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 2,
		StrokeColor: col,
	}
}

func themeColor(c string) drawing.Color {
	r, g, b := viz.ParseHex(c)
	return drawing.Color{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}

// CurvesPNG plots every available metric against step. Metrics with a
// single value are drawn as points because go-chart needs a non-empty range.
func CurvesPNG(w io.Writer, c *artifact.LearningCurve, width, height int) error {
	metrics := plot.AvailableMetrics(c)
	if len(metrics) == 0 {
		return fmt.Errorf("curves png: %w", artifact.ErrEmpty)
	}

	colors := []drawing.Color{
		themeColor(string(viz.CurrentTheme.Curve)),
		themeColor(string(viz.CurrentTheme.Teacher)),
		themeColor(string(viz.CurrentTheme.Student)),
		themeColor(string(viz.CurrentTheme.Overlap)),
		chart.ColorAlternateGray,
	}

	series := make([]chart.Series, 0, len(metrics))
	for i, m := range metrics {
		xs, ys := plot.CurveSeries(c, m)
		col := colors[i%len(colors)]
		st := lineStyle(col)
		if len(xs) == 1 {
			xs = []float64{xs[0], xs[0] + 1}
			ys = []float64{ys[0], ys[0]}
			st = pointStyle(col)
		}
		series = append(series, chart.ContinuousSeries{Name: m, XValues: xs, YValues: ys, Style: st})
	}

	ch := chart.Chart{
		Title:      "Learning curves",
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "step"},
		YAxis:      chart.YAxis{Name: "value"},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("curves png: %w", err)
	}
	return nil
}

// EmbeddingPNG draws the teacher and student series as a scatter plot in
// domain coordinates.
func EmbeddingPNG(w io.Writer, e *artifact.Embedding, width, height int) error {
	if e == nil || len(e.Teacher)+len(e.Student) == 0 {
		return fmt.Errorf("embedding png: %w", artifact.ErrEmpty)
	}

	var series []chart.Series
	add := func(name string, pts []artifact.Vec2, col drawing.Color) {
		if len(pts) == 0 {
			return
		}
		xs := make([]float64, len(pts))
		ys := make([]float64, len(pts))
		for i, p := range pts {
			xs[i], ys[i] = p.X, p.Y
		}
		series = append(series, chart.ContinuousSeries{Name: name, XValues: xs, YValues: ys, Style: pointStyle(col)})
	}
	add(artifact.SeriesTeacher, e.Teacher, themeColor(string(viz.CurrentTheme.Teacher)))
	add(artifact.SeriesStudent, e.Student, themeColor(string(viz.CurrentTheme.Student)))

	box, _ := field.Bounds(append(append([]artifact.Vec2(nil), e.Teacher...), e.Student...))
	ch := chart.Chart{
		Title:      "Student vs teacher embedding",
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Range: &chart.ContinuousRange{Min: box.XMin, Max: box.XMin + box.XSpan()}},
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: box.YMin, Max: box.YMin + box.YSpan()}},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("embedding png: %w", err)
	}
	return nil
}
