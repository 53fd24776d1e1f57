package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/runviz/internal/artifact"
	"github.com/san-kum/runviz/internal/field"
	"github.com/san-kum/runviz/internal/plot"
	"github.com/san-kum/runviz/internal/viz"
)

const background = "#0a0a0a"

func svgHeader(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}

// svgSurface records field.Surface calls as SVG elements.
type svgSurface struct {
	lines strings.Builder
	label string
	lx    float64
	ly    float64
}

func (s *svgSurface) Clear() {
	s.lines.Reset()
	s.label = ""
}

func (s *svgSurface) Line(x0, y0, x1, y1 float64) {
	s.lines.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, x0, y0, x1, y1))
}

func (s *svgSurface) Label(x, y float64, text string) {
	s.label, s.lx, s.ly = text, x, y
}

// FrameSVG renders one vector-field sample as an SVG document, one <line>
// per arrow. Arrows leaving the viewport are left to the SVG clip.
func FrameSVG(sample *artifact.VectorFieldSample, width, height int) string {
	surf := &svgSurface{}
	field.Render(surf, sample, float64(width), float64(height))

	var sb strings.Builder
	svgHeader(&sb, width, height)
	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="1.5" stroke-linecap="round">
`, viz.CurrentTheme.Field))
	sb.WriteString(surf.lines.String())
	sb.WriteString("</g>\n")
	if surf.label != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%.0f" y="%.0f" fill="%s" font-family="monospace" font-size="14">%s</text>
`, surf.lx, surf.ly, viz.CurrentTheme.Text, html.EscapeString(surf.label)))
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// EmbeddingSVG draws teacher points as circles and student points as crosses.
func EmbeddingSVG(e *artifact.Embedding, width, height int) string {
	var sb strings.Builder
	svgHeader(&sb, width, height)

	marks := plot.EmbeddingMarks(e, float64(width), float64(height))
	sb.WriteString(fmt.Sprintf(`<g fill="%s">
`, viz.CurrentTheme.Teacher))
	for _, m := range marks {
		if m.Series == artifact.SeriesTeacher {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3"/>
`, m.X, m.Y))
		}
	}
	sb.WriteString(fmt.Sprintf("</g>\n"+`<g stroke="%s" stroke-width="1.5">
`, viz.CurrentTheme.Student))
	for _, m := range marks {
		if m.Series == artifact.SeriesStudent {
			sb.WriteString(fmt.Sprintf(`<path d="M%.1f,%.1f l6,6 m0,-6 l-6,6"/>
`, m.X-3, m.Y-3))
		}
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// CurveSVG draws one learning-curve metric as a polyline over its step range.
// It returns "" when the metric has fewer than two values.
func CurveSVG(c *artifact.LearningCurve, metric string, width, height int) string {
	steps, values := plot.CurveSeries(c, metric)
	if len(values) < 2 {
		return ""
	}

	minX, maxX := steps[0], steps[0]
	minY, maxY := values[0], values[0]
	for i := range values {
		minX, maxX = min(minX, steps[i]), max(maxX, steps[i])
		minY, maxY = min(minY, values[i]), max(maxY, values[i])
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	svgHeader(&sb, width, height)
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, viz.CurrentTheme.Curve))
	for i := range values {
		x := (steps[i] - minX) / rangeX * float64(width)
		y := float64(height) - (values[i]-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString(fmt.Sprintf(`"/>
<text x="10" y="20" fill="%s" font-family="monospace" font-size="14">%s</text>
</svg>`, viz.CurrentTheme.Text, html.EscapeString(metric)))
	return sb.String()
}
