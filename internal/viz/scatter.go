package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/runviz/internal/artifact"
	"github.com/san-kum/runviz/internal/plot"
)

const (
	glyphTeacher = '•'
	glyphStudent = '×'
	glyphOverlap = '◆'
)

// Scatter is a character grid of embedding marks.
type Scatter struct {
	Width, Height int
	cells         [][]rune
	Counts        map[string]int
}

// NewScatter places teacher and student marks on a cols×rows grid. Cells hit
// by both series show the overlap glyph.
func NewScatter(e *artifact.Embedding, cols, rows int) *Scatter {
	cols, rows = max(cols, 0), max(rows, 0)
	s := &Scatter{Width: cols, Height: rows, cells: make([][]rune, rows)}
	for i := range s.cells {
		s.cells[i] = []rune(strings.Repeat(" ", cols))
	}

	marks := plot.EmbeddingMarks(e, float64(cols), float64(rows))
	s.Counts = plot.Count(marks)
	for _, mk := range marks {
		col, row := int(mk.X), int(mk.Y)
		if col < 0 || col >= cols || row < 0 || row >= rows {
			continue
		}
		glyph := glyphTeacher
		if mk.Series == artifact.SeriesStudent {
			glyph = glyphStudent
		}
		switch s.cells[row][col] {
		case ' ', glyph:
			s.cells[row][col] = glyph
		default:
			s.cells[row][col] = glyphOverlap
		}
	}
	return s
}

// At returns the glyph at a cell.
func (s *Scatter) At(col, row int) rune {
	return s.cells[row][col]
}

// Render colours the grid with the current theme.
func (s *Scatter) Render() string {
	teacher := fg(CurrentTheme.Teacher)
	student := fg(CurrentTheme.Student)
	overlap := fg(CurrentTheme.Overlap)

	var b strings.Builder
	for _, row := range s.cells {
		for _, r := range row {
			switch r {
			case glyphTeacher:
				b.WriteString(teacher.Render(string(r)))
			case glyphStudent:
				b.WriteString(student.Render(string(r)))
			case glyphOverlap:
				b.WriteString(overlap.Render(string(r)))
			default:
				b.WriteRune(r)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Legend names each series with its glyph and count.
func (s *Scatter) Legend() string {
	return fmt.Sprintf("%s %s (%d)   %s %s (%d)   %s both",
		fg(CurrentTheme.Teacher).Render(string(glyphTeacher)), artifact.SeriesTeacher, s.Counts[artifact.SeriesTeacher],
		fg(CurrentTheme.Student).Render(string(glyphStudent)), artifact.SeriesStudent, s.Counts[artifact.SeriesStudent],
		fg(CurrentTheme.Overlap).Render(string(glyphOverlap)))
}
