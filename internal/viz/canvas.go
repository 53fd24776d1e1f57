package viz

import (
	"strings"

	"github.com/san-kum/runviz/internal/field"
)

// Each terminal cell is a 2x4 Braille block. dotBits[row][col] is the bit
// for that dot above the blank pattern U+2800.
const blank = '\u2800'

var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of Braille cells addressed in sub-pixels: a canvas of
// Width x Height cells is (Width*2) x (Height*4) dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 0), max(h, 0)
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// dot returns the cell holding sub-pixel (x, y) and its bit.
func (c *Canvas) dot(x, y int) (*rune, rune, bool) {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return nil, 0, false
	}
	return &c.Grid[y/4][x/2], dotBits[y%4][x%2], true
}

func (c *Canvas) Set(x, y int) {
	if cell, bit, ok := c.dot(x, y); ok {
		*cell |= bit
	}
}

func (c *Canvas) Unset(x, y int) {
	if cell, bit, ok := c.dot(x, y); ok {
		*cell = blank | (*cell &^ bit)
	}
}

func (c *Canvas) Clear() {
	for _, row := range c.Grid {
		for j := range row {
			row[j] = blank
		}
	}
}

// DrawLine lights every dot on the line between two sub-pixels.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	field.StepLine(x0, y0, x1, y1, c.Set)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// SubSize returns the canvas size in sub-pixels.
func (c *Canvas) SubSize() (int, int) {
	return c.Width * 2, c.Height * 4
}

// Surface draws vector-field frames onto a Braille canvas. One sub-pixel is
// one surface pixel. The frame label is kept as text for the caller to
// print beside the canvas.
type Surface struct {
	*Canvas
	Text string
}

func NewSurface(c *Canvas) *Surface {
	return &Surface{Canvas: c}
}

// Size returns the physical drawing size.
func (s *Surface) Size() (float64, float64) {
	w, h := s.SubSize()
	return float64(w), float64(h)
}

func (s *Surface) Clear() {
	s.Canvas.Clear()
	s.Text = ""
}

func (s *Surface) Line(x0, y0, x1, y1 float64) {
	w, h := s.Size()
	field.RasterLine(x0, y0, x1, y1, w, h, s.Set)
}

func (s *Surface) Label(x, y float64, text string) {
	s.Text = text
}
