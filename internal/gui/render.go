package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// rlSurface draws field frames with raylib. Callers work in physical
// pixels; raylib draws in logical ones, so every coordinate is divided by
// the DPI scale.
type rlSurface struct {
	font  rl.Font
	scale float32
}

func (s *rlSurface) Clear() {
	rl.ClearBackground(ColBg)
}

func (s *rlSurface) Line(x0, y0, x1, y1 float64) {
	rl.DrawLineEx(s.point(x0, y0), s.point(x1, y1), 1.5, ColAccent)
}

func (s *rlSurface) Label(x, y float64, text string) {
	pos := s.point(x, y)
	pos.Y -= 14
	rl.DrawTextEx(s.font, text, pos, 18, 1, ColSelect)
}

func (s *rlSurface) point(x, y float64) rl.Vector2 {
	return rl.NewVector2(float32(x)/s.scale, float32(y)/s.scale)
}
