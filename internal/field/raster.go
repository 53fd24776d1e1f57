package field

import "math"

// StepLine calls plot for every pixel on the Bresenham line from (x0, y0)
// to (x1, y1), both ends included.
func StepLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx, sx := x1-x0, 1
	if dx < 0 {
		dx, sx = -dx, -1
	}
	dy, sy := y0-y1, 1
	if dy > 0 {
		dy, sy = -dy, -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// RasterLine clips a surface-space segment to a w×h pixel grid, rounds the
// ends and steps it. It reports whether anything was plotted.
func RasterLine(x0, y0, x1, y1, w, h float64, plot func(x, y int)) bool {
	x0, y0, x1, y1, ok := ClipLine(x0, y0, x1, y1, 0, 0, w-1, h-1)
	if !ok {
		return false
	}
	StepLine(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)), plot)
	return true
}
