package field

import (
	"math"
	"testing"
)

func TestClipLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		visible        bool
		want           [4]float64
	}{
		{"inside", 1, 1, 5, 5, true, [4]float64{1, 1, 5, 5}},
		{"crosses right edge", 5, 5, 20, 5, true, [4]float64{5, 5, 10, 5}},
		{"crosses top", 5, 5, 5, -85, true, [4]float64{5, 5, 5, 0}},
		{"fully outside", 20, 20, 30, 30, false, [4]float64{}},
		{"vertical outside", -1, 0, -1, 10, false, [4]float64{}},
	}

	for _, tt := range tests {
		x0, y0, x1, y1, ok := ClipLine(tt.x0, tt.y0, tt.x1, tt.y1, 0, 0, 10, 10)
		if ok != tt.visible {
			t.Errorf("%s: expected visible=%v", tt.name, tt.visible)
			continue
		}
		if !ok {
			continue
		}
		got := [4]float64{x0, y0, x1, y1}
		for i := range got {
			if math.Abs(got[i]-tt.want[i]) > 1e-9 {
				t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
				break
			}
		}
	}

	if _, _, _, _, ok := ClipLine(math.NaN(), 0, 1, 1, 0, 0, 10, 10); ok {
		t.Error("NaN segment should be rejected")
	}
}
