package config

import "sort"

// Size is an export surface in logical pixels plus its device scale.
type Size struct {
	Width, Height int
	Scale         float64
}

// Physical returns the surface size in device pixels.
func (s Size) Physical() (int, int) {
	return int(float64(s.Width) * s.Scale), int(float64(s.Height) * s.Scale)
}

var Presets = map[string]Size{
	"small":  {Width: 640, Height: 360, Scale: 1},
	"hd":     {Width: 1280, Height: 720, Scale: 1},
	"retina": {Width: 1280, Height: 720, Scale: 2},
}

func GetPreset(name string) (Size, bool) {
	s, ok := Presets[name]
	return s, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Size returns the configured export surface.
func (c *Config) Size() Size {
	return Size{Width: c.Width, Height: c.Height, Scale: c.Scale}
}
