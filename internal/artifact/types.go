package artifact

// Vec2 is a 2-D point or displacement in domain space.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// VectorFieldSample is one time slice of the field.
type VectorFieldSample struct {
	T       float64
	Points  []Vec2
	Vectors []Vec2
}

// VectorFieldSet keeps samples in artifact order, which is not necessarily
// sorted by T.
type VectorFieldSet struct {
	Samples []VectorFieldSample
}

func (s *VectorFieldSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Samples)
}

// Sample returns the i-th slice, or nil when i is out of range.
func (s *VectorFieldSet) Sample(i int) *VectorFieldSample {
	if s == nil || i < 0 || i >= len(s.Samples) {
		return nil
	}
	return &s.Samples[i]
}

// Embedding pairs the teacher and student projections.
type Embedding struct {
	Teacher []Vec2
	Student []Vec2
}

// Video is an opaque media reference handed to an external player.
type Video struct {
	Name   string `json:"name"`
	Ref    string `json:"ref"`
	Remote bool   `json:"remote"`
}
