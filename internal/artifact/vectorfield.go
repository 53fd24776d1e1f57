package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

type vectorFieldDoc struct {
	VectorField *[]sampleDoc `json:"vector_field"`
}

type sampleDoc struct {
	T       float64     `json:"t"`
	Points  [][]float64 `json:"points"`
	Vectors [][]float64 `json:"vectors"`
}

// ParseVectorField decodes {"vector_field": [{"t", "points", "vectors"}, ...]}.
//
// A sample whose points and vectors are both present must pair them one to one.
// A sample missing either list is kept; it renders as an empty frame.
func ParseVectorField(r io.Reader) (*VectorFieldSet, error) {
	var doc vectorFieldDoc
	if err := decodeJSON(r, &doc); err != nil {
		return nil, err
	}
	if doc.VectorField == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingKey, "vector_field")
	}

	set := &VectorFieldSet{Samples: make([]VectorFieldSample, 0, len(*doc.VectorField))}
	for i, sd := range *doc.VectorField {
		points, err := toVecs(sd.Points)
		if err != nil {
			return nil, fmt.Errorf("sample %d points: %w", i, err)
		}
		vectors, err := toVecs(sd.Vectors)
		if err != nil {
			return nil, fmt.Errorf("sample %d vectors: %w", i, err)
		}
		if sd.Points != nil && sd.Vectors != nil && len(points) != len(vectors) {
			return nil, fmt.Errorf("sample %d: %w: %d points, %d vectors", i, ErrShapeMismatch, len(points), len(vectors))
		}
		set.Samples = append(set.Samples, VectorFieldSample{T: sd.T, Points: points, Vectors: vectors})
	}
	return set, nil
}

func toVecs(pairs [][]float64) ([]Vec2, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make([]Vec2, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("%w: pair %d has %d values", ErrShapeMismatch, i, len(p))
		}
		out[i] = Vec2{X: p[0], Y: p[1]}
	}
	return out, nil
}

func decodeJSON(r io.Reader, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmpty
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
