package artifact

import (
	"errors"
	"strings"
	"testing"
)

func TestParseVectorField(t *testing.T) {
	input := `{"vector_field": [
		{"t": 0.5, "points": [[0,0],[1,1]], "vectors": [[1,0],[0,1]]},
		{"t": 0.1, "points": [], "vectors": []}
	]}`

	set, err := ParseVectorField(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 samples, got %d", set.Len())
	}

	first := set.Sample(0)
	if first.T != 0.5 {
		t.Errorf("expected t 0.5, got %f", first.T)
	}
	if len(first.Points) != 2 || first.Points[1] != (Vec2{1, 1}) {
		t.Errorf("unexpected points: %v", first.Points)
	}
	if first.Vectors[0] != (Vec2{1, 0}) {
		t.Errorf("unexpected vectors: %v", first.Vectors)
	}

	// artifact order is kept even when t decreases
	if set.Sample(1).T != 0.1 {
		t.Error("samples should stay in artifact order")
	}
	if set.Sample(2) != nil || set.Sample(-1) != nil {
		t.Error("out of range sample should be nil")
	}
}

func TestParseVectorField_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"missing key", `{"frames": []}`, ErrMissingKey},
		{"length mismatch", `{"vector_field": [{"t": 0, "points": [[0,0]], "vectors": []}]}`, ErrShapeMismatch},
		{"bad pair", `{"vector_field": [{"t": 0, "points": [[0,0,0]], "vectors": [[1,1]]}]}`, ErrShapeMismatch},
		{"empty", "  ", ErrEmpty},
	}

	for _, tt := range tests {
		_, err := ParseVectorField(strings.NewReader(tt.input))
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}

	if _, err := ParseVectorField(strings.NewReader(`{"vector_field": [`)); err == nil {
		t.Error("expected error for malformed json")
	}
}

func TestParseVectorField_AbsentVectorsKept(t *testing.T) {
	set, err := ParseVectorField(strings.NewReader(`{"vector_field": [{"t": 1, "points": [[0,0]]}]}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(set.Samples[0].Vectors) != 0 {
		t.Error("expected no vectors")
	}
}

func TestParseEmbedding(t *testing.T) {
	emb, err := ParseEmbedding(strings.NewReader(`{"teacher": [[0,0]], "student": [[1,1]]}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(emb.Teacher) != 1 || len(emb.Student) != 1 {
		t.Fatalf("expected one point per series, got %d/%d", len(emb.Teacher), len(emb.Student))
	}
	if emb.Student[0] != (Vec2{1, 1}) {
		t.Errorf("unexpected student point %v", emb.Student[0])
	}

	_, err = ParseEmbedding(strings.NewReader(`{"teacher": [[0,0]]}`))
	if !errors.Is(err, ErrMissingKey) {
		t.Errorf("expected ErrMissingKey, got %v", err)
	}
}
