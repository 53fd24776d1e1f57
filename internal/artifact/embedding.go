package artifact

import (
	"fmt"
	"io"
)

type embeddingDoc struct {
	Teacher *[][]float64 `json:"teacher"`
	Student *[][]float64 `json:"student"`
}

// Series labels for the two halves of an embedding.
const (
	SeriesTeacher = "teacher"
	SeriesStudent = "student"
)

// ParseEmbedding decodes {"teacher": [[x, y], ...], "student": [[x, y], ...]}.
func ParseEmbedding(r io.Reader) (*Embedding, error) {
	var doc embeddingDoc
	if err := decodeJSON(r, &doc); err != nil {
		return nil, err
	}
	if doc.Teacher == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingKey, SeriesTeacher)
	}
	if doc.Student == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingKey, SeriesStudent)
	}

	teacher, err := toVecs(*doc.Teacher)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", SeriesTeacher, err)
	}
	student, err := toVecs(*doc.Student)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", SeriesStudent, err)
	}
	return &Embedding{Teacher: teacher, Student: student}, nil
}
