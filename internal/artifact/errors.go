package artifact

import (
	"errors"
	"fmt"
)

// Domain errors for artifact parsing.
var (
	// ErrNoHeader indicates a delimited table without a header row.
	ErrNoHeader = errors.New("artifact: missing header row")

	// ErrMissingColumn indicates a required table column is absent.
	ErrMissingColumn = errors.New("artifact: required column missing")

	// ErrMissingKey indicates a required JSON key is absent.
	ErrMissingKey = errors.New("artifact: required key missing")

	// ErrShapeMismatch indicates paired sequences of different lengths or
	// coordinate pairs that do not hold exactly two numbers.
	ErrShapeMismatch = errors.New("artifact: shape mismatch")

	// ErrUnsupported indicates content that matches none of the known kinds.
	ErrUnsupported = errors.New("artifact: unsupported artifact")

	// ErrEmpty indicates an artifact with no content.
	ErrEmpty = errors.New("artifact: empty input")
)

// ParseError wraps a parse failure with the artifact it came from.
type ParseError struct {
	Kind Kind
	Name string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("parse %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("parse %s %q: %v", e.Kind, e.Name, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
