package artifact

import (
	"bytes"
	"path"
	"strings"
)

// Result is the outcome of loading one artifact. Exactly one payload is set
// when Err is nil.
type Result struct {
	Kind      Kind
	Name      string
	Curves    *LearningCurve
	Field     *VectorFieldSet
	Embedding *Embedding
	Video     *Video
	Err       error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Fail builds a failed result.
func Fail(kind Kind, name string, err error) Result {
	return Result{Kind: kind, Name: name, Err: &ParseError{Kind: kind, Name: name, Err: err}}
}

// Parse decodes data as kind. KindUnknown sniffs the content first.
// ref names the artifact: a file path or URL.
func Parse(kind Kind, ref string, data []byte) Result {
	name := DisplayName(ref)
	if kind == KindUnknown {
		k, err := Sniff(ref, data)
		if err != nil {
			return Fail(KindUnknown, name, err)
		}
		kind = k
	}

	res := Result{Kind: kind, Name: name}
	var err error
	switch kind {
	case KindCurves:
		res.Curves, err = ParseCurves(bytes.NewReader(data))
	case KindVectorField:
		res.Field, err = ParseVectorField(bytes.NewReader(data))
	case KindEmbedding:
		res.Embedding, err = ParseEmbedding(bytes.NewReader(data))
	case KindVideo:
		return VideoResult(ref)
	default:
		err = ErrUnsupported
	}
	if err != nil {
		return Fail(kind, name, err)
	}
	return res
}

// VideoResult wraps a video reference without reading its bytes.
func VideoResult(ref string) Result {
	name := DisplayName(ref)
	return Result{
		Kind:  KindVideo,
		Name:  name,
		Video: &Video{Name: name, Ref: ref, Remote: IsRemote(ref)},
	}
}

// IsRemote reports whether ref is an http(s) URL.
func IsRemote(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// DisplayName shortens a path or URL to its last element.
func DisplayName(ref string) string {
	if ref == "" {
		return ""
	}
	if i := strings.IndexAny(ref, "?#"); i >= 0 && IsRemote(ref) {
		ref = ref[:i]
	}
	ref = strings.ReplaceAll(ref, "\\", "/")
	return path.Base(ref)
}
