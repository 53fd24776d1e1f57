package artifact

import (
	"fmt"
	"path"
	"strings"
)

// Kind tags an artifact with the schema it follows.
type Kind int

const (
	KindUnknown Kind = iota
	KindCurves
	KindVectorField
	KindEmbedding
	KindVideo
)

var kindNames = map[Kind]string{
	KindUnknown:     "unknown",
	KindCurves:      "curves",
	KindVectorField: "vector_field",
	KindEmbedding:   "embedding",
	KindVideo:       "video",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind resolves a user-facing kind name. The empty string and "auto"
// yield KindUnknown, which asks the loader to sniff the content.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return KindUnknown, nil
	case "curves", "csv", "learning_curves":
		return KindCurves, nil
	case "vector_field", "field", "vf":
		return KindVectorField, nil
	case "embedding", "embed":
		return KindEmbedding, nil
	case "video":
		return KindVideo, nil
	}
	return KindUnknown, fmt.Errorf("unknown kind %q (want curves, vector_field, embedding or video): %w", s, ErrUnsupported)
}

// KindNames lists the names accepted by ParseKind.
func KindNames() []string {
	return []string{"auto", "curves", "vector_field", "embedding", "video"}
}

var videoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mov":  true,
	".mkv":  true,
	".ogv":  true,
}

// IsVideoName reports whether a file name or URL path carries a video extension.
// It is the only name-based routing and is used for references whose bytes are
// never read.
func IsVideoName(name string) bool {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	return videoExtensions[strings.ToLower(path.Ext(name))]
}
