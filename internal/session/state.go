package session

import (
	"fmt"
	"strings"

	"github.com/san-kum/runviz/internal/artifact"
	"github.com/san-kum/runviz/internal/field"
)

// State owns everything the viewer displays. Front ends pass it to every
// rendering routine instead of sharing globals.
type State struct {
	Curves    *artifact.LearningCurve
	Field     *artifact.VectorFieldSet
	Embedding *artifact.Embedding
	Videos    []artifact.Video
	Player    *field.Player

	// Sources records the artifact name behind each loaded slot.
	Sources map[artifact.Kind]string
	// Notice is the last user-facing message; Failed marks it as an error.
	Notice string
	Failed bool
}

func New() *State {
	return &State{
		Player:  field.NewPlayer(0),
		Sources: make(map[artifact.Kind]string),
	}
}

// Apply installs a load result. A failed result only updates Notice and
// returns the error. A success replaces the slot for its kind, so the
// result applied last wins.
func (s *State) Apply(res artifact.Result) error {
	if res.Err != nil {
		s.Notice, s.Failed = res.Err.Error(), true
		return res.Err
	}

	switch res.Kind {
	case artifact.KindCurves:
		s.Curves = res.Curves
	case artifact.KindVectorField:
		s.Field = res.Field
		s.Player.SetCount(res.Field.Len())
		s.Player.Reset()
	case artifact.KindEmbedding:
		s.Embedding = res.Embedding
	case artifact.KindVideo:
		s.addVideo(*res.Video)
	default:
		err := fmt.Errorf("%w: %s", artifact.ErrUnsupported, res.Kind)
		s.Notice, s.Failed = err.Error(), true
		return err
	}

	s.Sources[res.Kind] = res.Name
	s.Notice, s.Failed = fmt.Sprintf("loaded %s (%s)", res.Name, res.Kind), false
	return nil
}

func (s *State) addVideo(v artifact.Video) {
	for _, existing := range s.Videos {
		if existing.Ref == v.Ref {
			return
		}
	}
	s.Videos = append(s.Videos, v)
}

// Frame returns the active vector-field sample, or nil when nothing is loaded.
func (s *State) Frame() *artifact.VectorFieldSample {
	return s.Field.Sample(s.Player.Index())
}

// Summary describes what is loaded, one line per slot.
func (s *State) Summary() string {
	var b strings.Builder
	if s.Curves != nil {
		fmt.Fprintf(&b, "curves:       %s (%d rows, %d dropped)\n", s.Sources[artifact.KindCurves], len(s.Curves.Rows), s.Curves.Dropped)
	} else {
		b.WriteString("curves:       -\n")
	}
	if s.Field != nil {
		fmt.Fprintf(&b, "vector_field: %s (%d frames)\n", s.Sources[artifact.KindVectorField], s.Field.Len())
	} else {
		b.WriteString("vector_field: -\n")
	}
	if s.Embedding != nil {
		fmt.Fprintf(&b, "embedding:    %s (%d teacher, %d student)\n", s.Sources[artifact.KindEmbedding], len(s.Embedding.Teacher), len(s.Embedding.Student))
	} else {
		b.WriteString("embedding:    -\n")
	}
	fmt.Fprintf(&b, "videos:       %d\n", len(s.Videos))
	return b.String()
}
