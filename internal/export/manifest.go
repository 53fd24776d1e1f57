package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/runviz/internal/artifact"
	"github.com/san-kum/runviz/internal/plot"
	"github.com/san-kum/runviz/internal/session"
)

type CurvesInfo struct {
	Source    string             `json:"source"`
	Rows      int                `json:"rows"`
	Dropped   int                `json:"dropped"`
	FirstStep int64              `json:"first_step"`
	LastStep  int64              `json:"last_step"`
	Metrics   []string           `json:"metrics"`
	Final     map[string]float64 `json:"final"`
}

type FieldInfo struct {
	Source string  `json:"source"`
	Frames int     `json:"frames"`
	TStart float64 `json:"t_start"`
	TEnd   float64 `json:"t_end"`
	Arrows []int   `json:"arrows"`
}

type EmbeddingInfo struct {
	Source  string `json:"source"`
	Teacher int    `json:"teacher"`
	Student int    `json:"student"`
}

// Manifest summarises everything loaded into a session.
type Manifest struct {
	Curves    *CurvesInfo      `json:"curves,omitempty"`
	Field     *FieldInfo       `json:"vector_field,omitempty"`
	Embedding *EmbeddingInfo   `json:"embedding,omitempty"`
	Videos    []artifact.Video `json:"videos"`
}

func BuildManifest(st *session.State) Manifest {
	m := Manifest{Videos: st.Videos}
	if m.Videos == nil {
		m.Videos = []artifact.Video{}
	}

	if c := st.Curves; c != nil {
		info := &CurvesInfo{
			Source:  st.Sources[artifact.KindCurves],
			Rows:    len(c.Rows),
			Dropped: c.Dropped,
			Metrics: plot.AvailableMetrics(c),
			Final:   make(map[string]float64),
		}
		if len(c.Rows) > 0 {
			info.FirstStep = c.Rows[0].Step
			info.LastStep = c.Rows[len(c.Rows)-1].Step
		}
		for _, name := range info.Metrics {
			if _, values := plot.CurveSeries(c, name); len(values) > 0 {
				info.Final[name] = values[len(values)-1]
			}
		}
		m.Curves = info
	}

	if f := st.Field; f != nil {
		info := &FieldInfo{Source: st.Sources[artifact.KindVectorField], Frames: f.Len(), Arrows: make([]int, f.Len())}
		for i, s := range f.Samples {
			info.Arrows[i] = min(len(s.Points), len(s.Vectors))
		}
		if f.Len() > 0 {
			info.TStart = f.Samples[0].T
			info.TEnd = f.Samples[f.Len()-1].T
		}
		m.Field = info
	}

	if e := st.Embedding; e != nil {
		m.Embedding = &EmbeddingInfo{
			Source:  st.Sources[artifact.KindEmbedding],
			Teacher: len(e.Teacher),
			Student: len(e.Student),
		}
	}
	return m
}

// ManifestJSON writes the session manifest as indented JSON.
func ManifestJSON(w io.Writer, st *session.State) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildManifest(st))
}
