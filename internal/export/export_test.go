package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/color"
	"image/gif"
	"image/png"
	"strings"
	"testing"

	"github.com/san-kum/runviz/internal/artifact"
	"github.com/san-kum/runviz/internal/session"
)

func sample() *artifact.VectorFieldSample {
	return &artifact.VectorFieldSample{
		T:       0.25,
		Points:  []artifact.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}},
		Vectors: []artifact.Vec2{{X: 1, Y: 0}, {X: 0, Y: 1}},
	}
}

func TestFrameSVG(t *testing.T) {
	svg := FrameSVG(sample(), 100, 100)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if n := strings.Count(svg, "<line "); n != 2 {
		t.Errorf("expected 2 lines, got %d", n)
	}
	if !strings.Contains(svg, `<line x1="5.0" y1="95.0" x2="95.0" y2="95.0"/>`) {
		t.Errorf("first arrow missing:\n%s", svg)
	}
	if !strings.Contains(svg, ">t=0.250</text>") {
		t.Error("frame label missing")
	}
}

func TestFrameSVGEmpty(t *testing.T) {
	svg := FrameSVG(&artifact.VectorFieldSample{T: 1}, 50, 50)
	if strings.Contains(svg, "<line ") || strings.Contains(svg, "<text") {
		t.Error("empty sample should only draw the background")
	}
	if !strings.Contains(FrameSVG(nil, 50, 50), "<rect") {
		t.Error("nil sample should still produce a document")
	}
}

func TestEmbeddingSVG(t *testing.T) {
	e := &artifact.Embedding{
		Teacher: []artifact.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}},
		Student: []artifact.Vec2{{X: 0.5, Y: 0.5}},
	}
	svg := EmbeddingSVG(e, 200, 100)
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("teacher circles = %d", n)
	}
	if n := strings.Count(svg, "<path"); n != 1 {
		t.Errorf("student crosses = %d", n)
	}
}

func TestCurveSVG(t *testing.T) {
	one, two := 1.0, 0.5
	c := &artifact.LearningCurve{
		Columns: []string{"step", "reward"},
		Rows: []artifact.CurveRow{
			{Step: 0, Reward: &one},
			{Step: 10, Reward: &two},
		},
	}
	svg := CurveSVG(c, "reward", 100, 50)
	if !strings.Contains(svg, " L") {
		t.Errorf("expected a polyline:\n%s", svg)
	}
	if CurveSVG(c, "mse", 100, 50) != "" {
		t.Error("absent metric should yield nothing")
	}
}

func TestFieldGIF(t *testing.T) {
	set := &artifact.VectorFieldSet{Samples: []artifact.VectorFieldSample{*sample(), *sample(), {T: 2}}}

	var buf bytes.Buffer
	if err := FieldGIF(&buf, set, 64, 48); err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 3 {
		t.Fatalf("frames = %d", len(g.Image))
	}
	for i, d := range g.Delay {
		if d != 80 {
			t.Errorf("frame %d delay = %d", i, d)
		}
	}
}

func TestFieldGIFEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := FieldGIF(&buf, nil, 10, 10); !errors.Is(err, artifact.ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestRenderFrameDrawsInk(t *testing.T) {
	img := RenderFrame(sample(), 100, 100)
	if img.ColorIndexAt(50, 95) != inkField {
		t.Error("expected the first arrow across y=95")
	}
	if img.ColorIndexAt(50, 50) != inkBackground {
		t.Error("centre should be background")
	}

	// arrows leaving the frame are clipped, not wrapped
	long := &artifact.VectorFieldSample{
		Points:  []artifact.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}},
		Vectors: []artifact.Vec2{{X: 100, Y: 0}, {X: 0, Y: 0}},
	}
	img = RenderFrame(long, 100, 100)
	if img.ColorIndexAt(99, 95) != inkField {
		t.Error("clipped arrow should reach the edge")
	}
}

func TestCurvesPNG(t *testing.T) {
	a, b, c := 1.0, 0.5, 0.7
	lc := &artifact.LearningCurve{
		Columns: []string{"step", "reward", "mse"},
		Rows: []artifact.CurveRow{
			{Step: 0, Reward: &a, MSE: &c},
			{Step: 10, Reward: &b},
		},
	}
	var buf bytes.Buffer
	if err := CurvesPNG(&buf, lc, 400, 300); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 300 {
		t.Errorf("size = %v", img.Bounds())
	}

	if err := CurvesPNG(&buf, nil, 400, 300); !errors.Is(err, artifact.ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestEmbeddingPNG(t *testing.T) {
	e := &artifact.Embedding{
		Teacher: []artifact.Vec2{{X: 0, Y: 0}, {X: 1, Y: 2}},
		Student: []artifact.Vec2{{X: 0.5, Y: 1}, {X: 0.2, Y: 0.1}},
	}
	var buf bytes.Buffer
	if err := EmbeddingPNG(&buf, e, 320, 240); err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatal(err)
	}
}

func TestManifestJSON(t *testing.T) {
	st := session.New()
	r1, r2 := 1.0, 3.0
	st.Apply(artifact.Result{Kind: artifact.KindCurves, Name: "lc.csv", Curves: &artifact.LearningCurve{
		Columns: []string{"step", "reward"},
		Rows:    []artifact.CurveRow{{Step: 5, Reward: &r1}, {Step: 15, Reward: &r2}},
		Dropped: 1,
	}})
	st.Apply(artifact.Result{Kind: artifact.KindVectorField, Name: "vf.json", Field: &artifact.VectorFieldSet{
		Samples: []artifact.VectorFieldSample{*sample(), {T: 0.75}},
	}})
	st.Apply(artifact.VideoResult("https://example.org/videos/eval_episode_001.mp4"))

	var buf bytes.Buffer
	if err := ManifestJSON(&buf, st); err != nil {
		t.Fatal(err)
	}

	var m Manifest
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatal(err)
	}
	if m.Curves == nil || m.Curves.LastStep != 15 || m.Curves.Final["reward"] != 3 || m.Curves.Dropped != 1 {
		t.Errorf("curves = %+v", m.Curves)
	}
	if m.Field == nil || m.Field.Frames != 2 || m.Field.TEnd != 0.75 || m.Field.Arrows[1] != 0 {
		t.Errorf("field = %+v", m.Field)
	}
	if m.Embedding != nil {
		t.Error("embedding should be omitted")
	}
	if len(m.Videos) != 1 || !m.Videos[0].Remote {
		t.Errorf("videos = %+v", m.Videos)
	}
}

func TestPaletteUsesThemeColours(t *testing.T) {
	p := palette()
	if got := p[inkBackground]; got != (color.RGBA{R: 10, G: 10, B: 10, A: 255}) {
		t.Errorf("unexpected background %v", got)
	}
	if got := rgb("not-a-colour"); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("malformed colour should read as white, got %v", got)
	}
}
