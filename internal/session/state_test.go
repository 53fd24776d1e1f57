package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/runviz/internal/artifact"
)

func fieldResult(name string, frames int) artifact.Result {
	set := &artifact.VectorFieldSet{Samples: make([]artifact.VectorFieldSample, frames)}
	return artifact.Result{Kind: artifact.KindVectorField, Name: name, Field: set}
}

func TestApplyField(t *testing.T) {
	s := New()
	assert.Nil(t, s.Frame())

	require.NoError(t, s.Apply(fieldResult("a.json", 3)))
	assert.Equal(t, 3, s.Player.Count())
	require.NotNil(t, s.Frame())

	s.Player.SetIndex(2)
	s.Player.Play()

	require.NoError(t, s.Apply(fieldResult("b.json", 5)))
	assert.Equal(t, 0, s.Player.Index())
	assert.False(t, s.Player.Playing())
	assert.Equal(t, 5, s.Field.Len())
	assert.Equal(t, "b.json", s.Sources[artifact.KindVectorField])
}

func TestApplyLastWins(t *testing.T) {
	s := New()
	first := &artifact.Embedding{Teacher: []artifact.Vec2{{X: 0, Y: 0}}}
	second := &artifact.Embedding{Student: []artifact.Vec2{{X: 1, Y: 1}}}

	require.NoError(t, s.Apply(artifact.Result{Kind: artifact.KindEmbedding, Name: "one", Embedding: first}))
	require.NoError(t, s.Apply(artifact.Result{Kind: artifact.KindEmbedding, Name: "two", Embedding: second}))
	assert.Same(t, second, s.Embedding)
}

func TestApplyFailureKeepsData(t *testing.T) {
	s := New()
	curves := &artifact.LearningCurve{Rows: []artifact.CurveRow{{Step: 1}}}
	require.NoError(t, s.Apply(artifact.Result{Kind: artifact.KindCurves, Name: "c.csv", Curves: curves}))

	failed := artifact.Fail(artifact.KindCurves, "bad.csv", artifact.ErrNoHeader)
	err := s.Apply(failed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, artifact.ErrNoHeader))
	assert.Same(t, curves, s.Curves)
	assert.Contains(t, s.Notice, "bad.csv")
	assert.True(t, s.Failed)
}

func TestApplyVideosDeduplicated(t *testing.T) {
	s := New()
	require.NoError(t, s.Apply(artifact.VideoResult("videos/eval_episode_000.mp4")))
	require.NoError(t, s.Apply(artifact.VideoResult("videos/eval_episode_001.mp4")))
	require.NoError(t, s.Apply(artifact.VideoResult("videos/eval_episode_000.mp4")))
	assert.Len(t, s.Videos, 2)
}

func TestSummary(t *testing.T) {
	s := New()
	require.NoError(t, s.Apply(fieldResult("vf.json", 2)))
	sum := s.Summary()
	assert.Contains(t, sum, "vf.json (2 frames)")
	assert.Contains(t, sum, "curves:       -")
}
