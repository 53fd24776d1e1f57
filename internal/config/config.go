package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/runviz/internal/artifact"
	"github.com/san-kum/runviz/internal/source"
)

const (
	DefaultTheme   = "cyberpunk"
	DefaultTickMs  = 800
	DefaultTimeout = 30
	DefaultWidth   = 1280
	DefaultHeight  = 720
	DefaultScale   = 1.0
	DefaultFile    = "runviz.yaml"
)

type Config struct {
	BaseURL  string      `yaml:"base_url"`
	Theme    string      `yaml:"theme"`
	TickMs   int         `yaml:"tick_ms"`
	TimeoutS int         `yaml:"timeout_s"`
	Width    int         `yaml:"width"`
	Height   int         `yaml:"height"`
	Scale    float64     `yaml:"scale"`
	Paths    PathsConfig `yaml:"paths"`
}

// PathsConfig overrides the artifact locations under BaseURL.
type PathsConfig struct {
	Curves      string `yaml:"curves"`
	VectorField string `yaml:"vector_field"`
	Embedding   string `yaml:"embedding"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:    DefaultTheme,
		TickMs:   DefaultTickMs,
		TimeoutS: DefaultTimeout,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Scale:    DefaultScale,
		Paths: PathsConfig{
			Curves:      source.CurvesPath,
			VectorField: source.VectorFieldPath,
			Embedding:   source.EmbeddingPath,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// normalize replaces unusable values with defaults.
func (c *Config) normalize() {
	if c.TickMs <= 0 {
		c.TickMs = DefaultTickMs
	}
	if c.TimeoutS <= 0 {
		c.TimeoutS = DefaultTimeout
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Scale <= 0 {
		c.Scale = DefaultScale
	}
}

func (c *Config) TickPeriod() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutS) * time.Second
}

// ArtifactPaths returns the configured artifact locations keyed by kind.
// Empty entries fall back to the defaults.
func (c *Config) ArtifactPaths() map[artifact.Kind]string {
	paths := map[artifact.Kind]string{
		artifact.KindCurves:      c.Paths.Curves,
		artifact.KindVectorField: c.Paths.VectorField,
		artifact.KindEmbedding:   c.Paths.Embedding,
	}
	for k, p := range paths {
		if p == "" {
			paths[k] = source.DefaultPaths[k]
		}
	}
	return paths
}
