package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/runviz/internal/artifact"
)

// Store keeps offline copies of run artifacts. Each mirrored run lives in
// its own directory with the original relative layout, so the directory
// can be passed back as a base.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// File is one artifact to mirror, addressed by its path under the base.
type File struct {
	Rel  string
	Kind artifact.Kind
	Data []byte
}

type FileMeta struct {
	Path  string `json:"path"`
	Kind  string `json:"kind"`
	Bytes int    `json:"bytes"`
}

type RunMetadata struct {
	ID        string     `json:"id"`
	Source    string     `json:"source"`
	Timestamp time.Time  `json:"timestamp"`
	Files     []FileMeta `json:"files"`
}

const metadataFile = "metadata.json"

// Save writes files under a new run directory and records where they came
// from. It returns the run ID.
func (s *Store) Save(source string, files []File) (string, error) {
	if len(files) == 0 {
		return "", fmt.Errorf("nothing to save")
	}
	for _, f := range files {
		rel := filepath.Clean(filepath.FromSlash(f.Rel))
		if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", fmt.Errorf("refusing to write outside the run directory: %s", f.Rel)
		}
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", runName(source), now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Source:    source,
		Timestamp: now,
	}
	for _, f := range files {
		rel := filepath.Clean(filepath.FromSlash(f.Rel))
		path := filepath.Join(runDir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", err
		}
		if err := os.WriteFile(path, f.Data, 0644); err != nil {
			return "", err
		}
		meta.Files = append(meta.Files, FileMeta{Path: filepath.ToSlash(rel), Kind: f.Kind.String(), Bytes: len(f.Data)})
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}
	return runID, nil
}

// Dir returns the directory of a mirrored run.
func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

// List returns mirrored runs, newest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// runName turns a base URL or directory into a short directory-safe name.
func runName(source string) string {
	name := source
	if i := strings.Index(name, "://"); i >= 0 {
		name = name[i+3:]
	}
	name = strings.Trim(name, "/")
	if name == "" {
		return "run"
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, name)
	if len(name) > 48 {
		name = name[len(name)-48:]
	}
	return name
}
