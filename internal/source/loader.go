package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/edsrzf/mmap-go"
	"github.com/san-kum/runviz/internal/artifact"
)

// Relative paths of the artifacts under a base URL.
const (
	CurvesPath      = "portfolio_logs/learning_curves.csv"
	VectorFieldPath = "portfolio_logs/vector_field_bcflow.json"
	EmbeddingPath   = "portfolio_logs/embedding_student_teacher.json"
)

// DefaultPaths maps each data artifact kind to its path under a base URL.
var DefaultPaths = map[artifact.Kind]string{
	artifact.KindCurves:      CurvesPath,
	artifact.KindVectorField: VectorFieldPath,
	artifact.KindEmbedding:   EmbeddingPath,
}

// MaxBodyBytes is the default cap on a remote artifact download.
const MaxBodyBytes = 256 << 20

// ErrTooLarge reports a remote artifact over the loader's size cap.
var ErrTooLarge = errors.New("artifact too large")

// HTTPError reports a non-2xx response.
type HTTPError struct {
	URL    string
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("fetch %s: HTTP %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

// Loader reads artifacts from disk or over HTTP and always returns a
// structured artifact.Result.
type Loader struct {
	Client *http.Client
	Logger *slog.Logger
	Paths  map[artifact.Kind]string

	// MaxBytes caps remote downloads; zero means MaxBodyBytes.
	MaxBytes int64
}

func New(timeout time.Duration, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{
		Client:   &http.Client{Timeout: timeout},
		Logger:   logger,
		Paths:    DefaultPaths,
		MaxBytes: MaxBodyBytes,
	}
}

// Load dispatches ref to LoadURL or LoadFile. KindUnknown sniffs the content.
func (l *Loader) Load(ctx context.Context, ref string, kind artifact.Kind) artifact.Result {
	if artifact.IsRemote(ref) {
		return l.LoadURL(ctx, ref, kind)
	}
	return l.LoadFile(ctx, ref, kind)
}

// LoadFile memory-maps path read-only and parses it.
func (l *Loader) LoadFile(ctx context.Context, path string, kind artifact.Kind) artifact.Result {
	if err := ctx.Err(); err != nil {
		return artifact.Fail(kind, artifact.DisplayName(path), err)
	}
	if kind == artifact.KindVideo {
		return l.done(path, artifact.VideoResult(path))
	}

	data, release, err := mapFile(path)
	if err != nil {
		return l.done(path, artifact.Fail(kind, artifact.DisplayName(path), err))
	}
	defer release()

	return l.done(path, artifact.Parse(kind, path, data))
}

// LoadURL fetches rawURL and parses the body. Video references are passed
// through without downloading.
func (l *Loader) LoadURL(ctx context.Context, rawURL string, kind artifact.Kind) artifact.Result {
	name := artifact.DisplayName(rawURL)
	if kind == artifact.KindVideo || (kind == artifact.KindUnknown && artifact.IsVideoName(rawURL)) {
		return l.done(rawURL, artifact.VideoResult(rawURL))
	}

	data, err := l.fetchURL(ctx, rawURL)
	if err != nil {
		return l.done(rawURL, artifact.Fail(kind, name, err))
	}
	return l.done(rawURL, artifact.Parse(kind, rawURL, data))
}

// Fetch returns the raw bytes behind ref without parsing them.
func (l *Loader) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if artifact.IsRemote(ref) {
		return l.fetchURL(ctx, ref)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, release, err := mapFile(ref)
	if err != nil {
		return nil, err
	}
	defer release()
	return append([]byte(nil), data...), nil
}

func (l *Loader) fetchURL(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{URL: rawURL, Status: resp.StatusCode}
	}

	limit := l.MaxBytes
	if limit <= 0 {
		limit = MaxBodyBytes
	}
	if resp.ContentLength > limit {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, rawURL, resp.ContentLength, limit)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, rawURL, limit)
	}
	return data, nil
}

// Request names one artifact to load. KindUnknown sniffs the content.
type Request struct {
	Ref  string
	Kind artifact.Kind
}

// BaseRequests lists the data artifacts under base in curves, vector field,
// embedding order.
func (l *Loader) BaseRequests(base string) ([]Request, error) {
	kinds := []artifact.Kind{artifact.KindCurves, artifact.KindVectorField, artifact.KindEmbedding}
	reqs := make([]Request, 0, len(kinds))
	for _, k := range kinds {
		ref, err := Resolve(base, l.pathFor(k))
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, Request{Ref: ref, Kind: k})
	}
	return reqs, nil
}

// LoadBase loads every data artifact under base. A base that cannot be
// resolved fails every slot with the same error.
func (l *Loader) LoadBase(ctx context.Context, base string) []artifact.Result {
	reqs, err := l.BaseRequests(base)
	if err != nil {
		return []artifact.Result{
			artifact.Fail(artifact.KindCurves, base, err),
			artifact.Fail(artifact.KindVectorField, base, err),
			artifact.Fail(artifact.KindEmbedding, base, err),
		}
	}
	results := make([]artifact.Result, 0, len(reqs))
	for _, r := range reqs {
		results = append(results, l.Load(ctx, r.Ref, r.Kind))
	}
	return results
}

func (l *Loader) pathFor(k artifact.Kind) string {
	if p, ok := l.Paths[k]; ok && p != "" {
		return p
	}
	return DefaultPaths[k]
}

func (l *Loader) done(ref string, res artifact.Result) artifact.Result {
	if res.Err != nil {
		l.Logger.Warn("artifact load failed", "ref", ref, "kind", res.Kind.String(), "err", res.Err)
	} else {
		l.Logger.Debug("artifact loaded", "ref", ref, "kind", res.Kind.String())
	}
	return res
}

// Resolve joins a relative artifact path onto a base URL or directory.
func Resolve(base, rel string) (string, error) {
	if base == "" {
		return rel, nil
	}
	if !artifact.IsRemote(base) {
		return filepath.Join(base, filepath.FromSlash(rel)), nil
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	r, err := url.Parse(rel)
	if err != nil {
		return "", err
	}
	return u.ResolveReference(r).String(), nil
}

// mapFile maps path into memory. Empty files yield an empty slice because
// zero-length mappings are rejected by the OS.
func mapFile(path string) ([]byte, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() == 0 {
		f.Close()
		return []byte{}, func() {}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	return m, func() {
		m.Unmap()
		f.Close()
	}, nil
}
