package main

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/runviz/internal/artifact"
	"github.com/san-kum/runviz/internal/config"
	"github.com/san-kum/runviz/internal/export"
	"github.com/san-kum/runviz/internal/field"
	"github.com/san-kum/runviz/internal/gui"
	"github.com/san-kum/runviz/internal/logging"
	"github.com/san-kum/runviz/internal/plot"
	"github.com/san-kum/runviz/internal/session"
	"github.com/san-kum/runviz/internal/source"
	"github.com/san-kum/runviz/internal/storage"
	"github.com/san-kum/runviz/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	baseURL    string
	kindName   string
	theme      string
	verbose    bool
	tickMs     int
	timeoutS   int
	// Terminal output
	frame       int
	metric      string
	svgMetric   string
	cols        int
	rows        int
	curveWidth  int
	curveHeight int
	// Export
	output  string
	preset  string
	jsonOut bool
)

var errNoArtifact = errors.New("no artifact given: pass a path or URL, or set --base")

// app carries what every command needs after config and flags are merged.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	loader *source.Loader
	kind   artifact.Kind
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "runviz [artifacts...]",
		Short:         "training-run artifact viewer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runView,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".runviz", "data directory for mirrored runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml), defaults to ./"+config.DefaultFile+" when present")
	pf.StringVar(&baseURL, "base", "", "base URL or directory holding portfolio_logs/")
	pf.StringVar(&kindName, "kind", "auto", "artifact kind: "+strings.Join(artifact.KindNames(), ", "))
	pf.StringVar(&theme, "theme", config.DefaultTheme, "colour theme: "+strings.Join(viz.ThemeNames(), ", "))
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.IntVar(&tickMs, "tick", config.DefaultTickMs, "autoplay period in milliseconds")
	pf.IntVar(&timeoutS, "timeout", config.DefaultTimeout, "network timeout in seconds")

	viewCmd := &cobra.Command{
		Use:   "view [artifacts...]",
		Short: "interactive terminal viewer",
		RunE:  runView,
	}

	guiCmd := &cobra.Command{
		Use:   "gui [artifacts...]",
		Short: "vector-field player in a window",
		RunE:  runGUI,
	}

	curvesCmd := &cobra.Command{
		Use:   "curves [csv]",
		Short: "plot learning curves in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotCurves,
	}
	curvesCmd.Flags().StringVar(&metric, "metric", "", "plot a single metric")
	curvesCmd.Flags().IntVar(&curveWidth, "width", 80, "plot width")
	curvesCmd.Flags().IntVar(&curveHeight, "height", 10, "plot height")

	fieldCmd := &cobra.Command{
		Use:   "field [json]",
		Short: "draw one vector-field frame in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  drawField,
	}
	fieldCmd.Flags().IntVar(&frame, "frame", 0, "frame index")
	fieldCmd.Flags().IntVar(&cols, "width", 80, "canvas width in cells")
	fieldCmd.Flags().IntVar(&rows, "height", 24, "canvas height in cells")

	embedCmd := &cobra.Command{
		Use:   "embed [json]",
		Short: "scatter the student/teacher embedding in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  drawEmbedding,
	}
	embedCmd.Flags().IntVar(&cols, "width", 80, "plot width in cells")
	embedCmd.Flags().IntVar(&rows, "height", 24, "plot height in cells")

	fetchCmd := &cobra.Command{
		Use:   "fetch [artifacts...]",
		Short: "load artifacts and report what parsed",
		RunE:  fetchArtifacts,
	}
	fetchCmd.Flags().BoolVar(&jsonOut, "json", false, "print a JSON manifest instead of a summary")

	mirrorCmd := &cobra.Command{
		Use:   "mirror [base]",
		Short: "copy a run's artifacts into the data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  mirrorRun,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list mirrored runs",
		RunE:  listRuns,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [artifact]",
		Short: "export a frame, embedding or curve to SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&frame, "frame", 0, "vector-field frame index")
	exportSVGCmd.Flags().StringVar(&svgMetric, "metric", artifact.MetricReward, "learning-curve metric")

	exportGIFCmd := &cobra.Command{
		Use:   "export-gif [json]",
		Short: "export the vector field as an animated GIF",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportGIF,
	}

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [artifact]",
		Short: "export curves, embedding or a field frame to PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportPNG,
	}
	exportPNGCmd.Flags().IntVar(&frame, "frame", 0, "vector-field frame index")

	for _, c := range []*cobra.Command{exportSVGCmd, exportGIFCmd, exportPNGCmd} {
		c.Flags().StringVarP(&output, "output", "o", "", "output file (stdout when empty)")
		c.Flags().StringVar(&preset, "preset", "", "size preset: "+strings.Join(config.ListPresets(), ", "))
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultFile
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list export size presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				s, _ := config.GetPreset(name)
				w, h := s.Physical()
				fmt.Printf("  %-8s %dx%d @%gx (%dx%d px)\n", name, s.Width, s.Height, s.Scale, w, h)
			}
		},
	}

	rootCmd.AddCommand(viewCmd, guiCmd, curvesCmd, fieldCmd, embedCmd, fetchCmd, mirrorCmd, runsCmd, exportSVGCmd, exportGIFCmd, exportPNGCmd, initConfigCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup loads the config file and applies flags on top. Flags only win
// when set explicitly.
func setup(cmd *cobra.Command) (*app, error) {
	cfg := config.DefaultConfig()
	path := configFile
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); err == nil {
			path = config.DefaultFile
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("base") {
		cfg.BaseURL = baseURL
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("tick") && tickMs > 0 {
		cfg.TickMs = tickMs
	}
	if flags.Changed("timeout") && timeoutS > 0 {
		cfg.TimeoutS = timeoutS
	}

	kind, err := artifact.ParseKind(kindName)
	if err != nil {
		return nil, err
	}

	viz.SetTheme(cfg.Theme)
	log := logging.New(logging.Level(verbose))
	loader := source.New(cfg.Timeout(), log)
	loader.Paths = cfg.ArtifactPaths()

	log.Debug("config ready", "base", cfg.BaseURL, "theme", cfg.Theme, "tick_ms", cfg.TickMs)
	return &app{cfg: cfg, log: log, loader: loader, kind: kind}, nil
}

// requests lists the base artifacts followed by every argument.
func (a *app) requests(args []string) ([]source.Request, error) {
	var reqs []source.Request
	if a.cfg.BaseURL != "" {
		base, err := a.loader.BaseRequests(a.cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, base...)
	}
	for _, ref := range args {
		reqs = append(reqs, source.Request{Ref: ref, Kind: a.kind})
	}
	return reqs, nil
}

// loadOne loads the single artifact named by args, or the artifact of kind
// want under the base when args is empty. --kind overrides want.
func (a *app) loadOne(ctx context.Context, args []string, want artifact.Kind) (artifact.Result, error) {
	kind := want
	if a.kind != artifact.KindUnknown {
		kind = a.kind
	}

	var ref string
	switch {
	case len(args) > 0:
		ref = args[0]
	case a.cfg.BaseURL != "" && kind != artifact.KindUnknown && kind != artifact.KindVideo:
		r, err := source.Resolve(a.cfg.BaseURL, a.loader.Paths[kind])
		if err != nil {
			return artifact.Result{}, err
		}
		ref = r
	default:
		return artifact.Result{}, errNoArtifact
	}

	res := a.loader.Load(ctx, ref, kind)
	return res, res.Err
}

func (a *app) size() (int, int, error) {
	s := a.cfg.Size()
	if preset != "" {
		p, ok := config.GetPreset(preset)
		if !ok {
			return 0, 0, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		s = p
	}
	w, h := s.Physical()
	return w, h, nil
}

func runView(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	reqs, err := a.requests(args)
	if err != nil {
		return err
	}
	return viz.Run(session.New(), viz.Options{
		Context:    cmd.Context(),
		Loader:     a.loader,
		Requests:   reqs,
		TickPeriod: a.cfg.TickPeriod(),
		Open:       viz.SystemOpen,
		Logger:     a.log,
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	reqs, err := a.requests(args)
	if err != nil {
		return err
	}
	gui.Run(session.New(), gui.Options{
		Context:    cmd.Context(),
		Title:      "runviz",
		Width:      a.cfg.Width,
		Height:     a.cfg.Height,
		TickPeriod: a.cfg.TickPeriod(),
		Loader:     a.loader,
		Requests:   reqs,
		Logger:     a.log,
	})
	return nil
}

func plotCurves(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	res, err := a.loadOne(cmd.Context(), args, artifact.KindCurves)
	if err != nil {
		return err
	}
	if res.Curves == nil {
		return fmt.Errorf("%s is a %s, not learning curves", res.Name, res.Kind)
	}
	return writeCurves(os.Stdout, res, metric, curveWidth, curveHeight)
}

func writeCurves(w io.Writer, res artifact.Result, only string, width, height int) error {
	if err := checkGrid(width, height); err != nil {
		return err
	}
	metrics := plot.AvailableMetrics(res.Curves)
	if only != "" {
		metrics = []string{only}
	}
	if len(metrics) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Fprintf(w, "curves: %s\n", res.Name)
	fmt.Fprintf(w, "rows: %d (%d dropped)\n\n", len(res.Curves.Rows), res.Curves.Dropped)

	for _, m := range metrics {
		steps, values := plot.CurveSeries(res.Curves, m)
		if len(values) == 0 {
			return fmt.Errorf("metric %q has no values", m)
		}
		graph := asciigraph.Plot(values,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(fmt.Sprintf("%s vs step (%d..%d)", m, int64(steps[0]), int64(steps[len(steps)-1]))),
		)
		fmt.Fprintln(w, graph)
		fmt.Fprintln(w)
	}
	return nil
}

func drawField(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	res, err := a.loadOne(cmd.Context(), args, artifact.KindVectorField)
	if err != nil {
		return err
	}
	if res.Field == nil {
		return fmt.Errorf("%s is a %s, not a vector field", res.Name, res.Kind)
	}
	return writeField(os.Stdout, res, frame, cols, rows)
}

func checkGrid(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid size %dx%d: width and height must be positive", width, height)
	}
	return nil
}

func writeField(w io.Writer, res artifact.Result, index, width, height int) error {
	if err := checkGrid(width, height); err != nil {
		return err
	}
	sample := res.Field.Sample(index)
	if sample == nil {
		return fmt.Errorf("frame %d out of range (0..%d)", index, res.Field.Len()-1)
	}
	surf := viz.NewSurface(viz.NewCanvas(width, height))
	sw, sh := surf.Size()
	n := field.Render(surf, sample, sw, sh)

	fmt.Fprintf(w, "field: %s  frame %d/%d  %s  %d arrows\n", res.Name, index+1, res.Field.Len(), field.FrameLabel(sample), n)
	fmt.Fprintln(w, surf.String())
	return nil
}

func drawEmbedding(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	res, err := a.loadOne(cmd.Context(), args, artifact.KindEmbedding)
	if err != nil {
		return err
	}
	if res.Embedding == nil {
		return fmt.Errorf("%s is a %s, not an embedding", res.Name, res.Kind)
	}
	return writeEmbedding(os.Stdout, res, cols, rows)
}

func writeEmbedding(w io.Writer, res artifact.Result, width, height int) error {
	if err := checkGrid(width, height); err != nil {
		return err
	}
	s := viz.NewScatter(res.Embedding, width, height)
	fmt.Fprintln(w, s.Render())
	fmt.Fprintln(w, s.Legend())
	return nil
}

func fetchArtifacts(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	reqs, err := a.requests(args)
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		return errNoArtifact
	}

	st, err := loadAll(cmd.Context(), a.loader, reqs)
	if jsonOut {
		if jerr := export.ManifestJSON(os.Stdout, st); jerr != nil {
			return jerr
		}
	} else {
		fmt.Print(st.Summary())
	}
	return err
}

func mirrorRun(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	base := a.cfg.BaseURL
	if len(args) > 0 {
		base = args[0]
	}
	if base == "" {
		return errNoArtifact
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, files, err := mirror(cmd.Context(), a, st, base)
	if err != nil {
		return err
	}
	fmt.Printf("mirrored %d artifact(s) from %s\n", files, base)
	fmt.Printf("run: %s\n", runID)
	fmt.Printf("view with: runviz view --base %s\n", st.Dir(runID))
	return nil
}

// mirror fetches every data artifact under base, keeps those that parse,
// and saves them as a new run.
func mirror(ctx context.Context, a *app, st *storage.Store, base string) (string, int, error) {
	reqs, err := a.loader.BaseRequests(base)
	if err != nil {
		return "", 0, err
	}

	var files []storage.File
	for _, r := range reqs {
		data, err := a.loader.Fetch(ctx, r.Ref)
		if err != nil {
			a.log.Warn("mirror skipped artifact", "ref", r.Ref, "err", err)
			continue
		}
		if res := artifact.Parse(r.Kind, r.Ref, data); res.Err != nil {
			a.log.Warn("mirror skipped artifact", "ref", r.Ref, "err", res.Err)
			continue
		}
		files = append(files, storage.File{Rel: a.loader.Paths[r.Kind], Kind: r.Kind, Data: data})
	}
	if len(files) == 0 {
		return "", 0, fmt.Errorf("no artifact under %s could be fetched", base)
	}

	runID, err := st.Save(base, files)
	return runID, len(files), err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tFILES")

	for _, run := range runs {
		kinds := make([]string, len(run.Files))
		for i, f := range run.Files {
			kinds[i] = f.Kind
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			run.ID,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			strings.Join(kinds, ","),
		)
	}

	return w.Flush()
}

// loadAll loads reqs in order into a fresh session. Failures are joined;
// successes are kept.
func loadAll(ctx context.Context, l *source.Loader, reqs []source.Request) (*session.State, error) {
	st := session.New()
	var errs []error
	for _, r := range reqs {
		if err := st.Apply(l.Load(ctx, r.Ref, r.Kind)); err != nil {
			errs = append(errs, err)
		}
	}
	return st, errors.Join(errs...)
}

// writeOutput runs fn against stdout, or against a temp file next to -o
// that replaces -o only when fn succeeds.
func writeOutput(fn func(io.Writer) error) error {
	if output == "" {
		return fn(os.Stdout)
	}

	tmp, err := os.CreateTemp(filepath.Dir(output), "."+filepath.Base(output)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := fn(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), output); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", output)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	res, err := a.loadOne(cmd.Context(), args, artifact.KindUnknown)
	if err != nil {
		return err
	}
	w, h, err := a.size()
	if err != nil {
		return err
	}

	var svg string
	switch res.Kind {
	case artifact.KindVectorField:
		sample := res.Field.Sample(frame)
		if sample == nil {
			return fmt.Errorf("frame %d out of range (0..%d)", frame, res.Field.Len()-1)
		}
		svg = export.FrameSVG(sample, w, h)
	case artifact.KindEmbedding:
		svg = export.EmbeddingSVG(res.Embedding, w, h)
	case artifact.KindCurves:
		if svg = export.CurveSVG(res.Curves, svgMetric, w, h); svg == "" {
			return fmt.Errorf("metric %q needs at least two values", svgMetric)
		}
	default:
		return fmt.Errorf("%w: cannot export %s to svg", artifact.ErrUnsupported, res.Kind)
	}
	return writeOutput(func(out io.Writer) error {
		_, err := io.WriteString(out, svg)
		return err
	})
}

func exportGIF(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	res, err := a.loadOne(cmd.Context(), args, artifact.KindVectorField)
	if err != nil {
		return err
	}
	if res.Field == nil {
		return fmt.Errorf("%s is a %s, not a vector field", res.Name, res.Kind)
	}
	w, h, err := a.size()
	if err != nil {
		return err
	}
	return writeOutput(func(out io.Writer) error {
		return export.FieldGIF(out, res.Field, w, h)
	})
}

func exportPNG(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	res, err := a.loadOne(cmd.Context(), args, artifact.KindUnknown)
	if err != nil {
		return err
	}
	w, h, err := a.size()
	if err != nil {
		return err
	}

	var sample *artifact.VectorFieldSample
	if res.Kind == artifact.KindVectorField {
		if sample = res.Field.Sample(frame); sample == nil {
			return fmt.Errorf("frame %d out of range (0..%d)", frame, res.Field.Len()-1)
		}
	}

	return writeOutput(func(out io.Writer) error {
		switch res.Kind {
		case artifact.KindCurves:
			return export.CurvesPNG(out, res.Curves, w, h)
		case artifact.KindEmbedding:
			return export.EmbeddingPNG(out, res.Embedding, w, h)
		case artifact.KindVectorField:
			return png.Encode(out, export.RenderFrame(sample, w, h))
		}
		return fmt.Errorf("%w: cannot export %s to png", artifact.ErrUnsupported, res.Kind)
	})
}
