package viz

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/runviz/internal/artifact"
	"github.com/san-kum/runviz/internal/field"
	"github.com/san-kum/runviz/internal/plot"
	"github.com/san-kum/runviz/internal/session"
	"github.com/san-kum/runviz/internal/source"
)

type Tab int

const (
	TabCurves Tab = iota
	TabField
	TabEmbedding
	TabVideos
)

var tabNames = []string{"curves", "field", "embedding", "videos"}

func (t Tab) String() string {
	if int(t) < len(tabNames) {
		return tabNames[t]
	}
	return "?"
}

type Options struct {
	// Context bounds in-flight loads and the program; nil means Background.
	Context    context.Context
	Loader     *source.Loader
	Requests   []source.Request
	TickPeriod time.Duration
	Open       OpenFunc
	Logger     *slog.Logger
}

type (
	tickMsg   struct{ gen int }
	spinMsg   struct{}
	loadedMsg struct{ res artifact.Result }
	openedMsg struct {
		ref string
		err error
	}
)

const spinPeriod = 100 * time.Millisecond

// Viewer is the terminal front end. All state lives in a session.State;
// playback ticks carry a generation so a tick scheduled before a pause,
// reset or new load is dropped.
type Viewer struct {
	state    *session.State
	opts     Options
	requests []source.Request

	tab           Tab
	width, height int
	surface       *Surface
	metric        int
	video         int
	gen           int
	pending       int
	spin          int
}

func NewViewer(state *session.State, opts Options) Viewer {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.TickPeriod <= 0 {
		opts.TickPeriod = field.TickPeriod
	}
	if opts.Open == nil {
		opts.Open = SystemOpen
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Loader == nil {
		opts.Loader = source.New(30*time.Second, opts.Logger)
	}

	reqs := append([]source.Request(nil), opts.Requests...)

	v := Viewer{
		state:    state,
		opts:     opts,
		requests: reqs,
		pending:  len(reqs),
		width:    80,
		height:   24,
	}
	v.resize()
	if state.Field != nil {
		v.tab = TabField
	}
	return v
}

func (v Viewer) State() *session.State { return v.state }

func (v Viewer) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(v.requests)+1)
	for _, r := range v.requests {
		cmds = append(cmds, v.load(r))
	}
	if v.pending > 0 {
		cmds = append(cmds, spin())
	}
	return tea.Batch(cmds...)
}

func (v Viewer) load(r source.Request) tea.Cmd {
	ctx, loader := v.opts.Context, v.opts.Loader
	return func() tea.Msg {
		return loadedMsg{res: loader.Load(ctx, r.Ref, r.Kind)}
	}
}

func (v Viewer) tick() tea.Cmd {
	gen := v.gen
	return tea.Tick(v.opts.TickPeriod, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func spin() tea.Cmd {
	return tea.Tick(spinPeriod, func(time.Time) tea.Msg { return spinMsg{} })
}

func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
		v.resize()
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case tickMsg:
		if msg.gen != v.gen || !v.state.Player.Playing() {
			return v, nil
		}
		if v.state.Player.Tick() {
			v.redraw()
		}
		return v, v.tick()

	case loadedMsg:
		if v.pending > 0 {
			v.pending--
		}
		if err := v.state.Apply(msg.res); err != nil {
			v.opts.Logger.Warn("load rejected", "name", msg.res.Name, "err", err)
			return v, nil
		}
		switch msg.res.Kind {
		case artifact.KindVectorField:
			v.gen++
			v.redraw()
			if v.tab == TabCurves && v.state.Curves == nil {
				v.tab = TabField
			}
		case artifact.KindCurves:
			v.metric = 0
		}
		return v, nil

	case openedMsg:
		if msg.err != nil {
			v.state.Notice, v.state.Failed = fmt.Sprintf("open %s: %v", msg.ref, msg.err), true
		} else {
			v.state.Notice, v.state.Failed = "opened "+msg.ref, false
		}
		return v, nil

	case spinMsg:
		if v.pending == 0 {
			return v, nil
		}
		v.spin++
		return v, spin()
	}
	return v, nil
}

func (v Viewer) handleKey(msg tea.KeyMsg) (Viewer, tea.Cmd) {
	p := v.state.Player
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return v, tea.Quit
	case "tab":
		v.tab = (v.tab + 1) % Tab(len(tabNames))
	case "shift+tab":
		v.tab = (v.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
	case "1", "2", "3", "4":
		v.tab = Tab(msg.String()[0] - '1')

	case " ":
		p.Toggle()
		v.gen++
		if p.Playing() {
			return v, v.tick()
		}
	case "r":
		p.Reset()
		v.gen++
		v.redraw()
	case "[", "left", "h":
		p.Step(-1)
		v.redraw()
	case "]", "right", "l":
		p.Step(1)
		v.redraw()

	case "m":
		if n := len(plot.AvailableMetrics(v.state.Curves)); n > 0 {
			v.metric = (v.metric + 1) % n
		}
	case "t":
		NextTheme()

	case "down", "j":
		if v.video < len(v.state.Videos)-1 {
			v.video++
		}
	case "up", "k":
		if v.video > 0 {
			v.video--
		}
	case "o", "enter":
		if v.tab != TabVideos || len(v.state.Videos) == 0 {
			return v, nil
		}
		ref, open := v.state.Videos[v.video].Ref, v.opts.Open
		return v, func() tea.Msg { return openedMsg{ref: ref, err: open(ref)} }
	}
	return v, nil
}

func (v *Viewer) resize() {
	cols, rows := max(v.width-6, 10), max(v.height-10, 4)
	v.surface = NewSurface(NewCanvas(cols, rows))
	v.redraw()
}

func (v *Viewer) redraw() {
	w, h := v.surface.Size()
	field.Render(v.surface, v.state.Frame(), w, h)
}

func (v Viewer) View() string {
	var b strings.Builder
	b.WriteString(v.header())
	b.WriteString("\n" + Separator(v.width) + "\n")

	switch v.tab {
	case TabCurves:
		b.WriteString(v.viewCurves())
	case TabField:
		b.WriteString(v.viewField())
	case TabEmbedding:
		b.WriteString(v.viewEmbedding())
	case TabVideos:
		b.WriteString(v.viewVideos())
	}

	b.WriteString("\n")
	b.WriteString(v.footer())
	return b.String()
}

func (v Viewer) header() string {
	t := CurrentTheme
	parts := []string{GradientText("RUNVIZ", t.Title, t.Field)}
	for i, name := range tabNames {
		label := fmt.Sprintf(" %d %s ", i+1, name)
		if Tab(i) == v.tab {
			parts = append(parts, lipgloss.NewStyle().Bold(true).Foreground(t.Text).Background(t.Muted).Render(label))
		} else {
			parts = append(parts, fg(t.Muted).Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (v Viewer) viewCurves() string {
	c := v.state.Curves
	metrics := plot.AvailableMetrics(c)
	if len(metrics) == 0 {
		return hintStyle.Render("no learning curves loaded")
	}
	metric := metrics[v.metric%len(metrics)]
	steps, values := plot.CurveSeries(c, metric)

	graph := asciigraph.Plot(values,
		asciigraph.Height(max(v.height-14, 5)),
		asciigraph.Width(max(v.width-16, 20)),
		asciigraph.Caption(fmt.Sprintf("%s  steps %d..%d", metric, int64(steps[0]), int64(steps[len(steps)-1]))),
	)

	var b strings.Builder
	b.WriteString(fg(CurrentTheme.Curve).Render(graph))
	b.WriteString("\n\n")
	for i, m := range metrics {
		_, vals := plot.CurveSeries(c, m)
		name := labelStyle.Render(m)
		if i == v.metric%len(metrics) {
			name = keyStyle.Width(10).Render(m)
		}
		b.WriteString(name + " " + SparklineChart(vals, min(len(vals), max(v.width-14, 10))) + "\n")
	}
	if c.Dropped > 0 {
		b.WriteString(hintStyle.Render(fmt.Sprintf("%d rows dropped (non-integer step)", c.Dropped)) + "\n")
	}
	return b.String()
}

func (v Viewer) viewField() string {
	if v.state.Field == nil {
		return hintStyle.Render("no vector field loaded")
	}
	p := v.state.Player
	status := statusPaused.Render("PAUSED")
	if p.Playing() {
		status = statusPlaying.Render("PLAYING")
	}
	label := v.surface.Text
	if label == "" {
		label = "-"
	}

	var b strings.Builder
	b.WriteString(panelStyle.Render(fg(CurrentTheme.Field).Render(v.surface.String())))
	b.WriteString("\n")
	pct := 0.0
	if p.Count() > 1 {
		pct = float64(p.Index()) / float64(p.Count()-1)
	}
	fmt.Fprintf(&b, "%s %s  %s %s  %s\n",
		status,
		valueStyle.Render(label),
		labelStyle.Width(6).Render("frame"),
		valueStyle.Render(fmt.Sprintf("%d/%d", p.Index()+1, p.Count())),
		ProgressBar(pct, max(v.width-50, 10)),
	)
	return b.String()
}

func (v Viewer) viewEmbedding() string {
	if v.state.Embedding == nil {
		return hintStyle.Render("no embedding loaded")
	}
	s := NewScatter(v.state.Embedding, max(v.width-6, 10), max(v.height-10, 4))
	return panelStyle.Render(s.Render()) + "\n" + s.Legend() + "\n"
}

func (v Viewer) viewVideos() string {
	if len(v.state.Videos) == 0 {
		return hintStyle.Render("no videos (pass .mp4 or .webm files or URLs)")
	}
	var b strings.Builder
	for i, vid := range v.state.Videos {
		cursor := "  "
		style := valueStyle
		if i == v.video {
			cursor = keyStyle.Render("▸ ")
			style = fg(CurrentTheme.Title)
		}
		where := "local"
		if vid.Remote {
			where = "remote"
		}
		b.WriteString(cursor + style.Render(vid.Name) + hintStyle.Render("  "+where+"  "+vid.Ref) + "\n")
	}
	return b.String()
}

func (v Viewer) footer() string {
	var b strings.Builder
	if v.pending > 0 {
		b.WriteString(fg(CurrentTheme.Title).Render(AnimatedSpinner(v.spin)) + hintStyle.Render(fmt.Sprintf(" loading %d artifact(s)  ", v.pending)))
	}
	if n := v.state.Notice; n != "" {
		if v.state.Failed {
			b.WriteString(fg(CurrentTheme.Error).Render(n))
		} else {
			b.WriteString(hintStyle.Render(n))
		}
	}
	b.WriteString("\n")
	b.WriteString(keyHelp("tab", "view", "space", "play", "r", "reset", "[ ]", "scrub", "m", "metric", "o", "open", "t", "theme", "q", "quit"))
	return b.String()
}

// Run starts the viewer in the alternate screen and blocks until it exits
// or opts.Context is cancelled.
func Run(state *session.State, opts Options) error {
	v := NewViewer(state, opts)
	_, err := tea.NewProgram(v, tea.WithAltScreen(), tea.WithContext(v.opts.Context)).Run()
	if err != nil && v.opts.Context.Err() != nil {
		return nil
	}
	return err
}
