package gui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/runviz/internal/artifact"
	"github.com/san-kum/runviz/internal/field"
	"github.com/san-kum/runviz/internal/session"
	"github.com/san-kum/runviz/internal/source"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // Deep Black
	ColAccent  = rl.NewColor(180, 180, 180, 255) // Soft White
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
	ColError   = rl.NewColor(220, 70, 70, 255)
)

type Options struct {
	// Context bounds in-flight loads and the window; nil means Background.
	Context    context.Context
	Title      string
	Width      int
	Height     int
	TickPeriod time.Duration
	Loader     *source.Loader
	Requests   []source.Request
	Logger     *slog.Logger
}

// App is the windowed vector-field player. Loads run on goroutines and
// their results are applied from the frame loop, so State is only touched
// on the render thread.
type App struct {
	State   *session.State
	Clock   *field.Clock
	Font    rl.Font
	Title   string
	surface *rlSurface
	results chan artifact.Result
	ctx     context.Context
	log     *slog.Logger
	quit    bool
}

func initWindow(w, h int, title string) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w), int32(h), title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono when installed and falls back to the
// raylib default font.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(state *session.State, opts Options) *App {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Loader == nil {
		opts.Loader = source.New(30*time.Second, opts.Logger)
	}
	if opts.Title == "" {
		opts.Title = "runviz"
	}

	a := &App{
		State:   state,
		Clock:   field.NewClock(opts.TickPeriod),
		Title:   opts.Title,
		results: make(chan artifact.Result, len(opts.Requests)),
		ctx:     opts.Context,
		log:     opts.Logger,
	}
	for _, r := range opts.Requests {
		go func(r source.Request) {
			a.results <- opts.Loader.Load(a.ctx, r.Ref, r.Kind)
		}(r)
	}
	return a
}

// Run opens the window and blocks until it is closed.
func Run(state *session.State, opts Options) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	initWindow(opts.Width, opts.Height, opts.Title)
	defer rl.CloseWindow()

	app := NewApp(state, opts)
	app.Font = loadFont()
	app.surface = &rlSurface{font: app.Font, scale: 1}
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit && a.ctx.Err() == nil {
		a.Update()
		a.Draw()
	}
}

func (a *App) drainResults() {
	for {
		select {
		case res := <-a.results:
			if err := a.State.Apply(res); err != nil {
				a.log.Warn("load rejected", "name", res.Name, "err", err)
			} else if res.Kind == artifact.KindVectorField {
				a.Clock.Reset()
			}
		default:
			return
		}
	}
}

func (a *App) Update() {
	a.drainResults()

	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		a.quit = true
		return
	}

	p := a.State.Player
	if rl.IsKeyPressed(rl.KeySpace) {
		p.Toggle()
		a.Clock.Reset()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		p.Reset()
		a.Clock.Reset()
	}
	if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyRightBracket) || rl.IsKeyPressed(rl.KeyL) {
		p.Step(1)
	}
	if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyLeftBracket) || rl.IsKeyPressed(rl.KeyH) {
		p.Step(-1)
	}

	dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
	a.Clock.Advance(p, dt)
}

// physicalSize returns the framebuffer size and the DPI scale. Frames are
// laid out in physical pixels so they stay sharp on high-DPI displays.
func physicalSize() (w, h float64, scale float32) {
	scale = rl.GetWindowScaleDPI().X
	if scale <= 0 {
		scale = 1
	}
	w = float64(rl.GetScreenWidth()) * float64(scale)
	h = float64(rl.GetScreenHeight()) * float64(scale)
	return w, h, scale
}

func (a *App) Draw() {
	rl.BeginDrawing()

	w, h, scale := physicalSize()
	a.surface.scale = scale
	n := field.Render(a.surface, a.State.Frame(), w, h)
	a.DrawHUD(n)

	rl.EndDrawing()
}

func (a *App) DrawHUD(segments int) {
	sw, sh := rl.GetScreenWidth(), rl.GetScreenHeight()
	p := a.State.Player

	a.drawText(a.Title, sw-160, 16, 20, ColSelect)

	if a.State.Field == nil {
		a.drawText("no vector field loaded", 30, sh/2, 20, ColTextDim)
	} else {
		status := "PLAYING"
		col := ColSelect
		if !p.Playing() {
			status = "PAUSED"
			col = ColTextDim
		}
		a.drawText(status, sw-160, 44, 16, col)
		a.drawText(fmt.Sprintf("frame %d/%d  %d arrows", p.Index()+1, p.Count(), segments), 30, sh-60, 14, ColText)
	}

	if n := a.State.Notice; n != "" {
		col := ColText
		if a.State.Failed {
			col = ColError
		}
		a.drawText(n, 30, sh-84, 14, col)
	}
	a.drawText("[SPACE] PLAY  [R] RESET  [<-/->] SCRUB  [Q] QUIT", 30, sh-32, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), sw-90, sh-32, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
