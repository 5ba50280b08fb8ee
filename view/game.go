package view

import (
	"slices"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/wickgo/wick"
)

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title string
	// Scale multiplies the canvas size to get the window size.
	Scale float64
	// ShowHUD draws playback status over the canvas.
	ShowHUD bool
	// AutoPlay starts playback as soon as the window opens.
	AutoPlay bool
	// SystemClipboard mirrors copy and paste to the OS clipboard.
	SystemClipboard bool
	// Audio enables sound playback.
	Audio bool
	// OnUpdate runs at the end of every Update on the game goroutine. A
	// non-nil error ends the game.
	OnUpdate func() error
}

// Game hosts a project as an ebiten.Game. In edit mode it handles selection
// and editor hotkeys; in play mode it forwards keyboard and mouse state to
// the project's scripts.
type Game struct {
	project  *wick.Project
	renderer *Renderer
	sched    *wick.ManualScheduler
	audio    *Audio
	cfg      RunConfig

	hud     hud
	lastErr *wick.ScriptError
	keys    []ebiten.Key
}

// NewGame wires a renderer, a frame-driven scheduler and, when enabled, an
// audio player into p.
func NewGame(p *wick.Project, cfg RunConfig) *Game {
	g := &Game{
		project:  p,
		renderer: NewRenderer(),
		sched:    wick.NewManualScheduler(),
		cfg:      cfg,
	}
	p.SetView(g.renderer)
	p.SetScheduler(g.sched)
	if cfg.Audio {
		g.audio = NewAudio()
		p.SetAudioPlayer(g.audio)
	}
	p.Render()
	g.renderer.Camera().Follow(p)
	g.renderer.Camera().Snap()
	return g
}

// Renderer returns the game's renderer.
func (g *Game) Renderer() *Renderer { return g.renderer }

// Scheduler returns the scheduler driving playback. It advances by one
// ebiten tick per Update.
func (g *Game) Scheduler() *wick.ManualScheduler { return g.sched }

// TogglePlayback starts playback when editing and stops it when playing.
func (g *Game) TogglePlayback() {
	if g.project.IsPlaying() {
		g.project.Stop()
		return
	}
	g.lastErr = nil
	err := g.project.Play(wick.PlayOptions{
		OnError: func(err *wick.ScriptError) {
			g.lastErr = err
			wick.Logger().Error("script error", "clip", err.UUID, "line", err.LineNumber, "err", err.Message)
		},
	})
	if err != nil {
		wick.Logger().Error("play", "err", err)
	}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	dt := 1 / float64(tps)

	// The stop key is read before keys reach the project, so the press that
	// stops playback never starts it again through the editor hotkeys.
	stopped := g.project.IsPlaying() && stopKeyPressed(inpututil.AppendJustPressedKeys(g.keys[:0]))
	if stopped {
		g.TogglePlayback()
	}
	g.pollKeys()
	g.pollMouse()
	if !stopped && !g.project.IsPlaying() {
		g.editorHotkeys()
	}
	g.sched.Advance(time.Duration(dt * float64(time.Second)))

	if !g.project.IsPlaying() {
		g.project.Render()
	}
	cam := g.renderer.Camera()
	cam.Follow(g.project)
	cam.Update(float32(dt))
	if g.cfg.ShowHUD {
		g.hud.update(dt, g.project, g.lastErr)
	}
	if g.cfg.OnUpdate != nil {
		return g.cfg.OnUpdate()
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
	if g.cfg.ShowHUD {
		g.hud.draw(screen)
	}
}

// Layout implements ebiten.Game. The logical screen is the project canvas.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.project.Width, g.project.Height
}

// stopKeyPressed reports whether the just-pressed keys end playback.
func stopKeyPressed(justPressed []ebiten.Key) bool {
	return slices.Contains(justPressed, ebiten.KeySpace)
}

// keyName returns the name scripts see for k, e.g. "a", "space",
// "arrowleft".
func keyName(k ebiten.Key) string {
	return strings.ToLower(k.String())
}

func (g *Game) pollKeys() {
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.project.ReleaseKey(keyName(k))
	}
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.project.PressKey(keyName(k))
	}
}

func (g *Game) pollMouse() {
	sx, sy := ebiten.CursorPosition()
	x, y := g.renderer.Camera().ScreenToCanvas(float64(sx), float64(sy))
	g.project.SetMousePosition(x, y)
	g.project.SetMouseDown(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))

	hit, ok := g.renderer.HitTest(x, y)
	if g.project.IsPlaying() {
		g.project.SetMouseTarget(hit)
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	sel := g.project.Selection()
	if !ebiten.IsKeyPressed(ebiten.KeyShift) {
		sel.Clear()
	}
	if ok {
		if e, found := g.project.Cache().Get(hit); found {
			sel.Select(e)
		}
	}
}

func (g *Game) editorHotkeys() {
	p := g.project
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	pressed := inpututil.IsKeyJustPressed

	switch {
	case pressed(ebiten.KeySpace):
		g.TogglePlayback()
	case ctrl && shift && pressed(ebiten.KeyZ), ctrl && pressed(ebiten.KeyY):
		p.Redo()
	case ctrl && pressed(ebiten.KeyZ):
		p.Undo()
	case ctrl && pressed(ebiten.KeyA):
		p.SelectAll()
	case ctrl && pressed(ebiten.KeyC):
		g.copySelection()
	case ctrl && pressed(ebiten.KeyV):
		g.paste()
	case ctrl && pressed(ebiten.KeyB):
		if err := p.BreakApartSelection(); err != nil {
			wick.Logger().Warn("break apart", "err", err)
		}
		g.commit()
	case ctrl && pressed(ebiten.KeyG):
		if _, err := p.CreateClipFromSelection("", g.renderer); err != nil {
			wick.Logger().Warn("create clip", "err", err)
		}
		g.commit()
	case pressed(ebiten.KeyDelete), pressed(ebiten.KeyBackspace):
		p.DeleteSelectedObjects()
		g.commit()
	case pressed(ebiten.KeyEnter):
		p.FocusTimelineOfSelectedClip()
	case pressed(ebiten.KeyEscape):
		p.FocusTimelineOfParentClip()
	case pressed(ebiten.KeyArrowRight):
		p.ActiveTimeline().GotoNextFrame()
	case pressed(ebiten.KeyArrowLeft):
		p.ActiveTimeline().GotoPrevFrame()
	case pressed(ebiten.KeyHome):
		p.Recenter()
	case pressed(ebiten.KeyF12):
		g.renderer.Screenshot(p.Name)
	}
}

// commit pushes the current state onto the undo stack.
func (g *Game) commit() {
	if err := g.project.History().PushState(); err != nil {
		wick.Logger().Error("push history", "err", err)
	}
}

func (g *Game) copySelection() {
	if !g.project.CopySelectionToClipboard() || !g.cfg.SystemClipboard {
		return
	}
	if err := clipboard.WriteAll(string(g.project.Clipboard().Data())); err != nil {
		wick.Logger().Warn("system clipboard write", "err", err)
	}
}

func (g *Game) paste() {
	if g.cfg.SystemClipboard {
		if text, err := clipboard.ReadAll(); err == nil && text != "" {
			// Foreign clipboard text is not wick content; keep the internal copy.
			_ = g.project.Clipboard().SetData([]byte(text))
		}
	}
	if g.project.PasteClipboardContents() {
		g.commit()
	}
}

// Run opens a window for p and blocks until it is closed.
func Run(p *wick.Project, cfg RunConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.Title == "" {
		cfg.Title = p.Name
	}
	g := NewGame(p, cfg)
	if cfg.AutoPlay {
		g.TogglePlayback()
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(int(float64(p.Width)*cfg.Scale), int(float64(p.Height)*cfg.Scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
