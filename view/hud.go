package view

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/wickgo/wick"
)

// hudRefresh is how often the HUD text is rebuilt, in seconds.
const hudRefresh = 0.5

// hud draws playback status in the top-left corner.
type hud struct {
	img   *ebiten.Image
	since float64
	text  string
}

func (h *hud) update(dt float64, p *wick.Project, lastErr *wick.ScriptError) {
	h.since += dt
	if h.since < hudRefresh && h.text != "" {
		return
	}
	h.since = 0
	h.text = hudText(p, lastErr)
}

func (h *hud) draw(screen *ebiten.Image) {
	if h.text == "" {
		return
	}
	if h.img == nil {
		h.img = ebiten.NewImage(320, 80)
	}
	h.img.Clear()
	h.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(h.img, h.text)
	screen.DrawImage(h.img, nil)
}

func hudText(p *wick.Project, lastErr *wick.ScriptError) string {
	var b strings.Builder
	tl := p.ActiveTimeline()
	mode := "edit"
	if p.IsPlaying() {
		mode = "play"
	}
	fmt.Fprintf(&b, "%s  frame %d/%d  %s\n", p.Name, tl.Playhead(), tl.Length(), mode)
	fmt.Fprintf(&b, "FPS: %.1f  TPS: %.1f\n", ebiten.ActualFPS(), ebiten.ActualTPS())
	if n := p.Selection().NumObjects(); n > 0 {
		fmt.Fprintf(&b, "selected: %d\n", n)
	}
	if lastErr != nil {
		fmt.Fprintf(&b, "error: %s\n", lastErr.Error())
	}
	return b.String()
}
