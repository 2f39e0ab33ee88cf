package ebitensource

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/bough"
)

// RunConfig configures Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool

	// OnUpdate is called once per tick after input was delivered.
	OnUpdate func()
}

// Palette used to draw items; exported so tools can match it.
var (
	ColorItem   = color.RGBA{0x4a, 0x5a, 0x7a, 0xff}
	ColorHover  = color.RGBA{0x6a, 0x8a, 0xba, 0xff}
	ColorGrab   = color.RGBA{0xe0, 0x90, 0x30, 0xff}
	ColorFocus  = color.RGBA{0x50, 0xd0, 0x70, 0xff}
	ColorLabel  = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ColorScreen = color.RGBA{0x23, 0x1e, 0x2d, 0xff}
)

var whitePixel *ebiten.Image

type game struct {
	agent *bough.Agent
	src   *Source
	cfg   RunConfig
}

// Run opens a window, polls input into agent every tick and draws the
// agent's snapshot. It blocks until the window is closed.
func Run(agent *bough.Agent, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("run: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	src := New(agent)
	src.Width, src.Height = cfg.Width, cfg.Height
	agent.Viewport.Surface = bough.Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if err := ebiten.RunGame(&game{agent: agent, src: src, cfg: cfg}); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func (g *game) Update() error {
	g.src.Poll()
	if g.cfg.OnUpdate != nil {
		g.cfg.OnUpdate()
	}
	g.agent.PublishSnapshot()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(ColorScreen)
	snap := g.agent.Snapshot()
	if snap == nil {
		return
	}
	vp := g.agent.Viewport
	for _, it := range snap.Items {
		if it.Depth == 0 {
			continue
		}
		tl := vp.SceneToSurface(bough.Vec2{X: it.SceneRect.X, Y: it.SceneRect.Y})
		br := vp.SceneToSurface(bough.Vec2{X: it.SceneRect.X + it.SceneRect.Width, Y: it.SceneRect.Y + it.SceneRect.Height})
		clr := ColorItem
		switch {
		case it.Grabbed:
			clr = ColorGrab
		case it.Hovered:
			clr = ColorHover
		}
		fillRect(screen, tl, br, clr, it.Opacity)
		if it.ActiveFocus {
			strokeRect(screen, tl, br, ColorFocus)
		}
		ebitenutil.DebugPrintAt(screen, it.Name, int(tl.X)+3, int(tl.Y)+2)
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(w, h int) (int, int) {
	g.src.Width, g.src.Height = w, h
	return w, h
}

func fillRect(dst *ebiten.Image, tl, br bough.Vec2, clr color.RGBA, alpha float64) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(br.X-tl.X, br.Y-tl.Y)
	op.GeoM.Translate(tl.X, tl.Y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	dst.DrawImage(whitePixel, &op)
}

func strokeRect(dst *ebiten.Image, tl, br bough.Vec2, clr color.RGBA) {
	const w = 2
	fillRect(dst, tl, bough.Vec2{X: br.X, Y: tl.Y + w}, clr, 1)
	fillRect(dst, bough.Vec2{X: tl.X, Y: br.Y - w}, br, clr, 1)
	fillRect(dst, tl, bough.Vec2{X: tl.X + w, Y: br.Y}, clr, 1)
	fillRect(dst, bough.Vec2{X: br.X - w, Y: tl.Y}, br, clr, 1)
}
