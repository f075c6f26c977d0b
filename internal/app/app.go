//go:build ebiten

package app

import (
	"time"

	"forest-ca/internal/cell"
	"forest-ca/internal/core"
	"forest-ca/internal/forest"
	"forest-ca/internal/render"
	"forest-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 240

var paletteKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5,
}

// Game adapts a forest keeper to the ebiten.Game interface.
type Game struct {
	keeper   *forest.Keeper
	settings *forest.Settings
	painter  *render.GridPainter
	hud      *ui.HUD
	overlay  *ui.Overlay
	step     *core.FixedStep

	seed       int64
	density    float64
	generation int
	tickOnce   bool
	planted    bool

	width, height int
}

// New constructs a Game for the provided configuration. The forest is
// planted once the window size is known.
func New(cfg forest.Config, started bool) *Game {
	settings := forest.NewSettings(cfg)
	g := &Game{
		keeper:   forest.NewWithConfig(cfg),
		settings: settings,
		painter:  render.NewGridPainter(),
		hud:      ui.NewHUD(settings, hudWidth),
		overlay:  ui.NewOverlay(),
		step:     core.NewFixedStep(cfg.TickInterval),
		seed:     cfg.Seed,
		density:  cfg.TreeDensity,
	}
	settings.Subscribe(forest.ListenerFunc(g.settingChanged))
	settings.SetStarted(started)
	return g
}

func (g *Game) settingChanged(c forest.Change) {
	switch c.Key {
	case forest.TickIntervalProperty.Key:
		g.step.SetInterval(g.settings.TickInterval())
	case forest.CellSizeProperty.Key, forest.BorderWidthProperty.Key:
		g.resize()
	case forest.StartedKey:
		g.step.Reset()
	}
}

// Reset replants the forest from seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.keeper.Scatter(seed, g.density)
	g.generation = 0
	g.tickOnce = false
}

// Update handles per-frame input and advances the forest when a tick is due.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.settings.SetStarted(!g.settings.Started())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.keeper.Clear()
		g.generation = 0
	}
	states := cell.States()
	for i, key := range paletteKeys {
		if i < len(states) && inpututil.IsKeyJustPressed(key) {
			_ = g.settings.SetPaintState(states[i])
		}
	}

	g.overlay.Update()
	consumed := g.hud.Update(g.viewWidth())
	if !consumed {
		g.handleMouse()
	}

	if g.tickOnce || (g.settings.Started() && g.step.ShouldStep()) {
		g.keeper.Evolve()
		g.generation++
		g.tickOnce = false
	}
	return nil
}

// handleMouse paints under the cursor while the left button is held; the
// right button ignites.
func (g *Game) handleMouse() {
	x, y := ebiten.CursorPosition()
	if x >= g.viewWidth() {
		return
	}
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.keeper.ApplyClick(x, y, g.settings.PaintState())
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		g.keeper.ApplyClick(x, y, cell.Fire)
	}
}

// Draw renders the forest, the HUD and the overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	view := g.viewWidth()
	g.painter.Paint(screen, g.keeper, view, g.height, g.settings.CellSize(), g.settings.BorderWidth())
	g.hud.Draw(screen, view, g.height)
	g.overlay.Draw(screen, g.status())
}

func (g *Game) status() ui.Status {
	columns, rows := g.keeper.Dimensions()
	s := ui.Status{
		Running:    g.settings.Started(),
		Generation: g.generation,
		Tick:       g.settings.TickInterval(),
		Paint:      g.settings.PaintState(),
		Columns:    columns,
		Rows:       rows,
	}
	if g.overlay.ShowCensus() {
		s.Census = g.keeper.Census()
	}
	return s
}

// Layout tracks the window size and refits the grid whenever it changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.resize()
		if !g.planted {
			g.Reset(g.seed)
			g.planted = true
		}
	}
	return outsideWidth, outsideHeight
}

func (g *Game) viewWidth() int {
	return max(g.width-g.hud.Width(), 0)
}

func (g *Game) resize() {
	g.keeper.ResizeTo(g.viewWidth(), g.height, g.settings.CellSize(), g.settings.BorderWidth())
}
