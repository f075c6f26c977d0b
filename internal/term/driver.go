// Package term runs a forest inside a terminal using tcell.
package term

import (
	"context"
	"strings"
	"time"

	"forest-ca/internal/cell"
	"forest-ca/internal/forest"
	"forest-ca/internal/render"
	"forest-ca/internal/ui"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// statusRows are reserved above the forest for the status and census lines.
const statusRows = 2

var (
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	censusStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)
)

// Driver owns the terminal front end: it maps key and mouse events onto the
// keeper and settings, paces ticks and redraws the screen.
type Driver struct {
	screen   tcell.Screen
	canvas   *render.TerminalCanvas
	keeper   *forest.Keeper
	settings *forest.Settings
	ticker   *time.Ticker

	seed       int64
	density    float64
	generation int
	showCensus bool
	planted    bool
}

// New wires a driver to an initialised screen.
func New(screen tcell.Screen, cfg forest.Config, started bool) *Driver {
	d := &Driver{
		screen:   screen,
		canvas:   render.NewTerminalCanvas(screen, statusRows),
		keeper:   forest.NewWithConfig(cfg),
		settings: forest.NewSettings(cfg),
		seed:     cfg.Seed,
		density:  cfg.TreeDensity,
	}
	d.settings.Subscribe(forest.ListenerFunc(d.settingChanged))
	d.settings.SetStarted(started)
	return d
}

// Keeper exposes the forest being driven.
func (d *Driver) Keeper() *forest.Keeper { return d.keeper }

// Settings exposes the driver's settings.
func (d *Driver) Settings() *forest.Settings { return d.settings }

// Generation returns the number of ticks since the forest was last planted.
func (d *Driver) Generation() int { return d.generation }

func (d *Driver) settingChanged(c forest.Change) {
	switch c.Key {
	case forest.TickIntervalProperty.Key:
		if d.ticker != nil {
			d.ticker.Reset(d.settings.TickInterval())
		}
	case forest.CellSizeProperty.Key, forest.BorderWidthProperty.Key:
		d.Resize()
	}
}

// Resize refits the forest to the screen. The first call plants it.
func (d *Driver) Resize() {
	w, h := d.canvas.Size()
	d.keeper.ResizeTo(w, h, d.settings.CellSize(), d.settings.BorderWidth())
	if !d.planted {
		d.Reset(d.seed)
		d.planted = true
	}
}

// Reset replants the forest from seed.
func (d *Driver) Reset(seed int64) {
	d.seed = seed
	d.keeper.Scatter(seed, d.density)
	d.generation = 0
}

// Step evolves one generation.
func (d *Driver) Step() {
	d.keeper.Evolve()
	d.generation++
}

// HandleEvent applies one terminal event. It reports false when the user
// asked to quit.
func (d *Driver) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		d.screen.Sync()
		d.Resize()
	case *tcell.EventKey:
		return d.handleKey(ev)
	case *tcell.EventMouse:
		d.handleMouse(ev)
	}
	return true
}

func (d *Driver) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}
	r := ev.Rune()
	switch {
	case r == 'q':
		return false
	case r == ' ':
		d.settings.SetStarted(!d.settings.Started())
	case r == 'n':
		d.Step()
	case r == 'r':
		d.Reset(d.seed)
	case r == 's':
		d.Reset(time.Now().UnixNano())
	case r == 'x':
		d.keeper.Clear()
		d.generation = 0
	case r == 'c':
		d.showCensus = !d.showCensus
	case r == '+':
		d.nudgeTick(-1)
	case r == '-':
		d.nudgeTick(1)
	case r >= '1' && r <= '9':
		states := cell.States()
		if i := int(r - '1'); i < len(states) {
			_ = d.settings.SetPaintState(states[i])
		}
	}
	return true
}

// nudgeTick moves the tick interval one step; negative direction is faster.
func (d *Driver) nudgeTick(direction int) {
	p := forest.TickIntervalProperty
	ms := int(d.settings.TickInterval()/time.Millisecond) + direction*p.Step
	_ = d.settings.SetTickInterval(time.Duration(p.Control().Clamp(ms)) * time.Millisecond)
}

func (d *Driver) handleMouse(ev *tcell.EventMouse) {
	x, y := d.canvas.ToCanvas(ev.Position())
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.Button1 != 0:
		d.keeper.ApplyClick(x, y, d.settings.PaintState())
	case buttons&(tcell.Button2|tcell.Button3) != 0:
		d.keeper.ApplyClick(x, y, cell.Fire)
	}
}

// Status reports the current run state.
func (d *Driver) Status() ui.Status {
	columns, rows := d.keeper.Dimensions()
	s := ui.Status{
		Running:    d.settings.Started(),
		Generation: d.generation,
		Tick:       d.settings.TickInterval(),
		Paint:      d.settings.PaintState(),
		Columns:    columns,
		Rows:       rows,
	}
	if d.showCensus {
		s.Census = d.keeper.Census()
	}
	return s
}

// Draw repaints the status lines and the forest.
func (d *Driver) Draw() {
	w, h := d.canvas.Size()
	status := d.Status()
	d.putLine(0, status.Headline(), statusStyle)
	census := ""
	if lines := status.CensusLines(); lines != nil {
		census = strings.Join(compact(lines), "  ")
	}
	d.putLine(1, census, censusStyle)
	d.keeper.PaintInto(d.canvas, w, h, d.settings.CellSize(), d.settings.BorderWidth())
	d.screen.Show()
}

func (d *Driver) putLine(y int, s string, style tcell.Style) {
	w, _ := d.screen.Size()
	x := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > w {
			break
		}
		d.screen.SetContent(x, y, r, nil, style)
		x += rw
	}
	for ; x < w; x++ {
		d.screen.SetContent(x, y, ' ', nil, style)
	}
}

// compact collapses the padded census columns for a single status line.
func compact(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.Join(strings.Fields(line), " ")
	}
	return out
}

// Run drives the forest until ctx is cancelled or the user quits.
func (d *Driver) Run(ctx context.Context) error {
	events := make(chan tcell.Event)
	go func() {
		defer close(events)
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	d.ticker = time.NewTicker(d.settings.TickInterval())
	defer d.ticker.Stop()

	d.Resize()
	d.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !d.HandleEvent(ev) {
				return nil
			}
		case <-d.ticker.C:
			if !d.settings.Started() {
				continue
			}
			d.Step()
		}
		d.Draw()
	}
}
