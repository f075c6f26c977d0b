package term

import (
	"context"
	"strings"
	"testing"
	"time"

	"forest-ca/internal/cell"
	"forest-ca/internal/forest"

	"github.com/gdamore/tcell/v2"
)

func newDriver(t *testing.T) (*Driver, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(20, 8)

	cfg := forest.DefaultConfig()
	cfg.CellSize = 1
	cfg.BorderWidth = 0
	cfg.TreeDensity = 0
	d := New(screen, cfg, false)
	d.Resize()
	return d, screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestDriverFitsScreen(t *testing.T) {
	d, _ := newDriver(t)
	if c, r := d.Keeper().Dimensions(); c != 10 || r != 6 {
		t.Fatalf("extent %dx%d, want 10x6", c, r)
	}
}

func TestDriverMousePaints(t *testing.T) {
	d, _ := newDriver(t)
	d.HandleEvent(tcell.NewEventMouse(4, 3, tcell.Button1, tcell.ModNone))
	if s, _ := d.Keeper().StateAt(2, 1); s != cell.Tree {
		t.Fatalf("cell (2,1) = %v, want Tree", s)
	}
	d.HandleEvent(tcell.NewEventMouse(5, 3, tcell.Button3, tcell.ModNone))
	if s, _ := d.Keeper().StateAt(2, 1); s != cell.Fire {
		t.Fatalf("right click should ignite, got %v", s)
	}
	d.HandleEvent(tcell.NewEventMouse(4, 0, tcell.Button1, tcell.ModNone))
	if got := d.Keeper().Census()[cell.Tree]; got != 0 {
		t.Fatalf("click on the status line painted %d trees", got)
	}
}

func TestDriverKeys(t *testing.T) {
	d, _ := newDriver(t)
	if !d.HandleEvent(key(' ')) || !d.Settings().Started() {
		t.Fatal("space should start the forest")
	}
	d.HandleEvent(key('2'))
	if got := d.Settings().PaintState(); got != cell.States()[1] {
		t.Fatalf("paint = %v, want %v", got, cell.States()[1])
	}
	d.HandleEvent(key('+'))
	if got := d.Settings().TickInterval(); got != 400*time.Millisecond {
		t.Fatalf("tick = %v, want 400ms", got)
	}
	d.HandleEvent(key('n'))
	if d.Generation() != 1 {
		t.Fatalf("generation = %d, want 1", d.Generation())
	}
	d.HandleEvent(key('r'))
	if d.Generation() != 0 {
		t.Fatal("replanting should reset the generation")
	}
	if d.HandleEvent(key('q')) {
		t.Fatal("q should quit")
	}
	if d.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("escape should quit")
	}
}

func TestDriverDrawsStatusAndForest(t *testing.T) {
	d, screen := newDriver(t)
	if _, err := d.Keeper().Ignite(0, 0); err != nil {
		t.Fatal(err)
	}
	d.HandleEvent(key('c'))
	d.Draw()

	var line strings.Builder
	for x := 0; x < 7; x++ {
		r, _, _, _ := screen.GetContent(x, 0)
		line.WriteRune(r)
	}
	if line.String() != "paused " {
		t.Fatalf("status line starts %q", line.String())
	}
	r, _, _, _ := screen.GetContent(0, 1)
	if r != 'T' {
		t.Fatalf("census line should start with Tree, got %q", r)
	}
	_, _, style, _ := screen.GetContent(1, statusRows)
	if _, bg, _ := style.Decompose(); bg != tcell.FromImageColor(cell.Fire.Color()) {
		t.Fatalf("burning cell background %v", bg)
	}
}

func TestDriverRunStopsOnQuit(t *testing.T) {
	d, screen := newDriver(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop on q")
	}
}
