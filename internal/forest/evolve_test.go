package forest

import (
	"testing"

	"forest-ca/internal/cell"
	"forest-ca/internal/grid"
)

// newForest returns a keeper with a columns x rows extent (one pixel per cell,
// no borders) backed by small chunks so tests cross chunk boundaries.
func newForest(t *testing.T, columns, rows int) *Keeper {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ChunkCells = 7
	k := NewWithConfig(cfg)
	k.ResizeTo(columns, rows, 1, 0)
	if c, r := k.Dimensions(); c != columns || r != rows {
		t.Fatalf("extent = %dx%d, want %dx%d", c, r, columns, rows)
	}
	return k
}

func set(t *testing.T, k *Keeper, column, row int, s cell.State) {
	t.Helper()
	if _, err := k.SetState(column, row, s); err != nil {
		t.Fatalf("SetState(%d,%d,%v): %v", column, row, s, err)
	}
}

func stateAt(t *testing.T, k *Keeper, column, row int) cell.State {
	t.Helper()
	s, ok := k.StateAt(column, row)
	if !ok {
		t.Fatalf("cell (%d,%d) outside extent", column, row)
	}
	return s
}

func TestEmptyForestNeverChanges(t *testing.T) {
	k := newForest(t, 6, 4)
	for i := 0; i < 5; i++ {
		k.Evolve()
	}
	counts := k.Census()
	if counts[cell.Empty] != 24 || len(counts) != 1 {
		t.Fatalf("census after evolving an empty forest: %v", counts)
	}
}

func TestFireDecays(t *testing.T) {
	k := newForest(t, 3, 3)
	set(t, k, 1, 1, cell.Fire)

	want := []cell.State{cell.Burned, cell.BurnedSlightly, cell.BurnedSlightly, cell.BurnedSlightly}
	for step, w := range want {
		k.Evolve()
		if got := stateAt(t, k, 1, 1); got != w {
			t.Fatalf("after %d ticks state = %v, want %v", step+1, got, w)
		}
	}
}

func TestIgnitionThreshold(t *testing.T) {
	cases := []struct {
		name      string
		neighbors []cell.State
		want      cell.State
	}{
		{"one fire", []cell.State{cell.Fire}, cell.Fire},
		{"two burned", []cell.State{cell.Burned, cell.Burned}, cell.Tree},
		{"three burned", []cell.State{cell.Burned, cell.Burned, cell.Burned}, cell.Fire},
		{"cold ash", []cell.State{cell.BurnedSlightly, cell.BurnedSlightly, cell.BurnedSlightly, cell.BurnedSlightly}, cell.Tree},
		{"trees only", []cell.State{cell.Tree, cell.Tree, cell.Tree, cell.Tree, cell.Tree, cell.Tree, cell.Tree, cell.Tree}, cell.Tree},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			k := newForest(t, 3, 3)
			set(t, k, 1, 1, cell.Tree)
			for i, s := range tc.neighbors {
				d := neighborhood[i]
				set(t, k, 1+d[0], 1+d[1], s)
			}
			k.Evolve()
			if got := stateAt(t, k, 1, 1); got != tc.want {
				t.Fatalf("centre tree became %v, want %v", got, tc.want)
			}
		})
	}
}

func TestUpdateIsSynchronous(t *testing.T) {
	// A line of trees next to one fire: only the adjacent tree may ignite in
	// the first tick, whatever the scan order.
	k := newForest(t, 5, 1)
	set(t, k, 0, 0, cell.Fire)
	for c := 1; c < 5; c++ {
		set(t, k, c, 0, cell.Tree)
	}
	k.Evolve()
	want := []cell.State{cell.Burned, cell.Fire, cell.Tree, cell.Tree, cell.Tree}
	for c, w := range want {
		if got := stateAt(t, k, c, 0); got != w {
			t.Fatalf("tick 1 cell %d = %v, want %v", c, got, w)
		}
	}

	// Reverse direction.
	k = newForest(t, 5, 1)
	set(t, k, 4, 0, cell.Fire)
	for c := 0; c < 4; c++ {
		set(t, k, c, 0, cell.Tree)
	}
	k.Evolve()
	if got := stateAt(t, k, 2, 0); got != cell.Tree {
		t.Fatalf("fire jumped two cells in one tick: %v", got)
	}
}

func TestOffGridNeighborsAreEmpty(t *testing.T) {
	k := newForest(t, 2, 2)
	set(t, k, 0, 0, cell.Tree)
	set(t, k, 1, 1, cell.Burned)
	k.Evolve()
	if got := stateAt(t, k, 0, 0); got != cell.Tree {
		t.Fatalf("corner tree = %v, want Tree", got)
	}
}

func TestCellsOutsideExtentAreNotEvolved(t *testing.T) {
	k := newForest(t, 4, 4)
	set(t, k, 3, 3, cell.Fire)
	k.ResizeTo(2, 2, 1, 0)
	k.Evolve()
	k.Evolve()
	k.ResizeTo(4, 4, 1, 0)
	if got := stateAt(t, k, 3, 3); got != cell.Fire {
		t.Fatalf("hidden cell evolved to %v", got)
	}
}

func TestScratchNibbleClearedAfterTick(t *testing.T) {
	k := newForest(t, 4, 4)
	k.Scatter(3, 0.7)
	set(t, k, 2, 2, cell.Fire)
	k.Evolve()
	for row := 0; row < 4; row++ {
		for column := 0; column < 4; column++ {
			if b := k.store.Get(grid.Index(column, row)); b>>4 != 0 {
				t.Fatalf("cell (%d,%d) keeps scratch bits %#x", column, row, b)
			}
		}
	}
}

func TestParallelCommitMatchesSerial(t *testing.T) {
	const side = 160

	cfg := DefaultConfig()
	cfg.Workers = 1
	serial := NewWithConfig(cfg)
	serial.ResizeTo(side, side, 1, 0)
	serial.Scatter(11, 0.62)
	if _, err := serial.Ignite(side/2, side/2); err != nil {
		t.Fatal(err)
	}

	cfg.Workers = 8
	parallel := NewWithConfig(cfg)
	parallel.CloneFrom(serial)

	for i := 0; i < 40; i++ {
		serial.Evolve()
		parallel.Evolve()
	}
	for row := 0; row < side; row++ {
		for column := 0; column < side; column++ {
			a := stateAt(t, serial, column, row)
			b := stateAt(t, parallel, column, row)
			if a != b {
				t.Fatalf("cell (%d,%d): serial %v, parallel %v", column, row, a, b)
			}
		}
	}
}

func TestBurnsOut(t *testing.T) {
	k := newForest(t, 30, 30)
	k.Scatter(5, 1)
	if _, err := k.Ignite(15, 15); err != nil {
		t.Fatal(err)
	}
	steps := 0
	for k.Burning() {
		k.Evolve()
		steps++
		if steps > 100 {
			t.Fatal("fire never burned out")
		}
	}
	counts := k.Census()
	if counts[cell.Tree] != 0 || counts[cell.BurnedSlightly] != 900 {
		t.Fatalf("full forest should burn completely, census %v", counts)
	}
}
