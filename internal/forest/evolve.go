package forest

import (
	"fmt"

	"forest-ca/internal/cell"
	"forest-ca/internal/grid"

	"golang.org/x/sync/errgroup"
)

// parallelCommitCells is the extent below which the commit phase runs on the
// calling goroutine.
const parallelCommitCells = 1 << 14

// transitions is the neighbour-independent successor of each state. Trees
// additionally ignite when their neighbourhood is hot enough.
var transitions = [16]cell.State{
	cell.Empty:          cell.Empty,
	cell.Burned:         cell.BurnedSlightly,
	cell.Fire:           cell.Burned,
	cell.BurnedSlightly: cell.BurnedSlightly,
	cell.Tree:           cell.Tree,
}

// neighborhood lists the Moore neighbourhood offsets in scan order.
var neighborhood = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Evolve advances the forest by one synchronous generation. Every next state
// is computed from current states only before any cell is committed.
func (k *Keeper) Evolve() {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.compute()
	if err := k.commit(); err != nil {
		panic(err)
	}
}

// compute writes each cell's next state into its high nibble.
func (k *Keeper) compute() {
	for row := 0; row < k.rows; row++ {
		for column := 0; column < k.columns; column++ {
			idx := grid.Index(column, row)
			current := cell.Current(k.store.Get(idx))
			next := transitions[current]
			if current == cell.Tree && k.ignites(column, row) {
				next = cell.Fire
			}
			k.store.Set(idx, cell.Encode(current, next))
		}
	}
}

// ignites sums the current-generation flammability of the neighbours,
// stopping as soon as the threshold is reached.
func (k *Keeper) ignites(column, row int) bool {
	sum := 0
	for _, d := range neighborhood {
		sum += cell.Flammability(k.dataAt(column+d[0], row+d[1]))
		if sum >= cell.IgnitionThreshold {
			return true
		}
	}
	return false
}

// commit promotes the next generation of every in-extent cell. Large grids
// are split into row bands committed concurrently; bands never share a cell.
func (k *Keeper) commit() error {
	bands := k.workers
	if bands > k.rows {
		bands = k.rows
	}
	if bands <= 1 || k.columns*k.rows < parallelCommitCells {
		return k.commitRows(0, k.rows)
	}

	per := (k.rows + bands - 1) / bands
	var g errgroup.Group
	g.SetLimit(bands)
	for start := 0; start < k.rows; start += per {
		end := min(start+per, k.rows)
		g.Go(func() error {
			return k.commitRows(start, end)
		})
	}
	return g.Wait()
}

func (k *Keeper) commitRows(start, end int) error {
	for row := start; row < end; row++ {
		for column := 0; column < k.columns; column++ {
			idx := grid.Index(column, row)
			b := cell.Commit(k.store.Get(idx))
			if !cell.Valid(cell.State(b)) {
				return fmt.Errorf("forest: commit (%d,%d): %w: ordinal %d", column, row, cell.ErrInvalidEncoding, b)
			}
			k.store.Set(idx, b)
		}
	}
	return nil
}
