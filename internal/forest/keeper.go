package forest

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"forest-ca/internal/cell"
	"forest-ca/internal/core"
	"forest-ca/internal/grid"
)

// ErrOutOfRange reports a coordinate outside the logical extent.
var ErrOutOfRange = errors.New("forest: coordinate out of range")

var keeperIDs atomic.Uint64

// Keeper owns a forest grid and serialises access to it. Evolve, ResizeTo,
// ApplyClick and the other editing methods take the write lock; PaintInto,
// Dimensions and the query methods take the read lock, so renders observe
// either the grid before a tick or after it, never a half-committed one.
type Keeper struct {
	id uint64

	mu      sync.RWMutex
	store   *grid.Store
	columns int
	rows    int
	view    viewport
	workers int
}

// New returns an empty keeper using the default chunk size.
func New() *Keeper {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig returns an empty keeper whose storage and commit
// parallelism follow cfg. The grid has no cells until ResizeTo is called.
func NewWithConfig(cfg Config) *Keeper {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Keeper{
		id:      keeperIDs.Add(1),
		store:   grid.NewStore(cfg.ChunkCells),
		workers: workers,
	}
}

// Dimensions returns the logical extent as (columns, rows).
func (k *Keeper) Dimensions() (int, int) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.columns, k.rows
}

// Capacity returns the number of physically allocated cells.
func (k *Keeper) Capacity() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.store.Capacity()
}

// StateAt returns the current state of a cell. ok is false outside the
// logical extent.
func (k *Keeper) StateAt(column, row int) (state cell.State, ok bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if !k.inside(column, row) {
		return cell.Empty, false
	}
	return cell.Current(k.store.Get(grid.Index(column, row))), true
}

// SetState overwrites the current state of a cell and reports whether it
// changed.
func (k *Keeper) SetState(column, row int, state cell.State) (bool, error) {
	if !cell.Valid(state) {
		return false, fmt.Errorf("forest: set state: %w: %d", cell.ErrInvalidEncoding, uint8(state))
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.inside(column, row) {
		return false, fmt.Errorf("%w: (%d,%d) not in %dx%d", ErrOutOfRange, column, row, k.columns, k.rows)
	}
	return k.overwrite(column, row, state), nil
}

// Ignite sets a cell on fire.
func (k *Keeper) Ignite(column, row int) (bool, error) {
	return k.SetState(column, row, cell.Fire)
}

// Clear resets every allocated cell to Empty.
func (k *Keeper) Clear() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.store.Clear()
}

// Scatter replants the logical extent: each cell becomes a Tree with
// probability density and Empty otherwise. The same seed over the same
// extent always yields the same forest.
func (k *Keeper) Scatter(seed int64, density float64) {
	k.mu.Lock()
	defer k.mu.Unlock()
	rng := core.NewRNG(seed)
	for row := 0; row < k.rows; row++ {
		for column := 0; column < k.columns; column++ {
			state := cell.Empty
			if rng.Chance(density) {
				state = cell.Tree
			}
			k.store.Set(grid.Index(column, row), cell.Encode(state, cell.Empty))
		}
	}
}

// Census counts the cells of the logical extent per current state.
func (k *Keeper) Census() map[cell.State]int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	counts := make(map[cell.State]int, len(cell.States()))
	for row := 0; row < k.rows; row++ {
		for column := 0; column < k.columns; column++ {
			counts[cell.Current(k.store.Get(grid.Index(column, row)))]++
		}
	}
	return counts
}

// Burning reports whether any cell is on fire or still smouldering, i.e.
// whether further ticks can change the forest.
func (k *Keeper) Burning() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	for row := 0; row < k.rows; row++ {
		for column := 0; column < k.columns; column++ {
			switch cell.Current(k.store.Get(grid.Index(column, row))) {
			case cell.Fire, cell.Burned:
				return true
			}
		}
	}
	return false
}

// CloneFrom replaces this keeper's cells and logical extent with a deep copy
// of other's. Both locks are taken in keeper creation order, so two keepers
// cloning from each other concurrently cannot deadlock.
func (k *Keeper) CloneFrom(other *Keeper) {
	if other == nil || other == k {
		return
	}
	if k.id < other.id {
		k.mu.Lock()
		other.mu.RLock()
	} else {
		other.mu.RLock()
		k.mu.Lock()
	}
	defer k.mu.Unlock()
	defer other.mu.RUnlock()

	k.store.CopyFrom(other.store)
	k.columns = other.columns
	k.rows = other.rows
}

func (k *Keeper) inside(column, row int) bool {
	return column >= 0 && row >= 0 && column < k.columns && row < k.rows
}

// dataAt returns the stored byte of a cell, treating cells outside the
// logical extent as Empty.
func (k *Keeper) dataAt(column, row int) uint8 {
	if !k.inside(column, row) {
		return 0
	}
	return k.store.Get(grid.Index(column, row))
}

// overwrite replaces the current state of an in-extent cell, keeping the
// scratch nibble, and reports whether the state changed. Callers hold the
// write lock.
func (k *Keeper) overwrite(column, row int, state cell.State) bool {
	idx := grid.Index(column, row)
	current, next := cell.Decode(k.store.Get(idx))
	if current == state {
		return false
	}
	k.store.Set(idx, cell.Encode(state, next))
	return true
}
