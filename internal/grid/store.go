package grid

import (
	"errors"
	"fmt"
)

// DefaultChunkCells is the number of cells held by one chunk. Roughly half a
// 1080p screen of 11px cell boxes, rounded to a power of two.
const DefaultChunkCells = 1 << 17

// ErrOutOfRange reports an access outside the allocated capacity.
var ErrOutOfRange = errors.New("grid: index out of range")

// Store keeps byte-sized cell values in fixed-size chunks. It only grows:
// chunks are appended and never reallocated, so an offset keeps addressing
// the same byte for the lifetime of the store. Store is not safe for
// concurrent mutation; callers serialise access.
type Store struct {
	chunkCells int
	chunks     [][]uint8
}

// NewStore returns an empty store using chunks of chunkCells bytes. A
// non-positive size selects DefaultChunkCells.
func NewStore(chunkCells int) *Store {
	if chunkCells <= 0 {
		chunkCells = DefaultChunkCells
	}
	return &Store{chunkCells: chunkCells}
}

// ChunkCells reports the size of a single chunk.
func (s *Store) ChunkCells() int { return s.chunkCells }

// Chunks reports how many chunks are allocated.
func (s *Store) Chunks() int { return len(s.chunks) }

// Capacity returns the number of addressable cells.
func (s *Store) Capacity() int { return len(s.chunks) * s.chunkCells }

// EnsureCapacity appends zeroed chunks until at least minCells cells are
// addressable. Existing chunks are left untouched.
func (s *Store) EnsureCapacity(minCells int) {
	for s.Capacity() < minCells {
		s.chunks = append(s.chunks, make([]uint8, s.chunkCells))
	}
}

// Get returns the byte stored at index.
func (s *Store) Get(index int) uint8 {
	s.check(index)
	return s.chunks[index/s.chunkCells][index%s.chunkCells]
}

// Set stores b at index.
func (s *Store) Set(index int, b uint8) {
	s.check(index)
	s.chunks[index/s.chunkCells][index%s.chunkCells] = b
}

func (s *Store) check(index int) {
	if index < 0 || index >= s.Capacity() {
		panic(fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, index, s.Capacity()))
	}
}

// CopyFrom makes s a deep copy of src's allocated cells. s grows to at least
// src's capacity; cells s holds beyond that are zeroed.
func (s *Store) CopyFrom(src *Store) {
	total := src.Capacity()
	s.EnsureCapacity(total)
	if s.chunkCells == src.chunkCells {
		for i, chunk := range src.chunks {
			copy(s.chunks[i], chunk)
		}
	} else {
		for i := 0; i < total; i++ {
			s.chunks[i/s.chunkCells][i%s.chunkCells] = src.chunks[i/src.chunkCells][i%src.chunkCells]
		}
	}
	for i := total; i < s.Capacity(); i++ {
		s.chunks[i/s.chunkCells][i%s.chunkCells] = 0
	}
}

// Clear zeroes every allocated cell.
func (s *Store) Clear() {
	for _, chunk := range s.chunks {
		for i := range chunk {
			chunk[i] = 0
		}
	}
}
