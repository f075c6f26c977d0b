package forest

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"forest-ca/internal/cell"
	"forest-ca/internal/grid"
)

// ErrInvalidSetting reports a setting outside its allowed range.
var ErrInvalidSetting = errors.New("forest: invalid setting")

// Config holds the tunables a driver starts a forest with.
type Config struct {
	CellSize     int
	BorderWidth  int
	TickInterval time.Duration
	PaintState   cell.State

	ChunkCells int
	Workers    int

	Seed        int64
	TreeDensity float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		CellSize:     CellSizeProperty.Default,
		BorderWidth:  BorderWidthProperty.Default,
		TickInterval: time.Duration(TickIntervalProperty.Default) * time.Millisecond,
		PaintState:   cell.Tree,
		ChunkCells:   grid.DefaultChunkCells,
		Seed:         1337,
		TreeDensity:  0.6,
	}
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Malformed or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg[CellSizeProperty.Key]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && CellSizeProperty.Contains(parsed) {
			c.CellSize = parsed
		}
	}
	if v, ok := cfg[BorderWidthProperty.Key]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && BorderWidthProperty.Contains(parsed) {
			c.BorderWidth = parsed
		}
	}
	if v, ok := cfg[TickIntervalProperty.Key]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && TickIntervalProperty.Contains(parsed) {
			c.TickInterval = time.Duration(parsed) * time.Millisecond
		}
	}
	if v, ok := cfg[PaintStateKey]; ok {
		if parsed, err := cell.Parse(v); err == nil {
			c.PaintState = parsed
		}
	}
	if v, ok := cfg["chunk"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.ChunkCells = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.TreeDensity = parsed
		}
	}
	return c
}

// Validate checks every ranged field.
func (c Config) Validate() error {
	if !CellSizeProperty.Contains(c.CellSize) {
		return fmt.Errorf("%w: %s %d not in [%d,%d]", ErrInvalidSetting, CellSizeProperty.Key, c.CellSize, CellSizeProperty.Min, CellSizeProperty.Max)
	}
	if !BorderWidthProperty.Contains(c.BorderWidth) {
		return fmt.Errorf("%w: %s %d not in [%d,%d]", ErrInvalidSetting, BorderWidthProperty.Key, c.BorderWidth, BorderWidthProperty.Min, BorderWidthProperty.Max)
	}
	if ms := int(c.TickInterval / time.Millisecond); !TickIntervalProperty.Contains(ms) {
		return fmt.Errorf("%w: %s %d not in [%d,%d]", ErrInvalidSetting, TickIntervalProperty.Key, ms, TickIntervalProperty.Min, TickIntervalProperty.Max)
	}
	if !cell.Valid(c.PaintState) {
		return fmt.Errorf("%w: %s %d", ErrInvalidSetting, PaintStateKey, uint8(c.PaintState))
	}
	if c.TreeDensity < 0 || c.TreeDensity > 1 {
		return fmt.Errorf("%w: density %g not in [0,1]", ErrInvalidSetting, c.TreeDensity)
	}
	return nil
}
