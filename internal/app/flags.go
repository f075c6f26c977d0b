package app

import (
	"flag"
	"time"

	"forest-ca/internal/cell"
	"forest-ca/internal/forest"
)

// Config represents the command-line parameters shared by the forest
// front ends.
type Config struct {
	Width   int
	Height  int
	Cell    int
	Border  int
	TickMS  int
	Paint   string
	Seed    int64
	Density float64
	Workers int
	Chunk   int
	Start   bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	def := forest.DefaultConfig()
	return &Config{
		Width:   960,
		Height:  720,
		Cell:    def.CellSize,
		Border:  def.BorderWidth,
		TickMS:  int(def.TickInterval / time.Millisecond),
		Paint:   def.PaintState.String(),
		Seed:    def.Seed,
		Density: def.TreeDensity,
		Chunk:   def.ChunkCells,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "initial window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "initial window height in pixels")
	fs.IntVar(&c.Cell, "cell", c.Cell, "cell edge length in pixels")
	fs.IntVar(&c.Border, "border", c.Border, "border seam width in pixels")
	fs.IntVar(&c.TickMS, "tick", c.TickMS, "milliseconds between generations")
	fs.StringVar(&c.Paint, "paint", c.Paint, "state painted by clicks")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for planting the forest")
	fs.Float64Var(&c.Density, "density", c.Density, "fraction of cells planted with trees")
	fs.IntVar(&c.Workers, "workers", c.Workers, "commit goroutines (0 = GOMAXPROCS)")
	fs.IntVar(&c.Chunk, "chunk", c.Chunk, "cells per storage chunk")
	fs.BoolVar(&c.Start, "start", c.Start, "start evolving immediately")
}

// Forest converts the flags into a validated forest configuration.
func (c *Config) Forest() (forest.Config, error) {
	paint, err := cell.Parse(c.Paint)
	if err != nil {
		return forest.Config{}, err
	}
	cfg := forest.DefaultConfig()
	cfg.CellSize = c.Cell
	cfg.BorderWidth = c.Border
	cfg.TickInterval = time.Duration(c.TickMS) * time.Millisecond
	cfg.PaintState = paint
	cfg.Seed = c.Seed
	cfg.TreeDensity = c.Density
	cfg.Workers = c.Workers
	if c.Chunk > 0 {
		cfg.ChunkCells = c.Chunk
	}
	if err := cfg.Validate(); err != nil {
		return forest.Config{}, err
	}
	return cfg, nil
}
