package forest

import (
	"errors"
	"testing"
	"time"

	"forest-ca/internal/cell"
)

func TestFromMapParsesValues(t *testing.T) {
	cfg := FromMap(map[string]string{
		"cell":    "6",
		"border":  "0",
		"tick_ms": "250",
		"paint":   "fire",
		"chunk":   "4096",
		"workers": "3",
		"seed":    "-9",
		"density": "0.25",
	})
	if cfg.CellSize != 6 || cfg.BorderWidth != 0 || cfg.TickInterval != 250*time.Millisecond {
		t.Fatalf("geometry not parsed: %+v", cfg)
	}
	if cfg.PaintState != cell.Fire || cfg.ChunkCells != 4096 || cfg.Workers != 3 {
		t.Fatalf("paint/storage not parsed: %+v", cfg)
	}
	if cfg.Seed != -9 || cfg.TreeDensity != 0.25 {
		t.Fatalf("seeding not parsed: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestFromMapKeepsDefaultsOnBadInput(t *testing.T) {
	cfg := FromMap(map[string]string{
		"cell":    "huge",
		"border":  "40",
		"tick_ms": "1",
		"paint":   "lava",
		"chunk":   "0",
		"density": "1.5",
	})
	if cfg != DefaultConfig() {
		t.Fatalf("bad input altered defaults: %+v", cfg)
	}
	if FromMap(nil) != DefaultConfig() {
		t.Fatal("nil map should yield defaults")
	}
}

func TestValidateRejects(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CellSize = 0
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected ErrInvalidSetting, got %v", err)
	}
	cfg = DefaultConfig()
	cfg.TreeDensity = -0.1
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected ErrInvalidSetting, got %v", err)
	}
}
