package ui

import (
	"fmt"
	"time"

	"forest-ca/internal/cell"
)

// Status is the run state shown by the overlay and the terminal status bar.
type Status struct {
	Running    bool
	Generation int
	Tick       time.Duration
	Paint      cell.State
	Columns    int
	Rows       int
	Census     map[cell.State]int
}

// Headline summarises the run state on one line.
func (s Status) Headline() string {
	state := "paused"
	if s.Running {
		state = "running"
	}
	return fmt.Sprintf("%s  gen %d  %dx%d  tick %s  paint %s",
		state, s.Generation, s.Columns, s.Rows, s.Tick, s.Paint)
}

// CensusLines lists the cell count of every state in palette order. It is
// empty when no census was taken.
func (s Status) CensusLines() []string {
	if s.Census == nil {
		return nil
	}
	total := s.Columns * s.Rows
	lines := make([]string, 0, len(cell.States()))
	for _, st := range cell.States() {
		n := s.Census[st]
		pct := 0.0
		if total > 0 {
			pct = 100 * float64(n) / float64(total)
		}
		lines = append(lines, fmt.Sprintf("%-12s %7d %5.1f%%", st, n, pct))
	}
	return lines
}
