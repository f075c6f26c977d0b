package core

import (
	"testing"
	"time"
)

func TestFixedStepFiresImmediatelyThenEveryInterval(t *testing.T) {
	fs := NewFixedStep(100 * time.Millisecond)
	start := time.Unix(1000, 0)
	if !fs.Advance(start) {
		t.Fatal("first advance should step")
	}
	if fs.Advance(start.Add(50 * time.Millisecond)) {
		t.Fatal("stepped before the interval elapsed")
	}
	if !fs.Advance(start.Add(100 * time.Millisecond)) {
		t.Fatal("expected a step once the interval elapsed")
	}
}

func TestFixedStepDropsBacklog(t *testing.T) {
	fs := NewFixedStep(10 * time.Millisecond)
	start := time.Unix(1000, 0)
	fs.Advance(start)
	later := start.Add(time.Second)
	steps := 0
	for i := 0; i < 5; i++ {
		if fs.Advance(later) {
			steps++
		}
	}
	if steps > 2 {
		t.Fatalf("expected backlog to be capped, got %d steps without time passing", steps)
	}
}

func TestFixedStepSetInterval(t *testing.T) {
	fs := NewFixedStep(0)
	if fs.Interval() != time.Second/60 {
		t.Fatalf("non-positive interval should default to 60 TPS, got %v", fs.Interval())
	}
	fs.SetInterval(500 * time.Millisecond)
	if fs.Interval() != 500*time.Millisecond {
		t.Fatalf("interval not updated: %v", fs.Interval())
	}
}
