package forest

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"forest-ca/internal/cell"
	"forest-ca/internal/core"
)

// Property describes a ranged integer setting.
type Property struct {
	Key     string
	Label   string
	Default int
	Min     int
	Max     int
	Step    int
}

var (
	TickIntervalProperty = Property{Key: "tick_ms", Label: "Tick (ms)", Default: 500, Min: 30, Max: 60000, Step: 100}
	CellSizeProperty     = Property{Key: "cell", Label: "Cell size", Default: 10, Min: 1, Max: 50, Step: 1}
	BorderWidthProperty  = Property{Key: "border", Label: "Border", Default: 1, Min: 0, Max: 10, Step: 1}
)

const (
	StartedKey    = "started"
	PaintStateKey = "paint"
)

// Contains reports whether v lies within the property's bounds.
func (p Property) Contains(v int) bool { return v >= p.Min && v <= p.Max }

// Control converts the property into a HUD control description.
func (p Property) Control() core.ParameterControl {
	return core.ParameterControl{
		Key:     p.Key,
		Label:   p.Label,
		Type:    core.ParamTypeInt,
		Default: p.Default,
		Step:    p.Step,
		Min:     p.Min,
		Max:     p.Max,
	}
}

func (p Property) check(v int) error {
	if !p.Contains(v) {
		return fmt.Errorf("%w: %s %d not in [%d,%d]", ErrInvalidSetting, p.Key, v, p.Min, p.Max)
	}
	return nil
}

// Change is delivered to listeners when a setting takes a new value.
type Change struct {
	Key string
	Old any
	New any
}

// Listener observes setting changes.
type Listener interface {
	SettingChanged(Change)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Change)

// SettingChanged calls f(c).
func (f ListenerFunc) SettingChanged(c Change) { f(c) }

// Settings holds the driver-facing controls of a running forest: whether the
// tick loop runs, how fast, how cells are drawn and what a click paints.
// Setters validate, store, and notify listeners after releasing the lock, so
// a listener may read or set other settings.
type Settings struct {
	mu        sync.Mutex
	started   bool
	tick      time.Duration
	cellSize  int
	border    int
	paint     cell.State
	listeners map[int]Listener
	nextID    int
}

// NewSettings returns settings initialised from cfg. The tick loop starts
// stopped.
func NewSettings(cfg Config) *Settings {
	return &Settings{
		tick:      cfg.TickInterval,
		cellSize:  cfg.CellSize,
		border:    cfg.BorderWidth,
		paint:     cfg.PaintState,
		listeners: map[int]Listener{},
	}
}

// Subscribe registers l and returns a function that removes it again.
func (s *Settings) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Settings) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func (s *Settings) TickInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

func (s *Settings) CellSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cellSize
}

func (s *Settings) BorderWidth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.border
}

func (s *Settings) PaintState() cell.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paint
}

// SetStarted starts or stops the tick loop.
func (s *Settings) SetStarted(started bool) {
	s.mu.Lock()
	old := s.started
	s.started = started
	s.mu.Unlock()
	s.publish(StartedKey, old, started)
}

// SetTickInterval changes the delay between ticks.
func (s *Settings) SetTickInterval(d time.Duration) error {
	if err := TickIntervalProperty.check(int(d / time.Millisecond)); err != nil {
		return err
	}
	s.mu.Lock()
	old := s.tick
	s.tick = d
	s.mu.Unlock()
	s.publish(TickIntervalProperty.Key, old, d)
	return nil
}

// SetCellSize changes the cell edge length in pixels.
func (s *Settings) SetCellSize(size int) error {
	if err := CellSizeProperty.check(size); err != nil {
		return err
	}
	s.mu.Lock()
	old := s.cellSize
	s.cellSize = size
	s.mu.Unlock()
	s.publish(CellSizeProperty.Key, old, size)
	return nil
}

// SetBorderWidth changes the seam width in pixels.
func (s *Settings) SetBorderWidth(width int) error {
	if err := BorderWidthProperty.check(width); err != nil {
		return err
	}
	s.mu.Lock()
	old := s.border
	s.border = width
	s.mu.Unlock()
	s.publish(BorderWidthProperty.Key, old, width)
	return nil
}

// SetPaintState changes the state clicks paint.
func (s *Settings) SetPaintState(state cell.State) error {
	if !cell.Valid(state) {
		return fmt.Errorf("%w: %s %d", ErrInvalidSetting, PaintStateKey, uint8(state))
	}
	s.mu.Lock()
	old := s.paint
	s.paint = state
	s.mu.Unlock()
	s.publish(PaintStateKey, old, state)
	return nil
}

func (s *Settings) publish(key string, old, next any) {
	if old == next {
		return
	}
	s.mu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	c := Change{Key: key, Old: old, New: next}
	for _, l := range listeners {
		l.SettingChanged(c)
	}
}

// ParameterControls lists the settings the HUD can adjust.
func (s *Settings) ParameterControls() []core.ParameterControl {
	paint := core.ParameterControl{
		Key:   PaintStateKey,
		Label: "Paint",
		Type:  core.ParamTypeChoice,
		Step:  1,
		Max:   len(cell.States()) - 1,
	}
	for _, st := range cell.States() {
		paint.Options = append(paint.Options, st.String())
	}
	return []core.ParameterControl{
		TickIntervalProperty.Control(),
		CellSizeProperty.Control(),
		BorderWidthProperty.Control(),
		paint,
	}
}

// Parameters snapshots the current settings. Choice values are option
// indices.
func (s *Settings) Parameters() core.ParameterSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	paintIndex := 0
	for i, st := range cell.States() {
		if st == s.paint {
			paintIndex = i
		}
	}
	return core.ParameterSnapshot{Params: []core.Parameter{
		{Key: StartedKey, Label: "Started", Type: core.ParamTypeBool, Value: strconv.FormatBool(s.started)},
		{Key: TickIntervalProperty.Key, Label: TickIntervalProperty.Label, Type: core.ParamTypeInt, Value: strconv.Itoa(int(s.tick / time.Millisecond))},
		{Key: CellSizeProperty.Key, Label: CellSizeProperty.Label, Type: core.ParamTypeInt, Value: strconv.Itoa(s.cellSize)},
		{Key: BorderWidthProperty.Key, Label: BorderWidthProperty.Label, Type: core.ParamTypeInt, Value: strconv.Itoa(s.border)},
		{Key: PaintStateKey, Label: "Paint", Type: core.ParamTypeChoice, Value: strconv.Itoa(paintIndex)},
	}}
}

// SetIntParameter applies a HUD adjustment. It reports whether the key was
// recognised and the value accepted.
func (s *Settings) SetIntParameter(key string, value int) bool {
	switch key {
	case TickIntervalProperty.Key:
		return s.SetTickInterval(time.Duration(value)*time.Millisecond) == nil
	case CellSizeProperty.Key:
		return s.SetCellSize(value) == nil
	case BorderWidthProperty.Key:
		return s.SetBorderWidth(value) == nil
	case PaintStateKey:
		states := cell.States()
		if value < 0 || value >= len(states) {
			return false
		}
		return s.SetPaintState(states[value]) == nil
	}
	return false
}
