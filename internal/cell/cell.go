package cell

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// State enumerates the forest cell states. The values double as the stored
// ordinals and are deliberately sparse so that the low two bits of a stored
// byte carry the state's flammability contribution.
type State uint8

const (
	Empty          State = 0
	Burned         State = 1
	Fire           State = 3
	BurnedSlightly State = 4
	Tree           State = 8
)

const (
	currentMask = 0x0f
	nextShift   = 4

	// IgnitionThreshold is the neighbour flammability sum at which a tree
	// catches fire.
	IgnitionThreshold = 3
)

// ErrInvalidEncoding reports a stored nibble that matches no state.
var ErrInvalidEncoding = errors.New("cell: invalid state encoding")

// ErrUnknownState reports a state name Parse does not recognise.
var ErrUnknownState = errors.New("cell: unknown state")

type stateInfo struct {
	valid bool
	name  string
	color color.RGBA
}

var states = [16]stateInfo{
	Empty:          {valid: true, name: "Empty", color: color.RGBA{R: 155, G: 100, B: 50, A: 255}},
	Burned:         {valid: true, name: "Burned", color: color.RGBA{R: 50, G: 50, B: 50, A: 255}},
	Fire:           {valid: true, name: "Fire", color: color.RGBA{R: 255, G: 40, B: 20, A: 255}},
	BurnedSlightly: {valid: true, name: "Burned cold", color: color.RGBA{R: 100, G: 100, B: 100, A: 255}},
	Tree:           {valid: true, name: "Tree", color: color.RGBA{R: 45, G: 150, B: 25, A: 255}},
}

// palette lists the states in the order they are offered for painting.
var palette = []State{Tree, Fire, Empty, Burned, BurnedSlightly}

// contribution is the explicit flammability each state lends its neighbours.
func contribution(s State) uint8 {
	switch s {
	case Fire:
		return 3
	case Burned:
		return 1
	default:
		return 0
	}
}

// flammability maps every possible stored byte to the contribution of its
// current-generation state. Indexing the raw byte keeps the neighbour scan
// free of decoding and branches.
var flammability = buildFlammability()

func buildFlammability() [256]uint8 {
	var table [256]uint8
	for b := range table {
		s := State(b & currentMask)
		if states[s].valid {
			table[b] = contribution(s)
		}
	}
	return table
}

// Valid reports whether s is one of the five forest states.
func Valid(s State) bool {
	return s < State(len(states)) && states[s].valid
}

// States returns the paintable states in palette order.
func States() []State {
	return append([]State(nil), palette...)
}

// String returns the display name of the state.
func (s State) String() string {
	if !Valid(s) {
		return fmt.Sprintf("State(%d)", uint8(s))
	}
	return states[s].name
}

// Color returns the display colour of the state.
func (s State) Color() color.RGBA {
	if !Valid(s) {
		return color.RGBA{}
	}
	return states[s].color
}

// Parse resolves a state from its name, ignoring case, spaces, dashes and
// underscores ("burned-slightly", "Burned cold" and "burned_slightly" all
// resolve to BurnedSlightly).
func Parse(name string) (State, error) {
	key := strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(name))
	switch key {
	case "empty":
		return Empty, nil
	case "burned":
		return Burned, nil
	case "fire":
		return Fire, nil
	case "burnedslightly", "burnedcold", "ash":
		return BurnedSlightly, nil
	case "tree":
		return Tree, nil
	}
	return Empty, fmt.Errorf("%w %q", ErrUnknownState, name)
}

// Decode splits a stored byte into its current and next generation states.
// It panics when either nibble holds an unused ordinal.
func Decode(b byte) (current, next State) {
	return decodeNibble(b & currentMask), decodeNibble(b >> nextShift)
}

// Current decodes only the current generation of a stored byte.
func Current(b byte) State {
	return decodeNibble(b & currentMask)
}

func decodeNibble(v byte) State {
	s := State(v)
	if !states[s].valid {
		panic(fmt.Errorf("%w: ordinal %d", ErrInvalidEncoding, v))
	}
	return s
}

// Encode packs the current state into the low nibble and the next state into
// the high nibble.
func Encode(current, next State) byte {
	if !Valid(current) || !Valid(next) {
		panic(fmt.Errorf("%w: encode %d/%d", ErrInvalidEncoding, uint8(current), uint8(next)))
	}
	return byte(current) | byte(next)<<nextShift
}

// Flammability returns the contribution of the current generation held in a
// stored byte.
func Flammability(b byte) int {
	return int(flammability[b])
}

// Commit moves the next generation into the current slot and clears the
// scratch nibble.
func Commit(b byte) byte {
	return b >> nextShift
}
