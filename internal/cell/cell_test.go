package cell

import (
	"errors"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, a := range States() {
		for _, b := range States() {
			cur, next := Decode(Encode(a, b))
			if cur != a || next != b {
				t.Fatalf("Decode(Encode(%v, %v)) = (%v, %v)", a, b, cur, next)
			}
		}
	}
}

func TestFlammabilityMatchesOrdinalMask(t *testing.T) {
	want := map[State]int{Empty: 0, Burned: 1, Fire: 3, BurnedSlightly: 0, Tree: 0}
	for _, cur := range States() {
		for _, next := range States() {
			b := Encode(cur, next)
			got := Flammability(b)
			if got != want[cur] {
				t.Fatalf("Flammability(%v/%v) = %d, want %d", cur, next, got, want[cur])
			}
			if got != int(b&0b11) {
				t.Fatalf("table disagrees with ordinal mask for %v: %d vs %d", cur, got, b&0b11)
			}
		}
	}
}

func TestFlammabilityIgnoresNextGeneration(t *testing.T) {
	if got := Flammability(Encode(Tree, Fire)); got != 0 {
		t.Fatalf("tree about to ignite must not contribute yet, got %d", got)
	}
	if got := Flammability(Encode(Fire, Burned)); got != 3 {
		t.Fatalf("burning cell must contribute 3, got %d", got)
	}
}

func TestDecodeInvalidOrdinalPanics(t *testing.T) {
	for _, raw := range []byte{2, 5, 7, 9, 15, 0x20, 0x90} {
		func() {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok || !errors.Is(err, ErrInvalidEncoding) {
					t.Fatalf("Decode(%#x) recovered %v, want ErrInvalidEncoding", raw, r)
				}
			}()
			Decode(raw)
		}()
	}
}

func TestEncodeInvalidStatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Encode to reject an unused ordinal")
		}
	}()
	Encode(State(2), Empty)
}

func TestCommitShiftsNextIntoCurrent(t *testing.T) {
	b := Commit(Encode(Fire, Burned))
	cur, next := Decode(b)
	if cur != Burned || next != Empty {
		t.Fatalf("Commit produced (%v, %v), want (Burned, Empty)", cur, next)
	}
}

func TestParse(t *testing.T) {
	cases := map[string]State{
		"tree":            Tree,
		"Fire":            Fire,
		"EMPTY":           Empty,
		"burned":          Burned,
		"burned-slightly": BurnedSlightly,
		"Burned cold":     BurnedSlightly,
	}
	for name, want := range cases {
		got, err := Parse(name)
		if err != nil {
			t.Fatalf("Parse(%q): %v", name, err)
		}
		if got != want {
			t.Fatalf("Parse(%q) = %v, want %v", name, got, want)
		}
	}
	if _, err := Parse("lava"); !errors.Is(err, ErrUnknownState) {
		t.Fatal("expected unknown state to fail")
	}
	for _, s := range States() {
		got, err := Parse(s.String())
		if err != nil || got != s {
			t.Fatalf("Parse(%q) = %v, %v", s.String(), got, err)
		}
	}
}
