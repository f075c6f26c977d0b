package render

import (
	"image/color"
	"testing"

	"forest-ca/internal/cell"
	"forest-ca/internal/forest"
)

func TestFillRectClips(t *testing.T) {
	c := NewImageCanvas(4, 3)
	red := color.RGBA{R: 255, A: 255}
	c.FillRect(-2, -2, 4, 4, red)

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			got := c.RGBAAt(x, y)
			inside := x < 2 && y < 2
			if inside && got != red {
				t.Fatalf("pixel (%d,%d) = %v, want red", x, y, got)
			}
			if !inside && got != (color.RGBA{}) {
				t.Fatalf("pixel (%d,%d) = %v, want untouched", x, y, got)
			}
		}
	}

	c.FillRect(10, 10, 5, 5, red)
	c.FillRect(1, 1, 0, 5, color.White)
	if c.RGBAAt(1, 1) != red {
		t.Fatal("empty rectangle must not paint")
	}
}

func TestResizeReallocates(t *testing.T) {
	c := NewImageCanvas(2, 2)
	c.Resize(5, 7)
	if w, h := c.Size(); w != 5 || h != 7 {
		t.Fatalf("size = %dx%d, want 5x7", w, h)
	}
	if len(c.Pix()) != 5*7*4 {
		t.Fatalf("pix length %d, want %d", len(c.Pix()), 5*7*4)
	}
}

func TestPaintForestIntoImage(t *testing.T) {
	k := forest.New()
	k.ResizeTo(100, 100, 10, 1)
	if _, err := k.SetState(0, 0, cell.Tree); err != nil {
		t.Fatal(err)
	}
	if _, err := k.SetState(8, 8, cell.Fire); err != nil {
		t.Fatal(err)
	}

	c := NewImageCanvas(100, 100)
	k.PaintInto(c, 100, 100, 10, 1)

	checks := []struct {
		x, y int
		want color.RGBA
	}{
		{5, 5, cell.Tree.Color()},
		{0, 0, cell.Tree.Color()},
		{10, 5, forest.BorderColor},
		{16, 16, cell.Empty.Color()},
		{8*11 + 3, 8*11 + 3, cell.Fire.Color()},
		{99, 99, forest.BackgroundColor},
		{98, 50, forest.BorderColor},
	}
	for _, chk := range checks {
		if got := c.RGBAAt(chk.x, chk.y); got != chk.want {
			t.Fatalf("pixel (%d,%d) = %v, want %v", chk.x, chk.y, got, chk.want)
		}
	}
}
