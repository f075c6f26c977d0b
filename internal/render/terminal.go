package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// TerminalCanvas paints into a tcell screen by colouring the background of
// character cells. One canvas pixel spans XScale columns so that square
// forest cells look square in a terminal; Top reserves rows above the canvas.
type TerminalCanvas struct {
	Screen tcell.Screen
	XScale int
	Top    int
}

// NewTerminalCanvas wraps screen with a 2:1 horizontal scale.
func NewTerminalCanvas(screen tcell.Screen, top int) *TerminalCanvas {
	return &TerminalCanvas{Screen: screen, XScale: 2, Top: top}
}

// Size returns the canvas dimensions in canvas pixels.
func (c *TerminalCanvas) Size() (int, int) {
	w, h := c.Screen.Size()
	scale := c.scale()
	h -= c.Top
	if h < 0 {
		h = 0
	}
	return w / scale, h
}

// ToCanvas converts a screen position into canvas pixel coordinates.
func (c *TerminalCanvas) ToCanvas(x, y int) (int, int) {
	return x / c.scale(), y - c.Top
}

// FillRect colours the clipped rectangle.
func (c *TerminalCanvas) FillRect(x, y, w, h int, col color.Color) {
	cw, ch := c.Size()
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, cw), min(y+h, ch)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	scale := c.scale()
	style := tcell.StyleDefault.Background(tcell.FromImageColor(col))
	for yy := y0; yy < y1; yy++ {
		for xx := x0 * scale; xx < x1*scale; xx++ {
			c.Screen.SetContent(xx, yy+c.Top, ' ', nil, style)
		}
	}
}

func (c *TerminalCanvas) scale() int {
	if c.XScale <= 0 {
		return 1
	}
	return c.XScale
}
