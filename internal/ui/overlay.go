//go:build ebiten

package ui

import (
	"image/color"

	"forest-ca/internal/cell"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the status line and, when toggled on, a census panel over
// the forest view.
type Overlay struct {
	showStatus bool
	showCensus bool
}

// NewOverlay constructs an overlay with the status line visible.
func NewOverlay() *Overlay {
	return &Overlay{showStatus: true}
}

// ShowCensus reports whether the census panel is visible. Callers skip the
// census scan while it is hidden.
func (o *Overlay) ShowCensus() bool { return o.showCensus }

// Update handles the overlay toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		o.showCensus = !o.showCensus
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showStatus = !o.showStatus
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image, status Status) {
	face := basicfont.Face7x13
	const lineHeight = 16
	y := 4
	if o.showStatus {
		line := status.Headline()
		bounds := text.BoundString(face, line)
		vector.DrawFilledRect(screen, 0, float32(y), float32(bounds.Dx()+12), lineHeight+4, color.RGBA{A: 170}, false)
		text.Draw(screen, line, face, 6, y+lineHeight-2, color.White)
		y += lineHeight + 8
	}
	if !o.showCensus {
		return
	}
	lines := status.CensusLines()
	if len(lines) == 0 {
		return
	}
	width := 0
	for _, line := range lines {
		width = max(width, text.BoundString(face, line).Dx())
	}
	vector.DrawFilledRect(screen, 0, float32(y), float32(width+34), float32(len(lines)*lineHeight+8), color.RGBA{A: 170}, false)
	for i, st := range cell.States() {
		top := y + 4 + i*lineHeight
		vector.DrawFilledRect(screen, 6, float32(top+2), 12, 12, st.Color(), false)
		vector.StrokeRect(screen, 6, float32(top+2), 12, 12, 1, color.White, false)
		text.Draw(screen, lines[i], face, 26, top+lineHeight-4, color.White)
	}
}
