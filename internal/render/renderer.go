//go:build ebiten

package render

import (
	"forest-ca/internal/forest"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter renders a forest into an RGBA buffer and uploads it to a single
// ebiten image each frame.
type GridPainter struct {
	canvas *ImageCanvas
	img    *ebiten.Image
}

// NewGridPainter allocates an empty painter; buffers are sized on first use.
func NewGridPainter() *GridPainter {
	return &GridPainter{canvas: NewImageCanvas(0, 0)}
}

// Paint renders keeper into a w x h viewport and draws it onto dst.
func (gp *GridPainter) Paint(dst *ebiten.Image, keeper *forest.Keeper, w, h, cellSize, borderWidth int) {
	if w <= 0 || h <= 0 {
		return
	}
	gp.canvas.Resize(w, h)
	if gp.img == nil || gp.img.Bounds().Dx() != w || gp.img.Bounds().Dy() != h {
		if gp.img != nil {
			gp.img.Dispose()
		}
		gp.img = ebiten.NewImage(w, h)
	}
	keeper.PaintInto(gp.canvas, w, h, cellSize, borderWidth)
	gp.img.WritePixels(gp.canvas.Pix())
	dst.DrawImage(gp.img, &ebiten.DrawImageOptions{})
}
