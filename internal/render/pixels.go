package render

import (
	"image"
	"image/color"
)

// ImageCanvas paints into an RGBA pixel buffer. Rectangles are clipped to the
// buffer and overwrite whatever was there.
type ImageCanvas struct {
	img *image.RGBA
}

// NewImageCanvas allocates a w x h canvas.
func NewImageCanvas(w, h int) *ImageCanvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &ImageCanvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Resize reallocates the buffer when the dimensions change.
func (c *ImageCanvas) Resize(w, h int) {
	b := c.img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return
	}
	*c = *NewImageCanvas(w, h)
}

// Size returns the canvas dimensions.
func (c *ImageCanvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image exposes the backing image.
func (c *ImageCanvas) Image() *image.RGBA { return c.img }

// Pix exposes the raw RGBA bytes, row-major with no padding.
func (c *ImageCanvas) Pix() []byte { return c.img.Pix }

// RGBAAt returns the pixel at (x, y).
func (c *ImageCanvas) RGBAAt(x, y int) color.RGBA { return c.img.RGBAAt(x, y) }

// FillRect fills the clipped rectangle with col.
func (c *ImageCanvas) FillRect(x, y, w, h int, col color.Color) {
	r := image.Rect(x, y, x+w, y+h).Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	cr, cg, cb, ca := col.RGBA()
	px := [4]byte{uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8), uint8(ca >> 8)}

	buf := c.img.Pix
	base := c.img.PixOffset(r.Min.X, r.Min.Y)
	row := buf[base : base+4*r.Dx()]
	for i := 0; i < len(row); i += 4 {
		copy(row[i:i+4], px[:])
	}
	for yy := r.Min.Y + 1; yy < r.Max.Y; yy++ {
		off := c.img.PixOffset(r.Min.X, yy)
		copy(buf[off:off+len(row)], row)
	}
}
