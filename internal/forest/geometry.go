package forest

import (
	"image/color"

	"forest-ca/internal/cell"
	"forest-ca/internal/grid"
)

var (
	// BackgroundColor fills the viewport behind the grid.
	BackgroundColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	// BorderColor paints the seams between cells and around the grid.
	BorderColor = color.RGBA{R: 175, G: 117, B: 55, A: 255}
)

// Canvas is the drawing surface PaintInto renders to. Implementations clip
// rectangles that fall partly or wholly outside their bounds.
type Canvas interface {
	FillRect(x, y, w, h int, c color.Color)
}

// viewport is the pixel geometry last handed to ResizeTo.
type viewport struct {
	width, height int
	cellSize      int
	borderWidth   int
}

// layout places a columns x rows grid inside a viewport. Cell (c, r) covers
// [originX+c*box, originX+c*box+cellSize) horizontally (likewise
// vertically); the border seam owning a cell's trailing edge fills the rest
// of its box, and the leading perimeter seam sits just before the origin.
type layout struct {
	cellSize int
	border   int
	box      int
	originX  int
	originY  int
	columns  int
	rows     int
}

func newLayout(width, height, cellSize, borderWidth, columns, rows int) layout {
	if borderWidth < 0 {
		borderWidth = 0
	}
	box := cellSize + borderWidth
	return layout{
		cellSize: cellSize,
		border:   borderWidth,
		box:      box,
		originX:  (width - 1 - box*columns) / 2,
		originY:  (height - 1 - box*rows) / 2,
		columns:  columns,
		rows:     rows,
	}
}

// locate maps a pixel to the cell whose body contains it.
func (l layout) locate(x, y int) (column, row int, ok bool) {
	if l.cellSize <= 0 || l.box <= 0 {
		return 0, 0, false
	}
	dx := x - l.originX
	dy := y - l.originY
	if dx < 0 || dy < 0 {
		return 0, 0, false
	}
	if dx%l.box >= l.cellSize || dy%l.box >= l.cellSize {
		return 0, 0, false
	}
	column, row = dx/l.box, dy/l.box
	if column >= l.columns || row >= l.rows {
		return 0, 0, false
	}
	return column, row, true
}

// countCells returns how many whole cell boxes fit along length pixels,
// leaving room for the closing border.
func countCells(length, cellSize, borderWidth int) int {
	if cellSize <= 0 {
		return 0
	}
	if borderWidth < 0 {
		borderWidth = 0
	}
	pure := length - borderWidth
	if pure < 0 {
		pure = 0
	}
	return pure / (borderWidth + cellSize)
}

// ResizeTo fits the logical extent to a pixel viewport and grows storage to
// cover it. Cells that were allocated before keep their contents, including
// cells the new extent no longer shows.
func (k *Keeper) ResizeTo(width, height, cellSize, borderWidth int) {
	columns := countCells(width, cellSize, borderWidth)
	rows := countCells(height, cellSize, borderWidth)

	k.mu.Lock()
	defer k.mu.Unlock()
	k.store.EnsureCapacity(grid.CellsFor(columns, rows))
	k.columns = columns
	k.rows = rows
	k.view = viewport{width: width, height: height, cellSize: cellSize, borderWidth: borderWidth}
}

// PaintInto renders the logical extent centred in a width x height viewport:
// background, border seams, then one cellSize square per cell coloured by
// its current state.
func (k *Keeper) PaintInto(canvas Canvas, width, height, cellSize, borderWidth int) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	canvas.FillRect(0, 0, width, height, BackgroundColor)
	if cellSize <= 0 || k.columns == 0 || k.rows == 0 {
		return
	}
	l := newLayout(width, height, cellSize, borderWidth, k.columns, k.rows)
	k.paintBorders(canvas, l)
	k.paintCells(canvas, l)
}

func (k *Keeper) paintBorders(canvas Canvas, l layout) {
	if l.border == 0 {
		return
	}
	spanX := l.box*l.columns + l.border
	spanY := l.box*l.rows + l.border
	top := l.originY - l.border
	left := l.originX - l.border
	for i := 0; i <= l.columns; i++ {
		canvas.FillRect(l.originX+i*l.box-l.border, top, l.border, spanY, BorderColor)
	}
	for i := 0; i <= l.rows; i++ {
		canvas.FillRect(left, l.originY+i*l.box-l.border, spanX, l.border, BorderColor)
	}
}

func (k *Keeper) paintCells(canvas Canvas, l layout) {
	for row := 0; row < k.rows; row++ {
		y := l.originY + row*l.box
		for column := 0; column < k.columns; column++ {
			state := cell.Current(k.store.Get(grid.Index(column, row)))
			canvas.FillRect(l.originX+column*l.box, y, l.cellSize, l.cellSize, state.Color())
		}
	}
}

// ApplyClick paints the cell under a pixel of the viewport last passed to
// ResizeTo. Clicks outside the viewport, on a border seam or past the grid
// are ignored. It reports whether a cell changed.
func (k *Keeper) ApplyClick(x, y int, state cell.State) bool {
	if !cell.Valid(state) {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	v := k.view
	if x < 0 || y < 0 || x >= v.width || y >= v.height {
		return false
	}
	l := newLayout(v.width, v.height, v.cellSize, v.borderWidth, k.columns, k.rows)
	column, row, ok := l.locate(x, y)
	if !ok {
		return false
	}
	return k.overwrite(column, row, state)
}
