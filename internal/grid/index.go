package grid

// Index maps (column, row) to a storage offset. All cells whose larger
// coordinate equals k occupy the contiguous range [k², (k+1)²), so growing a
// square extent from k to k+1 only appends offsets and never moves existing
// ones.
func Index(column, row int) int {
	switch {
	case column < row:
		return row*row + 2*row - column
	case column > row:
		return column*column + row
	default:
		return column*column + column
	}
}

// CellsFor returns the capacity needed to address every cell of a
// columns x rows extent.
func CellsFor(columns, rows int) int {
	side := columns
	if rows > side {
		side = rows
	}
	if side < 0 {
		side = 0
	}
	return side * side
}
