// Package grid renders an arbitrarily long item collection as a fixed
// column grid. Only rows inside the scroll window mount cards; the rest
// only count toward the content height.
package grid

// Overscan is the number of rows mounted above and below the viewport
const Overscan = 2

// MaxColumns caps the derived column count
const MaxColumns = 10

// DefaultColumns is used while the container has no width yet
const DefaultColumns = 4

// Columns derives the column count from the container width. A zero width
// means the container has not been measured.
func Columns(containerWidth, cardWidth, gap int) int {
	if containerWidth <= 0 {
		return DefaultColumns
	}
	step := cardWidth + gap
	if step <= 0 {
		return 1
	}
	return clamp((containerWidth+gap)/step, 1, MaxColumns)
}

// TotalRows is ceil(n/cols)
func TotalRows(n, cols int) int {
	if n <= 0 || cols <= 0 {
		return 0
	}
	return (n + cols - 1) / cols
}

// ContentHeight is the full scrollable extent of the grid
func ContentHeight(rows, cardHeight, gapV int) int {
	return rows * (cardHeight + gapV)
}

// Window is a half-open range of rows [StartRow, EndRow)
type Window struct {
	StartRow int
	EndRow   int
}

func (w Window) Len() int { return max(0, w.EndRow-w.StartRow) }

func (w Window) Contains(row int) bool { return row >= w.StartRow && row < w.EndRow }

// ComputeWindow returns the rows to mount for a scroll position. The
// result depends only on its inputs, so a resize recomputes from the same
// scrollTop without jumping.
func ComputeWindow(scrollTop, offsetTop, viewportHeight, rowHeight, totalRows, overscan int) Window {
	if rowHeight <= 0 || totalRows <= 0 {
		return Window{}
	}
	first := floorDiv(scrollTop-offsetTop, rowHeight)
	visible := (max(0, viewportHeight) + rowHeight - 1) / rowHeight
	return Window{
		StartRow: clamp(first-overscan, 0, totalRows),
		EndRow:   clamp(first+visible+overscan+1, 0, totalRows),
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
