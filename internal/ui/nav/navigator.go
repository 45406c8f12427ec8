// Package nav implements row/column spatial navigation. Rows are registered
// by length only, so a virtualized grid can expose rows that are not
// currently mounted; the view scrolls the focused node into place.
package nav

import (
	"sort"

	"remotetv/internal/ui/input/types"
)

// Node is one focusable position
type Node struct {
	Row int
	Col int
}

// Position is a saved focus location
type Position = Node

// Navigator moves a single logical focus between rows of nodes. Moving
// up or down restores the column last used in the target row.
type Navigator struct {
	lengths map[int]int
	order   []int
	row     int
	col     int
	has     bool
	memory  map[int]int
	saved   map[string]Position
	onMove  func(Node)
}

func New() *Navigator {
	return &Navigator{
		lengths: make(map[int]int),
		memory:  make(map[int]int),
		saved:   make(map[string]Position),
	}
}

// OnMove registers a callback fired whenever focus lands on a new node
func (n *Navigator) OnMove(fn func(Node)) {
	n.onMove = fn
}

// SetRow registers or resizes a row. A length of zero removes it.
func (n *Navigator) SetRow(row, length int) {
	if length <= 0 {
		n.RemoveRow(row)
		return
	}
	if _, ok := n.lengths[row]; !ok {
		n.order = append(n.order, row)
		sort.Ints(n.order)
	}
	n.lengths[row] = length
	if n.has && n.row == row && n.col >= length {
		n.col = length - 1
	}
}

func (n *Navigator) RemoveRow(row int) {
	if _, ok := n.lengths[row]; !ok {
		return
	}
	delete(n.lengths, row)
	for i, r := range n.order {
		if r == row {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
}

// Clear forgets every row and the focus, but keeps saved positions
func (n *Navigator) Clear() {
	n.lengths = make(map[int]int)
	n.order = nil
	n.memory = make(map[int]int)
	n.has = false
	n.row, n.col = 0, 0
}

// Rows returns the registered row indices in order
func (n *Navigator) Rows() []int {
	return append([]int(nil), n.order...)
}

func (n *Navigator) RowLen(row int) int {
	return n.lengths[row]
}

// Focused returns the focused node, if any
func (n *Navigator) Focused() (Node, bool) {
	return Node{Row: n.row, Col: n.col}, n.has
}

// SetPosition focuses (row, col), clamping col to the row. Unknown rows
// are ignored.
func (n *Navigator) SetPosition(row, col int) bool {
	length, ok := n.lengths[row]
	if !ok {
		return false
	}
	col = max(0, min(col, length-1))
	changed := !n.has || n.row != row || n.col != col
	n.row, n.col, n.has = row, col, true
	n.memory[row] = col
	if changed && n.onMove != nil {
		n.onMove(Node{Row: row, Col: col})
	}
	return changed
}

// FocusFirst focuses column 0 of the first row when nothing is focused
func (n *Navigator) FocusFirst() bool {
	if n.has || len(n.order) == 0 {
		return false
	}
	return n.SetPosition(n.order[0], 0)
}

// Navigate implements types.Navigator
func (n *Navigator) Navigate(k types.Key) bool {
	if len(n.order) == 0 {
		return false
	}
	idx := n.index()
	if !n.has || idx < 0 {
		return n.SetPosition(n.order[0], 0)
	}

	switch k {
	case types.KeyUp:
		if idx == 0 {
			return false
		}
		return n.enterRow(n.order[idx-1])
	case types.KeyDown:
		if idx == len(n.order)-1 {
			return false
		}
		return n.enterRow(n.order[idx+1])
	case types.KeyLeft:
		if n.col == 0 {
			return false
		}
		return n.SetPosition(n.row, n.col-1)
	case types.KeyRight:
		if n.col >= n.lengths[n.row]-1 {
			return false
		}
		return n.SetPosition(n.row, n.col+1)
	}
	return false
}

func (n *Navigator) enterRow(row int) bool {
	col, ok := n.memory[row]
	if !ok {
		col = n.col
	}
	return n.SetPosition(row, col)
}

func (n *Navigator) index() int {
	for i, r := range n.order {
		if r == n.row {
			return i
		}
	}
	return -1
}

// Save remembers the current position under key
func (n *Navigator) Save(key string) {
	if n.has {
		n.saved[key] = Position{Row: n.row, Col: n.col}
	}
}

// Restore moves focus back to a saved position and forgets it
func (n *Navigator) Restore(key string) bool {
	p, ok := n.saved[key]
	if !ok {
		return false
	}
	delete(n.saved, key)
	return n.SetPosition(p.Row, p.Col)
}
