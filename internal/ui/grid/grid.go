package grid

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"remotetv/internal/domain"
	"remotetv/internal/imageload"
	"remotetv/internal/ui/card"
	"remotetv/internal/ui/views"
)

const (
	// DefaultLookAhead is how far below the viewport the sentinel starts a
	// load, in cells
	DefaultLookAhead = 60
	// DefaultImageMargin is how close a poster must be to the viewport
	// before it starts loading, in cells
	DefaultImageMargin = 30
	// DefaultSkeletonCount is the number of placeholders while loading
	DefaultSkeletonCount = 20

	scrollFrame = 16 * time.Millisecond
)

// Layout is the card box and gaps in terminal cells
type Layout struct {
	CardWidth  int
	CardHeight int
	GapH       int
	GapV       int
}

func (l Layout) RowHeight() int { return l.CardHeight + l.GapV }

// Portrait is the default poster layout
var Portrait = Layout{CardWidth: 24, CardHeight: 14, GapH: 2, GapV: 1}

// Landscape suits backdrop-first collections
var Landscape = Layout{CardWidth: 36, CardHeight: 12, GapH: 2, GapV: 1}

type Options struct {
	Layout        Layout
	ForcedColumns int
	Overscan      int
	LookAhead     int
	ImageMargin   int
	SkeletonCount int
	EmptyMessage  string
	Smooth        bool
	Cards         card.Options
}

// Pagination is owned by the page; the grid only decides when to ask
type Pagination struct {
	LoadMore      func() tea.Cmd
	HasMore       bool
	IsLoadingMore bool
}

// Cell is one item placed in the grid
type Cell struct {
	Item  domain.MediaItem
	Row   int
	Col   int
	Index int
}

// ScrollMsg advances a smooth scroll animation
type ScrollMsg struct {
	Grid string
	Seq  int
}

type Grid struct {
	name      string
	opts      Options
	items     []domain.MediaItem
	cards     *card.Set
	width     int
	height    int
	offsetTop int
	scrollTop int
	target    int
	seq       int
	focus     int
	loading   bool
	page      Pagination
	latched   bool
}

func New(name string, opts Options) *Grid {
	if opts.Layout == (Layout{}) {
		opts.Layout = Portrait
	}
	if opts.Overscan <= 0 {
		opts.Overscan = Overscan
	}
	if opts.LookAhead <= 0 {
		opts.LookAhead = DefaultLookAhead
	}
	if opts.ImageMargin <= 0 {
		opts.ImageMargin = DefaultImageMargin
	}
	if opts.SkeletonCount <= 0 {
		opts.SkeletonCount = DefaultSkeletonCount
	}
	if opts.EmptyMessage == "" {
		opts.EmptyMessage = "Nothing here yet"
	}
	return &Grid{name: name, opts: opts, cards: card.NewSet(opts.Cards), focus: -1}
}

func (g *Grid) Name() string { return g.name }

func (g *Grid) Layout() Layout { return g.opts.Layout }

func (g *Grid) Cards() *card.Set { return g.cards }

// SetItems replaces the collection and scrolls back to the top
func (g *Grid) SetItems(items []domain.MediaItem) {
	g.items = items
	g.cards.Clear()
	g.scrollTop, g.target = 0, 0
	g.seq++
	g.focus = -1
	g.latched = false
}

// Append adds a loaded page and releases the load-more latch
func (g *Grid) Append(items []domain.MediaItem) {
	g.items = append(g.items, items...)
	g.Finished()
}

func (g *Grid) Items() []domain.MediaItem { return g.items }

func (g *Grid) Len() int { return len(g.items) }

func (g *Grid) Item(i int) domain.MediaItem { return g.items[i] }

func (g *Grid) SetLoading(loading bool) { g.loading = loading }

func (g *Grid) Loading() bool { return g.loading }

func (g *Grid) SetPagination(p Pagination) { g.page = p }

func (g *Grid) Pagination() Pagination { return g.page }

// Finished releases the latch set when the sentinel fired
func (g *Grid) Finished() {
	g.latched = false
}

// SetSize sets the container width and the viewport height. The scroll
// position is kept and only clamped.
func (g *Grid) SetSize(width, height int) {
	g.width, g.height = width, height
	g.scrollTop = clamp(g.scrollTop, 0, g.maxScroll())
	g.target = clamp(g.target, 0, g.maxScroll())
}

// SetOffsetTop sets the height of the content above the first row
func (g *Grid) SetOffsetTop(n int) { g.offsetTop = max(0, n) }

func (g *Grid) ScrollTop() int { return g.scrollTop }

// SetScrollTop jumps without animation
func (g *Grid) SetScrollTop(v int) {
	g.scrollTop = clamp(v, 0, g.maxScroll())
	g.target = g.scrollTop
	g.seq++
}

func (g *Grid) Columns() int {
	if g.opts.ForcedColumns > 0 {
		return g.opts.ForcedColumns
	}
	return Columns(g.width, g.opts.Layout.CardWidth, g.opts.Layout.GapH)
}

func (g *Grid) Rows() int { return TotalRows(len(g.items), g.Columns()) }

// RowLen is the number of items in a row; only the last row can be short
func (g *Grid) RowLen(row int) int {
	cols := g.Columns()
	return clamp(len(g.items)-row*cols, 0, cols)
}

func (g *Grid) Index(row, col int) int { return row*g.Columns() + col }

func (g *Grid) Position(index int) (row, col int) {
	cols := g.Columns()
	return index / cols, index % cols
}

// footerRows is the line under the content that holds the footer and sentinel
const footerRows = 1

func (g *Grid) ContentHeight() int {
	return g.offsetTop + ContentHeight(g.Rows(), g.opts.Layout.CardHeight, g.opts.Layout.GapV)
}

// maxScroll leaves room for the footer line below the last row
func (g *Grid) maxScroll() int {
	return max(0, g.ContentHeight()+footerRows-g.height)
}

func (g *Grid) Window() Window {
	return ComputeWindow(g.scrollTop, g.offsetTop, g.height, g.opts.Layout.RowHeight(), g.Rows(), g.opts.Overscan)
}

// VisibleItems lists the items whose row is inside the window
func (g *Grid) VisibleItems() []Cell {
	w := g.Window()
	cols := g.Columns()
	cells := make([]Cell, 0, w.Len()*cols)
	for row := w.StartRow; row < w.EndRow; row++ {
		for col := 0; col < cols; col++ {
			i := row*cols + col
			if i >= len(g.items) {
				break
			}
			cells = append(cells, Cell{Item: g.items[i], Row: row, Col: col, Index: i})
		}
	}
	return cells
}

// Sync mounts the window (plus the focused item) and returns the poster
// loads for cards that came within the image margin
func (g *Grid) Sync() []imageload.Request {
	cells := g.VisibleItems()
	indices := make([]int, 0, len(cells)+1)
	for _, c := range cells {
		indices = append(indices, c.Index)
	}
	if g.focus >= 0 && g.focus < len(g.items) && !g.Window().Contains(g.focus/g.Columns()) {
		indices = append(indices, g.focus)
	}
	g.cards.Sync(indices, g.Item)

	var reqs []imageload.Request
	l := g.opts.Layout
	g.cards.Each(func(i int, c *card.Model) {
		row, _ := g.Position(i)
		top := g.offsetTop + row*l.RowHeight()
		if !imageload.WithinMargin(top, top+l.CardHeight, g.scrollTop, g.scrollTop+g.height, g.opts.ImageMargin) {
			return
		}
		var r []imageload.Request
		*c, r = c.Intersect()
		reqs = append(reqs, r...)
	})
	return reqs
}

// CheckSentinel asks for the next page when the sentinel after the last
// row is within the look-ahead margin. At most one load is in flight.
func (g *Grid) CheckSentinel() tea.Cmd {
	if !g.page.HasMore || g.page.IsLoadingMore || g.latched || g.page.LoadMore == nil || g.loading {
		return nil
	}
	if g.ContentHeight() > g.scrollTop+g.height+g.opts.LookAhead {
		return nil
	}
	g.latched = true
	return g.page.LoadMore()
}

// Focus records the focused item and scrolls it fully into view
func (g *Grid) Focus(index int) tea.Cmd {
	if index < 0 || index >= len(g.items) {
		g.focus = -1
		return nil
	}
	g.focus = index
	row, _ := g.Position(index)
	l := g.opts.Layout
	top := g.offsetTop + row*l.RowHeight()
	if row == 0 {
		top = 0
	}
	bottom := g.offsetTop + row*l.RowHeight() + l.CardHeight

	target := g.target
	switch {
	case top < target:
		target = top
	case bottom > target+g.height:
		target = bottom - g.height
	}
	return g.scrollTo(target)
}

func (g *Grid) Focused() int { return g.focus }

// Blur forgets the focused item
func (g *Grid) Blur() { g.focus = -1 }

func (g *Grid) scrollTo(target int) tea.Cmd {
	target = clamp(target, 0, g.maxScroll())
	g.seq++
	g.target = target
	if !g.opts.Smooth || target == g.scrollTop {
		g.scrollTop = target
		return nil
	}
	return g.tick()
}

func (g *Grid) tick() tea.Cmd {
	msg := ScrollMsg{Grid: g.name, Seq: g.seq}
	return tea.Tick(scrollFrame, func(time.Time) tea.Msg { return msg })
}

// Update advances the scroll animation; stale frames are ignored
func (g *Grid) Update(msg ScrollMsg) tea.Cmd {
	if msg.Grid != g.name || msg.Seq != g.seq || g.scrollTop == g.target {
		return nil
	}
	d := g.target - g.scrollTop
	step := d / 2
	if step == 0 {
		step = d
	}
	g.scrollTop += step
	if g.scrollTop == g.target {
		return nil
	}
	return g.tick()
}

// HitTest maps a point in the grid's viewport to an item index
func (g *Grid) HitTest(x, y int) (int, bool) {
	l := g.opts.Layout
	cy := y + g.scrollTop - g.offsetTop
	if x < 0 || cy < 0 || l.RowHeight() <= 0 || l.CardWidth+l.GapH <= 0 {
		return 0, false
	}
	row, ry := cy/l.RowHeight(), cy%l.RowHeight()
	col, rx := x/(l.CardWidth+l.GapH), x%(l.CardWidth+l.GapH)
	if ry >= l.CardHeight || rx >= l.CardWidth || col >= g.Columns() {
		return 0, false
	}
	i := g.Index(row, col)
	if i >= len(g.items) {
		return 0, false
	}
	return i, true
}

// View renders the viewport: header, mounted rows, and the footer line
// where the sentinel sits
func (g *Grid) View(r *views.CardRenderer, styles *views.Styles, header, footer string) string {
	lines := map[int]string{}
	for i, l := range strings.Split(header, "\n") {
		if i < g.offsetTop {
			lines[i] = l
		}
	}
	l := g.opts.Layout
	gap := strings.Repeat(" ", l.GapH)

	switch {
	case len(g.items) == 0 && g.loading:
		cols := g.Columns()
		for i := 0; i < g.opts.SkeletonCount; i += cols {
			row := make([]string, 0, cols)
			for j := i; j < min(i+cols, g.opts.SkeletonCount); j++ {
				row = append(row, r.Skeleton())
			}
			g.place(lines, g.offsetTop+(i/cols)*l.RowHeight(), joinRow(row, gap))
		}
	case len(g.items) == 0:
		g.place(lines, g.offsetTop, views.Empty(styles, g.opts.EmptyMessage, g.width, max(1, g.height-g.offsetTop)))
	default:
		w := g.Window()
		cols := g.Columns()
		for row := w.StartRow; row < w.EndRow; row++ {
			cells := make([]string, 0, cols)
			for col := 0; col < cols; col++ {
				i := row*cols + col
				if i >= len(g.items) {
					break
				}
				if c := g.cards.At(i); c != nil {
					cells = append(cells, r.Render(c))
				} else {
					cells = append(cells, r.Blank())
				}
			}
			g.place(lines, g.offsetTop+row*l.RowHeight(), joinRow(cells, gap))
		}
		if footer != "" {
			lines[g.ContentHeight()] = footer
		}
	}

	out := make([]string, g.height)
	for y := range out {
		out[y] = lines[g.scrollTop+y]
	}
	return strings.Join(out, "\n")
}

func (g *Grid) place(lines map[int]string, top int, block string) {
	if top+lipgloss.Height(block) < g.scrollTop || top >= g.scrollTop+g.height {
		return
	}
	for i, l := range strings.Split(block, "\n") {
		lines[top+i] = l
	}
}

func joinRow(cells []string, gap string) string {
	parts := make([]string, 0, len(cells)*2)
	for i, c := range cells {
		if i > 0 {
			parts = append(parts, gap)
		}
		parts = append(parts, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
