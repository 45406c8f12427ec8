// Package row is a titled horizontal strip of cards. Rows far below the
// viewport stay unrendered until they come near it or receive focus, and a
// visible row renders its items in growing slices.
package row

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"remotetv/internal/domain"
	"remotetv/internal/imageload"
	"remotetv/internal/ui/card"
	"remotetv/internal/ui/views"
)

const (
	// EagerRows are visible from the start
	EagerRows = 4
	// InitialSlice is how many items a row renders at first
	InitialSlice = 10
	// SliceStep is how many more items render once focus reaches the end
	SliceStep = 10
	// DefaultMargin is the visibility margin below the viewport, in cells
	DefaultMargin = 60
)

type Model struct {
	index    int
	title    string
	items    []domain.MediaItem
	rendered int
	visible  bool
	cards    *card.Set
	first    int
	focus    int
}

// New builds a row. Duplicates and items without any artwork are dropped.
func New(index int, title string, items []domain.MediaItem, opts card.Options) *Model {
	kept := make([]domain.MediaItem, 0, len(items))
	for _, it := range domain.Dedupe(items) {
		if it.HasArtwork() {
			kept = append(kept, it)
		}
	}
	return &Model{
		index:    index,
		title:    title,
		items:    kept,
		rendered: min(InitialSlice, len(kept)),
		visible:  index < EagerRows,
		cards:    card.NewSet(opts),
		focus:    -1,
	}
}

func (m *Model) Index() int { return m.index }

func (m *Model) Title() string { return m.title }

func (m *Model) Empty() bool { return len(m.items) == 0 }

func (m *Model) Visible() bool { return m.visible }

func (m *Model) Items() []domain.MediaItem { return m.items }

func (m *Model) Item(i int) domain.MediaItem { return m.items[i] }

func (m *Model) Cards() *card.Set { return m.cards }

// Len is the number of rendered, navigable items
func (m *Model) Len() int { return m.rendered }

// CheckVisible latches the row visible once its box comes within margin
// of the viewport
func (m *Model) CheckVisible(top, bottom, viewTop, viewBottom, margin int) bool {
	if !m.visible && imageload.WithinMargin(top, bottom, viewTop, viewBottom, margin) {
		m.visible = true
	}
	return m.visible
}

// Focus moves focus to col. Reaching the last rendered item grows the
// slice; grew reports whether the navigable length changed.
func (m *Model) Focus(col int) (grew bool) {
	m.visible = true
	m.focus = max(0, min(col, m.rendered-1))
	if m.focus >= m.rendered-1 && m.rendered < len(m.items) {
		m.rendered = min(len(m.items), m.rendered+SliceStep)
		return true
	}
	return false
}

func (m *Model) Focused() int { return m.focus }

func (m *Model) Blur() { m.focus = -1 }

// Height is the row's box: title line plus one card
func (m *Model) Height(cardHeight int) int {
	if m.Empty() {
		return 0
	}
	return 1 + cardHeight
}

// Fit is how many cards fit across width
func Fit(width, cardWidth, gap int) int {
	if cardWidth+gap <= 0 {
		return 1
	}
	return max(1, (width+gap)/(cardWidth+gap))
}

// Sync scrolls horizontally so the focused item shows and mounts exactly
// the cards on screen. Hidden rows unmount everything.
func (m *Model) Sync(fit int) {
	if !m.visible || m.Empty() {
		m.cards.Clear()
		return
	}
	fit = max(1, fit)
	if m.focus >= 0 {
		if m.focus < m.first {
			m.first = m.focus
		} else if m.focus >= m.first+fit {
			m.first = m.focus - fit + 1
		}
	}
	m.first = max(0, min(m.first, m.rendered-fit))
	indices := make([]int, 0, fit)
	for i := m.first; i < min(m.rendered, m.first+fit); i++ {
		indices = append(indices, i)
	}
	m.cards.Sync(indices, m.Item)
}

// Intersect starts poster loads for every mounted card
func (m *Model) Intersect() []imageload.Request {
	var reqs []imageload.Request
	m.cards.Each(func(_ int, c *card.Model) {
		var r []imageload.Request
		*c, r = c.Intersect()
		reqs = append(reqs, r...)
	})
	return reqs
}

// HitTest maps an x offset inside the row to an item index
func (m *Model) HitTest(x, cardWidth, gap int) (int, bool) {
	step := cardWidth + gap
	if x < 0 || step <= 0 || x%step >= cardWidth {
		return 0, false
	}
	i := m.first + x/step
	if i >= m.rendered || m.cards.At(i) == nil {
		return 0, false
	}
	return i, true
}

func (m *Model) View(r *views.CardRenderer, styles *views.Styles, gap int) string {
	if m.Empty() {
		return ""
	}
	title := styles.RowTitle.Render(m.title)
	if m.first > 0 {
		title += styles.Scroll.Render("  ‹ more")
	}
	if m.first+m.cards.Len() < len(m.items) {
		title += styles.Scroll.Render("  more ›")
	}

	cells := []string{}
	for i := m.first; i < m.rendered; i++ {
		c := m.cards.At(i)
		if c == nil {
			if !m.visible && len(cells) == 0 {
				cells = append(cells, r.Skeleton())
			}
			break
		}
		if len(cells) > 0 {
			cells = append(cells, strings.Repeat(" ", gap))
		}
		cells = append(cells, r.Render(c))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
}
