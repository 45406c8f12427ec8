package ui

import (
	"strings"

	"remotetv/internal/domain"
	"remotetv/internal/imageload"
	"remotetv/internal/ui/card"
	"remotetv/internal/ui/grid"
	"remotetv/internal/ui/row"
	"remotetv/internal/ui/views"
)

// Home is the vertical list of titled rows
type Home struct {
	rows      []*row.Model
	layout    grid.Layout
	width     int
	height    int
	scrollTop int
	loading   bool
	loaded    bool
	progress  map[string]domain.Progress
}

func newHome(layout grid.Layout) *Home {
	return &Home{layout: layout, loading: true}
}

// SetRows replaces every row
func (h *Home) SetRows(data []rowData, opts card.Options, progress map[string]domain.Progress) {
	h.rows = h.rows[:0]
	for i, d := range data {
		h.rows = append(h.rows, row.New(i, d.title, d.items, opts))
	}
	h.progress = progress
	h.scrollTop = 0
	h.loading = false
	h.loaded = true
}

func (h *Home) SetSize(width, height int) {
	h.width, h.height = width, height
	h.scrollTop = max(0, min(h.scrollTop, h.contentHeight()-h.height))
}

func (h *Home) Row(i int) *row.Model {
	if i < 0 || i >= len(h.rows) {
		return nil
	}
	return h.rows[i]
}

func (h *Home) rowHeight(r *row.Model) int {
	if r.Empty() {
		return 0
	}
	return r.Height(h.layout.CardHeight) + h.layout.GapV
}

func (h *Home) rowTop(i int) int {
	top := 0
	for _, r := range h.rows[:i] {
		top += h.rowHeight(r)
	}
	return top
}

func (h *Home) contentHeight() int {
	return h.rowTop(len(h.rows))
}

// ScrollToRow brings row i fully into view with nearest alignment
func (h *Home) ScrollToRow(i int) {
	r := h.Row(i)
	if r == nil {
		return
	}
	top := h.rowTop(i)
	bottom := top + r.Height(h.layout.CardHeight)
	switch {
	case top < h.scrollTop:
		h.scrollTop = top
	case bottom > h.scrollTop+h.height:
		h.scrollTop = bottom - h.height
	}
	h.scrollTop = max(0, h.scrollTop)
}

// Sync reveals rows near the viewport, mounts their on-screen cards and
// returns poster loads for rows inside the image margin
func (h *Home) Sync() []imageload.Request {
	fit := row.Fit(h.width, h.layout.CardWidth, h.layout.GapH)
	viewTop, viewBottom := h.scrollTop, h.scrollTop+h.height
	var reqs []imageload.Request
	for i, r := range h.rows {
		if r.Empty() {
			continue
		}
		top := h.rowTop(i)
		bottom := top + r.Height(h.layout.CardHeight)
		r.CheckVisible(top, bottom, viewTop, viewBottom, row.DefaultMargin)
		r.Sync(fit)
		applyProgress(r.Cards(), h.progress)
		if imageload.WithinMargin(top, bottom, viewTop, viewBottom, grid.DefaultImageMargin) {
			reqs = append(reqs, r.Intersect()...)
		}
	}
	return reqs
}

// HitTest maps a point in the body to a row and item
func (h *Home) HitTest(x, y int) (int, int, bool) {
	cy := y + h.scrollTop
	for i, r := range h.rows {
		if r.Empty() {
			continue
		}
		top := h.rowTop(i) + 1 // title line
		if cy < top || cy >= top+h.layout.CardHeight {
			continue
		}
		col, ok := r.HitTest(x, h.layout.CardWidth, h.layout.GapH)
		return i, col, ok
	}
	return 0, 0, false
}

func (h *Home) View(r *views.CardRenderer, styles *views.Styles) string {
	if h.loading {
		return views.Empty(styles, "Loading…", h.width, h.height)
	}
	if h.contentHeight() == 0 {
		return views.Empty(styles, "Nothing to show. Check your TMDB token.", h.width, h.height)
	}
	lines := map[int]string{}
	for i, rw := range h.rows {
		if rw.Empty() {
			continue
		}
		top := h.rowTop(i)
		if top+h.rowHeight(rw) < h.scrollTop || top >= h.scrollTop+h.height {
			continue
		}
		for j, l := range strings.Split(rw.View(r, styles, h.layout.GapH), "\n") {
			lines[top+j] = l
		}
	}
	out := make([]string, h.height)
	for y := range out {
		out[y] = lines[h.scrollTop+y]
	}
	return strings.Join(out, "\n")
}

// Each visits every row's card set
func (h *Home) Each(fn func(*card.Set)) {
	for _, r := range h.rows {
		fn(r.Cards())
	}
}

func applyProgress(set *card.Set, progress map[string]domain.Progress) {
	if len(progress) == 0 {
		return
	}
	set.Each(func(_ int, c *card.Model) {
		p, ok := progress[c.Item.ID]
		if !ok {
			return
		}
		c.Progress = p.Ratio()
	})
}
