package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"remotetv/internal/domain"
	"remotetv/internal/imageload"
	"remotetv/internal/ui/card"
	"remotetv/internal/ui/modal"
)

// CardRenderer draws cards at a fixed cell size, border included
type CardRenderer struct {
	styles *Styles
	width  int
	height int
}

func NewCardRenderer(styles *Styles, width, height int) *CardRenderer {
	return &CardRenderer{styles: styles, width: max(6, width), height: max(5, height)}
}

func (r *CardRenderer) Size() (int, int) { return r.width, r.height }

// Render draws a mounted card. Text lines sit under the artwork; in button
// mode the meta line becomes the button row.
func (r *CardRenderer) Render(c *card.Model) string {
	iw, ih := r.width-2, r.height-2
	lines := []string{r.title(c, iw)}
	if c.State == card.ButtonMode {
		lines = append(lines, fit(ButtonRow(r.styles, c.Button, c.Status), iw))
	} else {
		lines = append(lines, fit(r.meta(c.Item), iw))
	}
	if c.Progress > 0 {
		lines = append(lines, ProgressBar(r.styles, c.Progress, iw))
	}

	artH := max(0, ih-len(lines))
	art := c.Poster
	if c.State != card.Collapsed && c.HasBackdrop && c.Backdrop.State == imageload.Loaded {
		art = c.Backdrop
	}
	body := lines
	if artH > 0 {
		body = append([]string{imageload.Render(art, iw, artH)}, lines...)
	}

	style := r.styles.Card
	switch {
	case c.Focused:
		style = r.styles.CardFocused
	case c.State != card.Collapsed:
		style = r.styles.CardActive
	}
	return style.Width(iw).Height(ih).MaxHeight(r.height).Render(strings.Join(body, "\n"))
}

func (r *CardRenderer) title(c *card.Model, w int) string {
	t := r.styles.CardTitle.Render(c.Item.Title)
	if q := c.Item.Quality(); q != "" {
		t = r.styles.Badge.Render(q) + " " + t
	}
	return fit(t, w)
}

func (r *CardRenderer) meta(item domain.MediaItem) string {
	parts := []string{}
	if item.Rating != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(RatingColor(item.Rating))).Render("★ "+item.Rating))
	}
	if item.Year > 0 {
		parts = append(parts, fmt.Sprint(item.Year))
	}
	parts = append(parts, item.DurationLabel())
	return r.styles.Dim.Render(strings.Join(parts, " · "))
}

// Skeleton is the loading placeholder for one card
func (r *CardRenderer) Skeleton() string {
	iw, ih := r.width-2, r.height-2
	row := strings.Repeat("░", iw)
	lines := make([]string, ih)
	for i := range lines {
		lines[i] = row
	}
	return r.styles.Skeleton.Render(strings.Join(lines, "\n"))
}

// Blank reserves a card slot without drawing anything
func (r *CardRenderer) Blank() string {
	return lipgloss.NewStyle().Width(r.width).Height(r.height).Render("")
}

// ButtonLabel is the glyph for an in-card action; list buttons reflect
// the optimistic membership
func ButtonLabel(b card.Button, status domain.LibraryStatus) string {
	switch b {
	case card.ButtonPlay:
		return "▶"
	case card.ButtonWatchlist:
		if status.InWatchlist {
			return "✓"
		}
		return "+"
	case card.ButtonWatchLater:
		if status.InWatchLater {
			return "●"
		}
		return "◷"
	}
	return "i"
}

func ButtonRow(styles *Styles, active card.Button, status domain.LibraryStatus) string {
	out := make([]string, 0, card.ButtonCount)
	for b := card.Button(0); b < card.ButtonCount; b++ {
		style := styles.Button
		if b == active {
			style = styles.ButtonActive
		}
		out = append(out, style.Render(" "+ButtonLabel(b, status)+" "))
	}
	return strings.Join(out, " ")
}

// ProgressBar draws watched progress across w cells
func ProgressBar(styles *Styles, ratio float64, w int) string {
	if w <= 0 {
		return ""
	}
	ratio = math.Max(0, math.Min(1, ratio))
	filled := int(math.Round(ratio * float64(w)))
	return styles.ProgressFill.Render(strings.Repeat("━", filled)) +
		styles.ProgressTrack.Render(strings.Repeat("━", w-filled))
}

// ModalView draws the three-action modal
func ModalView(styles *Styles, m modal.Model) string {
	buttons := make([]string, 0, modal.Count)
	for i := 0; i < modal.Count; i++ {
		style := styles.ModalButton
		if i == m.Index {
			style = styles.ModalActive
		}
		buttons = append(buttons, style.Render(modal.Label(modal.Choice(i), m.InList)))
	}
	title := styles.ModalTitle.Render(m.Item.Title)
	return lipgloss.JoinVertical(lipgloss.Center, title, lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
}

// Empty centres a message in the given area
func Empty(styles *Styles, msg string, w, h int) string {
	return lipgloss.Place(max(1, w), max(1, h), lipgloss.Center, lipgloss.Center, styles.Dim.Render(msg))
}

func fit(s string, w int) string {
	return lipgloss.NewStyle().MaxWidth(w).Render(s)
}
