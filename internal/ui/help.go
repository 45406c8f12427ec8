package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"remotetv/internal/domain"
)

// HelpRenderer handles help and details sheet rendering
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1),
		section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

func (r *HelpRenderer) line(b *strings.Builder, k, d string) {
	fmt.Fprintf(b, "  %-14s %s\n", r.key.Render(k), r.desc.Render(d))
}

// renderHelpContent renders the help information
func (r *HelpRenderer) renderHelpContent() string {
	var help strings.Builder

	help.WriteString(r.title.Render("remotetv Help"))
	help.WriteString("\n")

	help.WriteString(r.section.Render("Remote"))
	help.WriteString("\n")
	r.line(&help, "↑/↓/←/→", "Move focus between cards and rows")
	r.line(&help, "Enter", "Open the card's buttons, or press the selected button")
	r.line(&help, "Esc/Backspace", "Leave the buttons, close the modal, cancel search")
	r.line(&help, "Tab/Shift+Tab", "Cycle buttons inside the modal")
	help.WriteString("\n")

	help.WriteString(r.section.Render("Card buttons"))
	help.WriteString("\n")
	r.line(&help, "▶", "Play with the configured player")
	r.line(&help, "+ / ✓", "Add to or remove from watchlist")
	r.line(&help, "◷ / ●", "Add to or remove from watch later")
	r.line(&help, "i", "Details")
	help.WriteString("\n")

	help.WriteString(r.section.Render("Pages"))
	help.WriteString("\n")
	r.line(&help, "[ / ]", "Previous / next page")
	r.line(&help, "/", "Search")
	help.WriteString("\n")

	help.WriteString(r.section.Render("Other"))
	help.WriteString("\n")
	r.line(&help, "?", "Show this help")
	r.line(&help, "q", "Quit")

	return help.String()
}

// renderDetails renders the full text sheet for an item
func (r *HelpRenderer) renderDetails(item domain.MediaItem, status domain.LibraryStatus, progress *domain.Progress) string {
	var b strings.Builder
	b.WriteString(r.title.Render(item.Title))
	b.WriteString("\n")

	meta := []string{item.DurationLabel()}
	if item.Year > 0 {
		meta = append(meta, fmt.Sprint(item.Year))
	}
	if item.Rating != "" {
		meta = append(meta, "★ "+item.Rating)
	}
	if q := item.Quality(); q != "" {
		meta = append(meta, q)
	}
	b.WriteString(r.desc.Render(strings.Join(meta, " · ")))
	b.WriteString("\n")

	if len(item.Genres) > 0 {
		r.line(&b, "Genres", strings.Join(item.Genres, ", "))
	}
	if item.Director != "" {
		r.line(&b, "Director", item.Director)
	}
	if len(item.Cast) > 0 {
		r.line(&b, "Cast", strings.Join(item.Cast, ", "))
	}

	lists := []string{}
	if status.InWatchlist {
		lists = append(lists, "watchlist")
	}
	if status.InWatchLater {
		lists = append(lists, "watch later")
	}
	if len(lists) > 0 {
		r.line(&b, "In", strings.Join(lists, ", "))
	}
	if progress != nil && progress.Seconds > 0 {
		watched := (time.Duration(progress.Seconds) * time.Second).String()
		if ratio := progress.Ratio(); ratio > 0 {
			watched = fmt.Sprintf("%s (%.0f%%)", watched, ratio*100)
		}
		r.line(&b, "Watched", watched)
	}

	if item.Description != "" {
		b.WriteString(r.section.Render("Overview"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(78).Render(item.Description))
		b.WriteString("\n")
	}
	return b.String()
}

// PagerOps shows long text in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps() *PagerOps {
	return &PagerOps{}
}

// SetProgram sets the program reference for terminal management
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// Show shows content using ov pager
func (p *PagerOps) Show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal() // Ignore error as we're in defer context
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	// Run the oviewer (this will take over the terminal)
	return root.Run()
}
