package views

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	RowTitle      lipgloss.Style
	Tab           lipgloss.Style
	TabActive     lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
	Scroll        lipgloss.Style
	Highlight     lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style

	Card          lipgloss.Style
	CardActive    lipgloss.Style
	CardFocused   lipgloss.Style
	CardTitle     lipgloss.Style
	Button        lipgloss.Style
	ButtonActive  lipgloss.Style
	Badge         lipgloss.Style
	Rating        lipgloss.Style
	ProgressFill  lipgloss.Style
	ProgressTrack lipgloss.Style
	Skeleton      lipgloss.Style

	Modal       lipgloss.Style
	ModalTitle  lipgloss.Style
	ModalButton lipgloss.Style
	ModalActive lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		RowTitle:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Tab:           lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
		TabActive:     lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("99")).Bold(true).Padding(0, 1),
		Dim:           lipgloss.NewStyle().Faint(true),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:          lipgloss.NewStyle().Faint(true),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")),
		CardActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("245")),
		CardFocused: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("99")),
		CardTitle:     lipgloss.NewStyle().Bold(true),
		Button:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("237")),
		ButtonActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("231")).Bold(true),
		Badge:         lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("214")).Bold(true),
		Rating:        lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		ProgressFill:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		ProgressTrack: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Skeleton: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("236")).
			Foreground(lipgloss.Color("236")),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
		ModalTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).MarginBottom(1),
		ModalButton: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Padding(0, 2).Margin(0, 1),
		ModalActive: lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("231")).Bold(true).Padding(0, 2).Margin(0, 1),
	}
}

// RatingColor returns the colour for a formatted rating
func RatingColor(rating string) string {
	v, err := strconv.ParseFloat(rating, 64)
	switch {
	case err != nil || v <= 0:
		return "241" // gray
	case v >= 7:
		return "78" // green
	case v >= 5:
		return "214" // yellow
	default:
		return "203" // red
	}
}
