package imageload

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
)

var (
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	fallbackStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Render draws the image into a w x h cell box using upper half blocks, two
// pixel rows per cell. The picture shown depends on the state:
// loaded shows the full image, the preview stages show the softened preview
// (or a placeholder), and error shows the fallback.
func Render(img Image, w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	switch img.State {
	case Loaded:
		return HalfBlocks(img.FullPix, w, h)
	case Preview, LoadingFull:
		if img.PreviewPix != nil {
			return HalfBlocks(img.PreviewPix, w, h)
		}
	case Error:
		if img.FallbackPix != nil {
			return HalfBlocks(img.FallbackPix, w, h)
		}
		return Fallback(w, h)
	}
	return Placeholder(w, h)
}

// Placeholder is the shimmer-free skeleton shown before any pixels arrive
func Placeholder(w, h int) string {
	row := strings.Repeat("░", w)
	lines := make([]string, h)
	for i := range lines {
		lines[i] = row
	}
	return placeholderStyle.Render(strings.Join(lines, "\n"))
}

// Fallback is the fixed graphic for images that could not load
func Fallback(w, h int) string {
	label := "no image"
	if w < len(label) {
		label = "×"
	}
	return fallbackStyle.Render(lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, label,
		lipgloss.WithWhitespaceChars("▒")))
}

// HalfBlocks renders pix filled into w x h cells
func HalfBlocks(pix image.Image, w, h int) string {
	if pix == nil {
		return Placeholder(w, h)
	}
	fitted := imaging.Fill(pix, w, h*2, imaging.Center, imaging.Box)

	var b strings.Builder
	for y := 0; y < h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			top := hex(fitted, x, 2*y)
			bottom := hex(fitted, x, 2*y+1)
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀"))
		}
	}
	return b.String()
}

func hex(img *image.NRGBA, x, y int) string {
	c := img.NRGBAAt(x, y)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
