package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay centers a popup over a greyed out copy of the main content
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	modalW := lipgloss.Width(styledPopup)
	modalH := lipgloss.Height(styledPopup)
	if width <= 0 || height <= 0 {
		return styledPopup
	}

	base := strings.Split(desaturateANSI(mainContent), "\n")
	for len(base) < height {
		base = append(base, "")
	}
	base = base[:height]

	popupLines := strings.Split(styledPopup, "\n")
	x := max((width-modalW)/2, 0)
	y := max((height-modalH)/2, 0)

	// Replace the covered rows; the modal is opaque, the rest stays grey
	for i, line := range popupLines {
		row := y + i
		if row >= len(base) {
			break
		}
		left := truncatePlain(ansiRE.ReplaceAllString(base[row], ""), x)
		base[row] = pr.styles.Dim.Render(left) + strings.Repeat(" ", max(x-lipgloss.Width(left), 0)) + line
	}
	return strings.Join(base, "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		plain := ansiRE.ReplaceAllString(line, "")
		lines[i] = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(plain)
	}
	return strings.Join(lines, "\n")
}

// truncatePlain cuts s to at most n runes
func truncatePlain(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
