package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	sessiondto "focusfence/internal/modules/session/dto"
	"focusfence/internal/ui/theme"
)

const (
	treeWidth = 21
	trunkRows = 6
	crownRows = 5
	// TreeHeight is the fixed number of lines Tree returns.
	TreeHeight = crownRows + trunkRows + 1
)

// Tree draws the growth parameters as a fixed-size block so the layout does
// not jump while the tree grows.
func Tree(g sessiondto.GrowthOutput, st theme.Styles) string {
	leaf, leafStyle := "█", lipgloss.NewStyle().Foreground(st.Palette.Green)
	bark := lipgloss.NewStyle().Foreground(st.Palette.Peach)
	if g.Withered {
		leaf, leafStyle = "░", lipgloss.NewStyle().Foreground(st.Palette.Maroon)
		bark = lipgloss.NewStyle().Foreground(st.Palette.Subtext0)
	}
	if g.Opacity < 1 {
		leafStyle = leafStyle.Faint(true)
		bark = bark.Faint(true)
	}

	lines := make([]string, 0, TreeHeight)
	crown := crownLines(g)
	for i := len(crown); i < crownRows; i++ {
		lines = append(lines, strings.Repeat(" ", treeWidth))
	}
	for _, width := range crown {
		lines = append(lines, center(leafStyle.Render(strings.Repeat(leaf, width)), width))
	}

	trunk := int(math.Round(g.TrunkHeight / 100 * trunkRows))
	if trunk < 1 {
		trunk = 1
	}
	for i := trunk; i < trunkRows; i++ {
		lines = append(lines, strings.Repeat(" ", treeWidth))
	}
	for i := 0; i < trunk; i++ {
		lines = append(lines, center(bark.Render("┃"), 1))
	}
	lines = append(lines, st.Muted.Render(strings.Repeat("▔", treeWidth)))
	return strings.Join(lines, "\n")
}

// crownLines returns the row widths of the foliage, top to bottom.
func crownLines(g sessiondto.GrowthOutput) []int {
	if !g.FoliageVisible {
		return nil
	}
	rows := int(math.Round(crownRows * g.FoliageScale))
	if rows < 1 {
		rows = 1
	}
	half := int(math.Round(float64(treeWidth/2) * g.FoliageScale))
	widths := make([]int, rows)
	for i := range widths {
		widths[i] = 1 + 2*(half*(i+1)/rows)
	}
	return widths
}

func center(rendered string, width int) string {
	left := (treeWidth - width) / 2
	right := treeWidth - width - left
	return strings.Repeat(" ", left) + rendered + strings.Repeat(" ", right)
}
