package components

import (
	"strings"
	"testing"

	sessiondto "focusfence/internal/modules/session/dto"
	"focusfence/internal/ui/theme"
)

func TestTreeKeepsFixedHeight(t *testing.T) {
	t.Parallel()
	st := theme.For("dark")
	for _, g := range []sessiondto.GrowthOutput{
		{TrunkHeight: 10, Opacity: 1},
		{TrunkHeight: 55, FoliageScale: 0.5, FoliageVisible: true, Opacity: 1},
		{TrunkHeight: 100, FoliageScale: 1, FoliageVisible: true, Opacity: 1},
		{TrunkHeight: 55, FoliageScale: 0.5, FoliageVisible: true, Opacity: 0.6, Withered: true},
	} {
		out := Tree(g, st)
		if n := strings.Count(out, "\n") + 1; n != TreeHeight {
			t.Fatalf("growth %+v rendered %d lines, want %d", g, n, TreeHeight)
		}
	}
}

func TestTreeGrowsWithProgress(t *testing.T) {
	t.Parallel()
	st := theme.For("light")
	seedling := Tree(sessiondto.GrowthOutput{TrunkHeight: 10, Opacity: 1}, st)
	if strings.Contains(seedling, "█") || strings.Count(seedling, "┃") != 1 {
		t.Fatalf("seedling should be a bare one-row trunk:\n%s", seedling)
	}
	grown := Tree(sessiondto.GrowthOutput{TrunkHeight: 100, FoliageScale: 1, FoliageVisible: true, Opacity: 1}, st)
	if strings.Count(grown, "┃") != trunkRows {
		t.Fatalf("full tree should have a %d-row trunk:\n%s", trunkRows, grown)
	}
	if strings.Count(grown, "█") <= strings.Count(Tree(sessiondto.GrowthOutput{TrunkHeight: 55, FoliageScale: 0.5, FoliageVisible: true, Opacity: 1}, st), "█") {
		t.Fatalf("a fuller tree should have more foliage")
	}
	withered := Tree(sessiondto.GrowthOutput{TrunkHeight: 55, FoliageScale: 0.5, FoliageVisible: true, Opacity: 0.6, Withered: true}, st)
	if strings.Contains(withered, "█") || !strings.Contains(withered, "░") {
		t.Fatalf("withered foliage should use the faded glyph:\n%s", withered)
	}
}
