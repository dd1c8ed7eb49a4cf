package domain

// Growth is the drawing input for the tree. Heights are in the 0..100 units
// of the original illustration.
type Growth struct {
	TrunkHeight    float64
	FoliageScale   float64
	FoliageVisible bool
	Opacity        float64
	Withered       bool
}

func Grow(progress float64, withered bool) Growth {
	p := Clamp01(progress)
	g := Growth{
		TrunkHeight:    10 + 90*p,
		FoliageScale:   p,
		FoliageVisible: p > 0.1,
		Opacity:        1,
		Withered:       withered,
	}
	if withered {
		g.Opacity = 0.6
	}
	return g
}

// PreviewFullMinutes is the configured duration at which the configurator
// preview shows a fully grown tree.
const PreviewFullMinutes = 120

// Preview is the tree shown while choosing a duration.
func Preview(minutes int) Growth {
	return Grow(float64(minutes)/PreviewFullMinutes, false)
}
