package layout

// AspectClass is a coarse bucket used to select a layout variant.
type AspectClass string

const (
	Widescreen AspectClass = "widescreen"
	FourThree  AspectClass = "fourThree"
)

// WidescreenCutoff is the width/height ratio at which a frame is
// classed as widescreen. The midpoint between 4:3 and 16:9 is exactly
// 14:9; anything at or above it reads as a wide frame.
const WidescreenCutoff = 14.0 / 9.0

// ClassifyAspect buckets an output geometry. Degenerate input defaults
// to widescreen; real geometry is validated before it gets here.
func ClassifyAspect(width, height int) AspectClass {
	if height <= 0 {
		return Widescreen
	}
	if float64(width)/float64(height) >= WidescreenCutoff {
		return Widescreen
	}
	return FourThree
}
