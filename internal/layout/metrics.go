package layout

// ReferenceHeight anchors all resolution-proportional sizes. Fonts and
// strokes are authored against a 1080-pixel-tall frame and scaled
// linearly from there.
const ReferenceHeight = 1080.0

// Metrics are the concrete sizes derived from the output height and the
// user scale factor. All values are float64 end to end; rounding is
// left to the raster step so 720p/1080p/4K stay visually in parity.
type Metrics struct {
	TitleFontSize    float64
	SubtitleFontSize float64
	AccentSize       float64
	StrokeWidth      float64
}

// ComputeMetrics applies the proportional formulas:
//
//	titleFontSize = 36 * (height/1080) * scale
//	subtitleFontSize = titleFontSize * 0.75
//	accentSize = titleFontSize * 0.6
//	strokeWidth = 1.5 * (height/1080) * scale
func ComputeMetrics(height int, scale float64) Metrics {
	k := float64(height) / ReferenceHeight * scale
	title := 36.0 * k
	return Metrics{
		TitleFontSize:    title,
		SubtitleFontSize: title * 0.75,
		AccentSize:       title * 0.6,
		StrokeWidth:      1.5 * k,
	}
}

// Px scales a logical 1080p-reference length to output pixels.
func Px(logical float64, height int, scale float64) float64 {
	return logical * float64(height) / ReferenceHeight * scale
}
