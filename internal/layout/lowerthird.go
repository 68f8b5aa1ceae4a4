package layout

import (
	"image"

	"github.com/ivlev/camoverlay/internal/preset"
)

// Line boxes are taller than the glyphs themselves; 1.25 is the strip's
// authored line height relative to font size.
const lineHeight = 1.25

// LowerThirdLayout is the fixed structural layout used by declarative
// presets: a bottom-anchored container spanning the full frame width,
// a left-aligned text stack and a right-aligned accent slot. Absent
// content collapses entirely; an empty Title rect means the title
// contributes no height at all.
type LowerThirdLayout struct {
	Container    image.Rectangle
	Title        image.Rectangle
	Subtitle     image.Rectangle
	Accent       image.Rectangle
	CornerRadius float64
	Empty        bool
}

// LowerThird computes the fixed layout, in output pixels, for a
// declarative lower-third request.
func LowerThird(p preset.Props, m Metrics) LowerThirdLayout {
	pad := Px(p.Padding, p.Height, p.Scale)
	gap := pad * 0.35

	titleH := 0.0
	if p.Title != "" {
		titleH = m.TitleFontSize * lineHeight
	}
	subH := 0.0
	if p.Subtitle != "" {
		subH = m.SubtitleFontSize * lineHeight
	}

	contentH := titleH + subH
	if titleH > 0 && subH > 0 {
		contentH += gap
	}
	if contentH == 0 {
		return LowerThirdLayout{Empty: true}
	}

	containerH := contentH + 2*pad
	bottom := float64(p.Height) - pad
	top := bottom - containerH

	l := LowerThirdLayout{
		Container:    rect(0, top, float64(p.Width), bottom),
		CornerRadius: Px(p.CornerRadius, p.Height, p.Scale),
	}

	// Accent slot: right-aligned, vertically centered. The QR variant
	// uses the full content height so the code stays scannable.
	accentSide := 0.0
	if p.Accent == preset.AccentQR {
		accentSide = contentH
	} else {
		accentSide = m.AccentSize
	}
	if accentSide > 0 {
		ax1 := float64(p.Width) - pad
		ay0 := top + (containerH-accentSide)/2
		l.Accent = rect(ax1-accentSide, ay0, ax1, ay0+accentSide)
	}

	textRight := float64(l.Accent.Min.X)
	if l.Accent.Empty() {
		textRight = float64(p.Width)
	}
	textRight -= pad
	textLeft := pad

	y := top + pad
	if titleH > 0 {
		l.Title = rect(textLeft, y, textRight, y+titleH)
		y += titleH + gap
	}
	if subH > 0 {
		l.Subtitle = rect(textLeft, y, textRight, y+subH)
	}

	return l
}

func rect(x0, y0, x1, y1 float64) image.Rectangle {
	return image.Rect(int(x0+0.5), int(y0+0.5), int(x1+0.5), int(y1+0.5))
}
