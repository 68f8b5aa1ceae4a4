package render

import (
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// The Go fonts ship embedded; parsing happens once per process.
var (
	fontOnce    sync.Once
	titleFont   *opentype.Font
	bodyFont    *opentype.Font
	fontLoadErr error
)

func loadFonts() error {
	fontOnce.Do(func() {
		titleFont, fontLoadErr = opentype.Parse(gobold.TTF)
		if fontLoadErr != nil {
			return
		}
		bodyFont, fontLoadErr = opentype.Parse(goregular.TTF)
	})
	return fontLoadErr
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// truncateToWidth cuts s down to the longest prefix that fits in maxWidth
// pixels. Lower-third text never wraps; overflow is dropped.
func truncateToWidth(face font.Face, s string, maxWidth int) string {
	if font.MeasureString(face, s).Ceil() <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if font.MeasureString(face, string(runes)).Ceil() <= maxWidth {
			break
		}
	}
	return string(runes)
}

// drawTextLine draws a single truncated line, left-aligned, with the
// baseline vertically centered in the box.
func drawTextLine(dst *image.RGBA, box image.Rectangle, s string, face font.Face, src image.Image) {
	if s == "" || box.Empty() {
		return
	}
	s = truncateToWidth(face, s, box.Dx())

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	baseline := box.Min.Y + (box.Dy()+ascent-descent)/2

	d := font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: face,
		Dot:  fixed.P(box.Min.X, baseline),
	}
	d.DrawString(s)
}
