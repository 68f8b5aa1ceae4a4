package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"
)

// Cubic Bezier circle approximation constant.
const kappa = 0.5522847498

// fillRect fills an axis-aligned rectangle with col, source-over.
func fillRect(dst *image.RGBA, r image.Rectangle, col color.NRGBA) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, image.NewUniform(col), image.Point{}, draw.Over)
}

// fillRoundedRect fills a rounded rectangle. The rasterizer works in
// shape-local coordinates so the coverage buffer stays proportional to
// the shape, not to the whole frame.
func fillRoundedRect(dst *image.RGBA, r image.Rectangle, radius float64, col color.NRGBA) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	w := float32(r.Dx())
	h := float32(r.Dy())
	rad := float32(radius)
	if rad < 0 {
		rad = 0
	}
	if limit := min32(w, h) / 2; rad > limit {
		rad = limit
	}
	c := rad * kappa

	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.MoveTo(rad, 0)
	z.LineTo(w-rad, 0)
	z.CubeTo(w-rad+c, 0, w, rad-c, w, rad)
	z.LineTo(w, h-rad)
	z.CubeTo(w, h-rad+c, w-rad+c, h, w-rad, h)
	z.LineTo(rad, h)
	z.CubeTo(rad-c, h, 0, h-rad+c, 0, h-rad)
	z.LineTo(0, rad)
	z.CubeTo(0, rad-c, rad-c, 0, rad, 0)
	z.ClosePath()
	z.Draw(dst, r, image.NewUniform(col), image.Point{})
}

// fillEllipse fills the ellipse inscribed in r.
func fillEllipse(dst *image.RGBA, r image.Rectangle, col color.NRGBA) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	w := float32(r.Dx())
	h := float32(r.Dy())
	cx := w / 2
	cy := h / 2
	kx := cx * kappa
	ky := cy * kappa

	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.MoveTo(w, cy)
	z.CubeTo(w, cy+ky, cx+kx, h, cx, h)
	z.CubeTo(cx-kx, h, 0, cy+ky, 0, cy)
	z.CubeTo(0, cy-ky, cx-kx, 0, cx, 0)
	z.CubeTo(cx+kx, 0, w, cy-ky, w, cy)
	z.ClosePath()
	z.Draw(dst, r, image.NewUniform(col), image.Point{})
}

// inset shrinks a rectangle by d pixels on every side, never inverting.
func inset(r image.Rectangle, d float64) image.Rectangle {
	n := int(d + 0.5)
	if n*2 >= r.Dx() || n*2 >= r.Dy() {
		return image.Rectangle{}
	}
	return r.Inset(n)
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
