// Package compositor blends a rendered overlay onto a video frame.
// This is the hot path: it runs once per delivered frame and touches
// raw Pix directly.
package compositor

import (
	"fmt"
	"image"

	"github.com/ivlev/camoverlay/internal/preset"
)

// Composite alpha-blends overlay over frame, in place, using the
// overlay's alpha channel (source-over, premultiplied RGBA). The two
// buffers must have identical dimensions: resizing here would
// reintroduce the latency the cache exists to avoid, so a mismatch is
// a contract violation, not something to paper over.
func Composite(frame, overlay *image.RGBA) error {
	if frame == nil || overlay == nil {
		return fmt.Errorf("%w: nil buffer", preset.ErrInvalidGeometry)
	}
	fb, ob := frame.Bounds(), overlay.Bounds()
	if fb.Dx() != ob.Dx() || fb.Dy() != ob.Dy() {
		return fmt.Errorf("%w: frame %dx%d, overlay %dx%d",
			preset.ErrInvalidGeometry, fb.Dx(), fb.Dy(), ob.Dx(), ob.Dy())
	}

	w, h := fb.Dx(), fb.Dy()
	for y := 0; y < h; y++ {
		fo := frame.PixOffset(fb.Min.X, fb.Min.Y+y)
		oo := overlay.PixOffset(ob.Min.X, ob.Min.Y+y)
		frow := frame.Pix[fo : fo+w*4]
		orow := overlay.Pix[oo : oo+w*4]
		for x := 0; x < w*4; x += 4 {
			oa := uint32(orow[x+3])
			if oa == 0 {
				continue
			}
			if oa == 255 {
				copy(frow[x:x+4], orow[x:x+4])
				continue
			}
			ia := 255 - oa
			frow[x+0] = uint8(uint32(orow[x+0]) + (uint32(frow[x+0])*ia+127)/255)
			frow[x+1] = uint8(uint32(orow[x+1]) + (uint32(frow[x+1])*ia+127)/255)
			frow[x+2] = uint8(uint32(orow[x+2]) + (uint32(frow[x+2])*ia+127)/255)
			frow[x+3] = uint8(oa + (uint32(frow[x+3])*ia+127)/255)
		}
	}
	return nil
}
