package compositor

import (
	"errors"
	"image"
	"testing"

	"github.com/ivlev/camoverlay/internal/preset"
)

func solid(w, h int, r, g, b, a uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

func TestCompositeOpaqueOverlay(t *testing.T) {
	frame := solid(4, 4, 0, 0, 255, 255)
	overlay := solid(4, 4, 255, 0, 0, 255)

	if err := Composite(frame, overlay); err != nil {
		t.Fatalf("Composite failed: %v", err)
	}

	r, g, b, a := frame.Pix[0], frame.Pix[1], frame.Pix[2], frame.Pix[3]
	if r != 255 || g != 0 || b != 0 || a != 255 {
		t.Errorf("opaque overlay must replace the frame pixel: got (%d,%d,%d,%d)", r, g, b, a)
	}
}

func TestCompositeTransparentOverlay(t *testing.T) {
	frame := solid(4, 4, 10, 20, 30, 255)
	overlay := solid(4, 4, 0, 0, 0, 0)

	if err := Composite(frame, overlay); err != nil {
		t.Fatalf("Composite failed: %v", err)
	}

	if frame.Pix[0] != 10 || frame.Pix[1] != 20 || frame.Pix[2] != 30 || frame.Pix[3] != 255 {
		t.Errorf("transparent overlay must leave the frame untouched: got (%d,%d,%d,%d)",
			frame.Pix[0], frame.Pix[1], frame.Pix[2], frame.Pix[3])
	}
}

func TestCompositeBlend(t *testing.T) {
	frame := solid(1, 1, 0, 0, 255, 255)
	// Premultiplied half-transparent red.
	overlay := solid(1, 1, 128, 0, 0, 128)

	if err := Composite(frame, overlay); err != nil {
		t.Fatalf("Composite failed: %v", err)
	}

	// out = overlay + frame * (1 - 128/255)
	if frame.Pix[0] != 128 {
		t.Errorf("red channel: expected 128, got %d", frame.Pix[0])
	}
	if frame.Pix[2] != 127 {
		t.Errorf("blue channel: expected 127, got %d", frame.Pix[2])
	}
	if frame.Pix[3] != 255 {
		t.Errorf("alpha: expected 255, got %d", frame.Pix[3])
	}
}

func TestCompositeDimensionMismatch(t *testing.T) {
	frame := solid(4, 4, 10, 20, 30, 255)
	overlay := solid(2, 2, 255, 255, 255, 255)

	err := Composite(frame, overlay)
	if !errors.Is(err, preset.ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry, got %v", err)
	}

	// The frame must pass through unmodified on a contract violation.
	if frame.Pix[0] != 10 || frame.Pix[1] != 20 || frame.Pix[2] != 30 {
		t.Error("frame was modified despite the dimension mismatch")
	}
}

func TestCompositeNilBuffers(t *testing.T) {
	frame := solid(2, 2, 0, 0, 0, 255)
	if err := Composite(frame, nil); !errors.Is(err, preset.ErrInvalidGeometry) {
		t.Errorf("nil overlay: expected ErrInvalidGeometry, got %v", err)
	}
	if err := Composite(nil, frame); !errors.Is(err, preset.ErrInvalidGeometry) {
		t.Errorf("nil frame: expected ErrInvalidGeometry, got %v", err)
	}
}
