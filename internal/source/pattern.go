package source

import (
	"fmt"
	"image"
)

// TestPatternSource synthesizes frames: a diagonal gradient with a
// vertical bar that walks across the frame, so dropped or reordered
// frames are visible at a glance.
type TestPatternSource struct {
	width  int
	height int
	frames int
}

func NewTestPatternSource(width, height, frames int) (*TestPatternSource, error) {
	if width <= 0 || height <= 0 || frames <= 0 {
		return nil, fmt.Errorf("test pattern: bad geometry %dx%d x%d", width, height, frames)
	}
	return &TestPatternSource{width: width, height: height, frames: frames}, nil
}

func (s *TestPatternSource) FrameCount() int {
	return s.frames
}

func (s *TestPatternSource) Dimensions() (int, int, error) {
	return s.width, s.height, nil
}

func (s *TestPatternSource) Frame(index int) (*image.RGBA, error) {
	if index < 0 || index >= s.frames {
		return nil, fmt.Errorf("test pattern: frame %d out of range", index)
	}
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	barX := (index * s.width) / s.frames
	barW := s.width / 32
	if barW < 1 {
		barW = 1
	}
	for y := 0; y < s.height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+s.width*4]
		for x := 0; x < s.width; x++ {
			r := uint8((x * 255) / s.width)
			g := uint8((y * 255) / s.height)
			b := uint8(64)
			if x >= barX && x < barX+barW {
				r, g, b = 255, 255, 255
			}
			o := x * 4
			row[o+0] = r
			row[o+1] = g
			row[o+2] = b
			row[o+3] = 255
		}
	}
	return img, nil
}

func (s *TestPatternSource) Close() error {
	return nil
}
