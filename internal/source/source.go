package source

import (
	"image"
	"image/draw"

	"github.com/gen2brain/go-fitz"
)

// Source supplies the incoming video frames the overlay is composited
// onto. In production this is the virtual-camera feed; here it also
// covers demo and test inputs.
type Source interface {
	FrameCount() int
	Dimensions() (width, height int, err error)
	Frame(index int) (*image.RGBA, error)
	Close() error
}

// FitzPDFSource feeds document pages as frames, one page per frame.
// Useful for demoing the compositor over slide decks and brand sheets.
type FitzPDFSource struct {
	doc  *fitz.Document
	path string
	dpi  float64
}

func NewFitzPDFSource(path string, dpi float64) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	if dpi <= 0 {
		dpi = 150
	}
	return &FitzPDFSource{doc: doc, path: path, dpi: dpi}, nil
}

func (f *FitzPDFSource) FrameCount() int {
	return f.doc.NumPage()
}

func (f *FitzPDFSource) Dimensions() (int, int, error) {
	img, err := f.Frame(0)
	if err != nil {
		return 0, 0, err
	}
	return img.Bounds().Dx(), img.Bounds().Dy(), nil
}

func (f *FitzPDFSource) Frame(index int) (*image.RGBA, error) {
	// fitz documents are not safe for concurrent page rendering; each
	// render opens its own handle.
	workerDoc, err := fitz.New(f.path)
	if err != nil {
		return nil, err
	}
	defer workerDoc.Close()
	img, err := workerDoc.ImageDPI(index, f.dpi)
	if err != nil {
		return nil, err
	}
	return toRGBA(img), nil
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}

// toRGBA returns img as *image.RGBA with a zero-origin tight stride,
// copying only when the underlying layout differs.
func toRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	return rgba
}
