package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/ivlev/camoverlay/internal/layout"
	"github.com/ivlev/camoverlay/internal/preset"
	"github.com/ivlev/camoverlay/internal/system"
	"github.com/ivlev/camoverlay/internal/theme"
)

// ErrRenderFailure wraps any rasterization failure. The cache reports it
// to whoever triggered the render and does not store the key.
var ErrRenderFailure = errors.New("render failure")

// Renderer rasterizes a fully-specified overlay request into an RGBA
// buffer of exactly the target resolution. It runs in the render
// context; the frame-delivery path only ever sees finished buffers.
type Renderer struct {
	pool *system.BufferPool
}

func New(pool *system.BufferPool) *Renderer {
	if pool == nil {
		pool = system.NewBufferPool()
	}
	return &Renderer{pool: pool}
}

// Render produces the overlay pixel buffer for p. The background is
// fully transparent outside drawn shapes, and all drawing is flattened
// into the single returned buffer. Returned buffers are owned by the
// caller (in the pipeline, the render cache) and are not recycled
// through the pool, since the frame path may still be reading them.
func (r *Renderer) Render(p preset.Props) (*image.RGBA, error) {
	if err := preset.ValidateProps(p); err != nil {
		return nil, err
	}
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("%w: fonts: %v", ErrRenderFailure, err)
	}

	dst := r.pool.Get(image.Rect(0, 0, p.Width, p.Height))
	clear(dst.Pix)

	tokens := theme.Resolve(p.Theme)
	m := layout.ComputeMetrics(p.Height, p.Scale)

	var err error
	switch p.Kind {
	case preset.NodeGraph:
		err = r.renderGraph(dst, p, tokens, m)
	default:
		err = r.renderLowerThird(dst, p, tokens, m)
	}
	if err != nil {
		r.pool.Put(dst)
		return nil, err
	}
	return dst, nil
}

// renderLowerThird draws the fixed structural composition: container
// strip, text stack, accent slot. Empty title and subtitle fields
// contribute no height at all; with both empty the overlay is blank.
func (r *Renderer) renderLowerThird(dst *image.RGBA, p preset.Props, tokens theme.Tokens, m layout.Metrics) error {
	lt := layout.LowerThird(p, m)
	if lt.Empty {
		return nil
	}

	fillRoundedRect(dst, lt.Container, lt.CornerRadius, tokens.Background)

	// Hairline accent along the container's top edge.
	edge := image.Rect(
		lt.Container.Min.X+int(lt.CornerRadius),
		lt.Container.Min.Y,
		lt.Container.Max.X-int(lt.CornerRadius),
		lt.Container.Min.Y+int(m.StrokeWidth+0.5),
	)
	fillRect(dst, edge, tokens.Primary)

	if p.Title != "" && !lt.Title.Empty() {
		face, err := newFace(titleFont, m.TitleFontSize)
		if err != nil {
			return fmt.Errorf("%w: title face: %v", ErrRenderFailure, err)
		}
		defer face.Close()
		drawTextLine(dst, lt.Title, p.Title, face, image.NewUniform(tokens.Text))
	}

	if p.Subtitle != "" && !lt.Subtitle.Empty() {
		face, err := newFace(bodyFont, m.SubtitleFontSize)
		if err != nil {
			return fmt.Errorf("%w: subtitle face: %v", ErrRenderFailure, err)
		}
		defer face.Close()
		sub := tokens.Text
		sub.A = uint8(uint16(sub.A) * 204 / 255)
		drawTextLine(dst, lt.Subtitle, p.Subtitle, face, image.NewUniform(sub))
	}

	if tokens.AccentVisible && !lt.Accent.Empty() {
		if p.Accent == preset.AccentQR && p.QRText != "" {
			if err := drawQR(dst, lt.Accent, p.QRText, tokens); err != nil {
				return err
			}
		} else {
			fillEllipse(dst, lt.Accent, tokens.Text)
			fillEllipse(dst, inset(lt.Accent, m.StrokeWidth), tokens.Primary)
		}
	}

	return nil
}

// renderGraph draws a node-driven overlay through the layout engine.
// An empty layout falls back to the fixed structural composition.
func (r *Renderer) renderGraph(dst *image.RGBA, p preset.Props, tokens theme.Tokens, m layout.Metrics) error {
	class := layout.ClassifyAspect(p.Width, p.Height)
	placed, err := layout.LayoutNodes(p.Graph, class)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}
	if len(placed) == 0 {
		return r.renderLowerThird(dst, p, tokens, m)
	}

	radius := layout.Px(p.CornerRadius, p.Height, p.Scale)
	for _, pn := range placed {
		box := pixelRect(pn.Rect, p.Width, p.Height)
		switch pn.Node.Kind {
		case "panel":
			fillRoundedRect(dst, box, radius, tokens.Background)
		case "text":
			size := float64(box.Dy()) / 1.25
			if size <= 0 {
				continue
			}
			face, err := newFace(titleFont, size)
			if err != nil {
				return fmt.Errorf("%w: node %q face: %v", ErrRenderFailure, pn.Node.Ref, err)
			}
			drawTextLine(dst, box, pn.Node.Text, face, image.NewUniform(tokens.Text))
			face.Close()
		case "accent":
			if tokens.AccentVisible {
				fillEllipse(dst, box, tokens.Primary)
			}
		default:
			return fmt.Errorf("%w: node %q: unknown kind %q", ErrRenderFailure, pn.Node.Ref, pn.Node.Kind)
		}
	}
	return nil
}

func drawQR(dst *image.RGBA, box image.Rectangle, text string, tokens theme.Tokens) error {
	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("%w: qr: %v", ErrRenderFailure, err)
	}
	q.DisableBorder = true
	q.ForegroundColor = tokens.Text
	q.BackgroundColor = color.Transparent

	side := box.Dx()
	if box.Dy() < side {
		side = box.Dy()
	}
	if side <= 0 {
		return nil
	}
	img := q.Image(side)
	draw.Draw(dst, image.Rect(box.Min.X, box.Min.Y, box.Min.X+side, box.Min.Y+side),
		img, img.Bounds().Min, draw.Over)
	return nil
}

func pixelRect(r preset.Rect, width, height int) image.Rectangle {
	return image.Rect(
		int(r.X*float64(width)+0.5),
		int(r.Y*float64(height)+0.5),
		int((r.X+r.W)*float64(width)+0.5),
		int((r.Y+r.H)*float64(height)+0.5),
	)
}
