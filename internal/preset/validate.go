package preset

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/ivlev/camoverlay/internal/theme"
)

// Configuration-time error taxonomy. Everything here is caught at the
// loading boundary; the render and frame paths assume validated input.
var (
	ErrUnknownTheme    = errors.New("unknown theme")
	ErrInvalidGeometry = errors.New("invalid geometry")
)

// Validate checks a preset as loaded from configuration. A preset that
// passes never produces an UnknownTheme or dangling-node failure later.
func Validate(p Preset) error {
	if p.ID == "" {
		return fmt.Errorf("preset without id")
	}
	if !theme.Known(p.Theme) {
		return fmt.Errorf("preset %q: %w: %q", p.ID, ErrUnknownTheme, p.Theme)
	}
	switch p.Kind {
	case "", DeclarativeLowerThird, NodeGraph:
	default:
		return fmt.Errorf("preset %q: unknown kind %q", p.ID, p.Kind)
	}
	switch p.Accent {
	case "", AccentCircle, AccentQR:
	default:
		return fmt.Errorf("preset %q: unknown accent %q", p.ID, p.Accent)
	}
	if p.Accent == AccentQR {
		if p.QRText == "" {
			return fmt.Errorf("preset %q: qr accent without qrText", p.ID)
		}
		// Trial encode: capacity overflow surfaces here, not mid-stream.
		if _, err := qrcode.New(p.QRText, qrcode.Medium); err != nil {
			return fmt.Errorf("preset %q: qr: %v", p.ID, err)
		}
	}
	// Every placement must point at a defined node.
	for _, pl := range append(append([]Placement{}, p.Graph.Widescreen...), p.Graph.FourThree...) {
		if _, err := p.Graph.NodeByRef(pl.Ref); err != nil {
			return fmt.Errorf("preset %q: %v", p.ID, err)
		}
		if !normalized(pl.Rect) {
			return fmt.Errorf("preset %q: node %q: rect outside [0,1]", p.ID, pl.Ref)
		}
	}
	return nil
}

// ValidateProps checks a render request before it is allowed near the
// cache or the renderer.
func ValidateProps(p Props) error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: target resolution %dx%d", ErrInvalidGeometry, p.Width, p.Height)
	}
	if p.Scale <= 0 {
		return fmt.Errorf("%w: scale %g", ErrInvalidGeometry, p.Scale)
	}
	if !theme.Known(p.Theme) {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, p.Theme)
	}
	return nil
}

func normalized(r Rect) bool {
	return r.X >= 0 && r.Y >= 0 && r.W >= 0 && r.H >= 0 &&
		r.X+r.W <= 1 && r.Y+r.H <= 1
}
