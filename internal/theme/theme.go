package theme

import "image/color"

// Theme is the closed set of visual themes an overlay preset can reference.
type Theme string

const (
	Professional Theme = "professional"
	Creative     Theme = "creative"
	Minimal      Theme = "minimal"
	Bold         Theme = "bold"
)

// Tokens are the concrete style values a theme resolves to.
// Resolution is a pure table lookup; unknown identifiers are rejected
// at the preset-loading boundary and never reach Resolve.
type Tokens struct {
	Primary       color.NRGBA
	Background    color.NRGBA
	Text          color.NRGBA
	AccentVisible bool
}

// All lists every known theme, in a stable order.
func All() []Theme {
	return []Theme{Professional, Creative, Minimal, Bold}
}

// Known reports whether t is a member of the theme enumeration.
func Known(t Theme) bool {
	switch t {
	case Professional, Creative, Minimal, Bold:
		return true
	}
	return false
}

// Resolve maps a theme to its token set. Total over the enumeration;
// anything else falls back to Professional so the render path never
// has an error branch here.
func Resolve(t Theme) Tokens {
	switch t {
	case Creative:
		return Tokens{
			Primary:       color.NRGBA{R: 0xF5, G: 0x6E, B: 0x28, A: 0xFF},
			Background:    color.NRGBA{R: 0x2B, G: 0x14, B: 0x3C, A: 0xD9},
			Text:          color.NRGBA{R: 0xFF, G: 0xF4, B: 0xE8, A: 0xFF},
			AccentVisible: true,
		}
	case Minimal:
		return Tokens{
			Primary:       color.NRGBA{R: 0x9A, G: 0x9A, B: 0x9A, A: 0xFF},
			Background:    color.NRGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xB3},
			Text:          color.NRGBA{R: 0xF2, G: 0xF2, B: 0xF2, A: 0xFF},
			AccentVisible: false,
		}
	case Bold:
		return Tokens{
			Primary:       color.NRGBA{R: 0xE6, G: 0x2E, B: 0x2E, A: 0xFF},
			Background:    color.NRGBA{R: 0x0A, G: 0x0A, B: 0x0A, A: 0xF0},
			Text:          color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
			AccentVisible: true,
		}
	default: // Professional
		return Tokens{
			Primary:       color.NRGBA{R: 0x1E, G: 0x6F, B: 0xD9, A: 0xFF},
			Background:    color.NRGBA{R: 0x12, G: 0x16, B: 0x20, A: 0xE0},
			Text:          color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
			AccentVisible: true,
		}
	}
}
