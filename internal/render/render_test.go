package render

import (
	"errors"
	"image"
	"testing"

	"golang.org/x/image/font"

	"github.com/ivlev/camoverlay/internal/layout"
	"github.com/ivlev/camoverlay/internal/preset"
	"github.com/ivlev/camoverlay/internal/theme"
)

func lowerThirdProps() preset.Props {
	return preset.Props{
		PresetID:     "e2e",
		Kind:         preset.DeclarativeLowerThird,
		Title:        "Danny Francken",
		Subtitle:     "Senior Software Engineer",
		Theme:        theme.Professional,
		Accent:       preset.AccentCircle,
		Width:        1920,
		Height:       1080,
		Scale:        1.0,
		Padding:      preset.DefaultPadding,
		CornerRadius: preset.DefaultCornerRadius,
	}
}

func alphaAt(img *image.RGBA, x, y int) uint8 {
	return img.Pix[img.PixOffset(x, y)+3]
}

func TestRenderExactDimensions(t *testing.T) {
	r := New(nil)
	tests := [][2]int{{1920, 1080}, {1280, 720}, {3840, 2160}, {1024, 768}}

	for _, tt := range tests {
		p := lowerThirdProps()
		p.Width, p.Height = tt[0], tt[1]
		buf, err := r.Render(p)
		if err != nil {
			t.Fatalf("%dx%d: %v", tt[0], tt[1], err)
		}
		b := buf.Bounds()
		if b.Dx() != tt[0] || b.Dy() != tt[1] {
			t.Errorf("expected %dx%d buffer, got %v", tt[0], tt[1], b)
		}
	}
}

func TestRenderTransparentOutsideContainer(t *testing.T) {
	r := New(nil)
	p := lowerThirdProps()
	buf, err := r.Render(p)
	if err != nil {
		t.Fatal(err)
	}

	m := layout.ComputeMetrics(p.Height, p.Scale)
	lt := layout.LowerThird(p, m)

	for y := 0; y < lt.Container.Min.Y-1; y += 37 {
		for x := 0; x < p.Width; x += 101 {
			if alphaAt(buf, x, y) != 0 {
				t.Fatalf("pixel (%d,%d) above the container is not transparent", x, y)
			}
		}
	}
	for y := lt.Container.Max.Y + 1; y < p.Height; y++ {
		for x := 0; x < p.Width; x += 101 {
			if alphaAt(buf, x, y) != 0 {
				t.Fatalf("pixel (%d,%d) below the container is not transparent", x, y)
			}
		}
	}

	cx := lt.Container.Min.X + lt.Container.Dx()/2
	cy := lt.Container.Min.Y + lt.Container.Dy()/2
	if alphaAt(buf, cx, cy) == 0 {
		t.Error("container interior must not be transparent")
	}
}

func TestRenderSubtitleOnly(t *testing.T) {
	r := New(nil)
	p := lowerThirdProps()
	p.Title = ""
	buf, err := r.Render(p)
	if err != nil {
		t.Fatal(err)
	}

	full := layout.LowerThird(lowerThirdProps(), layout.ComputeMetrics(p.Height, p.Scale))
	lt := layout.LowerThird(p, layout.ComputeMetrics(p.Height, p.Scale))

	// The subtitle-only container is shorter; everything above it stays
	// transparent, including rows the full layout would have covered.
	for y := full.Container.Min.Y; y < lt.Container.Min.Y-1; y += 3 {
		if alphaAt(buf, p.Width/2, y) != 0 {
			t.Fatalf("phantom title space drawn at y=%d", y)
		}
	}
}

func TestRenderEmptyContentIsBlank(t *testing.T) {
	r := New(nil)
	p := lowerThirdProps()
	p.Title = ""
	p.Subtitle = ""
	buf, err := r.Render(p)
	if err != nil {
		t.Fatal(err)
	}
	for i := 3; i < len(buf.Pix); i += 4 {
		if buf.Pix[i] != 0 {
			t.Fatal("overlay with no content must be fully transparent")
		}
	}
}

func TestRenderMinimalHidesAccent(t *testing.T) {
	r := New(nil)

	p := lowerThirdProps()
	p.Theme = theme.Minimal
	minimal, err := r.Render(p)
	if err != nil {
		t.Fatal(err)
	}

	lt := layout.LowerThird(p, layout.ComputeMetrics(p.Height, p.Scale))
	ax := lt.Accent.Min.X + lt.Accent.Dx()/2
	ay := lt.Accent.Min.Y + lt.Accent.Dy()/2

	// With the accent hidden, its slot shows plain container background,
	// identical to any undrawn background pixel on the same row.
	bo := minimal.PixOffset(p.Width/2, ay)
	ao := minimal.PixOffset(ax, ay)
	for i := 0; i < 4; i++ {
		if minimal.Pix[ao+i] != minimal.Pix[bo+i] {
			t.Fatalf("minimal theme drew an accent: slot pixel %v, background %v",
				minimal.Pix[ao:ao+4], minimal.Pix[bo:bo+4])
		}
	}

	p.Theme = theme.Bold
	bold, err := r.Render(p)
	if err != nil {
		t.Fatal(err)
	}
	lt = layout.LowerThird(p, layout.ComputeMetrics(p.Height, p.Scale))
	ax = lt.Accent.Min.X + lt.Accent.Dx()/2
	ay = lt.Accent.Min.Y + lt.Accent.Dy()/2
	ao = bold.PixOffset(ax, ay)
	bo = bold.PixOffset(p.Width/2, ay)
	same := true
	for i := 0; i < 4; i++ {
		if bold.Pix[ao+i] != bold.Pix[bo+i] {
			same = false
		}
	}
	if same {
		t.Error("bold theme must draw a visible accent")
	}
}

func TestRenderQRAccent(t *testing.T) {
	r := New(nil)
	p := lowerThirdProps()
	p.Theme = theme.Bold
	p.Accent = preset.AccentQR
	p.QRText = "https://example.com"

	buf, err := r.Render(p)
	if err != nil {
		t.Fatal(err)
	}

	lt := layout.LowerThird(p, layout.ComputeMetrics(p.Height, p.Scale))
	tokens := theme.Resolve(theme.Bold)
	fg := 0
	for y := lt.Accent.Min.Y; y < lt.Accent.Max.Y; y++ {
		for x := lt.Accent.Min.X; x < lt.Accent.Max.X; x++ {
			o := buf.PixOffset(x, y)
			if buf.Pix[o] == tokens.Text.R && buf.Pix[o+3] == 0xFF {
				fg++
			}
		}
	}
	if fg == 0 {
		t.Error("qr accent drew no foreground modules")
	}
	t.Logf("qr foreground pixels: %d", fg)
}

func TestRenderNodeGraph(t *testing.T) {
	r := New(nil)
	var badge preset.Preset
	for _, p := range preset.DemoTable() {
		if p.Kind == preset.NodeGraph {
			badge = p
			break
		}
	}
	if badge.ID == "" {
		t.Fatal("demo table has no node-graph preset")
	}

	p := preset.PropsFor(badge, 1920, 1080, 1.0)
	buf, err := r.Render(p)
	if err != nil {
		t.Fatal(err)
	}

	panel := badge.Graph.Widescreen[0].Rect
	px := int((panel.X + panel.W/2) * 1920)
	py := int((panel.Y + panel.H/2) * 1080)
	if alphaAt(buf, px, py) == 0 {
		t.Error("badge panel region is transparent")
	}
	if alphaAt(buf, 960, 540) != 0 {
		t.Error("frame center outside the badge must stay transparent")
	}
}

func TestRenderUnknownNodeKind(t *testing.T) {
	r := New(nil)
	p := preset.Props{
		PresetID: "x",
		Kind:     preset.NodeGraph,
		Theme:    theme.Creative,
		Width:    640,
		Height:   360,
		Scale:    1.0,
		Graph: preset.Graph{
			Nodes:      []preset.Node{{Ref: "a", Kind: "hologram"}},
			Widescreen: []preset.Placement{{Ref: "a", Rect: preset.Rect{W: 0.5, H: 0.5}}},
		},
	}
	_, err := r.Render(p)
	if !errors.Is(err, ErrRenderFailure) {
		t.Errorf("expected ErrRenderFailure, got %v", err)
	}
}

func TestRenderRejectsBadGeometry(t *testing.T) {
	r := New(nil)
	p := lowerThirdProps()
	p.Width = 0
	if _, err := r.Render(p); !errors.Is(err, preset.ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestTruncateToWidth(t *testing.T) {
	if err := loadFonts(); err != nil {
		t.Fatal(err)
	}
	face, err := newFace(titleFont, 36)
	if err != nil {
		t.Fatal(err)
	}
	defer face.Close()

	long := "An Extremely Long Lower Third Title That Cannot Possibly Fit"
	maxWidth := 300
	got := truncateToWidth(face, long, maxWidth)

	if got == long {
		t.Fatal("long string was not truncated")
	}
	if got == "" {
		t.Fatal("truncation must keep a non-empty prefix for a usable width")
	}
	if w := font.MeasureString(face, got).Ceil(); w > maxWidth {
		t.Errorf("truncated string still overflows: %dpx > %dpx", w, maxWidth)
	}

	short := "Hi"
	if truncateToWidth(face, short, maxWidth) != short {
		t.Error("fitting string must pass through unchanged")
	}
}
