package layout

import (
	"testing"

	"github.com/ivlev/camoverlay/internal/preset"
)

func TestClassifyAspect(t *testing.T) {
	tests := []struct {
		width, height int
		expected      AspectClass
	}{
		{1920, 1080, Widescreen},
		{1280, 720, Widescreen},
		{3840, 2160, Widescreen},
		{2560, 1080, Widescreen},
		{1024, 768, FourThree},
		{640, 480, FourThree},
		{1080, 1350, FourThree},
		{700, 450, Widescreen},  // exactly 14:9, the cutoff itself
		{699, 450, FourThree},   // just under the cutoff
		{720, 1280, FourThree},  // portrait
	}

	for _, tt := range tests {
		got := ClassifyAspect(tt.width, tt.height)
		if got != tt.expected {
			t.Errorf("ClassifyAspect(%d, %d): expected %s, got %s", tt.width, tt.height, tt.expected, got)
		}
	}
}

func TestLayoutNodes(t *testing.T) {
	g := preset.Graph{
		Nodes: []preset.Node{
			{Ref: "badge", Kind: "panel"},
			{Ref: "label", Kind: "text", Text: "LIVE"},
		},
		Widescreen: []preset.Placement{
			{Ref: "badge", Rect: preset.Rect{X: 0.8, Y: 0.05, W: 0.15, H: 0.1}},
			{Ref: "label", Rect: preset.Rect{X: 0.82, Y: 0.07, W: 0.1, H: 0.06}},
		},
		FourThree: []preset.Placement{
			{Ref: "badge", Rect: preset.Rect{X: 0.7, Y: 0.05, W: 0.25, H: 0.1}},
		},
	}

	wide, err := LayoutNodes(g, Widescreen)
	if err != nil {
		t.Fatalf("LayoutNodes widescreen failed: %v", err)
	}
	if len(wide) != 2 {
		t.Fatalf("expected 2 placed nodes, got %d", len(wide))
	}
	if wide[0].Node.Ref != "badge" || wide[1].Node.Ref != "label" {
		t.Errorf("draw order not preserved: %s, %s", wide[0].Node.Ref, wide[1].Node.Ref)
	}

	narrow, err := LayoutNodes(g, FourThree)
	if err != nil {
		t.Fatalf("LayoutNodes fourThree failed: %v", err)
	}
	if len(narrow) != 1 {
		t.Errorf("expected 1 placed node for fourThree, got %d", len(narrow))
	}
}

func TestLayoutNodesEmptyGraph(t *testing.T) {
	placed, err := LayoutNodes(preset.Graph{}, Widescreen)
	if err != nil {
		t.Fatalf("empty graph should not error: %v", err)
	}
	if len(placed) != 0 {
		t.Errorf("empty graph should yield empty layout, got %d nodes", len(placed))
	}
}

func TestLayoutNodesDanglingRef(t *testing.T) {
	g := preset.Graph{
		Nodes: []preset.Node{{Ref: "badge", Kind: "panel"}},
		Widescreen: []preset.Placement{
			{Ref: "ghost", Rect: preset.Rect{X: 0, Y: 0, W: 0.5, H: 0.5}},
		},
	}

	_, err := LayoutNodes(g, Widescreen)
	if err == nil {
		t.Fatal("expected error for dangling node reference")
	}
	t.Logf("dangling ref error: %v", err)
}

func e2eProps() preset.Props {
	return preset.Props{
		PresetID:     "e2e",
		Kind:         preset.DeclarativeLowerThird,
		Title:        "Danny Francken",
		Subtitle:     "Senior Software Engineer",
		Theme:        "professional",
		Accent:       preset.AccentCircle,
		Width:        1920,
		Height:       1080,
		Scale:        1.0,
		Padding:      preset.DefaultPadding,
		CornerRadius: preset.DefaultCornerRadius,
	}
}

func TestLowerThirdGeometry(t *testing.T) {
	p := e2eProps()
	m := ComputeMetrics(p.Height, p.Scale)
	lt := LowerThird(p, m)

	if lt.Empty {
		t.Fatal("layout unexpectedly empty")
	}
	if lt.Container.Min.X != 0 || lt.Container.Max.X != 1920 {
		t.Errorf("container must span full width: %v", lt.Container)
	}
	if lt.Container.Max.Y != 1080-24 {
		t.Errorf("container must be bottom-anchored with padding margin: bottom=%d", lt.Container.Max.Y)
	}
	if lt.Container.Min.Y >= lt.Container.Max.Y {
		t.Errorf("degenerate container: %v", lt.Container)
	}
	if lt.Title.Empty() || lt.Subtitle.Empty() {
		t.Fatalf("title and subtitle boxes must be present: %v, %v", lt.Title, lt.Subtitle)
	}
	if lt.Title.Max.Y > lt.Subtitle.Min.Y {
		t.Errorf("title must sit above subtitle: title=%v subtitle=%v", lt.Title, lt.Subtitle)
	}
	if lt.Accent.Empty() {
		t.Fatal("accent slot must be present")
	}
	if lt.Accent.Max.X != 1920-24 {
		t.Errorf("accent must be right-aligned inside padding: %v", lt.Accent)
	}
	if lt.Title.Max.X > lt.Accent.Min.X {
		t.Errorf("text stack may not overlap the accent slot: title=%v accent=%v", lt.Title, lt.Accent)
	}
}

func TestLowerThirdTitleOnlySubtitle(t *testing.T) {
	full := LowerThird(e2eProps(), ComputeMetrics(1080, 1.0))

	p := e2eProps()
	p.Title = ""
	m := ComputeMetrics(p.Height, p.Scale)
	lt := LowerThird(p, m)

	if !lt.Title.Empty() {
		t.Errorf("empty title must not reserve a box: %v", lt.Title)
	}
	if lt.Subtitle.Empty() {
		t.Fatal("subtitle box missing")
	}
	// No phantom title gap: the container shrinks to subtitle-only height.
	if lt.Container.Dy() >= full.Container.Dy() {
		t.Errorf("container with subtitle only must be shorter: %d vs %d", lt.Container.Dy(), full.Container.Dy())
	}
	// Subtitle centered: equal space above and below, within rounding.
	above := lt.Subtitle.Min.Y - lt.Container.Min.Y
	below := lt.Container.Max.Y - lt.Subtitle.Max.Y
	if diff := above - below; diff < -1 || diff > 1 {
		t.Errorf("subtitle not vertically centered: above=%d below=%d", above, below)
	}
}

func TestLowerThirdEmptyContent(t *testing.T) {
	p := e2eProps()
	p.Title = ""
	p.Subtitle = ""
	lt := LowerThird(p, ComputeMetrics(p.Height, p.Scale))
	if !lt.Empty {
		t.Error("layout with no content must be empty")
	}
}
