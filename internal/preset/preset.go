package preset

import (
	"fmt"
	"hash/fnv"
	"math"

	"github.com/ivlev/camoverlay/internal/theme"
)

// Kind selects how a preset is rendered: as the built-in declarative
// lower-third composition, or through its node graph.
type Kind string

const (
	DeclarativeLowerThird Kind = "lower-third"
	NodeGraph             Kind = "node-graph"
)

// AccentKind selects the accent element of a lower-third.
type AccentKind string

const (
	AccentCircle AccentKind = "circle"
	AccentQR     AccentKind = "qr"
)

// Node is a logical element of a node-graph preset.
type Node struct {
	Ref  string `yaml:"ref"`
	Kind string `yaml:"kind"` // panel, text, accent
	Text string `yaml:"text,omitempty"`
}

// Rect is a normalized rectangle, fractions of the output frame in [0,1].
type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Placement positions one node for one aspect class.
type Placement struct {
	Ref  string `yaml:"ref"`
	Rect Rect   `yaml:"rect"`
}

// Graph is the logical node graph of a node-driven preset. Declarative
// presets leave it empty and the renderer uses its fixed structural layout.
type Graph struct {
	Nodes      []Node      `yaml:"nodes,omitempty"`
	Widescreen []Placement `yaml:"widescreen,omitempty"`
	FourThree  []Placement `yaml:"fourThree,omitempty"`
}

// Preset is a named, reusable overlay configuration. ID is the primary
// cache partition key and must stay stable across renders.
type Preset struct {
	ID       string      `yaml:"id"`
	Name     string      `yaml:"name"`
	Kind     Kind        `yaml:"kind"`
	Title    string      `yaml:"title,omitempty"`
	Subtitle string      `yaml:"subtitle,omitempty"`
	Theme    theme.Theme `yaml:"theme"`
	Accent   AccentKind  `yaml:"accent,omitempty"`
	QRText   string      `yaml:"qrText,omitempty"`
	Graph    Graph       `yaml:"graph,omitempty"`
}

// Props is a fully-specified render request: the active preset content
// plus the live output geometry. One Props value describes exactly one
// renderable pixel buffer.
type Props struct {
	PresetID     string
	PresetName   string
	Kind         Kind
	Title        string
	Subtitle     string
	Theme        theme.Theme
	Accent       AccentKind
	QRText       string
	Graph        Graph
	Width        int
	Height       int
	Scale        float64
	Padding      float64
	CornerRadius float64
}

// Default logical spacing, in 1080p reference pixels.
const (
	DefaultPadding      = 24.0
	DefaultCornerRadius = 12.0
)

// PropsFor builds a render request from a preset and the live output
// geometry reported by the video source.
func PropsFor(p Preset, width, height int, scale float64) Props {
	accent := p.Accent
	if accent == "" {
		accent = AccentCircle
	}
	kind := p.Kind
	if kind == "" {
		kind = DeclarativeLowerThird
	}
	return Props{
		PresetID:     p.ID,
		PresetName:   p.Name,
		Kind:         kind,
		Title:        p.Title,
		Subtitle:     p.Subtitle,
		Theme:        p.Theme,
		Accent:       accent,
		QRText:       p.QRText,
		Graph:        p.Graph,
		Width:        width,
		Height:       height,
		Scale:        scale,
		Padding:      DefaultPadding,
		CornerRadius: DefaultCornerRadius,
	}
}

// ContentHash folds everything that changes pixels but is not already an
// explicit key component into one stable value. FNV-1a: process-local
// key, no need for a cryptographic digest.
func (p Props) ContentHash() uint64 {
	h := fnv.New64a()
	for _, s := range []string{p.PresetName, string(p.Kind), p.Title, p.Subtitle, string(p.Accent), p.QRText} {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	var b [8]byte
	putFloat := func(f float64) {
		bits := math.Float64bits(f)
		for i := 0; i < 8; i++ {
			b[i] = byte(bits >> (8 * i))
		}
		h.Write(b[:])
	}
	putFloat(p.Padding)
	putFloat(p.CornerRadius)
	for _, n := range p.Graph.Nodes {
		h.Write([]byte(n.Ref))
		h.Write([]byte(n.Kind))
		h.Write([]byte(n.Text))
		h.Write([]byte{0})
	}
	for _, pl := range append(append([]Placement{}, p.Graph.Widescreen...), p.Graph.FourThree...) {
		h.Write([]byte(pl.Ref))
		putFloat(pl.Rect.X)
		putFloat(pl.Rect.Y)
		putFloat(pl.Rect.W)
		putFloat(pl.Rect.H)
	}
	return h.Sum64()
}

// DemoTable is the built-in preset table the CLI falls back to when no
// preset file is supplied. Explicitly constructed and explicitly owned
// by the caller; there is no package-level mutable registry.
func DemoTable() []Preset {
	return []Preset{
		{
			ID:       "lower-third-pro",
			Name:     "Professional Lower Third",
			Kind:     DeclarativeLowerThird,
			Title:    "Danny Francken",
			Subtitle: "Senior Software Engineer",
			Theme:    theme.Professional,
			Accent:   AccentCircle,
		},
		{
			ID:       "lower-third-brand",
			Name:     "Branded Lower Third",
			Kind:     DeclarativeLowerThird,
			Title:    "Danny Francken",
			Subtitle: "dannyfrancken.dev",
			Theme:    theme.Bold,
			Accent:   AccentQR,
			QRText:   "https://dannyfrancken.dev",
		},
		{
			ID:       "lower-third-quiet",
			Name:     "Minimal Lower Third",
			Kind:     DeclarativeLowerThird,
			Title:    "Danny Francken",
			Theme:    theme.Minimal,
			Accent:   AccentCircle,
		},
		{
			ID:    "corner-badge",
			Name:  "Corner Badge",
			Kind:  NodeGraph,
			Theme: theme.Creative,
			Graph: Graph{
				Nodes: []Node{
					{Ref: "badge", Kind: "panel"},
					{Ref: "label", Kind: "text", Text: "LIVE"},
					{Ref: "dot", Kind: "accent"},
				},
				Widescreen: []Placement{
					{Ref: "badge", Rect: Rect{X: 0.82, Y: 0.05, W: 0.14, H: 0.08}},
					{Ref: "label", Rect: Rect{X: 0.84, Y: 0.06, W: 0.08, H: 0.06}},
					{Ref: "dot", Rect: Rect{X: 0.925, Y: 0.065, W: 0.025, H: 0.05}},
				},
				FourThree: []Placement{
					{Ref: "badge", Rect: Rect{X: 0.74, Y: 0.05, W: 0.22, H: 0.08}},
					{Ref: "label", Rect: Rect{X: 0.765, Y: 0.06, W: 0.13, H: 0.06}},
					{Ref: "dot", Rect: Rect{X: 0.915, Y: 0.065, W: 0.035, H: 0.05}},
				},
			},
		},
	}
}

func (g Graph) node(ref string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.Ref == ref {
			return n, true
		}
	}
	return Node{}, false
}

// NodeByRef resolves a placement reference against the graph.
func (g Graph) NodeByRef(ref string) (Node, error) {
	n, ok := g.node(ref)
	if !ok {
		return Node{}, fmt.Errorf("node %q is not defined in the graph", ref)
	}
	return n, nil
}
