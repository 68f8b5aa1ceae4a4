package layout

import (
	"fmt"

	"github.com/ivlev/camoverlay/internal/preset"
)

// PlacedNode is one resolved layout entry: a node plus its normalized
// rectangle for the selected aspect class.
type PlacedNode struct {
	Node preset.Node
	Rect preset.Rect
}

// LayoutNodes resolves a node graph against one aspect class. The order
// of the returned slice is the draw order. An empty graph yields an
// empty layout; the renderer then falls back to its fixed structural
// layout, which is the intended path for declarative presets.
func LayoutNodes(g preset.Graph, class AspectClass) ([]PlacedNode, error) {
	var placements []preset.Placement
	switch class {
	case FourThree:
		placements = g.FourThree
	default:
		placements = g.Widescreen
	}

	if len(placements) == 0 {
		return nil, nil
	}

	placed := make([]PlacedNode, 0, len(placements))
	for _, pl := range placements {
		n, err := g.NodeByRef(pl.Ref)
		if err != nil {
			return nil, fmt.Errorf("layout %s: %v", class, err)
		}
		placed = append(placed, PlacedNode{Node: n, Rect: pl.Rect})
	}
	return placed, nil
}
