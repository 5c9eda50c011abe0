package layout

import (
	"github.com/matzehuels/padviz/pkg/flow"
)

// =============================================================================
// Node - Geometry Tree
// =============================================================================

// Node is one node of the geometry tree. It mirrors the control-flow
// tree 1:1 and adds absolute-within-parent position, size, a stable
// identity, and per-kind auxiliary measurements.
//
// The JSON form is the payload of the layout service endpoint and of
// `padviz layout`.
type Node struct {
	// ID is the stable identity, derived from the node's structural
	// path from the root. Re-running layout over an unchanged subtree
	// yields the same ID; the reconciler keys its diff on it.
	ID string `json:"id"`

	Kind flow.Kind `json:"kind"`

	// Position relative to the parent node's origin, and outer size.
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Label     string `json:"label,omitempty"`     // block title, command text, error message
	Condition string `json:"condition,omitempty"` // if, loop

	Children []*Node `json:"children,omitempty"` // sequence, block
	Then     *Node   `json:"then,omitempty"`     // if
	Else     *Node   `json:"else,omitempty"`     // if
	Body     *Node   `json:"body,omitempty"`     // loop

	// Auxiliary geometry.
	CondWidth  float64 `json:"cond_width,omitempty"`  // if/loop: condition box width
	StartWidth float64 `json:"start_width,omitempty"` // block: start capsule width
	ConnectorX float64 `json:"connector_x,omitempty"` // block: vertical connector line x
	BottomY    float64 `json:"bottom_y,omitempty"`    // if: wedge bottom vertex y
}

// Kids returns the node's children in rendering order, matching
// [flow.Node.Kids]: sequence/block children as given, then before else,
// loop body. The order encodes the vertical stacking of sequences and
// must be preserved by consumers.
func (n *Node) Kids() []*Node {
	switch n.Kind {
	case flow.KindSequence, flow.KindBlock:
		return n.Children
	case flow.KindIf:
		kids := make([]*Node, 0, 2)
		if n.Then != nil {
			kids = append(kids, n.Then)
		}
		if n.Else != nil {
			kids = append(kids, n.Else)
		}
		return kids
	case flow.KindLoop:
		if n.Body != nil {
			return []*Node{n.Body}
		}
	}
	return nil
}

// Walk visits n and every descendant in depth-first pre-order.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Kids() {
		Walk(c, fn)
	}
}
