package layout

import (
	"strconv"

	"github.com/matzehuels/padviz/pkg/flow"
)

// =============================================================================
// Stable Identity
// =============================================================================

// kindTokens are the identity path segments per node kind.
var kindTokens = map[flow.Kind]string{
	flow.KindSequence: "seq",
	flow.KindBlock:    "blk",
	flow.KindIf:       "if",
	flow.KindLoop:     "loop",
	flow.KindCommand:  "cmd",
	flow.KindError:    "err",
}

// childID derives a child's stable identity from its parent identity,
// its kind, and its slot index. Identity is purely structural: two
// identical subtrees at different positions get different identities,
// and re-laying-out an unchanged subtree reproduces the same one.
func childID(parent string, kind flow.Kind, index int) string {
	return parent + "/" + token(kind) + strconv.Itoa(index)
}

func token(kind flow.Kind) string {
	if t, ok := kindTokens[kind]; ok {
		return t
	}
	return "node"
}

// Slot indices for single-child positions. The else-branch keeps its
// slot even when the then-branch is absent, so its identity does not
// shift when the other slot changes.
const (
	slotThen = 0
	slotElse = 1
	slotBody = 0
)

// =============================================================================
// Engine
// =============================================================================

// Engine computes geometry trees from control-flow trees.
// It is stateless apart from the injected text measurer and safe for
// concurrent use.
type Engine struct {
	measure Measurer
}

// New creates a layout engine. A nil measurer falls back to [Monospace].
func New(m Measurer) *Engine {
	if m == nil {
		m = Monospace
	}
	return &Engine{measure: m}
}

// Compute lays out the control-flow tree rooted at root and returns the
// geometry tree. The result's X and Y are zero; every descendant is
// positioned relative to its parent.
//
// Compute is total: error nodes and nodes with missing child slots lay
// out as minimum-size placeholders rather than failing.
func (e *Engine) Compute(root *flow.Node) *Node {
	if root == nil {
		return nil
	}
	return e.layout(root, token(root.Kind))
}

func (e *Engine) layout(n *flow.Node, id string) *Node {
	switch n.Kind {
	case flow.KindSequence:
		return e.layoutSequence(n, id)
	case flow.KindBlock:
		return e.layoutBlock(n, id)
	case flow.KindIf:
		return e.layoutIf(n, id)
	case flow.KindLoop:
		return e.layoutLoop(n, id)
	case flow.KindCommand:
		return e.layoutCommand(n, id)
	case flow.KindError:
		return placeholder(n, id)
	default:
		return placeholder(n, id)
	}
}

// =============================================================================
// Per-Kind Layout
// =============================================================================

// layoutSequence stacks children vertically with MarginY gaps. Its size
// is exactly additive: width is the widest child, height the sum of
// child heights plus gaps (zero for an empty sequence). The minimum box
// size applies to intrinsic boxes, not to this pure composite.
func (e *Engine) layoutSequence(n *flow.Node, id string) *Node {
	children, w, h := e.stack(n.Children, id)
	return &Node{
		ID:       id,
		Kind:     flow.KindSequence,
		Width:    w,
		Height:   h,
		Children: children,
	}
}

// stack lays out children top-to-bottom at x=0 with MarginY between
// consecutive nodes, preserving input order.
func (e *Engine) stack(children []*flow.Node, parentID string) (nodes []*Node, w, h float64) {
	if len(children) == 0 {
		return nil, 0, 0
	}
	nodes = make([]*Node, len(children))
	y := 0.0
	for i, c := range children {
		g := e.layout(c, childID(parentID, c.Kind, i))
		g.Y = y
		y += g.Height + MarginY
		w = max(w, g.Width)
		nodes[i] = g
	}
	h = y - MarginY
	return nodes, w, h
}

// layoutBlock wraps the children (laid out as a sequence) in a container
// frame with a header bar, a start capsule above and an end capsule
// below, all centered on the vertical connector line.
func (e *Engine) layoutBlock(n *flow.Node, id string) *Node {
	children, innerW, innerH := e.stack(n.Children, id)

	startW := StartCapsuleWidth(e.measure(n.Label))
	contentW := max(startW, innerW)
	connectorX := FramePadding + contentW/2

	innerX := connectorX - innerW/2
	innerY := HeaderHeight + FramePadding + CapsuleHeight + MarginY
	for _, c := range children {
		c.X = innerX
		c.Y += innerY
	}

	contentH := CapsuleHeight + MarginY + innerH + MarginY + CapsuleHeight
	w, h := FrameSize(contentW, contentH)

	return &Node{
		ID:         id,
		Kind:       flow.KindBlock,
		Width:      w,
		Height:     h,
		Label:      n.Label,
		Children:   children,
		StartWidth: startW,
		ConnectorX: connectorX,
	}
}

func (e *Engine) layoutCommand(n *flow.Node, id string) *Node {
	return &Node{
		ID:     id,
		Kind:   flow.KindCommand,
		Width:  max(MinWidth, e.measure(n.Label)+LabelPadding),
		Height: MinHeight,
		Label:  n.Label,
	}
}

// layoutIf lays out both branches first, places the then-branch at the
// top right of the condition box and the else-branch far enough below
// that the branches never overlap and the wedge keeps its minimum depth.
func (e *Engine) layoutIf(n *flow.Node, id string) *Node {
	if n.Then == nil {
		// Malformed input; keep layout total.
		return placeholder(n, id)
	}

	condW := max(CondMinWidth, e.measure(n.Condition)) + LabelPadding
	branchX := condW + GapX

	then := e.layout(n.Then, childID(id, n.Then.Kind, slotThen))
	then.X = branchX
	then.Y = 0

	g := &Node{
		ID:        id,
		Kind:      flow.KindIf,
		Condition: n.Condition,
		Then:      then,
		CondWidth: condW,
	}

	branchW := then.Width
	if n.Else != nil {
		els := e.layout(n.Else, childID(id, n.Else.Kind, slotElse))
		elseCenterY := max(
			then.Height+BranchGap+els.Height/2,
			then.Height/2+MinWedgeHeight,
		)
		els.X = branchX
		els.Y = elseCenterY - els.Height/2
		g.Else = els

		branchW = max(branchW, els.Width)
		g.Height = max(then.Height, els.Y+els.Height) + BottomPad
		g.BottomY = WedgeBottomY(then.Height, g.Height, elseCenterY, true)
	} else {
		g.Height = max(then.Height, then.Height/2+MinWedgeHeight) + BottomPad
		g.BottomY = WedgeBottomY(then.Height, g.Height, 0, false)
	}

	g.Width = condW + branchW + TrailingPad
	return g
}

// layoutLoop places the body strictly to the right of the condition
// stripe by GapX.
func (e *Engine) layoutLoop(n *flow.Node, id string) *Node {
	if n.Body == nil {
		return placeholder(n, id)
	}

	condW := max(MinWidth, e.measure(n.Condition)+StripeAllowance+LabelPadding)

	body := e.layout(n.Body, childID(id, n.Body.Kind, slotBody))
	body.X = condW + GapX
	body.Y = 0

	return &Node{
		ID:        id,
		Kind:      flow.KindLoop,
		Width:     condW + GapX + body.Width,
		Height:    max(MinHeight, body.Height),
		Condition: n.Condition,
		Body:      body,
		CondWidth: condW,
	}
}

// placeholder is the minimum-size fallback for error nodes and malformed
// variants (e.g. a conditional without a then-branch).
func placeholder(n *flow.Node, id string) *Node {
	label := n.Message
	if label == "" {
		label = n.Label
	}
	return &Node{
		ID:        id,
		Kind:      n.Kind,
		Width:     MinWidth,
		Height:    MinHeight,
		Label:     label,
		Condition: n.Condition,
	}
}
