package scene

import (
	"github.com/matzehuels/padviz/pkg/flow"
	"github.com/matzehuels/padviz/pkg/layout"
)

// Shapes builds the drawing primitives for a single geometry node,
// positioned relative to the node's own origin. Children are not
// included; they live in nested groups.
//
// This is the single source of truth for node appearance, shared by the
// reconciler and the static SVG sink.
func Shapes(n *layout.Node) []Shape {
	switch n.Kind {
	case flow.KindBlock:
		return blockShapes(n)
	case flow.KindIf:
		return ifShapes(n)
	case flow.KindLoop:
		return loopShapes(n)
	case flow.KindCommand:
		return []Shape{
			{Kind: ShapeRect, W: n.Width, H: n.Height, Class: "command"},
			{Kind: ShapeText, X: n.Width / 2, Y: n.Height / 2, Text: n.Label, Anchor: AnchorMiddle, Class: "command-text"},
		}
	case flow.KindError:
		return []Shape{
			{Kind: ShapeRect, W: n.Width, H: n.Height, Class: "error"},
			{Kind: ShapeText, X: n.Width / 2, Y: n.Height / 2, Text: n.Label, Anchor: AnchorMiddle, Class: "error-text"},
		}
	default:
		// Sequences draw nothing of their own.
		return nil
	}
}

func blockShapes(n *layout.Node) []Shape {
	header := layout.FrameHeader(n.Width)
	title := layout.FrameTitlePos()

	start := layout.Rect{
		X: n.ConnectorX - n.StartWidth/2,
		Y: layout.HeaderHeight + layout.FramePadding,
		W: n.StartWidth,
		H: layout.CapsuleHeight,
	}
	end := layout.Rect{
		X: n.ConnectorX - layout.EndCapsuleWidth()/2,
		Y: n.Height - layout.FramePadding - layout.CapsuleHeight,
		W: layout.EndCapsuleWidth(),
		H: layout.CapsuleHeight,
	}
	from := layout.CapsuleBottomCenter(start)
	to := layout.CapsuleTopCenter(end)

	return []Shape{
		{Kind: ShapeRect, W: n.Width, H: n.Height, Class: "frame"},
		{Kind: ShapeRect, X: header.X, Y: header.Y, W: header.W, H: header.H, Class: "header"},
		{Kind: ShapeText, X: title.X, Y: title.Y, Text: n.Label, Anchor: AnchorStart, Class: "title"},
		{Kind: ShapeLine, X: from.X, Y: from.Y, X2: to.X, Y2: to.Y, Class: "connector"},
		{Kind: ShapeCapsule, X: start.X, Y: start.Y, W: start.W, H: start.H, Class: "capsule"},
		{Kind: ShapeText, X: start.CenterX(), Y: start.CenterY(), Text: n.Label, Anchor: AnchorMiddle, Class: "capsule-label"},
		{Kind: ShapeCapsule, X: end.X, Y: end.Y, W: end.W, H: end.H, Class: "capsule"},
	}
}

func ifShapes(n *layout.Node) []Shape {
	if n.Then == nil {
		// Malformed conditional laid out as a placeholder.
		return []Shape{
			{Kind: ShapeRect, W: n.Width, H: n.Height, Class: "error"},
			{Kind: ShapeText, X: n.Width / 2, Y: n.Height / 2, Text: n.Condition, Anchor: AnchorMiddle, Class: "error-text"},
		}
	}

	branchX := n.Then.X
	verts := layout.WedgeVertices(n.Then.Height, branchX, n.BottomY)
	topY := verts[0].Y
	right := verts[1].X

	shapes := []Shape{
		{Kind: ShapePolygon, Points: verts[:], Class: "wedge"},
		{Kind: ShapeText, X: n.CondWidth / 2, Y: (topY + n.BottomY) / 2, Text: n.Condition, Anchor: AnchorMiddle, Class: "cond-text"},
		{Kind: ShapeLine, X: right, Y: topY, X2: branchX, Y2: topY, Class: "branch"},
	}
	if n.Else != nil {
		shapes = append(shapes, Shape{
			Kind: ShapeLine, X: right, Y: n.BottomY, X2: n.Else.X, Y2: n.BottomY, Class: "branch",
		})
	}
	return shapes
}

func loopShapes(n *layout.Node) []Shape {
	if n.Body == nil {
		return []Shape{
			{Kind: ShapeRect, W: n.Width, H: n.Height, Class: "error"},
			{Kind: ShapeText, X: n.Width / 2, Y: n.Height / 2, Text: n.Condition, Anchor: AnchorMiddle, Class: "error-text"},
		}
	}

	midY := n.Body.Y + n.Body.Height/2

	return []Shape{
		{Kind: ShapeRect, W: n.CondWidth, H: n.Height, Class: "cond"},
		// Double-line stripe marking repetition.
		{Kind: ShapeLine, X: layout.StripeAllowance, X2: layout.StripeAllowance, Y2: n.Height, Class: "stripe"},
		{Kind: ShapeText, X: (layout.StripeAllowance + n.CondWidth) / 2, Y: n.Height / 2, Text: n.Condition, Anchor: AnchorMiddle, Class: "cond-text"},
		{Kind: ShapeLine, X: n.CondWidth, Y: midY, X2: n.Body.X, Y2: midY, Class: "branch"},
	}
}
