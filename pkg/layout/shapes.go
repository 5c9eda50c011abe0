package layout

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Core sizing constants, in pixels. Every geometry node respects the
// minimum box size; containers add padding and gaps on top of their
// children's extents.
const (
	// MinWidth is the minimum width of any intrinsic box.
	MinWidth = 100.0

	// MinHeight is the minimum height of any intrinsic box.
	MinHeight = 40.0

	// MarginY is the vertical gap between consecutive sequence children.
	MarginY = 20.0

	// GapX is the horizontal gap between a condition box and its child.
	GapX = 20.0

	// HeaderHeight is the height of a block's title bar.
	HeaderHeight = 30.0

	// FramePadding is the inner padding of a block container frame.
	FramePadding = 20.0
)

// Shape-specific constants.
const (
	// CapsuleHeight is the fixed height of start/end capsules.
	CapsuleHeight = 30.0

	// MinCapsuleWidth is the minimum start capsule width and the fixed
	// end capsule width.
	MinCapsuleWidth = 60.0

	// LabelPadding is the horizontal padding added around measured text.
	LabelPadding = 20.0

	// HeaderTextInset is the left inset of a header bar's title anchor.
	HeaderTextInset = 10.0

	// CondMinWidth is the minimum width of a conditional's label box.
	CondMinWidth = 40.0

	// BranchGap is the minimum vertical gap between a conditional's
	// then-branch bottom edge and its else-branch top edge.
	BranchGap = 40.0

	// MinWedgeHeight is the minimum vertical extent of the conditional
	// wedge polygon.
	MinWedgeHeight = 60.0

	// TrailingPad is the right padding after a conditional's branches.
	TrailingPad = 50.0

	// BottomPad is the bottom padding below a conditional's branches.
	BottomPad = 20.0

	// NotchDepth is the horizontal indentation of the wedge's notch.
	NotchDepth = 10.0

	// StripeAllowance is the extra width reserved for the loop
	// condition box's double-line stripe.
	StripeAllowance = 10.0
)

// =============================================================================
// Geometry Primitives
// =============================================================================

// Point is a 2D coordinate in user units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// =============================================================================
// Capsule - Start/End Markers
// =============================================================================

// StartCapsuleWidth returns the width of a block's start capsule given
// the measured width of its label. Degenerate labels fall back to the
// minimum capsule width.
func StartCapsuleWidth(labelWidth float64) float64 {
	return max(MinCapsuleWidth, labelWidth+LabelPadding)
}

// EndCapsuleWidth returns the fixed width of a block's end capsule.
func EndCapsuleWidth() float64 { return MinCapsuleWidth }

// CapsuleTopCenter returns the anchor for a connector line entering the
// capsule from above.
func CapsuleTopCenter(c Rect) Point { return Point{X: c.CenterX(), Y: c.Y} }

// CapsuleBottomCenter returns the anchor for a connector line leaving
// the capsule below.
func CapsuleBottomCenter(c Rect) Point { return Point{X: c.CenterX(), Y: c.Y + c.H} }

// =============================================================================
// Container Frame
// =============================================================================

// FrameSize returns the outer size of a block container enclosing inner
// content of the given size: padding on both sides horizontally, and the
// header bar plus padding above and below vertically.
func FrameSize(innerW, innerH float64) (w, h float64) {
	return innerW + 2*FramePadding, HeaderHeight + innerH + 2*FramePadding
}

// FrameHeader returns the header bar rectangle of a frame of width w.
func FrameHeader(w float64) Rect {
	return Rect{X: 0, Y: 0, W: w, H: HeaderHeight}
}

// FrameBody returns the content rectangle of a frame of size (w, h),
// below the header bar and inside the padding.
func FrameBody(w, h float64) Rect {
	return Rect{
		X: FramePadding,
		Y: HeaderHeight + FramePadding,
		W: w - 2*FramePadding,
		H: h - HeaderHeight - 2*FramePadding,
	}
}

// FrameTitlePos returns the left-aligned text anchor of a frame header.
func FrameTitlePos() Point {
	return Point{X: HeaderTextInset, Y: HeaderHeight / 2}
}

// =============================================================================
// Conditional Wedge
// =============================================================================

// WedgeBottomY returns the wedge's bottom vertex y-coordinate.
//
// When an else-branch exists it is the else-branch's vertical center.
// Otherwise the wedge extends to the container's bottom padding line,
// never collapsing below the minimum wedge height.
func WedgeBottomY(thenHeight, containerHeight float64, elseCenterY float64, hasElse bool) float64 {
	if hasElse {
		return elseCenterY
	}
	return max(thenHeight/2+MinWedgeHeight, containerHeight-BottomPad)
}

// WedgeVertices computes the conditional wedge polygon: five vertices in
// winding order, forming a concave wedge whose right edge is indented by
// the notch so it reads as a pointer toward the branches.
//
// branchX is the x-offset of the branches within the conditional;
// bottomY is the bottom vertex from [WedgeBottomY].
func WedgeVertices(thenHeight, branchX, bottomY float64) [5]Point {
	topY := thenHeight / 2
	right := branchX - GapX
	return [5]Point{
		{X: 0, Y: topY},
		{X: right, Y: topY},
		{X: right - NotchDepth, Y: (topY + bottomY) / 2},
		{X: right, Y: bottomY},
		{X: 0, Y: bottomY},
	}
}
