package scene

import "github.com/matzehuels/padviz/pkg/layout"

// =============================================================================
// Surface - Output Boundary
// =============================================================================

// ShapeKind identifies a drawing primitive.
type ShapeKind string

// Drawing primitives a surface must support.
const (
	ShapeRect    ShapeKind = "rect"
	ShapeCapsule ShapeKind = "capsule" // rounded rect, corner radius = height/2
	ShapePolygon ShapeKind = "polygon"
	ShapeLine    ShapeKind = "line"
	ShapeText    ShapeKind = "text"
)

// Text anchoring modes.
const (
	AnchorStart  = "start"
	AnchorMiddle = "middle"
)

// Shape is one primitive inside a node's group, positioned relative to
// the group's origin.
type Shape struct {
	Kind ShapeKind

	// Rect, capsule, and text position; line start point.
	X, Y float64

	// Rect and capsule size.
	W, H float64

	// Line end point.
	X2, Y2 float64

	// Polygon vertices.
	Points []layout.Point

	// Text content and anchoring.
	Text   string
	Anchor string

	// Class is a style hook interpreted by the surface
	// (e.g. "frame", "header", "wedge", "command").
	Class string
}

// Group is a retained node group on the drawing surface. Child groups
// are addressed by stable identity; their transforms are relative to
// the parent group's origin.
type Group interface {
	// ID returns the group's stable identity.
	ID() string

	// Children returns the identities of direct child groups in
	// creation order.
	Children() []string

	// Child returns the child group with the given identity.
	Child(id string) (Group, bool)

	// EnsureChild returns the child with the given identity, creating
	// it if absent.
	EnsureChild(id string) Group

	// Remove deletes the child with the given identity. When fade is
	// set the surface may animate the removal; the group is gone from
	// Children either way.
	Remove(id string, fade bool)

	// SetPosition moves the group's origin relative to its parent.
	// When animate is set the surface may transition smoothly; an
	// immediate move is always acceptable.
	SetPosition(x, y float64, animate bool)

	// SetShapes replaces the group's own primitives. Child groups are
	// unaffected.
	SetShapes(shapes []Shape)

	// SetOpacity sets the group's opacity in [0, 1].
	SetOpacity(opacity float64, animate bool)
}

// Surface is the retained drawing target of the reconciler.
type Surface interface {
	// Root returns the scene root group.
	Root() Group

	// SetView applies the view transform (pan, then zoom) at the
	// scene root.
	SetView(v View)
}
